package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/interfaces/http/middleware"
	"obra-connect.backend/internal/interfaces/http/presenter"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/utils"
)

type companyService interface {
	List(ctx context.Context, filter entities.CompanyFilter) ([]*entities.Company, utils.PaginationMeta, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Company, error)
	Update(ctx context.Context, requester *entities.User, id uuid.UUID, input *entities.UpdateCompanyInput) (*entities.Company, error)
}

// CompanyHandler handles company profile endpoints
type CompanyHandler struct {
	companyUsecase companyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyUsecase companyService) *CompanyHandler {
	return &CompanyHandler{companyUsecase: companyUsecase}
}

// List returns companies
// GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	filter := entities.CompanyFilter{
		City:   c.Query("city"),
		State:  c.Query("state"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	items, meta, err := h.companyUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, presenter.Companies(items, middleware.IsAuthenticated(c)), meta)
}

// Get returns one company
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "company")
	if !ok {
		return
	}

	company, err := h.companyUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, presenter.Company(company, middleware.IsAuthenticated(c)))
}

// Update changes a company owned by the caller
// PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "company")
	if !ok {
		return
	}
	var input entities.UpdateCompanyInput
	if !bindJSON(c, &input) {
		return
	}

	company, err := h.companyUsecase.Update(c.Request.Context(), user, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, presenter.Company(company, true))
}
