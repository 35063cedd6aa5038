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

type professionalService interface {
	List(ctx context.Context, filter entities.ProfessionalFilter) ([]*entities.Professional, utils.PaginationMeta, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Professional, error)
	Update(ctx context.Context, requester *entities.User, id uuid.UUID, input *entities.UpdateProfessionalInput) (*entities.Professional, error)
}

// ProfessionalHandler handles professional profile endpoints
type ProfessionalHandler struct {
	professionalUsecase professionalService
}

// NewProfessionalHandler creates a new professional handler
func NewProfessionalHandler(professionalUsecase professionalService) *ProfessionalHandler {
	return &ProfessionalHandler{professionalUsecase: professionalUsecase}
}

// List returns professionals, with contact fields only for signed-in callers
// GET /api/v1/professionals
func (h *ProfessionalHandler) List(c *gin.Context) {
	filter := entities.ProfessionalFilter{
		CategoryID:    c.Query("category_id"),
		SubcategoryID: c.Query("subcategory_id"),
		City:          c.Query("city"),
		State:         c.Query("state"),
		Search:        c.Query("search"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	}

	items, meta, err := h.professionalUsecase.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, presenter.Professionals(items, middleware.IsAuthenticated(c)), meta)
}

// Get returns one professional
// GET /api/v1/professionals/:id
func (h *ProfessionalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}

	p, err := h.professionalUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, presenter.Professional(p, middleware.IsAuthenticated(c)))
}

// Update changes a professional profile owned by the caller
// PUT /api/v1/professionals/:id
func (h *ProfessionalHandler) Update(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}
	var input entities.UpdateProfessionalInput
	if !bindJSON(c, &input) {
		return
	}

	p, err := h.professionalUsecase.Update(c.Request.Context(), user, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, presenter.Professional(p, true))
}
