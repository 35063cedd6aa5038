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
)

type indicationService interface {
	Create(ctx context.Context, requester *entities.User, toID uuid.UUID, input *entities.CreateIndicationInput) (*entities.Indication, error)
	ListReceived(ctx context.Context, toID uuid.UUID) ([]*entities.Indication, error)
}

// IndicationHandler handles peer referral endpoints
type IndicationHandler struct {
	indicationUsecase indicationService
}

// NewIndicationHandler creates a new indication handler
func NewIndicationHandler(indicationUsecase indicationService) *IndicationHandler {
	return &IndicationHandler{indicationUsecase: indicationUsecase}
}

// Create records a referral from the caller's professional profile
// POST /api/v1/professionals/:id/indications
func (h *IndicationHandler) Create(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	toID, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}
	var input entities.CreateIndicationInput
	// the note is optional, so an empty body is accepted
	if c.Request.ContentLength != 0 && !bindJSON(c, &input) {
		return
	}

	ind, err := h.indicationUsecase.Create(c.Request.Context(), user, toID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, presenter.Indication(ind, true))
}

// List returns the referrals a professional received
// GET /api/v1/professionals/:id/indications
func (h *IndicationHandler) List(c *gin.Context) {
	toID, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}

	list, err := h.indicationUsecase.ListReceived(c.Request.Context(), toID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": presenter.Indications(list, middleware.IsAuthenticated(c))})
}
