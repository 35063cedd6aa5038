package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/interfaces/http/response"
)

type portfolioService interface {
	List(ctx context.Context, professionalID uuid.UUID) ([]*entities.PortfolioItem, error)
	Create(ctx context.Context, requester *entities.User, professionalID uuid.UUID, input *entities.CreatePortfolioItemInput) (*entities.PortfolioItem, error)
	Update(ctx context.Context, requester *entities.User, professionalID, itemID uuid.UUID, input *entities.UpdatePortfolioItemInput) (*entities.PortfolioItem, error)
	Delete(ctx context.Context, requester *entities.User, professionalID, itemID uuid.UUID) error
}

// PortfolioHandler handles portfolio endpoints nested under a professional
type PortfolioHandler struct {
	portfolioUsecase portfolioService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioUsecase portfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioUsecase: portfolioUsecase}
}

// List returns the portfolio of a professional
// GET /api/v1/professionals/:id/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	professionalID, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}

	items, err := h.portfolioUsecase.List(c.Request.Context(), professionalID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": items})
}

// Create adds a portfolio item
// POST /api/v1/professionals/:id/portfolio
func (h *PortfolioHandler) Create(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	professionalID, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}
	var input entities.CreatePortfolioItemInput
	if !bindJSON(c, &input) {
		return
	}

	item, err := h.portfolioUsecase.Create(c.Request.Context(), user, professionalID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// Update changes a portfolio item
// PUT /api/v1/professionals/:id/portfolio/:itemId
func (h *PortfolioHandler) Update(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	professionalID, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "portfolio item")
	if !ok {
		return
	}
	var input entities.UpdatePortfolioItemInput
	if !bindJSON(c, &input) {
		return
	}

	item, err := h.portfolioUsecase.Update(c.Request.Context(), user, professionalID, itemID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Delete removes a portfolio item and releases its images
// DELETE /api/v1/professionals/:id/portfolio/:itemId
func (h *PortfolioHandler) Delete(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	professionalID, ok := pathID(c, "id", "professional")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemId", "portfolio item")
	if !ok {
		return
	}

	if err := h.portfolioUsecase.Delete(c.Request.Context(), user, professionalID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
