package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/utils"
)

type adminService interface {
	ListUsers(ctx context.Context, filter entities.AdminUserFilter) ([]*entities.User, utils.PaginationMeta, error)
	DeleteUser(ctx context.Context, requester *entities.User, id uuid.UUID) error
	ToggleStatus(ctx context.Context, requester *entities.User, id uuid.UUID) (*entities.User, error)
	Stats(ctx context.Context) (*entities.Stats, error)
}

// AdminHandler handles admin-only endpoints.
// Routes are expected to run behind RequireCapability.
type AdminHandler struct {
	adminUsecase adminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase adminService) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers lists accounts
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	filter := entities.AdminUserFilter{
		Search: c.Query("search"),
		Role:   entities.UserRole(c.Query("role")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}

	users, meta, err := h.adminUsecase.ListUsers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, users, meta)
}

// DeleteUser deactivates and soft-deletes an account
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	if err := h.adminUsecase.DeleteUser(c.Request.Context(), user, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deactivated"})
}

// ToggleStatus flips the active flag of an account
// PATCH /api/v1/admin/users/:id/toggle-status
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "user")
	if !ok {
		return
	}

	updated, err := h.adminUsecase.ToggleStatus(c.Request.Context(), user, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": updated})
}

// Stats returns dashboard counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
