package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/internal/interfaces/http/presenter"
	"obra-connect.backend/internal/interfaces/http/response"
)

const forgotPasswordMessage = "If the email is registered, a reset code has been sent."

type authService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	GetProfile(ctx context.Context, user *entities.User) (*entities.ProfileResponse, error)
	UpdateProfile(ctx context.Context, user *entities.User, input *entities.UpdateProfileInput) (*entities.User, error)
}

type passwordResetService interface {
	RequestReset(ctx context.Context, email string)
	ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  authService
	resetUsecase passwordResetService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase authService, resetUsecase passwordResetService) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		resetUsecase: resetUsecase,
	}
}

// Register handles self registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Profile returns the caller's account with its owned profile in full view
// GET /api/v1/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}

	profile, err := h.authUsecase.GetProfile(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, presenter.Profile(profile))
}

// UpdateProfile changes name, photo or password of the caller
// PUT /api/v1/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}
	var input entities.UpdateProfileInput
	if !bindJSON(c, &input) {
		return
	}

	updated, err := h.authUsecase.UpdateProfile(c.Request.Context(), user, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": updated})
}

// ForgotPassword starts a password reset. The answer never reveals whether
// the address is registered.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	h.resetUsecase.RequestReset(c.Request.Context(), input.Email)
	response.Success(c, http.StatusOK, gin.H{"message": forgotPasswordMessage})
}

// ResetPassword completes a reset with the mailed code
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if !bindJSON(c, &input) {
		return
	}

	if err := h.resetUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Password updated successfully"})
}
