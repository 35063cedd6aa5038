package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/jwt"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/metrics"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserKey is the context key for the resolved user
	UserKey = "currentUser"
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// UserLookup re-reads the account a token was issued for
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

// AuthMiddleware requires a valid bearer token for an active account
func AuthMiddleware(jwtService *jwt.JWTService, users UserLookup, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, appErr := resolveUser(c, jwtService, users)
		if appErr != nil {
			m.AuthFailure(appErr.Code)
			if appErr.Code != domainerrors.CodeInternalError {
				logger.Warn(c.Request.Context(), "Authentication rejected",
					zap.String("path", c.Request.URL.Path),
					zap.String("code", appErr.Code),
					zap.String("client_ip", c.ClientIP()),
				)
			}
			response.Error(c, appErr)
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a usable token is present
// and otherwise lets the request through anonymously.
func OptionalAuthMiddleware(jwtService *jwt.JWTService, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(AuthorizationHeader) != "" {
			user, appErr := resolveUser(c, jwtService, users)
			if appErr == nil {
				setUser(c, user)
			} else {
				logger.Debug(c.Request.Context(), "Optional auth ignored token", zap.String("code", appErr.Code))
			}
		}
		c.Next()
	}
}

func resolveUser(c *gin.Context, jwtService *jwt.JWTService, users UserLookup) (*entities.User, *domainerrors.AppError) {
	header := c.GetHeader(AuthorizationHeader)
	if header == "" || !strings.HasPrefix(header, BearerPrefix) {
		return nil, domainerrors.Unauthenticated()
	}
	tokenString := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if tokenString == "" {
		return nil, domainerrors.Unauthenticated()
	}

	claims, err := jwtService.Verify(tokenString)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.SessionExpired()
		}
		return nil, domainerrors.InvalidToken()
	}

	// role and active flag come from the store, not from the claims
	user, err := users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.InvalidToken()
		}
		return nil, domainerrors.InternalError(err)
	}
	if !user.Active {
		return nil, domainerrors.AccountDisabled()
	}
	user.PasswordHash = ""
	return user, nil
}

func setUser(c *gin.Context, user *entities.User) {
	c.Set(UserKey, user)
	c.Set(UserIDKey, user.ID)
	c.Set(UserRoleKey, user.Role)
}

// CurrentUser returns the user resolved by the auth middlewares
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok && user != nil
}

// IsAuthenticated reports whether a user is attached to the request
func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentUser(c)
	return ok
}

// RequireCapability admits users whose role holds action in the capability table.
// Must run after AuthMiddleware.
func RequireCapability(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			response.Error(c, domainerrors.Unauthenticated())
			return
		}
		if !policy.Allows(user.Role, action) {
			logger.Warn(c.Request.Context(), "Capability denied",
				zap.String("user_id", user.ID.String()),
				zap.String("role", string(user.Role)),
				zap.String("action", string(action)),
			)
			response.Error(c, domainerrors.Forbidden("insufficient permissions"))
			return
		}
		c.Next()
	}
}
