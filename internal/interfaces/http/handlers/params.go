package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/interfaces/http/middleware"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/pkg/utils"
)

// bindJSON decodes the request body into dst and writes a validation error on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, response.BindingError(err))
		return false
	}
	return true
}

// pathID parses a uuid path parameter. A malformed id cannot name a record,
// so it is reported as not found.
func pathID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, ok := utils.ParseUUID(c.Param(name))
	if !ok {
		response.Error(c, domainerrors.NotFound(resource+" not found"))
		return uuid.Nil, false
	}
	return id, true
}

func requester(c *gin.Context) (*entities.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthenticated())
		return nil, false
	}
	return user, true
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
