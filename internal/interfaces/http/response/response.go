package response

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/pkg/logger"
	"obra-connect.backend/pkg/utils"
)

var debug atomic.Bool

func init() {
	// binding errors name json keys instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// SetDebug toggles whether internal error messages reach the client
func SetDebug(on bool) {
	debug.Store(on)
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends one page of items together with its metadata
func Paginated(c *gin.Context, items interface{}, meta utils.PaginationMeta) {
	c.JSON(200, gin.H{
		"data":       items,
		"pagination": meta,
	})
}

// Error sends an error response
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.AsAppError(err)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	body := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}

	if appErr.Code == domainerrors.CodeInternalError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Err),
		)
		if debug.Load() && appErr.Err != nil {
			body["details"] = appErr.Err.Error()
		}
	}

	c.AbortWithStatusJSON(appErr.Status, body)
}

// BindingError converts a gin binding failure into a validation error
func BindingError(err error) *domainerrors.AppError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := fe.Field()
			if _, seen := details[field]; !seen {
				fields = append(fields, field)
			}
			details[field] = fe.Tag()
		}
		return domainerrors.Validation("invalid fields: "+strings.Join(fields, ", "), details)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domainerrors.FieldError(typeErr.Field, "wrong type")
	}
	if errors.Is(err, io.EOF) {
		return domainerrors.Validation("request body is required", nil)
	}
	return domainerrors.Validation("malformed request body", nil)
}
