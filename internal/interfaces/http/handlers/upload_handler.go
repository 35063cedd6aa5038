package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/interfaces/http/response"
	"obra-connect.backend/internal/usecases"
	"obra-connect.backend/pkg/logger"
)

// multipartOverhead covers boundaries and form fields around the file part
const multipartOverhead = 1 << 20

type uploadService interface {
	Upload(ctx context.Context, requester *entities.User, input usecases.UploadInput) (*entities.UploadedImage, error)
	MaxBytes() int64
}

// UploadHandler forwards multipart images to the image host
type UploadHandler struct {
	uploadUsecase uploadService
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadUsecase uploadService) *UploadHandler {
	return &UploadHandler{uploadUsecase: uploadUsecase}
}

// UploadImage stores the "file" part under the "folder" form value
// POST /api/v1/uploads/images
func (h *UploadHandler) UploadImage(c *gin.Context) {
	user, ok := requester(c)
	if !ok {
		return
	}

	maxBytes := h.uploadUsecase.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fh, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			response.Error(c, domainerrors.FieldError("file", "file is too large"))
			return
		}
		response.Error(c, domainerrors.FieldError("file", "file is required"))
		return
	}

	f, err := fh.Open()
	if err != nil {
		logger.Error(c.Request.Context(), "Failed to open uploaded file", zap.Error(err))
		response.Error(c, domainerrors.InternalError(err))
		return
	}
	defer f.Close()

	img, err := h.uploadUsecase.Upload(c.Request.Context(), user, usecases.UploadInput{
		Reader:      f,
		Size:        fh.Size,
		Folder:      c.PostForm("folder"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, img)
}

func isBodyTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return true
	}
	// multipart wraps some reader errors without %w
	return strings.Contains(err.Error(), "request body too large")
}
