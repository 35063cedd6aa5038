package usecases

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"obra-connect.backend/internal/domain/entities"
	domainerrors "obra-connect.backend/internal/domain/errors"
	"obra-connect.backend/internal/domain/policy"
	"obra-connect.backend/pkg/logger"
)

// UploadInput describes one image to hand to the image host
type UploadInput struct {
	Reader      io.Reader
	Size        int64
	Folder      string
	Filename    string
	ContentType string
}

// UploadUsecase forwards images to the image host. Bytes are never inspected.
type UploadUsecase struct {
	images   ImageHost
	maxBytes int64
}

// NewUploadUsecase creates a new upload usecase
func NewUploadUsecase(images ImageHost, maxBytes int64) *UploadUsecase {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadUsecase{images: images, maxBytes: maxBytes}
}

// MaxBytes is the accepted upload size
func (u *UploadUsecase) MaxBytes() int64 {
	return u.maxBytes
}

// Upload validates the declared metadata and stores the image
func (u *UploadUsecase) Upload(ctx context.Context, requester *entities.User, input UploadInput) (*entities.UploadedImage, error) {
	if requester == nil {
		return nil, domainerrors.Unauthenticated()
	}
	if !policy.Allows(requester.Role, policy.ActionImageUpload) {
		return nil, domainerrors.Forbidden("image upload not allowed")
	}
	folder := strings.TrimSpace(input.Folder)
	if folder == "" {
		folder = FolderProfiles
	}
	if !uploadFolders[folder] {
		return nil, domainerrors.FieldError("folder", "must be one of profiles, portfolio, companies")
	}
	if !strings.HasPrefix(strings.ToLower(input.ContentType), "image/") {
		return nil, domainerrors.FieldError("file", "only image files are accepted")
	}
	if input.Size <= 0 {
		return nil, domainerrors.FieldError("file", "empty file")
	}
	if input.Size > u.maxBytes {
		return nil, domainerrors.FieldError("file", "file too large")
	}

	img, err := u.images.Upload(ctx, io.LimitReader(input.Reader, u.maxBytes), uploaderFolder(folder, requester.ID), input.Filename, input.ContentType)
	if err != nil {
		logger.Error(ctx, "Image upload failed", zap.String("user_id", requester.ID.String()), zap.Error(err))
		return nil, err
	}
	return img, nil
}

// uploaderFolder scopes stored objects to the uploading account
func uploaderFolder(folder string, userID uuid.UUID) string {
	return folder + "/" + userID.String()
}

// imageOwnedBy reports whether id names an object stored under one of the
// owners' upload folders, i.e. "<folder>/<owner id>/<name>".
func imageOwnedBy(id string, owners ...uuid.UUID) bool {
	parts := strings.Split(id, "/")
	if len(parts) != 3 || !uploadFolders[parts[0]] {
		return false
	}
	if name := parts[2]; name == "" || name == "." || name == ".." {
		return false
	}
	owner, err := uuid.Parse(parts[1])
	if err != nil || owner.String() != parts[1] {
		return false
	}
	for _, o := range owners {
		if o != uuid.Nil && o == owner {
			return true
		}
	}
	return false
}
