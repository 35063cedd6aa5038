package usecases

import (
	"context"
	"io"
	"time"

	"obra-connect.backend/internal/domain/entities"
)

// ImageHost stores image bytes and hands back a durable reference
type ImageHost interface {
	Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (*entities.UploadedImage, error)
	Delete(ctx context.Context, id string) error
}

// Mailer delivers a templated email on a best-effort basis
type Mailer interface {
	Send(ctx context.Context, template, to string, data map[string]string) error
}

// ResetCodeStore keeps pending password reset code digests
type ResetCodeStore interface {
	Save(ctx context.Context, email, digest string, ttl time.Duration) error
	Digest(ctx context.Context, email string) (string, bool, error)
	Failures(ctx context.Context, email string) (int64, error)
	RegisterFailure(ctx context.Context, email string, ttl time.Duration) (int64, error)
	Consume(ctx context.Context, email string) (bool, error)
}
