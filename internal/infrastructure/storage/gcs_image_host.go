package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"obra-connect.backend/internal/config"
	"obra-connect.backend/internal/domain/entities"
	"obra-connect.backend/pkg/utils"
)

// ErrNotConfigured is returned when no bucket is set up
var ErrNotConfigured = errors.New("image hosting not configured")

// objectStore is the slice of a bucket the host needs
type objectStore interface {
	Write(ctx context.Context, name, contentType string, r io.Reader) error
	Delete(ctx context.Context, name string) error
}

type bucketObjects struct {
	bucket *gcs.BucketHandle
}

func (b *bucketObjects) Write(ctx context.Context, name, contentType string, r io.Reader) error {
	w := b.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (b *bucketObjects) Delete(ctx context.Context, name string) error {
	err := b.bucket.Object(name).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

var newGCSClient = func(ctx context.Context, opts ...option.ClientOption) (*gcs.Client, error) {
	return gcs.NewClient(ctx, opts...)
}

// GCSImageHost stores images as objects in a Google Cloud Storage bucket.
// The object name doubles as the opaque id handed back to callers.
type GCSImageHost struct {
	objects objectStore
	baseURL string
	closer  io.Closer
}

// NewGCSImageHost connects to the configured bucket
func NewGCSImageHost(ctx context.Context, cfg config.StorageConfig) (*GCSImageHost, error) {
	if cfg.GCSBucket == "" {
		return nil, ErrNotConfigured
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := newGCSClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com/" + cfg.GCSBucket
	}

	return &GCSImageHost{
		objects: &bucketObjects{bucket: client.Bucket(cfg.GCSBucket)},
		baseURL: strings.TrimRight(baseURL, "/"),
		closer:  client,
	}, nil
}

// Upload streams r into folder and returns where it can be fetched
func (h *GCSImageHost) Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (*entities.UploadedImage, error) {
	name := objectName(folder, filename)
	if err := h.objects.Write(ctx, name, contentType, r); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	return &entities.UploadedImage{URL: h.baseURL + "/" + name, ID: name}, nil
}

// Delete removes an image by id; a missing object is not an error
func (h *GCSImageHost) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return h.objects.Delete(ctx, id)
}

// Close releases the underlying client
func (h *GCSImageHost) Close() error {
	if h.closer == nil {
		return nil
	}
	return h.closer.Close()
}

func objectName(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 6 {
		ext = ""
	}
	return path.Join(folder, utils.GenerateUUIDv7().String()+ext)
}

// UnavailableImageHost rejects every call; used when no bucket is configured
type UnavailableImageHost struct{}

func (UnavailableImageHost) Upload(context.Context, io.Reader, string, string, string) (*entities.UploadedImage, error) {
	return nil, ErrNotConfigured
}

func (UnavailableImageHost) Delete(context.Context, string) error {
	return ErrNotConfigured
}
