// internal/domain/upload/service.go
package upload

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

var (
	// ErrFileTooLarge is returned when an upload exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	// ErrInvalidExtension is returned for file types the store doesn't accept
	ErrInvalidExtension = errors.New("file type not allowed")
)

// Kind selects the destination folder inside the media bucket
type Kind string

const (
	KindPaymentProof Kind = "proof"
	KindProductImage Kind = "product"
)

// Service stores uploaded images in the media bucket
type Service struct {
	client *minio.Client
	config *config.Config
}

// NewService creates a new upload service
func NewService(client *minio.Client, cfg *config.Config) *Service {
	return &Service{client: client, config: cfg}
}

// Result describes a stored object
type Result struct {
	ObjectKey string `json:"object_key"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
}

// Store validates and saves an uploaded file, returning its public URL.
// Object keys are random so customer uploads can't collide or be guessed.
func (s *Service) Store(ctx context.Context, kind Kind, file *multipart.FileHeader) (*Result, error) {
	if file.Size > s.config.Upload.MaxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(file.Filename), "."))
	if !s.allowedExtension(ext) {
		return nil, ErrInvalidExtension
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	key := fmt.Sprintf("%s/%s.%s", s.folder(kind), uuid.New().String(), ext)
	st := s.config.External.Storage

	_, err = s.client.PutObject(ctx, st.Bucket, key, f, file.Size, minio.PutObjectOptions{
		ContentType: file.Header.Get("Content-Type"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &Result{
		ObjectKey: key,
		URL:       s.PublicURL(key),
		Size:      file.Size,
	}, nil
}

// Remove deletes a stored object
func (s *Service) Remove(ctx context.Context, objectKey string) error {
	st := s.config.External.Storage
	if err := s.client.RemoveObject(ctx, st.Bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return nil
}

// PublicURL builds the externally reachable URL for an object key.
func (s *Service) PublicURL(objectKey string) string {
	st := s.config.External.Storage
	if st.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(st.PublicBaseURL, "/"), st.Bucket, objectKey)
	}
	scheme := "http"
	if st.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, st.Endpoint, st.Bucket, objectKey)
}

func (s *Service) folder(kind Kind) string {
	st := s.config.External.Storage
	if kind == KindProductImage {
		return st.ProductFolder
	}
	return st.ProofFolder
}

func (s *Service) allowedExtension(ext string) bool {
	for _, allowed := range s.config.Upload.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
