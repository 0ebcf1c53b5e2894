package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/storage"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

// MediaService stores uploaded images. Keys are random so two uploads
// with the same original filename never collide.
type MediaService struct {
	storage storage.Storage
}

// NewMediaService creates a MediaService.
func NewMediaService(store storage.Storage) *MediaService {
	return &MediaService{storage: store}
}

// Upload validates and stores an image, returning its public URL.
func (s *MediaService) Upload(ctx context.Context, actor domain.Actor, fileName, contentType string, size int64, data io.Reader) (string, error) {
	if actor.IsAnonymous() {
		return "", apperrors.Unauthorized("sign in to upload images")
	}

	if !storage.IsAllowedContentType(contentType) {
		return "", apperrors.InvalidInput(fmt.Sprintf("content type %s is not allowed", contentType))
	}
	if size <= 0 || size > storage.MaxFileSize {
		return "", apperrors.InvalidInput(fmt.Sprintf("file size must be between 1 and %d bytes", storage.MaxFileSize))
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := "images/" + uuid.New().String() + ext

	result, err := s.storage.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: contentType,
		Size:        size,
		Data:        data,
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return result.URL, nil
}

// Delete removes a stored image by its key.
func (s *MediaService) Delete(ctx context.Context, actor domain.Actor, key string) error {
	if !actor.IsAdmin() {
		return apperrors.Forbidden("only admins may delete images")
	}
	return s.storage.Delete(ctx, key)
}
