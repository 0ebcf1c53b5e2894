package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristiarazvan/gogogo/internal/domain"
	"github.com/cristiarazvan/gogogo/internal/storage"
	"github.com/cristiarazvan/gogogo/internal/storage/memory"
	apperrors "github.com/cristiarazvan/gogogo/pkg/errors"
)

func TestMediaUpload(t *testing.T) {
	svc := NewMediaService(memory.New("http://localhost:8080/static"))
	actor := domain.Actor{UserID: "user-1", Role: domain.RoleCollaborator}

	url, err := svc.Upload(context.Background(), actor, "menu.png", "image/png", 1024, strings.NewReader("fake-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/static/images/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestMediaUploadAnonymous(t *testing.T) {
	svc := NewMediaService(memory.New("http://localhost:8080/static"))

	_, err := svc.Upload(context.Background(), domain.Actor{}, "menu.png", "image/png", 1024, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestMediaUploadRejectsContentType(t *testing.T) {
	svc := NewMediaService(memory.New("http://localhost:8080/static"))
	actor := domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}

	_, err := svc.Upload(context.Background(), actor, "notes.pdf", "application/pdf", 1024, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMediaUploadRejectsOversizedFile(t *testing.T) {
	svc := NewMediaService(memory.New("http://localhost:8080/static"))
	actor := domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}

	_, err := svc.Upload(context.Background(), actor, "huge.png", "image/png", storage.MaxFileSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMediaDeleteRequiresAdmin(t *testing.T) {
	svc := NewMediaService(memory.New("http://localhost:8080/static"))

	err := svc.Delete(context.Background(), domain.Actor{UserID: "user-1", Role: domain.RoleCustomer}, "images/x.png")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}
