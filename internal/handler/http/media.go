package http

import (
	"log/slog"
	"net/http"

	"github.com/cristiarazvan/gogogo/internal/service"
	"github.com/cristiarazvan/gogogo/internal/storage"
	"github.com/cristiarazvan/gogogo/pkg/httputil"
)

// MediaHandler handles image uploads for restaurant and product pictures.
type MediaHandler struct {
	media  *service.MediaService
	logger *slog.Logger
}

// NewMediaHandler creates a new media HTTP handler.
func NewMediaHandler(media *service.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{media: media, logger: logger}
}

// Upload handles POST /api/v1/images
// Accepts a multipart form with a single "file" part and returns the URL
// to reference from restaurant or product payloads.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storage.MaxFileSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "multipart form must include a file part named \"file\""},
		})
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")

	url, err := h.media.Upload(r.Context(), actorFromRequest(r), header.Filename, contentType, header.Size, file)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"url": url}})
}
