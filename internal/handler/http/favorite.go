package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cristiarazvan/gogogo/internal/service"
	"github.com/cristiarazvan/gogogo/pkg/httputil"
)

// FavoriteHandler handles HTTP requests for favorite endpoints.
type FavoriteHandler struct {
	favorites *service.FavoriteService
	logger    *slog.Logger
}

// NewFavoriteHandler creates a new favorite HTTP handler.
func NewFavoriteHandler(favorites *service.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, logger: logger}
}

// List handles GET /api/v1/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	favorites, err := h.favorites.List(r.Context(), actorFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: favorites})
}

// Toggle handles POST /api/v1/favorites/{productId}/toggle
// Returns whether the product is a favorite after the flip.
func (h *FavoriteHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	favorited, err := h.favorites.Toggle(r.Context(), actorFromRequest(r), productID.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"product_id": productID.String(),
		"favorited":  favorited,
	}})
}

// Add handles POST /api/v1/favorites/{productId}
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.favorites.Add(r.Context(), actorFromRequest(r), productID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: map[string]string{"product_id": productID.String(), "status": "favorited"}})
}

// Remove handles DELETE /api/v1/favorites/{productId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.favorites.Remove(r.Context(), actorFromRequest(r), productID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"product_id": productID.String(), "status": "removed"}})
}

// MoveToCart handles POST /api/v1/favorites/{productId}/move-to-cart
// The favorite survives when the product cannot be added to the cart.
func (h *FavoriteHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseUUID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	if err := h.favorites.MoveToCart(r.Context(), actorFromRequest(r), productID.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"product_id": productID.String(), "status": "moved"}})
}
