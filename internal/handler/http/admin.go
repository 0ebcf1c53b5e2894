package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cristiarazvan/gogogo/internal/service"
	"github.com/cristiarazvan/gogogo/pkg/httputil"
)

// AdminHandler handles the moderation and account endpoints.
type AdminHandler struct {
	approvals *service.ApprovalService
	users     *service.UserService
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(approvals *service.ApprovalService, users *service.UserService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{approvals: approvals, users: users, logger: logger}
}

// PendingReview handles GET /api/v1/admin/pending
// Lists every restaurant and product still awaiting a decision.
func (h *AdminHandler) PendingReview(w http.ResponseWriter, r *http.Request) {
	pending, err := h.approvals.PendingReview(r.Context(), actorFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: pending})
}

// ApproveRestaurant handles POST /api/v1/admin/restaurants/{id}/approve
// Approving an already approved restaurant is a no-op, not an error.
func (h *AdminHandler) ApproveRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.approvals.ApproveRestaurant(r.Context(), actorFromRequest(r), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "approved"}})
}

// RejectRestaurant handles POST /api/v1/admin/restaurants/{id}/reject
// Rejection removes the restaurant together with its products and every
// cart, favorite, review, and rating row that references them.
func (h *AdminHandler) RejectRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.approvals.RejectRestaurant(r.Context(), actorFromRequest(r), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "rejected"}})
}

// ApproveProduct handles POST /api/v1/admin/products/{id}/approve
func (h *AdminHandler) ApproveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.approvals.ApproveProduct(r.Context(), actorFromRequest(r), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "approved"}})
}

// RejectProduct handles POST /api/v1/admin/products/{id}/reject
func (h *AdminHandler) RejectProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.approvals.RejectProduct(r.Context(), actorFromRequest(r), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "rejected"}})
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), actorFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: users})
}
