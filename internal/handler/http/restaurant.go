package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cristiarazvan/gogogo/internal/service"
	"github.com/cristiarazvan/gogogo/pkg/httputil"
	"github.com/cristiarazvan/gogogo/pkg/pagination"
	"github.com/cristiarazvan/gogogo/pkg/validator"
)

// RestaurantHandler handles HTTP requests for restaurant endpoints.
type RestaurantHandler struct {
	discovery *service.DiscoveryService
	catalog   *service.CatalogService
	ratings   *service.RatingService
	logger    *slog.Logger
}

// NewRestaurantHandler creates a new restaurant HTTP handler.
func NewRestaurantHandler(discovery *service.DiscoveryService, catalog *service.CatalogService, ratings *service.RatingService, logger *slog.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		discovery: discovery,
		catalog:   catalog,
		ratings:   ratings,
		logger:    logger,
	}
}

// RestaurantRequest is the JSON request body for creating or updating a restaurant.
type RestaurantRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// RateRequest is the JSON request body for rating a restaurant.
type RateRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}

// Browse handles GET /api/v1/restaurants
// Supports text search, category filtering, and sorting. The category
// parameter may repeat or hold a comma-separated list of category names.
func (h *RestaurantHandler) Browse(w http.ResponseWriter, r *http.Request) {
	query := service.BrowseQuery{
		Search: r.URL.Query().Get("search"),
		Sort:   service.ParseSortKey(r.URL.Query().Get("sort")),
	}

	for _, raw := range r.URL.Query()["category"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				query.Categories = append(query.Categories, name)
			}
		}
	}

	restaurants, err := h.discovery.Search(r.Context(), actorFromRequest(r), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	params := pagination.FromRequest(r)
	page := pagination.Slice(restaurants, params)

	httputil.WriteJSON(w, http.StatusOK, pagination.NewResult(page, len(restaurants), params))
}

// Get handles GET /api/v1/restaurants/{id}
func (h *RestaurantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	restaurant, err := h.catalog.GetRestaurant(r.Context(), actorFromRequest(r), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: restaurant})
}

// Create handles POST /api/v1/restaurants
func (h *RestaurantHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	restaurant, err := h.catalog.CreateRestaurant(r.Context(), actorFromRequest(r), service.RestaurantInput{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: restaurant})
}

// Update handles PUT /api/v1/restaurants/{id}
func (h *RestaurantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RestaurantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	restaurant, err := h.catalog.UpdateRestaurant(r.Context(), actorFromRequest(r), id.String(), service.RestaurantInput{
		Name:     req.Name,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: restaurant})
}

// Delete handles DELETE /api/v1/restaurants/{id}
func (h *RestaurantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.catalog.DeleteRestaurant(r.Context(), actorFromRequest(r), id.String()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": id.String(), "status": "deleted"}})
}

// Rate handles POST /api/v1/restaurants/{id}/rating
// Rating twice replaces the previous score instead of adding a second one.
func (h *RestaurantHandler) Rate(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	rating, err := h.ratings.Rate(r.Context(), actorFromRequest(r), id.String(), req.Score)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: rating})
}

// MyRating handles GET /api/v1/restaurants/{id}/rating
// Returns the caller's own rating, or null when they have not rated yet.
func (h *RestaurantHandler) MyRating(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseUUID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	rating, err := h.ratings.MyRating(r.Context(), actorFromRequest(r), id.String())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: rating})
}
