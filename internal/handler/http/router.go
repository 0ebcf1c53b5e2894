package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cristiarazvan/gogogo/internal/auth"
	"github.com/cristiarazvan/gogogo/internal/service"
	"github.com/cristiarazvan/gogogo/pkg/health"
	"github.com/cristiarazvan/gogogo/pkg/middleware"
)

// Services bundles everything the router serves.
type Services struct {
	Discovery *service.DiscoveryService
	Catalog   *service.CatalogService
	Ratings   *service.RatingService
	Reviews   *service.ReviewService
	Carts     *service.CartService
	Favorites *service.FavoriteService
	Orders    *service.OrderService
	Users     *service.UserService
	Approvals *service.ApprovalService
	Assistant *service.AssistantService
	Media     *service.MediaService
}

// RouterConfig holds router-level settings.
type RouterConfig struct {
	CORS           middleware.CORSConfig
	TracingEnabled bool
	StaticDir      string
}

// NewRouter creates a chi router with all routes registered.
func NewRouter(
	svcs Services,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics())
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing("gogogo"))
	}

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Uploaded images
	if cfg.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}

	// Token validator bridging to the internal JWTManager.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(svcs.Users, logger)
	restaurantHandler := NewRestaurantHandler(svcs.Discovery, svcs.Catalog, svcs.Ratings, logger)
	productHandler := NewProductHandler(svcs.Catalog, svcs.Reviews, svcs.Assistant, logger)
	categoryHandler := NewCategoryHandler(svcs.Catalog, logger)
	cartHandler := NewCartHandler(svcs.Carts, logger)
	favoriteHandler := NewFavoriteHandler(svcs.Favorites, logger)
	orderHandler := NewOrderHandler(svcs.Orders, logger)
	adminHandler := NewAdminHandler(svcs.Approvals, svcs.Users, logger)
	mediaHandler := NewMediaHandler(svcs.Media, logger)

	// Auth endpoints (public)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.Refresh)
	})

	// Browse endpoints. Anonymous works; a token changes what is visible,
	// so the listing can surface the caller's own pending restaurants.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(tokenValidator))

		r.Get("/api/v1/restaurants", restaurantHandler.Browse)
		r.Get("/api/v1/restaurants/{id}", restaurantHandler.Get)
		r.Get("/api/v1/products/{id}", productHandler.Get)
		r.Get("/api/v1/products/{id}/reviews", productHandler.ListReviews)
		r.Get("/api/v1/categories", categoryHandler.List)

		r.With(ContentTypeJSON).Post("/api/v1/products/{id}/chat", productHandler.Chat)
	})

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/api/v1/restaurants", restaurantHandler.Create)
			r.Put("/api/v1/restaurants/{id}", restaurantHandler.Update)
			r.Post("/api/v1/restaurants/{id}/rating", restaurantHandler.Rate)

			r.Post("/api/v1/products", productHandler.Create)
			r.Put("/api/v1/products/{id}", productHandler.Update)
			r.Post("/api/v1/products/{id}/reviews", productHandler.PostReview)

			r.Post("/api/v1/categories", categoryHandler.Create)

			r.Post("/api/v1/cart/items", cartHandler.AddItem)
			r.Put("/api/v1/cart/items/{productId}", cartHandler.UpdateItem)
		})

		r.Delete("/api/v1/restaurants/{id}", restaurantHandler.Delete)
		r.Get("/api/v1/restaurants/{id}/rating", restaurantHandler.MyRating)
		r.Delete("/api/v1/products/{id}", productHandler.Delete)
		r.Delete("/api/v1/categories/{id}", categoryHandler.Delete)

		r.Get("/api/v1/cart", cartHandler.Get)
		r.Delete("/api/v1/cart", cartHandler.Clear)
		r.Delete("/api/v1/cart/items/{productId}", cartHandler.RemoveItem)

		r.Get("/api/v1/favorites", favoriteHandler.List)
		r.Post("/api/v1/favorites/{productId}", favoriteHandler.Add)
		r.Delete("/api/v1/favorites/{productId}", favoriteHandler.Remove)
		r.Post("/api/v1/favorites/{productId}/toggle", favoriteHandler.Toggle)
		r.Post("/api/v1/favorites/{productId}/move-to-cart", favoriteHandler.MoveToCart)

		r.Post("/api/v1/orders/checkout", orderHandler.Checkout)
		r.Get("/api/v1/orders", orderHandler.History)
		r.Get("/api/v1/orders/{id}", orderHandler.Get)

		r.Post("/api/v1/images", mediaHandler.Upload)
	})

	// Admin endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequireRole("admin"))

		r.Get("/api/v1/admin/pending", adminHandler.PendingReview)
		r.Post("/api/v1/admin/restaurants/{id}/approve", adminHandler.ApproveRestaurant)
		r.Post("/api/v1/admin/restaurants/{id}/reject", adminHandler.RejectRestaurant)
		r.Post("/api/v1/admin/products/{id}/approve", adminHandler.ApproveProduct)
		r.Post("/api/v1/admin/products/{id}/reject", adminHandler.RejectProduct)
		r.Get("/api/v1/admin/users", adminHandler.ListUsers)
	})

	return r
}
