package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cristiarazvan/gogogo/internal/assistant"
	"github.com/cristiarazvan/gogogo/internal/auth"
	"github.com/cristiarazvan/gogogo/internal/config"
	"github.com/cristiarazvan/gogogo/internal/event"
	handler "github.com/cristiarazvan/gogogo/internal/handler/http"
	"github.com/cristiarazvan/gogogo/internal/repository/postgres"
	"github.com/cristiarazvan/gogogo/internal/service"
	"github.com/cristiarazvan/gogogo/internal/storage/local"
	"github.com/cristiarazvan/gogogo/migrations"
	"github.com/cristiarazvan/gogogo/pkg/database"
	"github.com/cristiarazvan/gogogo/pkg/health"
	"github.com/cristiarazvan/gogogo/pkg/httpclient"
	"github.com/cristiarazvan/gogogo/pkg/middleware"
	"github.com/cristiarazvan/gogogo/pkg/tracing"
)

// App wires together all dependencies and runs the GoGoGo server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	producer       *event.Producer
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "gogogo",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     cfg.TracingSample,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pgCfg := database.DefaultPostgresConfig()
	pgCfg.Host = cfg.PostgresHost
	pgCfg.Port = cfg.PostgresPort
	pgCfg.User = cfg.PostgresUser
	pgCfg.Password = cfg.PostgresPass
	pgCfg.DBName = cfg.PostgresDB
	pgCfg.SSLMode = cfg.PostgresSSL

	pool, err := database.NewPostgresPool(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, migrations.FS, ".", logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("database migrations completed")

	// Redis-backed listing cache. The server runs without it when Redis is
	// disabled; services fall back to loading from Postgres on every browse.
	var listingCache *service.ListingCache
	if cfg.RedisEnabled {
		redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		listingCache = service.NewListingCache(redisClient, cfg.CacheTTL)
		logger.Info("listing cache enabled",
			slog.String("addr", fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort)),
			slog.Duration("ttl", cfg.CacheTTL),
		)
	}

	// Kafka producer for domain events.
	var (
		producer      *event.Producer
		eventProducer service.EventProducer
	)
	if cfg.KafkaEnabled {
		producer = event.NewProducer(event.DefaultProducerConfig(cfg.KafkaBrokers, cfg.KafkaTopic), logger)
		eventProducer = producer
		logger.Info("kafka producer initialized",
			slog.Any("brokers", cfg.KafkaBrokers),
			slog.String("topic", cfg.KafkaTopic),
		)
	} else {
		eventProducer = event.NewNoopProducer(logger)
	}

	// Build the dependency graph.
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)

	userRepo := postgres.NewUserRepository(pool)
	restaurantRepo := postgres.NewRestaurantRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	ratingRepo := postgres.NewRatingRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	imageStore, err := local.New(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init image storage: %w", err)
	}

	cartService := service.NewCartService(cartRepo, productRepo)

	svcs := handler.Services{
		Discovery: service.NewDiscoveryService(restaurantRepo, categoryRepo, listingCache, logger),
		Catalog:   service.NewCatalogService(restaurantRepo, productRepo, categoryRepo, listingCache, logger),
		Ratings:   service.NewRatingService(ratingRepo, restaurantRepo, listingCache, logger),
		Reviews:   service.NewReviewService(reviewRepo, productRepo),
		Carts:     cartService,
		Favorites: service.NewFavoriteService(favoriteRepo, productRepo, cartService),
		Orders:    service.NewOrderService(orderRepo, cartRepo, eventProducer, logger),
		Users:     service.NewUserService(userRepo, jwtManager, logger),
		Approvals: service.NewApprovalService(restaurantRepo, productRepo, eventProducer, listingCache, logger),
		Assistant: newAssistantService(cfg, productRepo, restaurantRepo, categoryRepo, reviewRepo, logger),
		Media:     service.NewMediaService(imageStore),
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if producer != nil {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return producer.Ping(ctx)
		})
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(svcs, jwtManager, healthHandler, logger, handler.RouterConfig{
		CORS:           corsCfg,
		TracingEnabled: cfg.TracingEnabled,
		StaticDir:      cfg.StorageDir,
	})

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		producer:       producer,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// newAssistantService builds the product assistant. Without an API key the
// service still answers, with a fixed "not configured" message.
func newAssistantService(
	cfg *config.Config,
	products *postgres.ProductRepository,
	restaurants *postgres.RestaurantRepository,
	categories *postgres.CategoryRepository,
	reviews *postgres.ReviewRepository,
	logger *slog.Logger,
) *service.AssistantService {
	var generator service.Generator
	if cfg.GeminiAPIKey != "" {
		httpClient := httpclient.New(httpclient.DefaultConfig())
		cbClient := httpclient.NewCircuitBreakerClient(httpClient, httpclient.DefaultCircuitBreakerConfig("gemini"), logger)
		generator = assistant.NewGeminiClient(assistant.Config{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		}, cbClient, logger)
		logger.Info("gemini assistant enabled", slog.String("model", cfg.GeminiModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set, assistant runs unconfigured")
	}

	faqData := "{}"
	if raw, err := os.ReadFile(cfg.FAQDataPath); err == nil {
		faqData = string(raw)
	} else {
		logger.Warn("FAQ data not loaded", slog.String("path", cfg.FAQDataPath), slog.String("error", err.Error()))
	}

	return service.NewAssistantService(generator, products, restaurants, categories, reviews, faqData, logger)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in the correct order:
// 1. HTTP server (drain in-flight requests)
// 2. Tracer (flush pending spans from drained requests)
// 3. Kafka producer
// 4. PostgreSQL pool
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// 1. Drain in-flight HTTP requests.
	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// 2. Flush pending spans after HTTP drain so in-flight request spans are captured.
	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 3. Close Kafka producer.
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	// 4. Close PostgreSQL pool.
	a.pool.Close()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
