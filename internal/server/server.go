// Package server contains the HTTP handlers for the content workflow API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "trendsmith/docs" // swagger docs
	"trendsmith/internal/bootstrap"
	"trendsmith/internal/cache"
	"trendsmith/internal/config"
	"trendsmith/internal/featureflags"
	"trendsmith/internal/middleware"
	"trendsmith/internal/models"
	"trendsmith/internal/observability"
	"trendsmith/internal/repository"
	"trendsmith/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the already-initialized dependencies of a Server.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Searcher  service.ContentSearcher
	Analyzer  service.StyleAnalyzer
	Composer  service.PostComposer
	Publisher service.Publisher
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	flags          *featureflags.Manager

	trendService   *service.TrendService
	scrapeService  *service.ScrapeService
	styleService   *service.StyleService
	composeService *service.ComposeService
	postService    *service.PostService
	publishService *service.PublishService
}

// NewServer connects to the database and Redis and builds the external
// service clients from cfg.
func NewServer(cfg *config.Config) (*Server, error) {
	db, rdb, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	clients := bootstrap.NewClients(cfg)

	return NewServerWithDeps(cfg, Deps{
		DB:        db,
		Redis:     rdb,
		Searcher:  clients.Search,
		Analyzer:  clients.LLM,
		Composer:  clients.LLM,
		Publisher: clients.Publisher,
	})
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, deps Deps) (*Server, error) {
	if deps.DB == nil {
		return nil, fmt.Errorf("server requires a database")
	}

	trendRepo := repository.NewTrendRepository(deps.DB)
	scrapedRepo := repository.NewScrapedPostRepository(deps.DB)
	cardRepo := repository.NewStyleCardRepository(deps.DB)
	postRepo := repository.NewPostRepository(deps.DB)
	trendCache := cache.New(deps.Redis)

	return &Server{
		config:         cfg,
		db:             deps.DB,
		redis:          deps.Redis,
		promMiddleware: middleware.InitMetrics("trendsmith-api"),
		flags:          featureflags.NewManager(cfg.FeatureFlags),

		trendService:   service.NewTrendService(trendRepo, cardRepo, trendCache),
		scrapeService:  service.NewScrapeService(trendRepo, scrapedRepo, deps.Searcher, trendCache),
		styleService:   service.NewStyleService(trendRepo, scrapedRepo, cardRepo, deps.Analyzer, trendCache),
		composeService: service.NewComposeService(trendRepo, scrapedRepo, cardRepo, postRepo, deps.Composer, trendCache),
		postService:    service.NewPostService(postRepo, trendCache),
		publishService: service.NewPublishService(postRepo, deps.Publisher, trendCache),
	}, nil
}

// App builds the Fiber application with middleware and routes.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	app := fiber.New(fiber.Config{
		AppName:   "trendsmith API",
		BodyLimit: 1 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message, Code: codeForStatus(fe.Code)})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Context Middleware to propagate request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Mutating routes require an operator token when OPERATOR_TOKEN_SECRET is set.
	api.Use(middleware.OperatorAuth(s.config.OperatorTokenSecret))

	api.Get("/features", s.ListFeatures)

	trends := api.Group("/trends")
	trends.Get("/", s.ListTrends)
	trends.Post("/", s.CreateTrend)
	trends.Get("/:id", s.GetTrend)
	trends.Delete("/:id", s.DeleteTrend)

	scrape := api.Group("/scrape")
	scrape.Post("/", s.requireStage(featureflags.Scrape), middleware.RateLimit(s.redis, 10, time.Minute, "scrape"), s.Scrape)
	scrape.Get("/:trendId", s.ListScraped)

	// LLM-backed routes share one budget.
	style := api.Group("/style")
	style.Post("/analyze", s.requireStage(featureflags.Analyze), middleware.RateLimit(s.redis, 20, time.Minute, "llm"), s.AnalyzeStyle)
	// Specific /:id/regenerate before generic /:id
	style.Post("/:id/regenerate", s.requireStage(featureflags.Analyze), middleware.RateLimit(s.redis, 20, time.Minute, "llm"), s.RegenerateStyle)
	style.Put("/:id", s.UpdateStyleCard)

	compose := api.Group("/compose")
	compose.Post("/", s.requireStage(featureflags.Compose), middleware.RateLimit(s.redis, 20, time.Minute, "llm"), s.Compose)
	compose.Put("/:id", s.UpdatePost)

	api.Get("/queue", s.ListQueue)

	// Publishing is never retried, so refuse it outright when the limiter is unavailable.
	api.Post("/publish/:id", s.requireStage(featureflags.Publish), middleware.RateLimitWithPolicy(s.redis, 10, time.Minute, middleware.FailClosed, "publish"), s.Publish)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis only backs the cache and rate limits, so its absence degrades but does not fail readiness.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"disabledStages": s.flags.Disabled(),
		"time": time.Now(),
	})
}

// Start serves the app on the configured port.
func (s *Server) Start() error {
	app := s.App()
	observability.Log().Info("server starting",
		slog.String("port", s.config.Port),
		slog.Any("disabled_stages", s.flags.Disabled()),
	)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			observability.Log().Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			observability.Log().Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			observability.Log().Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	observability.Log().Info("server shutdown complete")
	return nil
}
