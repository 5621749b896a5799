// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"filmgraph/internal/cache"
	"filmgraph/internal/config"
	"filmgraph/internal/database"
	"filmgraph/internal/middleware"
	"filmgraph/internal/observability"
	"filmgraph/internal/repository"
	"filmgraph/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB // nil when the in-memory backend is active
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	filmRepo       repository.FilmRepository
	userRepo       repository.UserRepository
	likeRepo       repository.LikeRepository
	friendshipRepo repository.FriendshipRepository
	genreRepo      repository.GenreRepository
	mpaRepo        repository.MpaRatingRepository

	filmService      *service.FilmService
	userService      *service.UserService
	referenceService *service.ReferenceService
}

// NewServer creates a new server instance, choosing the storage backend from
// the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	var db *gorm.DB
	if cfg.StorageBackend == config.StoragePostgres {
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
	}

	cache.Init(cfg.RedisURL, middleware.Logger)

	return NewServerWithDeps(cfg, db, cache.Client())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis. A nil db
// selects the in-memory backend.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("filmgraph-api"),
	}

	if db != nil {
		server.filmRepo = repository.NewFilmRepository(db)
		server.userRepo = repository.NewUserRepository(db)
		server.likeRepo = repository.NewLikeRepository(db)
		server.friendshipRepo = repository.NewFriendshipRepository(db)
		server.genreRepo = repository.NewGenreRepository(db)
		server.mpaRepo = repository.NewMpaRatingRepository(db)
	} else {
		likeRepo := repository.NewMemoryLikeRepository()
		friendshipRepo := repository.NewMemoryFriendshipRepository()
		genreRepo, mpaRepo, err := repository.NewMemoryReferenceRepositories()
		if err != nil {
			return nil, fmt.Errorf("failed to load reference catalog: %w", err)
		}
		server.likeRepo = likeRepo
		server.friendshipRepo = friendshipRepo
		server.filmRepo = repository.NewMemoryFilmRepository(likeRepo)
		server.userRepo = repository.NewMemoryUserRepository(likeRepo, friendshipRepo)
		server.genreRepo = genreRepo
		server.mpaRepo = mpaRepo
	}

	server.filmService = service.NewFilmService(
		server.filmRepo, server.userRepo, server.likeRepo, server.genreRepo, server.mpaRepo)
	server.userService = service.NewUserService(server.userRepo, server.friendshipRepo)
	server.referenceService = service.NewReferenceService(server.genreRepo, server.mpaRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New(requestid.Config{
		Generator: observability.GenerateCorrelationID,
	}))

	// Context Middleware to propagate Request ID and Trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry spans around every request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		MaxAge:       86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
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
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Filmgraph Metrics Dashboard",
	}))

	// Film routes
	films := app.Group("/films")
	films.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_film"), s.CreateFilm)
	films.Put("/", s.UpdateFilm)
	films.Get("/", s.GetFilms)
	// Define specific routes BEFORE generic /:id route
	films.Get("/popular", s.GetPopularFilms)
	films.Put("/:id/like/:userId", middleware.RateLimit(
		s.redis, 60, time.Minute, "like"), s.AddLike)
	films.Delete("/:id/like/:userId", s.RemoveLike)
	films.Get("/:id/likes", s.GetLikeCount)
	films.Get("/:id", s.GetFilm)
	films.Delete("/:id", s.DeleteFilm)

	// User routes
	users := app.Group("/users")
	users.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "create_user"), s.CreateUser)
	users.Put("/", s.UpdateUser)
	users.Get("/", s.GetUsers)
	// Specific friend routes before generic /:id
	users.Put("/:id/friends/:friendId/confirm", s.ConfirmFriend)
	users.Put("/:id/friends/:friendId", middleware.RateLimit(
		s.redis, 60, time.Minute, "friend_request"), s.AddFriend)
	users.Delete("/:id/friends/:friendId", s.RemoveFriend)
	users.Get("/:id/friends/common/:otherId", s.GetCommonFriends)
	users.Get("/:id/friends", s.GetFriends)
	users.Get("/:id", s.GetUser)
	users.Delete("/:id", s.DeleteUser)

	// Reference catalog routes
	genres := app.Group("/genres")
	genres.Get("/", s.GetGenres)
	genres.Get("/:id", s.GetGenre)

	mpa := app.Group("/mpa")
	mpa.Get("/", s.GetMpaRatings)
	mpa.Get("/:id", s.GetMpaRating)
}

// Shutdown releases server resources: database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				return err
			}
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			return err
		}
	}
	return nil
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
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	status := fiber.StatusOK
	dbStatus := "memory"
	if s.db != nil {
		dbStatus = "healthy"
		sqlDB, err := s.db.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
		if dbStatus == "unhealthy" {
			status = fiber.StatusServiceUnavailable
		}
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			// The cache is optional; readiness does not fail without it.
			redisStatus = "unhealthy"
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now(),
	})
}
