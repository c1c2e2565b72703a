package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/paratus/tasks/docs"
	httpHandlers "github.com/paratus/tasks/internal/adapters/http"
	"github.com/paratus/tasks/internal/adapters/repository"
	"github.com/paratus/tasks/internal/application/invalidation"
	"github.com/paratus/tasks/internal/application/services"
	"github.com/paratus/tasks/internal/infrastructure/config"
	"github.com/paratus/tasks/internal/infrastructure/database"
	"github.com/paratus/tasks/internal/infrastructure/logger"
	"github.com/paratus/tasks/internal/infrastructure/metrics"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	metrics *metrics.Metrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Option customizes a server before routes are registered.
type Option func(*options)

type options struct {
	clock services.Clock
}

// WithClock replaces the wall clock used by the computed views.
func WithClock(clock services.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger, opts ...Option) (*Server, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	location, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}
	if cfg.Metrics.Enabled {
		server.metrics = metrics.New()
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	hooks := services.Hooks{
		Invalidations: invalidation.NewTable(),
		Metrics:       server.metrics,
		Logger:        appLogger,
	}
	collectionService := services.NewCollectionService(repos.Collections, hooks)
	sectionService := services.NewSectionService(repos.Sections, hooks)
	taskService := services.NewTaskService(repos.Tasks, repos.Sections, repos.Comments, repos.ChecklistItems, hooks)
	viewService := services.NewViewService(repos.Tasks, o.clock, location, appLogger)
	commentService := services.NewCommentService(repos.Comments, hooks)
	checklistService := services.NewChecklistService(repos.ChecklistItems, hooks)

	// Initialize handlers
	handlers := routeHandlers{
		collections: httpHandlers.NewCollectionHandler(collectionService, appLogger),
		sections:    httpHandlers.NewSectionHandler(sectionService, appLogger),
		tasks:       httpHandlers.NewTaskHandler(taskService, viewService, appLogger),
		comments:    httpHandlers.NewCommentHandler(commentService, appLogger),
		checklist:   httpHandlers.NewChecklistHandler(checklistService, appLogger),
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup metrics
	if server.metrics != nil {
		server.setupMetrics()
	}

	// Setup routes
	server.setupRoutes(handlers)

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			s.logger.WithRequestID(values.RequestID).LogHTTPRequest(values.Method, values.URI, values.UserAgent, values.RemoteIP,
				values.Status, float64(values.Latency.Nanoseconds())/1000000)
			if values.Error != nil {
				s.logger.Debugw("HTTP request error", "uri", values.URI, "error", values.Error.Error())
			}
			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods:  []string{echo.GET, echo.HEAD, echo.PUT, echo.POST, echo.DELETE},
		ExposeHeaders: []string{invalidation.HeaderName},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(s.config.Security.RateLimitRequests),
				Burst:     s.config.Security.RateLimitRequests,
				ExpiresIn: s.config.Security.RateLimitWindow,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, httpHandlers.ErrorResponse{Message: "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, httpHandlers.ErrorResponse{Message: "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Invalidation header
	s.echo.Use(s.invalidationMiddleware())

	// Timeout middleware
	timeout := s.config.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: timeout,
	}))
}

type routeHandlers struct {
	collections *httpHandlers.CollectionHandler
	sections    *httpHandlers.SectionHandler
	tasks       *httpHandlers.TaskHandler
	comments    *httpHandlers.CommentHandler
	checklist   *httpHandlers.ChecklistHandler
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(h routeHandlers) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	if !s.config.App.IsProduction() {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	collections := v1.Group("/collections")
	collections.GET("", h.collections.ListCollections)
	collections.POST("", h.collections.CreateCollection)
	collections.GET("/inbox", h.collections.GetInbox)
	collections.POST("/initialize", h.collections.InitializeCollections)
	collections.PUT("/reorder", h.collections.ReorderCollections)
	collections.GET("/:id", h.collections.GetCollection)
	collections.PUT("/:id", h.collections.UpdateCollection)
	collections.DELETE("/:id", h.collections.DeleteCollection)

	sections := v1.Group("/sections")
	sections.POST("", h.sections.CreateSection)
	sections.PUT("/reorder", h.sections.ReorderSections)
	sections.PUT("/:id", h.sections.UpdateSection)
	sections.DELETE("/:id", h.sections.DeleteSection)

	tasks := v1.Group("/tasks")
	tasks.GET("/today", h.tasks.Today)
	tasks.GET("/upcoming", h.tasks.Upcoming)
	tasks.POST("", h.tasks.CreateTask)
	tasks.PUT("/reorder", h.tasks.ReorderTasks)
	tasks.GET("/:id", h.tasks.GetTask)
	tasks.PUT("/:id", h.tasks.UpdateTask)
	tasks.DELETE("/:id", h.tasks.DeleteTask)

	comments := v1.Group("/comments")
	comments.POST("", h.comments.CreateComment)
	comments.PUT("/:id", h.comments.UpdateComment)
	comments.DELETE("/:id", h.comments.DeleteComment)

	checklist := v1.Group("/checklist-items")
	checklist.POST("", h.checklist.CreateChecklistItem)
	checklist.PUT("/reorder", h.checklist.ReorderChecklistItems)
	checklist.PUT("/:id", h.checklist.UpdateChecklistItem)
	checklist.DELETE("/:id", h.checklist.DeleteChecklistItem)

	v1.GET("/dates/quick-picks", h.tasks.QuickPicks)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metrics.Middleware())
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  runtime.Version(),
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.HealthCheck(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		var he *echo.HTTPError
		var ve validator.ValidationErrors
		switch {
		case errors.As(err, &he):
			code = he.Code
			msg = httpHandlers.ErrorResponse{Message: fmt.Sprint(he.Message)}
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		case errors.As(err, &ve):
			code = http.StatusBadRequest
			msg = httpHandlers.ErrorResponse{Message: "validation failed", Details: ve.Error()}
		default:
			code = httpHandlers.StatusFor(err)
			msg = httpHandlers.ErrorResponse{Message: http.StatusText(code)}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Server error", "error", err, "path", c.Request().URL.Path, "status", code)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}
