// Package http provides the HTTP server, its middleware chain and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/devdox-ai/devdox-api/internal/auth/http"
	authService "github.com/devdox-ai/devdox-api/internal/auth/service"
	"github.com/devdox-ai/devdox-api/internal/config"
	gitTokenHTTP "github.com/devdox-ai/devdox-api/internal/gittoken/http"
	"github.com/devdox-ai/devdox-api/internal/httputil"
	"github.com/devdox-ai/devdox-api/internal/metrics"
	versionHTTP "github.com/devdox-ai/devdox-api/internal/version/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the HTTP server.
type Server struct {
	db          *sql.DB
	logger      *slog.Logger
	router      *gin.Engine
	server      *http.Server
	rateLimiter *rateLimiter
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine. meterProvider may be nil when metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	tokenVerifier authService.TokenVerifier,
	gitTokenHandler *gitTokenHTTP.GitTokenHandler,
	versionHandler *versionHTTP.VersionHandler,
	meterProvider metric.MeterProvider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.CustomRecovery(s.recoveryHandler))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(SecurityHeadersMiddleware(cfg.IsProduction()))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, cfg.MetricsNamespace))
	}

	router.Use(BodyLimitMiddleware(cfg.MaxRequestBodyBytes))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")
	if cfg.RateLimitEnabled {
		s.rateLimiter = newRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitBurst, s.logger)
		api.Use(s.rateLimiter.Middleware())
	}

	authenticated := api.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(tokenVerifier, cfg.IsTest(), s.logger))

	versionHandler.RegisterRoutes(api, authenticated)
	gitTokenHandler.RegisterRoutes(authenticated)

	router.NoRoute(notFoundHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server and stops background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Service is healthy",
	})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		s.notReady(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		s.notReady(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}

func (s *Server) notReady(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":     "not_ready",
		"components": gin.H{"database": "error"},
	})
}

func (s *Server) recoveryHandler(c *gin.Context, recovered any) {
	s.logger.Error("panic recovered",
		slog.Any("error", recovered),
		slog.String("path", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
	)
	httputil.Error(c, http.StatusInternalServerError, "internal_error", "An internal error occurred", nil)
}

func notFoundHandler(c *gin.Context) {
	httputil.Error(c, http.StatusNotFound, "", fmt.Sprintf("Can't find %s on this server!", c.Request.URL.Path), nil)
}
