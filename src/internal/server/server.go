package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/snipsterapp/snipster/src/internal/errors"
	"github.com/snipsterapp/snipster/src/internal/execute"
	"github.com/snipsterapp/snipster/src/internal/gist"
	"github.com/snipsterapp/snipster/src/internal/image"
	"github.com/snipsterapp/snipster/src/internal/services"
)

// Server represents the snipster HTTP server: REST API plus web GUI.
type Server struct {
	echo      *echo.Echo
	config    *viper.Viper
	db        *gorm.DB
	logger    *slog.Logger
	snippets  *services.SnippetService
	search    *services.SearchService
	executor  *execute.Client
	gists     *gist.Client
	images    *image.Client
	startTime time.Time
}

// New creates a new server instance
func New(e *echo.Echo, cfg *viper.Viper, db *gorm.DB, logger *slog.Logger) (*Server, error) {
	s := &Server{
		echo:      e,
		config:    cfg,
		db:        db,
		logger:    logger,
		snippets:  services.NewSnippetService(db),
		search:    services.NewSearchService(db),
		executor:  execute.NewClient(cfg),
		gists:     gist.NewClient(cfg),
		images:    image.NewClient(cfg),
		startTime: time.Now(),
	}

	e.Validator = NewEchoValidator()
	e.HTTPErrorHandler = errors.NewErrorHandler(logger).HTTPErrorHandler

	renderer, err := NewTemplateRenderer(templateAssets())
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	s.setupMiddleware()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("server listening", "address", address)
	if err := s.echo.Start(address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleHealthz reports service health
func (s *Server) handleHealthz(c echo.Context) error {
	status := "ok"
	if sqlDB, err := s.db.DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": status,
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}
