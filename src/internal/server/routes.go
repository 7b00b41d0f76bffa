package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipsterapp/snipster/src/internal/api/handlers"
	apimiddleware "github.com/snipsterapp/snipster/src/internal/api/middleware"
)

// setupRoutes configures all application routes
func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/healthz", s.handleHealthz)

	// Static assets
	s.echo.StaticFS("/static", staticAssets())

	// API v1 routes, rate limited
	apiV1 := s.echo.Group("/api/v1", apimiddleware.RateLimit(s.config))

	snippetHandler := handlers.NewSnippetHandler(s.snippets)
	snippetHandler.RegisterRoutes(apiV1)

	searchHandler := handlers.NewSearchHandler(s.search)
	searchHandler.RegisterRoutes(apiV1)

	shareHandler := handlers.NewShareHandler(s.snippets, s.executor, s.gists, s.images)
	shareHandler.RegisterRoutes(apiV1)

	// Web GUI routes
	s.echo.GET("/", s.handleIndexPage)
	s.echo.GET("/snippets/new", s.handleNewPage)
	s.echo.POST("/snippets", s.handleCreateForm)
	s.echo.GET("/snippets/:id", s.handleViewPage)
	s.echo.GET("/snippets/:id/edit", s.handleEditPage)
	s.echo.POST("/snippets/:id/edit", s.handleEditForm)
	s.echo.POST("/snippets/:id/delete", s.handleDeleteForm)
	s.echo.POST("/snippets/:id/favorite", s.handleFavoriteForm)
	s.echo.POST("/snippets/:id/tags", s.handleAddTagForm)
	s.echo.POST("/snippets/:id/tags/remove", s.handleRemoveTagForm)
	s.echo.POST("/snippets/:id/run", s.handleRunForm)

	s.echo.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "page not found")
	})
}
