package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/services"
)

// SearchHandler handles snippet search endpoints
type SearchHandler struct {
	search *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// RegisterRoutes wires search routes into the given group
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/snippets/search", h.Search)
}

// Search filters snippets by text, tag, language and favorite flag.
// Nothing matching is an empty list, not an error.
func (h *SearchHandler) Search(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	favorite, _ := strconv.ParseBool(c.QueryParam("favorite"))

	snippets, err := h.search.Search(services.SearchOptions{
		Text:         c.QueryParam("q"),
		Tag:          c.QueryParam("tag"),
		Language:     c.QueryParam("language"),
		FavoriteOnly: favorite,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return err
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}

	return c.JSON(http.StatusOK, snippets)
}
