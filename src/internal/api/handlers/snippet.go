package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/errors"
	"github.com/snipsterapp/snipster/src/internal/services"
)

// SnippetHandler handles snippet CRUD and tagging endpoints
type SnippetHandler struct {
	snippets *services.SnippetService
}

// NewSnippetHandler creates a new snippet handler
func NewSnippetHandler(snippets *services.SnippetService) *SnippetHandler {
	return &SnippetHandler{snippets: snippets}
}

// RegisterRoutes wires snippet routes into the given group
func (h *SnippetHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/snippets", h.Create)
	g.GET("/snippets", h.List)
	g.GET("/snippets/:id", h.Get)
	g.PATCH("/snippets/:id", h.Update)
	g.DELETE("/snippets/:id", h.Delete)
	g.POST("/snippets/:id/favorite", h.ToggleFavorite)
	g.GET("/snippets/:id/tags", h.GetTags)
	g.POST("/snippets/:id/tags", h.AddTag)
	g.DELETE("/snippets/:id/tags/:tag", h.RemoveTag)
}

// CreateSnippetRequest represents a snippet creation request
type CreateSnippetRequest struct {
	Title       string   `json:"title" validate:"required"`
	Code        string   `json:"code" validate:"required"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Favorite    bool     `json:"favorite"`
	Tags        []string `json:"tags"`
}

// UpdateSnippetRequest represents a partial snippet update request
type UpdateSnippetRequest struct {
	Title       *string `json:"title"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	Favorite    *bool   `json:"favorite"`
}

// AddTagRequest represents a tag attach request
type AddTagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

// Create creates a new snippet
func (h *SnippetHandler) Create(c echo.Context) error {
	var req CreateSnippetRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	snippet, err := h.snippets.Create(services.CreateSnippetInput{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		Language:    req.Language,
		Favorite:    req.Favorite,
		Tags:        req.Tags,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, snippet)
}

// List returns snippets ordered by creation time descending
func (h *SnippetHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	snippets, err := h.snippets.List(limit, offset)
	if err != nil {
		return err
	}
	if snippets == nil {
		snippets = []models.Snippet{}
	}

	return c.JSON(http.StatusOK, snippets)
}

// Get returns a snippet by id
func (h *SnippetHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	snippet, err := h.snippets.Get(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, snippet)
}

// Update applies a partial update to a snippet
func (h *SnippetHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req UpdateSnippetRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("invalid request body")
	}

	snippet, err := h.snippets.Update(id, services.UpdateSnippetInput{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		Language:    req.Language,
		Favorite:    req.Favorite,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, snippet)
}

// Delete removes a snippet and its tag associations
func (h *SnippetHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.snippets.Delete(id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "snippet " + c.Param("id") + " deleted",
	})
}

// ToggleFavorite flips the favorite flag on a snippet
func (h *SnippetHandler) ToggleFavorite(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	favorite, err := h.snippets.ToggleFavorite(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":       id,
		"favorite": favorite,
	})
}

// GetTags returns a snippet's tag names
func (h *SnippetHandler) GetTags(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	tags, err := h.snippets.TagsFor(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":   id,
		"tags": tags,
	})
}

// AddTag attaches a tag to a snippet
func (h *SnippetHandler) AddTag(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req AddTagRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.snippets.Attach(id, req.Tag); err != nil {
		return err
	}

	tags, err := h.snippets.TagsFor(id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":   id,
		"tags": tags,
	})
}

// RemoveTag detaches a tag from a snippet
func (h *SnippetHandler) RemoveTag(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.snippets.Detach(id, c.Param("tag")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "tag '" + c.Param("tag") + "' removed from snippet " + c.Param("id"),
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Validation("invalid snippet id")
	}
	return uint(id), nil
}
