package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snipsterapp/snipster/src/internal/errors"
	"github.com/snipsterapp/snipster/src/internal/execute"
	"github.com/snipsterapp/snipster/src/internal/gist"
	"github.com/snipsterapp/snipster/src/internal/image"
	"github.com/snipsterapp/snipster/src/internal/services"
)

// ShareHandler handles the endpoints backed by external collaborators:
// code execution, gist hosting and image rendering.
type ShareHandler struct {
	snippets *services.SnippetService
	executor *execute.Client
	gists    *gist.Client
	images   *image.Client
}

// NewShareHandler creates a new share handler
func NewShareHandler(snippets *services.SnippetService, executor *execute.Client, gists *gist.Client, images *image.Client) *ShareHandler {
	return &ShareHandler{
		snippets: snippets,
		executor: executor,
		gists:    gists,
		images:   images,
	}
}

// RegisterRoutes wires collaborator-backed routes into the given group
func (h *ShareHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/snippets/:id/run", h.Run)
	g.POST("/snippets/:id/gist", h.CreateGist)
	g.POST("/snippets/:id/image", h.CreateImage)
}

// RunRequest represents a code execution request
type RunRequest struct {
	Version string `json:"version"`
	Stdin   string `json:"stdin"`
}

// CreateGistRequest represents a gist creation request
type CreateGistRequest struct {
	Public      bool   `json:"public"`
	Description string `json:"description"`
}

// Run executes a snippet via the code-execution collaborator
func (h *ShareHandler) Run(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("invalid request body")
	}

	snippet, err := h.snippets.Get(id)
	if err != nil {
		return err
	}

	result, err := h.executor.Run(c.Request().Context(), execute.Request{
		Language: snippet.Language,
		Version:  req.Version,
		Code:     snippet.Code,
		Stdin:    req.Stdin,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// CreateGist publishes a snippet via the gist-hosting collaborator
func (h *ShareHandler) CreateGist(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req CreateGistRequest
	if err := c.Bind(&req); err != nil {
		return errors.Validation("invalid request body")
	}

	snippet, err := h.snippets.Get(id)
	if err != nil {
		return err
	}

	description := req.Description
	if description == "" {
		description = "Code snippet: " + snippet.Title
	}

	url, err := h.gists.Create(c.Request().Context(), gist.CreateInput{
		Filename:    gist.FilenameFor(snippet.Title, snippet.Language),
		Content:     snippet.Code,
		Description: description,
		Public:      req.Public,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}

// CreateImage renders a snippet as a PNG via the image collaborator
func (h *ShareHandler) CreateImage(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	snippet, err := h.snippets.Get(id)
	if err != nil {
		return err
	}

	png, err := h.images.Render(c.Request().Context(), snippet.Code, snippet.Language)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
