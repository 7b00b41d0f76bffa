package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/errors"
	"github.com/snipsterapp/snipster/src/internal/execute"
	"github.com/snipsterapp/snipster/src/internal/services"
)

// indexPageData backs the list/search page
type indexPageData struct {
	Snippets []models.Snippet
	Query    string
	Tag      string
	Language string
	Favorite bool
	Filtered bool
}

// viewPageData backs the snippet detail page
type viewPageData struct {
	Snippet   *models.Snippet
	Tags      []string
	RunResult *execute.Result
	RunError  string
}

// formPageData backs the new/edit forms
type formPageData struct {
	Snippet *models.Snippet
	Error   string
}

func (s *Server) handleIndexPage(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	tag := strings.TrimSpace(c.QueryParam("tag"))
	language := strings.TrimSpace(c.QueryParam("language"))
	favorite, _ := strconv.ParseBool(c.QueryParam("favorite"))
	filtered := query != "" || tag != "" || language != "" || favorite

	var snippets []models.Snippet
	var err error
	if filtered {
		snippets, err = s.search.Search(services.SearchOptions{
			Text:         query,
			Tag:          tag,
			Language:     language,
			FavoriteOnly: favorite,
		})
	} else {
		snippets, err = s.snippets.List(50, 0)
	}
	if err != nil {
		return err
	}

	return c.Render(http.StatusOK, "index.html", indexPageData{
		Snippets: snippets,
		Query:    query,
		Tag:      tag,
		Language: language,
		Favorite: favorite,
		Filtered: filtered,
	})
}

func (s *Server) handleNewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "new.html", formPageData{})
}

func (s *Server) handleCreateForm(c echo.Context) error {
	input := services.CreateSnippetInput{
		Title:       c.FormValue("title"),
		Code:        c.FormValue("code"),
		Description: c.FormValue("description"),
		Language:    c.FormValue("language"),
		Favorite:    c.FormValue("favorite") == "on",
		Tags:        splitTags(c.FormValue("tags")),
	}

	snippet, err := s.snippets.Create(input)
	if err != nil {
		if errors.IsValidation(err) {
			return c.Render(http.StatusBadRequest, "new.html", formPageData{Error: err.Error()})
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/snippets/%d", snippet.ID))
}

func (s *Server) handleViewPage(c echo.Context) error {
	snippet, tags, err := s.loadSnippetPage(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "view.html", viewPageData{Snippet: snippet, Tags: tags})
}

func (s *Server) handleEditPage(c echo.Context) error {
	snippet, _, err := s.loadSnippetPage(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "edit.html", formPageData{Snippet: snippet})
}

func (s *Server) handleEditForm(c echo.Context) error {
	id, err := parsePageID(c)
	if err != nil {
		return err
	}

	title := c.FormValue("title")
	code := c.FormValue("code")
	description := c.FormValue("description")
	language := c.FormValue("language")
	favorite := c.FormValue("favorite") == "on"

	snippet, err := s.snippets.Update(id, services.UpdateSnippetInput{
		Title:       &title,
		Code:        &code,
		Description: &description,
		Language:    &language,
		Favorite:    &favorite,
	})
	if err != nil {
		if errors.IsValidation(err) {
			previous, getErr := s.snippets.Get(id)
			if getErr != nil {
				return getErr
			}
			return c.Render(http.StatusBadRequest, "edit.html", formPageData{
				Snippet: previous,
				Error:   err.Error(),
			})
		}
		return err
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/snippets/%d", snippet.ID))
}

func (s *Server) handleDeleteForm(c echo.Context) error {
	id, err := parsePageID(c)
	if err != nil {
		return err
	}
	if err := s.snippets.Delete(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleFavoriteForm(c echo.Context) error {
	id, err := parsePageID(c)
	if err != nil {
		return err
	}
	if _, err := s.snippets.ToggleFavorite(id); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/snippets/%d", id))
}

func (s *Server) handleAddTagForm(c echo.Context) error {
	id, err := parsePageID(c)
	if err != nil {
		return err
	}
	if err := s.snippets.Attach(id, c.FormValue("tag")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/snippets/%d", id))
}

func (s *Server) handleRemoveTagForm(c echo.Context) error {
	id, err := parsePageID(c)
	if err != nil {
		return err
	}
	if err := s.snippets.Detach(id, c.FormValue("tag")); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/snippets/%d", id))
}

func (s *Server) handleRunForm(c echo.Context) error {
	snippet, tags, err := s.loadSnippetPage(c)
	if err != nil {
		return err
	}

	data := viewPageData{Snippet: snippet, Tags: tags}
	result, err := s.executor.Run(c.Request().Context(), execute.Request{
		Language: snippet.Language,
		Code:     snippet.Code,
	})
	if err != nil {
		data.RunError = err.Error()
	} else {
		data.RunResult = result
	}

	return c.Render(http.StatusOK, "view.html", data)
}

func (s *Server) loadSnippetPage(c echo.Context) (*models.Snippet, []string, error) {
	id, err := parsePageID(c)
	if err != nil {
		return nil, nil, err
	}
	snippet, err := s.snippets.Get(id)
	if err != nil {
		return nil, nil, err
	}
	tags, err := s.snippets.TagsFor(id)
	if err != nil {
		return nil, nil, err
	}
	return snippet, tags, nil
}

func parsePageID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Validation("invalid snippet id")
	}
	return uint(id), nil
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
