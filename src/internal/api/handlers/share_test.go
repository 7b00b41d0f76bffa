package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipsterapp/snipster/src/internal/errors"
	"github.com/snipsterapp/snipster/src/internal/execute"
	"github.com/snipsterapp/snipster/src/internal/gist"
	"github.com/snipsterapp/snipster/src/internal/image"
	"github.com/snipsterapp/snipster/src/internal/services"
)

func setupShareTest(t *testing.T, executeHandler, gistHandler, imageHandler http.HandlerFunc) (*echo.Echo, *services.SnippetService) {
	e, snippets := setupHandlerTest(t)

	executeSrv := httptest.NewServer(executeHandler)
	gistSrv := httptest.NewServer(gistHandler)
	imageSrv := httptest.NewServer(imageHandler)
	t.Cleanup(executeSrv.Close)
	t.Cleanup(gistSrv.Close)
	t.Cleanup(imageSrv.Close)

	cfg := viper.New()
	cfg.Set("execute.url", executeSrv.URL)
	cfg.Set("execute.version", "*")
	cfg.Set("gist.url", gistSrv.URL)
	cfg.Set("gist.token", "test-token")
	cfg.Set("image.url", imageSrv.URL)

	handler := NewShareHandler(snippets, execute.NewClient(cfg), gist.NewClient(cfg), image.NewClient(cfg))
	handler.RegisterRoutes(e.Group("/api/v1"))

	return e, snippets
}

func okExecute(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]any{
		"run": map[string]any{"stdout": "hi\n", "output": "hi\n", "code": 0},
	})
}

func okGist(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"html_url": "https://gist.github.com/u/1"})
}

func okImage(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\x89PNGdata"))
}

func TestShareHandlerRun(t *testing.T) {
	e, snippets := setupShareTest(t, okExecute, okGist, okImage)

	_, err := snippets.Create(services.CreateSnippetInput{
		Title: "Hello", Code: "print('hi')", Language: "python",
	})
	require.NoError(t, err)

	t.Run("OK", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/snippets/1/run", `{"stdin":"x"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var result execute.Result
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, "hi\n", result.Stdout)
		assert.Zero(t, result.ExitCode)
	})

	t.Run("SnippetNotFound", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/snippets/999/run", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestShareHandlerRunServiceDown(t *testing.T) {
	failExecute := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "all runners busy"})
	}
	e, snippets := setupShareTest(t, failExecute, okGist, okImage)

	_, err := snippets.Create(services.CreateSnippetInput{Title: "S", Code: "x", Language: "python"})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodPost, "/api/v1/snippets/1/run", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp errors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "external_service_error", resp.Type)
	assert.Contains(t, resp.Error, "all runners busy")
}

func TestShareHandlerCreateGist(t *testing.T) {
	var captured map[string]any
	gistHandler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		okGist(w, r)
	}
	e, snippets := setupShareTest(t, okExecute, gistHandler, okImage)

	_, err := snippets.Create(services.CreateSnippetInput{
		Title: "Hello World", Code: "print('hi')", Language: "python",
	})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodPost, "/api/v1/snippets/1/gist", `{"public":true}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://gist.github.com/u/1", resp["url"])

	// Default description and generated filename.
	assert.Equal(t, "Code snippet: Hello World", captured["description"])
	files := captured["files"].(map[string]any)
	assert.Contains(t, files, "Hello_World.py")
}

func TestShareHandlerCreateGistUnauthorized(t *testing.T) {
	gistHandler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	e, snippets := setupShareTest(t, okExecute, gistHandler, okImage)

	_, err := snippets.Create(services.CreateSnippetInput{Title: "S", Code: "x"})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodPost, "/api/v1/snippets/1/gist", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "token is invalid or expired")
}

func TestShareHandlerCreateImage(t *testing.T) {
	e, snippets := setupShareTest(t, okExecute, okGist, okImage)

	_, err := snippets.Create(services.CreateSnippetInput{Title: "S", Code: "x", Language: "go"})
	require.NoError(t, err)

	rec := doJSON(e, http.MethodPost, "/api/v1/snippets/1/image", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.NotEmpty(t, rec.Body.Bytes())

	t.Run("SnippetNotFound", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/snippets/999/image", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
