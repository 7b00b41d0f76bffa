package image

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snipsterapp/snipster/src/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := viper.New()
	cfg.Set("image.url", server.URL)
	cfg.Set("image.theme", "seti")
	cfg.Set("image.background", "#ABB8C3")
	return NewClient(cfg)
}

func TestClientRender(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nfake image bytes")

	var captured renderRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write(png)
	})

	data, err := client.Render(context.Background(), "print('hi')", "python")
	require.NoError(t, err)
	assert.Equal(t, png, data)

	assert.Equal(t, "print('hi')", captured.Code)
	assert.Equal(t, "python", captured.Language)
	assert.Equal(t, "seti", captured.Theme)
	assert.Equal(t, "#ABB8C3", captured.BackgroundColor)
}

func TestClientRenderServiceError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("render backend down"))
	})

	_, err := client.Render(context.Background(), "code", "go")
	require.Error(t, err)
	assert.True(t, errors.IsExternal(err))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "render backend down")
}

func TestClientRenderUnreachable(t *testing.T) {
	cfg := viper.New()
	cfg.Set("image.url", "http://127.0.0.1:1/cook")

	client := NewClient(cfg)
	_, err := client.Render(context.Background(), "code", "go")
	require.Error(t, err)
	assert.True(t, errors.IsExternal(err))
}
