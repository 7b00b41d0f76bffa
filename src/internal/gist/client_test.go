package gist

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

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := viper.New()
	cfg.Set("gist.url", server.URL)
	cfg.Set("gist.token", token)
	return NewClient(cfg)
}

func TestClientCreate(t *testing.T) {
	var captured gistRequest
	var authHeader string
	client := newTestClient(t, "sekret", func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		require.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"html_url": "https://gist.github.com/user/abc123",
		})
	})

	url, err := client.Create(context.Background(), CreateInput{
		Filename:    "hello.py",
		Content:     "print('hi')",
		Description: "a greeting",
		Public:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://gist.github.com/user/abc123", url)

	assert.Equal(t, "token sekret", authHeader)
	assert.Equal(t, "a greeting", captured.Description)
	assert.True(t, captured.Public)
	require.Contains(t, captured.Files, "hello.py")
	assert.Equal(t, "print('hi')", captured.Files["hello.py"].Content)
}

func TestClientCreateNoToken(t *testing.T) {
	var authHeader string
	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"html_url": "https://gist.github.com/anon/x"})
	})

	_, err := client.Create(context.Background(), CreateInput{Filename: "a.txt", Content: "x"})
	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestClientCreateErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    map[string]string
		wantMsg string
	}{
		{"Unauthorized", http.StatusUnauthorized, nil, "token is invalid or expired"},
		{"Forbidden", http.StatusForbidden, nil, "rate limit exceeded or forbidden"},
		{"Unprocessable", http.StatusUnprocessableEntity,
			map[string]string{"message": "Validation Failed"}, "invalid gist data: Validation Failed"},
		{"ServerError", http.StatusInternalServerError,
			map[string]string{"message": "boom"}, "gist creation failed (500): boom"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				if tc.body != nil {
					json.NewEncoder(w).Encode(tc.body)
				}
			})

			_, err := client.Create(context.Background(), CreateInput{Filename: "a.txt", Content: "x"})
			require.Error(t, err)
			assert.True(t, errors.IsExternal(err))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestClientCreateMissingURL(t *testing.T) {
	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	})

	_, err := client.Create(context.Background(), CreateInput{Filename: "a.txt", Content: "x"})
	require.Error(t, err)
	assert.True(t, errors.IsExternal(err))
}

func TestFilenameFor(t *testing.T) {
	assert.Equal(t, "Hello_World.py", FilenameFor("Hello World", "python"))
	assert.Equal(t, "main.go", FilenameFor("main", "Go"))
	assert.Equal(t, "notes.txt", FilenameFor("notes", "brainfuck"))
	assert.Equal(t, "snippet.txt", FilenameFor("   ", ""))
	assert.Equal(t, "run_it.sh", FilenameFor("run it", "bash"))
}
