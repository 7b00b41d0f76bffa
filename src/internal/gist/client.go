package gist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/snipsterapp/snipster/src/internal/errors"
)

// Client talks to a GitHub-compatible gist hosting service
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new gist client from configuration
func NewClient(cfg *viper.Viper) *Client {
	timeout := cfg.GetDuration("gist.timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.GetString("gist.url"),
		token:      cfg.GetString("gist.token"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// CreateInput represents a gist creation request
type CreateInput struct {
	Filename    string
	Content     string
	Description string
	Public      bool
}

type gistFile struct {
	Content string `json:"content"`
}

type gistRequest struct {
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	Files       map[string]gistFile `json:"files"`
}

type gistResponse struct {
	HTMLURL string `json:"html_url"`
	Message string `json:"message"`
}

// Create publishes a gist and returns its URL. Hosting-service errors
// are relayed to the caller; nothing is retried.
func (c *Client) Create(ctx context.Context, input CreateInput) (string, error) {
	payload := gistRequest{
		Description: input.Description,
		Public:      input.Public,
		Files: map[string]gistFile{
			input.Filename: {Content: input.Content},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.External("gist service", "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.External("gist service", "failed to build request", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.External("gist service", err.Error(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.External("gist service", "failed to read response", err)
	}

	var parsed gistResponse
	_ = json.Unmarshal(respBody, &parsed)

	switch resp.StatusCode {
	case http.StatusCreated:
		if parsed.HTMLURL == "" {
			return "", errors.External("gist service", "unexpected response format: missing html_url", nil)
		}
		return parsed.HTMLURL, nil
	case http.StatusUnauthorized:
		return "", errors.External("gist service", "token is invalid or expired", nil)
	case http.StatusForbidden:
		return "", errors.External("gist service", "rate limit exceeded or forbidden", nil)
	case http.StatusUnprocessableEntity:
		detail := parsed.Message
		if detail == "" {
			detail = "invalid request data"
		}
		return "", errors.External("gist service", fmt.Sprintf("invalid gist data: %s", detail), nil)
	default:
		detail := parsed.Message
		if detail == "" {
			detail = strings.TrimSpace(string(respBody))
		}
		return "", errors.External("gist service",
			fmt.Sprintf("gist creation failed (%d): %s", resp.StatusCode, detail), nil)
	}
}

// extensions maps language labels to gist filename extensions.
var extensions = map[string]string{
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"java":       "java",
	"c#":         "cs",
	"c++":        "cpp",
	"ruby":       "rb",
	"php":        "php",
	"go":         "go",
	"swift":      "swift",
	"kotlin":     "kt",
	"rust":       "rs",
	"html":       "html",
	"css":        "css",
	"shell":      "sh",
	"bash":       "sh",
}

// FilenameFor builds a gist filename from a snippet title and language.
func FilenameFor(title, language string) string {
	name := strings.TrimSpace(title)
	if name == "" {
		name = "snippet"
	}
	name = strings.ReplaceAll(name, " ", "_")

	ext, ok := extensions[strings.ToLower(language)]
	if !ok {
		ext = "txt"
	}
	return name + "." + ext
}
