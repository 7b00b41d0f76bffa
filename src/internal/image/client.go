package image

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

// Client talks to a Carbonara-compatible code image rendering service
type Client struct {
	baseURL    string
	theme      string
	background string
	httpClient *http.Client
}

// NewClient creates a new image client from configuration
func NewClient(cfg *viper.Viper) *Client {
	timeout := cfg.GetDuration("image.timeout")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    cfg.GetString("image.url"),
		theme:      cfg.GetString("image.theme"),
		background: cfg.GetString("image.background"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type renderRequest struct {
	Code            string `json:"code"`
	Language        string `json:"language,omitempty"`
	Theme           string `json:"theme,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Render renders the given code as a PNG image. Rendering-service
// errors are relayed verbatim.
func (c *Client) Render(ctx context.Context, code, language string) ([]byte, error) {
	payload := renderRequest{
		Code:            code,
		Language:        language,
		Theme:           c.theme,
		BackgroundColor: c.background,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.External("image service", "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.External("image service", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.External("image service", err.Error(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.External("image service", "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.External("image service",
			fmt.Sprintf("rendering failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody))), nil)
	}

	return respBody, nil
}
