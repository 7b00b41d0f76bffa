package execute

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

// Client talks to a Piston-compatible code execution service
type Client struct {
	baseURL        string
	defaultVersion string
	httpClient     *http.Client
}

// NewClient creates a new execution client from configuration
func NewClient(cfg *viper.Viper) *Client {
	timeout := cfg.GetDuration("execute.timeout")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:        cfg.GetString("execute.url"),
		defaultVersion: cfg.GetString("execute.version"),
		httpClient:     &http.Client{Timeout: timeout},
	}
}

// Request represents a code execution request
type Request struct {
	Language string
	Version  string
	Code     string
	Stdin    string
}

// Result represents the outcome of a code execution
type Result struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	Output   string `json:"output"`
	ExitCode int    `json:"exit_code"`
}

type pistonFile struct {
	Content string `json:"content"`
}

type pistonRequest struct {
	Language string       `json:"language"`
	Version  string       `json:"version"`
	Files    []pistonFile `json:"files"`
	Stdin    string       `json:"stdin,omitempty"`
}

type pistonResponse struct {
	Run struct {
		Stdout string `json:"stdout"`
		Stderr string `json:"stderr"`
		Output string `json:"output"`
		Code   int    `json:"code"`
	} `json:"run"`
	Message string `json:"message"`
}

// Run executes code remotely. The request is forwarded as-is and the
// response relayed; failures are never retried.
func (c *Client) Run(ctx context.Context, req Request) (*Result, error) {
	version := req.Version
	if version == "" {
		version = c.defaultVersion
	}
	if version == "" {
		version = "*"
	}

	payload := pistonRequest{
		Language: req.Language,
		Version:  version,
		Files:    []pistonFile{{Content: req.Code}},
		Stdin:    req.Stdin,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.External("execution service", "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.External("execution service", "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.External("execution service", err.Error(), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.External("execution service", "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Relay the service's error text verbatim
		message := strings.TrimSpace(string(respBody))
		var parsed pistonResponse
		if json.Unmarshal(respBody, &parsed) == nil && parsed.Message != "" {
			message = parsed.Message
		}
		return nil, errors.External("execution service",
			fmt.Sprintf("execution failed (%d): %s", resp.StatusCode, message), nil)
	}

	var parsed pistonResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.External("execution service", "unexpected response format", err)
	}

	return &Result{
		Stdout:   parsed.Run.Stdout,
		Stderr:   parsed.Run.Stderr,
		Output:   parsed.Run.Output,
		ExitCode: parsed.Run.Code,
	}, nil
}
