// Package gateway talks to the OpenAI-compatible LLM gateway.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ManuelReschke/Newsroom/internal/pkg/config"
)

const completionsPath = "/v1/chat/completions"

// ErrNotConfigured is returned when no gateway credential is set.
var ErrNotConfigured = errors.New("AI gateway API key is not configured")

// ErrMalformedResponse wraps a 2xx body that does not decode as a completion.
var ErrMalformedResponse = errors.New("malformed AI gateway response")

// StatusError is a non-2xx gateway response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AI gateway returned %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		HTTPClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Configured reports whether a bearer credential is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// ChatCompletion issues exactly one completion request. It never retries.
func (c *Client) ChatCompletion(ctx context.Context, chatReq ChatRequest) (*ChatResponse, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	if chatReq.Model == "" {
		chatReq.Model = c.Model
	}

	data, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+completionsPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("AI gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading AI gateway response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 1024)}
	}

	var out ChatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
