// Package anthropic implements the TextGenerator interface against the
// Anthropic Messages API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hszk-dev/ytapi/internal/domain/repository"
	"github.com/hszk-dev/ytapi/internal/infrastructure/metrics"
)

const (
	messagesPath = "/v1/messages"
	apiVersion   = "2023-06-01"
)

// Client calls the Anthropic Messages API. An empty API key leaves the
// client unconfigured; Generate then fails with ErrGeneratorNotConfigured
// so handlers can answer with a service-unavailable response.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates an Anthropic client. httpClient is the process-wide
// shared client.
func NewClient(httpClient *http.Client, baseURL, apiKey string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("anthropic not configured", slog.String("reason", "ANTHROPIC_API_KEY not set"))
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate runs a single user prompt and returns the generated text.
func (c *Client) Generate(ctx context.Context, req repository.GenerateRequest) (string, error) {
	if c.apiKey == "" {
		return "", repository.ErrGeneratorNotConfigured
	}

	body, err := json.Marshal(messagesRequest{
		Model:     req.Model,
		MaxTokens: req.MaxTokens,
		Messages:  []message{{Role: "user", Content: req.Prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal messages request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build messages request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)
	httpReq.Header.Set("Anthropic-Version", apiVersion)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamAnthropic, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: anthropic request: %v", repository.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamAnthropic, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: decode anthropic response: %v", repository.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamAnthropic, metrics.UpstreamStatusError).Inc()
		if decoded.Error != nil {
			return "", fmt.Errorf("%w: anthropic %s: %s", repository.ErrUpstreamUnavailable, decoded.Error.Type, decoded.Error.Message)
		}
		return "", fmt.Errorf("%w: anthropic status %d", repository.ErrUpstreamUnavailable, resp.StatusCode)
	}

	text := ""
	for _, block := range decoded.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamAnthropic, metrics.UpstreamStatusError).Inc()
		return "", fmt.Errorf("%w: anthropic returned no text content", repository.ErrUpstreamUnavailable)
	}

	c.logger.Info("text generated",
		slog.String("model", req.Model),
		slog.Int("char_count", len(text)),
	)
	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamAnthropic, metrics.UpstreamStatusSuccess).Inc()
	return text, nil
}
