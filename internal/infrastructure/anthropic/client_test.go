package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hszk-dev/ytapi/internal/domain/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_NotConfigured(t *testing.T) {
	c := NewClient(http.DefaultClient, "https://api.anthropic.com", "", testLogger())

	if c.Configured() {
		t.Error("Configured() = true with empty API key")
	}

	_, err := c.Generate(context.Background(), repository.GenerateRequest{Prompt: "hi"})
	if !errors.Is(err, repository.ErrGeneratorNotConfigured) {
		t.Errorf("error = %v, want ErrGeneratorNotConfigured", err)
	}
}

func TestClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("path = %q, want /v1/messages", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		if got := r.Header.Get("Anthropic-Version"); got == "" {
			t.Error("missing Anthropic-Version header")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["model"] != "test-model" {
			t.Errorf("model = %v, want test-model", req["model"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content": [{"type": "text", "text": "generated notes"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", testLogger())

	got, err := c.Generate(context.Background(), repository.GenerateRequest{
		Prompt:    "summarize this",
		Model:     "test-model",
		MaxTokens: 100,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got != "generated notes" {
		t.Errorf("Generate = %q, want %q", got, "generated notes")
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error", "message": "slow down"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "test-key", testLogger())

	_, err := c.Generate(context.Background(), repository.GenerateRequest{Prompt: "hi", Model: "m"})
	if !errors.Is(err, repository.ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
}
