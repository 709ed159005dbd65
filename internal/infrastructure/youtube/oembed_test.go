package youtube

import (
	"context"
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

func TestOEmbedClient_FetchVideoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("format = %q, want json", got)
		}
		if got := r.URL.Query().Get("url"); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
			t.Errorf("url = %q, want canonical watch URL", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Test Video",
			"author_name": "Test Channel",
			"thumbnail_url": "https://i.ytimg.com/vi/dQw4w9WgXcQ/hqdefault.jpg",
			"width": 200,
			"height": 113
		}`))
	}))
	defer srv.Close()

	c := NewOEmbedClient(srv.Client(), srv.URL, testLogger())

	data, err := c.FetchVideoData(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchVideoData error: %v", err)
	}
	if data.Title != "Test Video" {
		t.Errorf("Title = %q, want %q", data.Title, "Test Video")
	}
	if data.AuthorName != "Test Channel" {
		t.Errorf("AuthorName = %q, want %q", data.AuthorName, "Test Channel")
	}
	if data.Width != 200 || data.Height != 113 {
		t.Errorf("dimensions = %dx%d, want 200x113", data.Width, data.Height)
	}
}

func TestOEmbedClient_NotFound(t *testing.T) {
	statuses := []int{http.StatusNotFound, http.StatusBadRequest, http.StatusUnauthorized}

	for _, status := range statuses {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := NewOEmbedClient(srv.Client(), srv.URL, testLogger())
		_, err := c.FetchVideoData(context.Background(), "dQw4w9WgXcQ")
		if !errors.Is(err, repository.ErrVideoNotFound) {
			t.Errorf("status %d: error = %v, want ErrVideoNotFound", status, err)
		}
		srv.Close()
	}
}

func TestOEmbedClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewOEmbedClient(srv.Client(), srv.URL, testLogger())
	_, err := c.FetchVideoData(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, repository.ErrUpstreamUnavailable) {
		t.Errorf("error = %v, want ErrUpstreamUnavailable", err)
	}
}
