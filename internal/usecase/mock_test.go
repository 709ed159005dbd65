package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/domain/repository"
	"github.com/hszk-dev/ytapi/internal/infrastructure/cache"
	"github.com/hszk-dev/ytapi/internal/infrastructure/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestCache returns a miniredis-backed cache and the underlying client.
func newTestCache(t *testing.T) (*cache.Cache, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.New(client, time.Hour, testLogger()), client
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	_, client := newTestCache(t)
	return storage.New(client, testLogger())
}

// mockVideoDataFetcher provides a configurable mock for VideoDataFetcher.
type mockVideoDataFetcher struct {
	fetchVideoDataFn func(ctx context.Context, id model.VideoID) (*model.VideoData, error)
	calls            int
}

func (m *mockVideoDataFetcher) FetchVideoData(ctx context.Context, id model.VideoID) (*model.VideoData, error) {
	m.calls++
	if m.fetchVideoDataFn != nil {
		return m.fetchVideoDataFn(ctx, id)
	}
	return &model.VideoData{Title: "Test Video", AuthorName: "Test Channel"}, nil
}

// mockTranscriptFetcher provides a configurable mock for TranscriptFetcher.
type mockTranscriptFetcher struct {
	fetchTranscriptFn func(ctx context.Context, id model.VideoID, languages []string) (*model.Transcript, error)
	listLanguagesFn   func(ctx context.Context, id model.VideoID) ([]model.LanguageInfo, error)
	fetchCalls        int
	listCalls         int
}

func (m *mockTranscriptFetcher) FetchTranscript(ctx context.Context, id model.VideoID, languages []string) (*model.Transcript, error) {
	m.fetchCalls++
	if m.fetchTranscriptFn != nil {
		return m.fetchTranscriptFn(ctx, id, languages)
	}
	return &model.Transcript{
		Language: "en",
		Segments: []model.Segment{
			{Start: 0, Text: "hello"},
			{Start: 65, Text: "world"},
		},
		AvailableLanguages: []string{"en", "es"},
	}, nil
}

func (m *mockTranscriptFetcher) ListLanguages(ctx context.Context, id model.VideoID) ([]model.LanguageInfo, error) {
	m.listCalls++
	if m.listLanguagesFn != nil {
		return m.listLanguagesFn(ctx, id)
	}
	return []model.LanguageInfo{
		{Language: "English", LanguageCode: "en", IsTranslatable: true},
	}, nil
}

// mockTextGenerator provides a configurable mock for TextGenerator.
type mockTextGenerator struct {
	generateFn func(ctx context.Context, req repository.GenerateRequest) (string, error)
	configured bool
	requests   []repository.GenerateRequest
}

func (m *mockTextGenerator) Generate(ctx context.Context, req repository.GenerateRequest) (string, error) {
	m.requests = append(m.requests, req)
	if m.generateFn != nil {
		return m.generateFn(ctx, req)
	}
	return "generated text", nil
}

func (m *mockTextGenerator) Configured() bool {
	return m.configured
}
