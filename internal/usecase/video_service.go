package usecase

import (
	"context"
	"time"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/domain/repository"
	"github.com/hszk-dev/ytapi/internal/infrastructure/cache"
)

// Cache key prefixes for the memoized fetch operations.
const (
	prefixVideoData  = "video_data"
	prefixCaptions   = "video_captions"
	prefixTimestamps = "video_timestamps"
	prefixLanguages  = "video_languages"
)

// VideoService exposes the video fetch operations. Every method accepts a
// raw URL or bare ID, derives the canonical identifier, and serves the
// result through the cache layer before reaching upstream.
type VideoService interface {
	// GetVideoData returns descriptive metadata for a video.
	GetVideoData(ctx context.Context, input string) (*model.VideoData, error)

	// GetCaptions returns the transcript as plain text, resolving the
	// language from the caller's preference list.
	GetCaptions(ctx context.Context, input string, languages []string) (string, error)

	// GetTimestamps returns the transcript as "M:SS - text" lines.
	GetTimestamps(ctx context.Context, input string, languages []string) ([]string, error)

	// GetLanguages lists the transcript tracks available for a video.
	GetLanguages(ctx context.Context, input string) ([]model.LanguageInfo, error)

	// GetTranscript returns the full transcript with its resolved language.
	// Used by the storage flow, which needs the language that was chosen.
	GetTranscript(ctx context.Context, input string, languages []string) (*model.Transcript, error)
}

// VideoServiceConfig holds configuration for VideoService.
type VideoServiceConfig struct {
	// CacheTTL is the TTL for memoized fetch results. Zero uses the cache
	// layer's default.
	CacheTTL time.Duration
}

type videoService struct {
	videos      repository.VideoDataFetcher
	transcripts repository.TranscriptFetcher
	cache       *cache.Cache

	cacheTTL time.Duration
}

// NewVideoService creates a VideoService whose fetch operations are
// memoized through c.
func NewVideoService(
	videos repository.VideoDataFetcher,
	transcripts repository.TranscriptFetcher,
	c *cache.Cache,
	cfg VideoServiceConfig,
) VideoService {
	return &videoService{
		videos:      videos,
		transcripts: transcripts,
		cache:       c,
		cacheTTL:    cfg.CacheTTL,
	}
}

func (s *videoService) GetVideoData(ctx context.Context, input string) (*model.VideoData, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}

	return cache.Cached(ctx, s.cache, prefixVideoData, s.cacheTTL,
		[]any{id}, nil,
		func(ctx context.Context) (*model.VideoData, error) {
			return s.videos.FetchVideoData(ctx, id)
		})
}

func (s *videoService) GetTranscript(ctx context.Context, input string, languages []string) (*model.Transcript, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}
	return s.fetchTranscript(ctx, id, languages)
}

func (s *videoService) GetCaptions(ctx context.Context, input string, languages []string) (string, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return "", err
	}

	return cache.Cached(ctx, s.cache, prefixCaptions, s.cacheTTL,
		[]any{id}, map[string]any{"languages": languages},
		func(ctx context.Context) (string, error) {
			transcript, err := s.fetchTranscript(ctx, id, languages)
			if err != nil {
				return "", err
			}
			return transcript.Text(), nil
		})
}

func (s *videoService) GetTimestamps(ctx context.Context, input string, languages []string) ([]string, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}

	return cache.Cached(ctx, s.cache, prefixTimestamps, s.cacheTTL,
		[]any{id}, map[string]any{"languages": languages},
		func(ctx context.Context) ([]string, error) {
			transcript, err := s.fetchTranscript(ctx, id, languages)
			if err != nil {
				return nil, err
			}
			return transcript.Timestamps(), nil
		})
}

func (s *videoService) GetLanguages(ctx context.Context, input string) ([]model.LanguageInfo, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}

	return cache.Cached(ctx, s.cache, prefixLanguages, s.cacheTTL,
		[]any{id}, nil,
		func(ctx context.Context) ([]model.LanguageInfo, error) {
			return s.transcripts.ListLanguages(ctx, id)
		})
}

// fetchTranscript memoizes the full transcript so captions, timestamps and
// the storage flow share one upstream fetch per (id, languages).
func (s *videoService) fetchTranscript(ctx context.Context, id model.VideoID, languages []string) (*model.Transcript, error) {
	return cache.Cached(ctx, s.cache, "video_transcript", s.cacheTTL,
		[]any{id}, map[string]any{"languages": languages},
		func(ctx context.Context) (*model.Transcript, error) {
			return s.transcripts.FetchTranscript(ctx, id, languages)
		})
}
