// Package storage implements permanent transcript storage on the shared
// Redis backend. Unlike the cache layer, writes here are explicit user
// actions and are stored without expiry. The same soft-failure policy
// applies: a disabled or unreachable backend degrades every method to its
// "unavailable" result instead of returning an error.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/infrastructure/metrics"
)

// Key namespaces. Both are disjoint from the cache namespace so that cache
// invalidation can never touch stored transcripts.
const (
	transcriptPrefix = "ytapi:transcript:"
	metadataPrefix   = "ytapi:meta:"
)

const scanBatch = 200

// Store persists transcripts and per-video metadata records.
type Store struct {
	client *redis.Client
	logger *slog.Logger
}

// Stats summarizes storage occupancy.
type Stats struct {
	Enabled          bool  `json:"enabled"`
	TotalTranscripts int64 `json:"total_transcripts,omitempty"`
	TotalVideos      int64 `json:"total_videos,omitempty"`
}

// New creates a Store over the given client. client may be nil, in which
// case the store is disabled.
func New(client *redis.Client, logger *slog.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Enabled reports whether a backend client is configured.
func (s *Store) Enabled() bool {
	return s.client != nil
}

func transcriptKey(id model.VideoID, language string) string {
	if language != "" {
		return transcriptPrefix + id.String() + ":" + language
	}
	return transcriptPrefix + id.String()
}

func metadataKey(id model.VideoID) string {
	return metadataPrefix + id.String()
}

// Save writes the transcript under (id, language) and updates the video's
// metadata record. Re-saving overwrites the transcript body. The metadata
// update is a read-merge-write: the language is unioned into the stored set,
// attrs are merged over existing fields, created_at is set once and
// last_updated always refreshed.
//
// Two concurrent saves for the same id can interleave the metadata
// read-merge-write; the second writer wins with a merge based on a stale
// read. The backend offers no cross-key transactions and this layer adds no
// per-id locking, matching the cache-style last-write-wins model.
func (s *Store) Save(ctx context.Context, id model.VideoID, transcript, language string, attrs model.MetadataAttrs) bool {
	if s.client == nil {
		s.logger.Warn("storage disabled, transcript not saved", slog.String("video_id", id.String()))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpSave, metrics.StorageStatusDisabled).Inc()
		return false
	}

	// Expiration 0 means no expiry: storage is permanent by contract.
	if err := s.client.Set(ctx, transcriptKey(id, language), transcript, 0).Err(); err != nil {
		s.logger.Error("transcript save failed",
			slog.String("video_id", id.String()),
			slog.String("language", language),
			slog.Any("error", err),
		)
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpSave, metrics.StorageStatusError).Inc()
		return false
	}

	meta, _ := s.GetMetadata(ctx, id)
	if meta == nil {
		meta = &model.VideoMetadata{}
	}
	meta.ID = "" // not stored inside the record; derived from the key
	meta.Merge(language, attrs, time.Now().UTC())

	data, err := json.Marshal(meta)
	if err != nil {
		s.logger.Error("metadata not serializable", slog.String("video_id", id.String()), slog.Any("error", err))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpSave, metrics.StorageStatusError).Inc()
		return false
	}
	if err := s.client.Set(ctx, metadataKey(id), data, 0).Err(); err != nil {
		s.logger.Error("metadata save failed", slog.String("video_id", id.String()), slog.Any("error", err))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpSave, metrics.StorageStatusError).Inc()
		return false
	}

	s.logger.Info("transcript saved",
		slog.String("video_id", id.String()),
		slog.String("language", language),
	)
	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpSave, metrics.StorageStatusSuccess).Inc()
	return true
}

// Get retrieves a stored transcript. Lookup order: exact language match when
// a language is requested, then the language-less default key, then the
// first variant found by a prefix scan. A caller omitting the language may
// therefore receive a transcript in whichever language the scan yields
// first; that non-determinism is a documented discoverability trade-off.
func (s *Store) Get(ctx context.Context, id model.VideoID, language string) (string, bool) {
	if s.client == nil {
		return "", false
	}

	if language != "" {
		if text, ok := s.getKey(ctx, transcriptKey(id, language)); ok {
			metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpGet, metrics.StorageStatusSuccess).Inc()
			return text, true
		}
	}

	if text, ok := s.getKey(ctx, transcriptKey(id, "")); ok {
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpGet, metrics.StorageStatusSuccess).Inc()
		return text, true
	}

	keys, err := s.scan(ctx, transcriptPrefix+id.String()+":*")
	if err != nil {
		s.logger.Error("transcript scan failed", slog.String("video_id", id.String()), slog.Any("error", err))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpGet, metrics.StorageStatusError).Inc()
		return "", false
	}
	for _, key := range keys {
		if text, ok := s.getKey(ctx, key); ok {
			metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpGet, metrics.StorageStatusSuccess).Inc()
			return text, true
		}
	}

	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpGet, metrics.StorageStatusMiss).Inc()
	return "", false
}

// GetMetadata returns the metadata record for id, with the ID field filled
// in from the key. The second return value is false when absent.
func (s *Store) GetMetadata(ctx context.Context, id model.VideoID) (*model.VideoMetadata, bool) {
	if s.client == nil {
		return nil, false
	}

	data, err := s.client.Get(ctx, metadataKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error("metadata get failed", slog.String("video_id", id.String()), slog.Any("error", err))
		}
		return nil, false
	}

	var meta model.VideoMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		s.logger.Error("metadata undecodable", slog.String("video_id", id.String()), slog.Any("error", err))
		return nil, false
	}
	meta.ID = id
	return &meta, true
}

// List returns up to limit metadata records, in whatever order the backend's
// key scan yields.
func (s *Store) List(ctx context.Context, limit int) []*model.VideoMetadata {
	if s.client == nil {
		return nil
	}

	keys, err := s.scan(ctx, metadataPrefix+"*")
	if err != nil {
		s.logger.Error("metadata scan failed", slog.Any("error", err))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpList, metrics.StorageStatusError).Inc()
		return nil
	}
	if limit > 0 && len(keys) > limit {
		keys = keys[:limit]
	}

	videos := make([]*model.VideoMetadata, 0, len(keys))
	for _, key := range keys {
		id := model.VideoID(key[len(metadataPrefix):])
		if meta, ok := s.GetMetadata(ctx, id); ok {
			videos = append(videos, meta)
		}
	}

	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpList, metrics.StorageStatusSuccess).Inc()
	return videos
}

// Delete removes stored transcripts. With a language only that variant's
// transcript is removed and the metadata record is left untouched. Without a
// language every variant plus the metadata record is removed.
func (s *Store) Delete(ctx context.Context, id model.VideoID, language string) bool {
	if s.client == nil {
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusDisabled).Inc()
		return false
	}

	if language != "" {
		if err := s.client.Del(ctx, transcriptKey(id, language)).Err(); err != nil {
			s.logger.Error("transcript delete failed",
				slog.String("video_id", id.String()),
				slog.String("language", language),
				slog.Any("error", err),
			)
			metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusError).Inc()
			return false
		}
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusSuccess).Inc()
		return true
	}

	// IDs are fixed-length, so "<id>*" matches only this video's default key
	// and its language variants.
	keys, err := s.scan(ctx, transcriptPrefix+id.String()+"*")
	if err != nil {
		s.logger.Error("transcript scan failed", slog.String("video_id", id.String()), slog.Any("error", err))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusError).Inc()
		return false
	}
	keys = append(keys, metadataKey(id))

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		s.logger.Error("transcript delete failed", slog.String("video_id", id.String()), slog.Any("error", err))
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusError).Inc()
		return false
	}

	s.logger.Info("transcript deleted", slog.String("video_id", id.String()), slog.String("language", "all"))
	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusSuccess).Inc()
	return true
}

// Stats counts keys under each storage namespace.
func (s *Store) Stats(ctx context.Context) Stats {
	if s.client == nil {
		return Stats{Enabled: false}
	}

	transcripts, err := s.scan(ctx, transcriptPrefix+"*")
	if err != nil {
		s.logger.Error("storage stats scan failed", slog.Any("error", err))
		return Stats{Enabled: true}
	}
	videos, err := s.scan(ctx, metadataPrefix+"*")
	if err != nil {
		s.logger.Error("storage stats scan failed", slog.Any("error", err))
		return Stats{Enabled: true}
	}

	return Stats{
		Enabled:          true,
		TotalTranscripts: int64(len(transcripts)),
		TotalVideos:      int64(len(videos)),
	}
}

func (s *Store) getKey(ctx context.Context, key string) (string, bool) {
	text, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Error("transcript get failed", slog.String("key", key), slog.Any("error", err))
		}
		return "", false
	}
	return text, true
}

func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
