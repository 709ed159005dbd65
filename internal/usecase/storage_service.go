package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/infrastructure/storage"
)

var (
	// ErrStorageDisabled is returned when the backing store is not
	// configured. Callers surface it with guidance to set REDIS_URL.
	ErrStorageDisabled = errors.New("transcript storage is not enabled")

	// ErrStoredTranscriptNotFound is returned when no stored transcript
	// exists for the requested video.
	ErrStoredTranscriptNotFound = errors.New("stored transcript not found")

	// ErrStorageFailed is returned when the store rejected an operation.
	ErrStorageFailed = errors.New("storage operation failed")
)

// StoredTranscript is a stored transcript together with its metadata record.
type StoredTranscript struct {
	VideoID    model.VideoID
	Transcript string
	Language   string
	Metadata   *model.VideoMetadata
}

// StorageService orchestrates durable transcript storage: fetching the
// transcript and metadata on save, and reading back stored records.
type StorageService interface {
	// SaveTranscript fetches the transcript (and video metadata) and
	// persists both. The language actually resolved by the fetcher is the
	// one recorded.
	SaveTranscript(ctx context.Context, input string, languages []string) (model.VideoID, error)

	// GetStored retrieves a stored transcript. language may be empty; see
	// the storage layer's fallback lookup for what is returned then.
	GetStored(ctx context.Context, input string, language string) (*StoredTranscript, error)

	// ListStored returns up to limit stored video metadata records.
	ListStored(ctx context.Context, limit int) ([]*model.VideoMetadata, error)

	// DeleteStored removes a stored transcript. An empty language removes
	// every variant plus the metadata record.
	DeleteStored(ctx context.Context, input string, language string) (model.VideoID, error)

	// Stats reports storage occupancy.
	Stats(ctx context.Context) storage.Stats
}

type storageService struct {
	videos VideoService
	store  *storage.Store
}

// NewStorageService creates a StorageService over the given store, using
// the (memoized) VideoService for the fetches a save requires.
func NewStorageService(videos VideoService, store *storage.Store) StorageService {
	return &storageService{
		videos: videos,
		store:  store,
	}
}

func (s *storageService) SaveTranscript(ctx context.Context, input string, languages []string) (model.VideoID, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return "", err
	}
	if !s.store.Enabled() {
		return id, ErrStorageDisabled
	}

	data, err := s.videos.GetVideoData(ctx, input)
	if err != nil {
		return id, err
	}
	transcript, err := s.videos.GetTranscript(ctx, input, languages)
	if err != nil {
		return id, err
	}

	attrs := model.MetadataAttrs{
		Title:        data.Title,
		Author:       data.AuthorName,
		ThumbnailURL: data.ThumbnailURL,
	}
	if !s.store.Save(ctx, id, transcript.Text(), transcript.Language, attrs) {
		return id, fmt.Errorf("%w: save transcript for %s", ErrStorageFailed, id)
	}
	return id, nil
}

func (s *storageService) GetStored(ctx context.Context, input string, language string) (*StoredTranscript, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}
	if !s.store.Enabled() {
		return nil, ErrStorageDisabled
	}

	text, ok := s.store.Get(ctx, id, language)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStoredTranscriptNotFound, id)
	}

	meta, _ := s.store.GetMetadata(ctx, id)
	return &StoredTranscript{
		VideoID:    id,
		Transcript: text,
		Language:   language,
		Metadata:   meta,
	}, nil
}

func (s *storageService) ListStored(ctx context.Context, limit int) ([]*model.VideoMetadata, error) {
	if !s.store.Enabled() {
		return nil, ErrStorageDisabled
	}
	return s.store.List(ctx, limit), nil
}

func (s *storageService) DeleteStored(ctx context.Context, input string, language string) (model.VideoID, error) {
	id, err := model.ParseVideoID(input)
	if err != nil {
		return "", err
	}
	if !s.store.Enabled() {
		return id, ErrStorageDisabled
	}
	if !s.store.Delete(ctx, id, language) {
		return id, fmt.Errorf("%w: delete transcript for %s", ErrStorageFailed, id)
	}
	return id, nil
}

func (s *storageService) Stats(ctx context.Context) storage.Stats {
	return s.store.Stats(ctx)
}
