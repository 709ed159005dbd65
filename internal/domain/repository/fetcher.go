package repository

import (
	"context"

	"github.com/hszk-dev/ytapi/internal/domain/model"
)

// VideoDataFetcher retrieves descriptive metadata for a video.
// Implementations are provided by the infrastructure layer (e.g., oEmbed).
type VideoDataFetcher interface {
	// FetchVideoData returns the metadata for a video.
	// Returns ErrVideoNotFound if the video does not exist.
	FetchVideoData(ctx context.Context, id model.VideoID) (*model.VideoData, error)
}

// TranscriptFetcher retrieves transcripts and transcript track listings.
type TranscriptFetcher interface {
	// FetchTranscript returns the transcript for a video, resolving the
	// language with the selection policy: each preferred language in order,
	// else the first available. With no preference the implementation's
	// default language is used if available, else the first available.
	// Returns ErrTranscriptNotFound when the video has no transcripts.
	FetchTranscript(ctx context.Context, id model.VideoID, languages []string) (*model.Transcript, error)

	// ListLanguages returns every transcript track available for a video.
	ListLanguages(ctx context.Context, id model.VideoID) ([]model.LanguageInfo, error)
}

// TextGenerator produces text from a prompt via an LLM provider.
type TextGenerator interface {
	// Generate runs a single prompt and returns the generated text.
	// Returns ErrGeneratorNotConfigured when no provider credential is set.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Configured reports whether the provider credential is present.
	Configured() bool
}

// GenerateRequest carries a prompt and its generation parameters.
type GenerateRequest struct {
	Prompt    string
	Model     string
	MaxTokens int
}
