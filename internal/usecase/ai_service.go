package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/domain/repository"
)

// NotesFormat selects the structure of generated notes.
type NotesFormat string

const (
	NotesSummary    NotesFormat = "summary"
	NotesDetailed   NotesFormat = "detailed"
	NotesStructured NotesFormat = "structured"
)

// ErrInvalidNotesFormat is returned for an unrecognized notes format.
var ErrInvalidNotesFormat = errors.New("invalid notes format")

func (f NotesFormat) IsValid() bool {
	switch f {
	case NotesSummary, NotesDetailed, NotesStructured:
		return true
	default:
		return false
	}
}

// translatedTimestampSample caps how many timestamp lines are translated.
const translatedTimestampSample = 20

// NotesOutput is the result of a notes generation.
type NotesOutput struct {
	VideoID string
	Title   string
	Format  NotesFormat
	Notes   string
}

// TranslationOutput is the result of a transcript translation.
type TranslationOutput struct {
	VideoID              string
	Title                string
	TargetLanguage       string
	Transcript           string
	TranslatedTimestamps []string
}

// AIService runs LLM-backed operations over fetched transcripts.
type AIService interface {
	// GenerateNotes produces markdown notes from a video's transcript.
	GenerateNotes(ctx context.Context, input string, format NotesFormat, languages []string) (*NotesOutput, error)

	// Translate renders a video's transcript in the target language,
	// optionally translating a sample of timestamped segments.
	Translate(ctx context.Context, input, targetLanguage string, withTimestamps bool) (*TranslationOutput, error)

	// Available reports whether the LLM provider is configured.
	Available() bool
}

// AIServiceConfig holds the generation parameters.
type AIServiceConfig struct {
	// Model runs transcript-sized prompts.
	Model string
	// FastModel runs the short timestamp translation prompt.
	FastModel string
	MaxTokens int
}

type aiService struct {
	videos    VideoService
	generator repository.TextGenerator

	model     string
	fastModel string
	maxTokens int
}

// NewAIService creates an AIService over the given generator, using the
// (memoized) VideoService for transcript and metadata fetches.
func NewAIService(videos VideoService, generator repository.TextGenerator, cfg AIServiceConfig) AIService {
	return &aiService{
		videos:    videos,
		generator: generator,
		model:     cfg.Model,
		fastModel: cfg.FastModel,
		maxTokens: cfg.MaxTokens,
	}
}

func (s *aiService) Available() bool {
	return s.generator.Configured()
}

var notesPrompts = map[NotesFormat]string{
	NotesSummary: `Create a concise summary of this YouTube video.

Video Title: %s
Channel: %s

Transcript:
%s

Provide:
1. A 2-3 sentence executive summary
2. 3-5 key takeaways as bullet points
3. Main topics covered

Format the response in clean markdown.`,
	NotesDetailed: `Create detailed notes from this YouTube video transcript.

Video Title: %s
Channel: %s

Transcript:
%s

Provide:
1. Executive Summary (3-4 sentences)
2. Detailed outline with main sections and subsections
3. Key concepts explained
4. Important quotes or statements
5. Action items or recommendations (if applicable)

Format the response in clean markdown with proper headings.`,
	NotesStructured: `Convert this YouTube video transcript into well-structured notes.

Video Title: %s
Channel: %s

Transcript:
%s

Create structured notes with:
1. Overview: Brief description of video content
2. Main Topics: Organized by sections with key points
3. Key Takeaways: Most important information
4. Conclusion: Final thoughts or summary

Format the response in clean markdown with proper headings and bullet points.`,
}

const translationPrompt = `Translate this YouTube video transcript to %s.

Video Title: %s
Channel: %s

Original Transcript:
%s

Requirements:
1. Translate the entire transcript naturally and accurately
2. Maintain the original tone and style
3. Preserve technical terms appropriately
4. Keep the translation conversational as if spoken
5. Do not add explanations or notes - only provide the translation

Provide ONLY the translated transcript, nothing else.`

const timestampTranslationPrompt = `Translate these video timestamps to %s.

Original Timestamps:
%s

Requirements:
1. Keep the timestamp format (MM:SS - text)
2. Only translate the text part, not the timestamps
3. Maintain natural speech patterns
4. Provide ONLY the translated timestamps, one per line

Translated timestamps:`

func (s *aiService) GenerateNotes(ctx context.Context, input string, format NotesFormat, languages []string) (*NotesOutput, error) {
	if format == "" {
		format = NotesStructured
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotesFormat, format)
	}
	if !s.generator.Configured() {
		return nil, repository.ErrGeneratorNotConfigured
	}

	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}
	data, err := s.videos.GetVideoData(ctx, input)
	if err != nil {
		return nil, err
	}
	captions, err := s.videos.GetCaptions(ctx, input, languages)
	if err != nil {
		return nil, err
	}

	notes, err := s.generator.Generate(ctx, repository.GenerateRequest{
		Prompt:    fmt.Sprintf(notesPrompts[format], data.Title, data.AuthorName, captions),
		Model:     s.model,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &NotesOutput{
		VideoID: id.String(),
		Title:   data.Title,
		Format:  format,
		Notes:   notes,
	}, nil
}

func (s *aiService) Translate(ctx context.Context, input, targetLanguage string, withTimestamps bool) (*TranslationOutput, error) {
	if !s.generator.Configured() {
		return nil, repository.ErrGeneratorNotConfigured
	}

	id, err := model.ParseVideoID(input)
	if err != nil {
		return nil, err
	}
	data, err := s.videos.GetVideoData(ctx, input)
	if err != nil {
		return nil, err
	}
	captions, err := s.videos.GetCaptions(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	translated, err := s.generator.Generate(ctx, repository.GenerateRequest{
		Prompt:    fmt.Sprintf(translationPrompt, targetLanguage, data.Title, data.AuthorName, captions),
		Model:     s.model,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		return nil, err
	}

	out := &TranslationOutput{
		VideoID:        id.String(),
		Title:          data.Title,
		TargetLanguage: targetLanguage,
		Transcript:     translated,
	}

	if withTimestamps {
		timestamps, err := s.videos.GetTimestamps(ctx, input, nil)
		if err != nil {
			return nil, err
		}
		if len(timestamps) > translatedTimestampSample {
			timestamps = timestamps[:translatedTimestampSample]
		}

		translatedLines, err := s.generator.Generate(ctx, repository.GenerateRequest{
			Prompt:    fmt.Sprintf(timestampTranslationPrompt, targetLanguage, strings.Join(timestamps, "\n")),
			Model:     s.fastModel,
			MaxTokens: 2000,
		})
		if err != nil {
			return nil, err
		}
		out.TranslatedTimestamps = strings.Split(strings.TrimSpace(translatedLines), "\n")
	}

	return out, nil
}
