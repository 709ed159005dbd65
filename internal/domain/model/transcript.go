package model

import (
	"fmt"
	"time"
)

// VideoData holds the descriptive fields returned by the metadata fetcher.
type VideoData struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	AuthorURL    string `json:"author_url"`
	Type         string `json:"type"`
	Height       int    `json:"height"`
	Width        int    `json:"width"`
	Version      string `json:"version"`
	ProviderName string `json:"provider_name"`
	ProviderURL  string `json:"provider_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Segment is a single timed transcript snippet.
type Segment struct {
	Start float64 `json:"start"`
	Text  string  `json:"text"`
}

// Timestamp renders the segment as "M:SS - text".
func (s Segment) Timestamp() string {
	start := int(s.Start)
	return fmt.Sprintf("%d:%02d - %s", start/60, start%60, s.Text)
}

// Transcript is the result of a transcript fetch: the resolved language, the
// full segment list and every language the video has transcripts for.
type Transcript struct {
	Language           string    `json:"language"`
	Segments           []Segment `json:"segments"`
	AvailableLanguages []string  `json:"available_languages"`
}

// Text joins all segments into a single plain-text transcript.
func (t *Transcript) Text() string {
	out := make([]byte, 0, 256)
	for i, seg := range t.Segments {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, seg.Text...)
	}
	return string(out)
}

// Timestamps renders every segment as a "M:SS - text" line.
func (t *Transcript) Timestamps() []string {
	lines := make([]string, len(t.Segments))
	for i, seg := range t.Segments {
		lines[i] = seg.Timestamp()
	}
	return lines
}

// LanguageInfo describes one available transcript track.
type LanguageInfo struct {
	Language       string `json:"language"`
	LanguageCode   string `json:"language_code"`
	IsGenerated    bool   `json:"is_generated"`
	IsTranslatable bool   `json:"is_translatable"`
}

// MetadataAttrs is the caller-supplied portion of a metadata update. Empty
// typed fields leave the stored value untouched; Extra keys are merged over
// previously stored extras without clearing unknown ones.
type MetadataAttrs struct {
	Title        string            `json:"title,omitempty"`
	Author       string            `json:"author,omitempty"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
}

// VideoMetadata is the per-video record maintained by the storage layer.
// Languages grows additively across saves; CreatedAt is set on the first
// write and never changes afterwards.
type VideoMetadata struct {
	ID           VideoID           `json:"video_id,omitempty"`
	Title        string            `json:"title,omitempty"`
	Author       string            `json:"author,omitempty"`
	ThumbnailURL string            `json:"thumbnail_url,omitempty"`
	Languages    []string          `json:"languages,omitempty"`
	Extra        map[string]string `json:"extra,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"last_updated"`
}

// HasLanguage reports whether the language set already contains code.
func (m *VideoMetadata) HasLanguage(code string) bool {
	for _, l := range m.Languages {
		if l == code {
			return true
		}
	}
	return false
}

// Merge applies an update to the record: the language (if any) is unioned
// into the set, non-empty typed attrs overwrite, Extra keys are added or
// overwritten individually, and UpdatedAt is refreshed.
func (m *VideoMetadata) Merge(language string, attrs MetadataAttrs, now time.Time) {
	if language != "" && !m.HasLanguage(language) {
		m.Languages = append(m.Languages, language)
	}
	if attrs.Title != "" {
		m.Title = attrs.Title
	}
	if attrs.Author != "" {
		m.Author = attrs.Author
	}
	if attrs.ThumbnailURL != "" {
		m.ThumbnailURL = attrs.ThumbnailURL
	}
	if len(attrs.Extra) > 0 {
		if m.Extra == nil {
			m.Extra = make(map[string]string, len(attrs.Extra))
		}
		for k, v := range attrs.Extra {
			m.Extra[k] = v
		}
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
