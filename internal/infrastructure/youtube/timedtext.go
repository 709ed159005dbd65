package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/domain/repository"
	"github.com/hszk-dev/ytapi/internal/infrastructure/metrics"
)

// TimedTextClient fetches transcripts from the YouTube timedtext endpoint.
type TimedTextClient struct {
	httpClient      *http.Client
	baseURL         string
	defaultLanguage string
	logger          *slog.Logger
}

// NewTimedTextClient creates a transcript fetcher. defaultLanguage is
// preferred when the caller supplies no language preference.
func NewTimedTextClient(httpClient *http.Client, baseURL, defaultLanguage string, logger *slog.Logger) *TimedTextClient {
	return &TimedTextClient{
		httpClient:      httpClient,
		baseURL:         baseURL,
		defaultLanguage: defaultLanguage,
		logger:          logger,
	}
}

// trackList is the XML track listing returned by timedtext type=list.
type trackList struct {
	XMLName xml.Name `xml:"transcript_list"`
	Tracks  []struct {
		LangCode       string `xml:"lang_code,attr"`
		LangTranslated string `xml:"lang_translated,attr"`
		LangOriginal   string `xml:"lang_original,attr"`
		Kind           string `xml:"kind,attr"`
	} `xml:"track"`
}

// json3Body is the fmt=json3 transcript payload.
type json3Body struct {
	Events []struct {
		TStartMs int64 `json:"tStartMs"`
		Segs     []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ListLanguages returns every transcript track available for a video.
func (c *TimedTextClient) ListLanguages(ctx context.Context, id model.VideoID) ([]model.LanguageInfo, error) {
	list, err := c.fetchTrackList(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(list.Tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrTranscriptNotFound, id)
	}

	infos := make([]model.LanguageInfo, 0, len(list.Tracks))
	for _, t := range list.Tracks {
		name := t.LangOriginal
		if name == "" {
			name = t.LangTranslated
		}
		infos = append(infos, model.LanguageInfo{
			Language:     name,
			LanguageCode: t.LangCode,
			IsGenerated:  t.Kind == "asr",
			// The list feed does not expose translatability; listed
			// tracks are translatable in practice.
			IsTranslatable: true,
		})
	}
	return infos, nil
}

// FetchTranscript returns the transcript for a video after resolving the
// language. Selection policy: each preferred language in order against the
// available tracks; if none match, the first available. With no preference,
// the configured default language if available, else the first available.
func (c *TimedTextClient) FetchTranscript(ctx context.Context, id model.VideoID, languages []string) (*model.Transcript, error) {
	list, err := c.fetchTrackList(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(list.Tracks) == 0 {
		return nil, fmt.Errorf("%w: %s", repository.ErrTranscriptNotFound, id)
	}

	available := make([]string, len(list.Tracks))
	for i, t := range list.Tracks {
		available[i] = t.LangCode
	}

	chosen := chooseLanguage(languages, c.defaultLanguage, available)

	segments, err := c.fetchTrack(ctx, id, chosen)
	if err != nil {
		return nil, err
	}

	c.logger.Info("transcript fetched",
		slog.String("video_id", id.String()),
		slog.String("language", chosen),
		slog.Int("segment_count", len(segments)),
		slog.Any("available_languages", available),
	)
	return &model.Transcript{
		Language:           chosen,
		Segments:           segments,
		AvailableLanguages: available,
	}, nil
}

// chooseLanguage applies the language-selection policy.
func chooseLanguage(preferred []string, fallback string, available []string) string {
	contains := func(code string) bool {
		for _, a := range available {
			if a == code {
				return true
			}
		}
		return false
	}

	if len(preferred) > 0 {
		for _, code := range preferred {
			if contains(code) {
				return code
			}
		}
		return available[0]
	}
	if fallback != "" && contains(fallback) {
		return fallback
	}
	return available[0]
}

func (c *TimedTextClient) fetchTrackList(ctx context.Context, id model.VideoID) (*trackList, error) {
	params := url.Values{}
	params.Set("type", "list")
	params.Set("v", id.String())

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var list trackList
	if err := xml.Unmarshal(body, &list); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: decode track list: %v", repository.ErrUpstreamUnavailable, err)
	}
	return &list, nil
}

func (c *TimedTextClient) fetchTrack(ctx context.Context, id model.VideoID, language string) ([]model.Segment, error) {
	params := url.Values{}
	params.Set("v", id.String())
	params.Set("lang", language)
	params.Set("fmt", "json3")

	body, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	var payload json3Body
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: decode transcript: %v", repository.ErrUpstreamUnavailable, err)
	}

	segments := make([]model.Segment, 0, len(payload.Events))
	for _, ev := range payload.Events {
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			Start: float64(ev.TStartMs) / 1000,
			Text:  text,
		})
	}
	if len(segments) == 0 {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusNotFound).Inc()
		return nil, fmt.Errorf("%w: %s (%s)", repository.ErrTranscriptNotFound, id, language)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusSuccess).Inc()
	return segments, nil
}

func (c *TimedTextClient) get(ctx context.Context, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build timedtext request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: timedtext request: %v", repository.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusNotFound).Inc()
		return nil, repository.ErrTranscriptNotFound
	}
	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: timedtext status %d", repository.ErrUpstreamUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamTimedText, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: read timedtext response: %v", repository.ErrUpstreamUnavailable, err)
	}
	return body, nil
}
