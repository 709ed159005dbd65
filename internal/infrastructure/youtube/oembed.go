// Package youtube implements the upstream fetchers for video metadata
// (oEmbed) and transcripts (timedtext) over a shared pooled HTTP client.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hszk-dev/ytapi/internal/domain/model"
	"github.com/hszk-dev/ytapi/internal/domain/repository"
	"github.com/hszk-dev/ytapi/internal/infrastructure/metrics"
)

// OEmbedClient fetches video metadata from the YouTube oEmbed endpoint.
type OEmbedClient struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewOEmbedClient creates an oEmbed metadata fetcher. httpClient is the
// process-wide shared client.
func NewOEmbedClient(httpClient *http.Client, baseURL string, logger *slog.Logger) *OEmbedClient {
	return &OEmbedClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// FetchVideoData returns the oEmbed metadata for a video.
func (c *OEmbedClient) FetchVideoData(ctx context.Context, id model.VideoID) (*model.VideoData, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("url", id.WatchURL())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build oembed request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOEmbed, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: oembed request: %v", repository.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound,
		// oEmbed answers 400/401 for private and malformed video IDs.
		resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized:
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOEmbed, metrics.UpstreamStatusNotFound).Inc()
		return nil, fmt.Errorf("%w: %s", repository.ErrVideoNotFound, id)
	case resp.StatusCode != http.StatusOK:
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOEmbed, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: oembed status %d", repository.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var data model.VideoData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOEmbed, metrics.UpstreamStatusError).Inc()
		return nil, fmt.Errorf("%w: decode oembed response: %v", repository.ErrUpstreamUnavailable, err)
	}

	c.logger.Info("video data fetched",
		slog.String("video_id", id.String()),
		slog.String("title", data.Title),
	)
	metrics.UpstreamRequestsTotal.WithLabelValues(metrics.UpstreamOEmbed, metrics.UpstreamStatusSuccess).Inc()
	return &data, nil
}
