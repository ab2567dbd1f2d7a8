package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

type MetadataFetcher struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	timeout    time.Duration
}

func NewMetadataFetcher(httpClient *http.Client, endpoint, userAgent string, timeout time.Duration) *MetadataFetcher {
	if endpoint == "" {
		endpoint = DefaultOEmbedEndpoint
	}
	return &MetadataFetcher{
		httpClient: httpClient,
		endpoint:   endpoint,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

type oEmbedResponse struct {
	Title      string `json:"title"`
	AuthorName string `json:"author_name"`
}

// Run never fails: any lookup error yields FallbackMetadata.
func (f *MetadataFetcher) Run(ctx context.Context, videoID string) Metadata {
	metadata, err := f.fetch(ctx, videoID)
	if err != nil {
		slog.Warn("Metadata lookup failed, using fallback", "video_id", videoID, "error", err)
		return FallbackMetadata
	}

	slog.Debug("Metadata fetched", "video_id", videoID, "title", metadata.Title, "author", metadata.Author)
	return metadata
}

func (f *MetadataFetcher) fetch(ctx context.Context, videoID string) (Metadata, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("url", WatchURL(videoID))
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Metadata{}, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var payload oEmbedResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}

	title := strings.TrimSpace(payload.Title)
	author := strings.TrimSpace(payload.AuthorName)
	if title == "" || author == "" {
		return Metadata{}, fmt.Errorf("metadata is incomplete: title=%q author=%q", title, author)
	}

	return Metadata{Title: title, Author: author}, nil
}
