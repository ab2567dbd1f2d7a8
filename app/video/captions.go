package video

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultWatchBaseURL = "https://www.youtube.com"

	maxPageBytes     = 8 << 20
	maxTimedTextSize = 2 << 20
)

var playerResponseRE = regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*\{`)

// CaptionSource reads caption tracks from the public watch page and
// downloads the selected track as timedtext XML.
type CaptionSource struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewCaptionSource(httpClient *http.Client, baseURL, userAgent string, timeout time.Duration) *CaptionSource {
	if baseURL == "" {
		baseURL = DefaultWatchBaseURL
	}
	return &CaptionSource{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Text string `xml:",chardata"`
}

func (c *CaptionSource) Fetch(ctx context.Context, videoID, lang string) ([]Fragment, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("v", videoID)

	page, err := c.get(ctx, c.baseURL+"/watch?"+query.Encode(), lang, maxPageBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch page: %w", err)
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return nil, err
	}

	if status := player.PlayabilityStatus; status != nil && status.Status != "" && status.Status != "OK" {
		return nil, fmt.Errorf("%w: %s %s", ErrVideoUnavailable, status.Status, status.Reason)
	}

	if player.Captions == nil || len(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks) == 0 {
		return nil, ErrNoCaptions
	}

	track, err := pickTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, lang)
	if err != nil {
		return nil, err
	}

	slog.Debug("Caption track selected", "video_id", videoID, "lang", track.LanguageCode, "kind", track.Kind)

	body, err := c.get(ctx, track.BaseURL, "", maxTimedTextSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timedtext: %w", err)
	}

	fragments, err := parseTimedText(body)
	if err != nil {
		return nil, err
	}

	if len(fragments) == 0 {
		return nil, ErrEmptyTranscript
	}

	return fragments, nil
}

func (c *CaptionSource) get(ctx context.Context, target, lang string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// parsePlayerResponse locates the inline script assigning ytInitialPlayerResponse
// and decodes the first JSON object that follows it.
func parsePlayerResponse(page []byte) (*playerResponse, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("failed to parse watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		if loc := playerResponseRE.FindStringIndex(text); loc != nil {
			raw = text[loc[1]-1:]
			return false
		}
		return true
	})

	if raw == "" {
		return nil, fmt.Errorf("%w: player response not found in watch page", ErrVideoUnavailable)
	}

	var player playerResponse
	if err := json.NewDecoder(strings.NewReader(raw)).Decode(&player); err != nil {
		return nil, fmt.Errorf("failed to decode player response: %w", err)
	}

	return &player, nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack returns the first usable track when lang is empty. Otherwise it
// returns a track whose language matches lang, preferring manual captions.
func pickTrack(tracks []captionTrack, lang string) (captionTrack, error) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" && !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, fmt.Errorf("%w: no track can be fetched server-side", ErrNoCaptions)
	}

	if lang == "" {
		return usable[0], nil
	}

	want, err := language.Parse(lang)
	if err != nil {
		return captionTrack{}, fmt.Errorf("invalid language %q: %w", lang, err)
	}

	for _, manual := range []bool{true, false} {
		for _, t := range usable {
			if (t.Kind != "asr") != manual {
				continue
			}
			if languageMatches(want, t.LanguageCode) {
				return t, nil
			}
		}
	}

	return captionTrack{}, fmt.Errorf("%w: %s", ErrLanguageNotAvailable, lang)
}

func languageMatches(want language.Tag, code string) bool {
	have, err := language.Parse(code)
	if err != nil {
		return false
	}
	_, _, confidence := language.NewMatcher([]language.Tag{have}).Match(want)
	return confidence >= language.High
}

func parseTimedText(data []byte) ([]Fragment, error) {
	var tt timedText
	if err := xml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to parse timedtext XML: %w", err)
	}

	fragments := make([]Fragment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if text := cleanCaption(line.Text); text != "" {
			fragments = append(fragments, Fragment{Text: text})
		}
	}

	return fragments, nil
}

// cleanCaption undoes the double entity encoding of timedtext payloads and
// collapses whitespace.
func cleanCaption(text string) string {
	text = html.UnescapeString(text)
	text = norm.NFC.String(text)
	return strings.Join(strings.Fields(text), " ")
}
