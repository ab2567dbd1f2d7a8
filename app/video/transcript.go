package video

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type TranscriptAcquirer struct {
	source        TranscriptSource
	preferredLang string
}

func NewTranscriptAcquirer(source TranscriptSource, preferredLang string) *TranscriptAcquirer {
	return &TranscriptAcquirer{
		source:        source,
		preferredLang: preferredLang,
	}
}

// Run tries the preferred language first and the default track second.
// When both fail the error wraps ErrTranscriptUnavailable and both causes.
func (a *TranscriptAcquirer) Run(ctx context.Context, videoID string) (string, error) {
	transcript, preferredErr := a.attempt(ctx, videoID, a.preferredLang)
	if preferredErr == nil {
		slog.Debug("Transcript acquired", "video_id", videoID, "lang", a.preferredLang, "length", len(transcript))
		return transcript, nil
	}

	slog.Debug("Preferred language transcript unavailable, trying default track",
		"video_id", videoID,
		"lang", a.preferredLang,
		"error", preferredErr)

	transcript, defaultErr := a.attempt(ctx, videoID, "")
	if defaultErr == nil {
		slog.Debug("Transcript acquired", "video_id", videoID, "lang", "default", "length", len(transcript))
		return transcript, nil
	}

	return "", fmt.Errorf("%w: %w", ErrTranscriptUnavailable, errors.Join(
		fmt.Errorf("lang %s: %w", a.preferredLang, preferredErr),
		fmt.Errorf("default track: %w", defaultErr),
	))
}

func (a *TranscriptAcquirer) attempt(ctx context.Context, videoID, lang string) (string, error) {
	fragments, err := a.source.Fetch(ctx, videoID, lang)
	if err != nil {
		return "", err
	}

	transcript := JoinFragments(fragments)
	if strings.TrimSpace(transcript) == "" {
		return "", ErrEmptyTranscript
	}

	return transcript, nil
}

// JoinFragments concatenates fragment texts in order, separated by single spaces.
func JoinFragments(fragments []Fragment) string {
	texts := make([]string, len(fragments))
	for i, fragment := range fragments {
		texts[i] = fragment.Text
	}
	return strings.Join(texts, " ")
}
