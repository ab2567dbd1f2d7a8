package video

import (
	"context"
	"errors"
)

const (
	FallbackTitle  = "Vídeo do YouTube"
	FallbackAuthor = "Canal"
)

var (
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	ErrVideoUnavailable      = errors.New("video unavailable")
	ErrNoCaptions            = errors.New("video has no captions")
	ErrLanguageNotAvailable  = errors.New("no captions in requested language")
	ErrEmptyTranscript       = errors.New("transcript is empty")
)

// Reference is a user supplied URL together with the video id extracted from it.
type Reference struct {
	RawURL  string
	VideoID string
}

type Metadata struct {
	Title  string
	Author string
}

// FallbackMetadata is returned whenever the metadata lookup fails.
var FallbackMetadata = Metadata{Title: FallbackTitle, Author: FallbackAuthor}

// Fragment is one timed caption unit in source order.
type Fragment struct {
	Text string
}

// TranscriptSource fetches caption fragments. An empty lang selects the
// platform default track.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID, lang string) ([]Fragment, error)
}

var _ TranscriptSource = (*CaptionSource)(nil)
