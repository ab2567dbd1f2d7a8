package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/yt-article/app/article"
	"github.com/lysyi3m/yt-article/app/share"
	"github.com/lysyi3m/yt-article/app/video"
)

type Processor struct {
	metadata    MetadataFetcherInterface
	transcripts TranscriptAcquirerInterface
	composer    ComposerInterface
	telegram    share.Reporter
	facebook    share.Reporter
}

func NewProcessor(metadata MetadataFetcherInterface, transcripts TranscriptAcquirerInterface,
	composer ComposerInterface, telegram, facebook share.Reporter) *Processor {
	return &Processor{
		metadata:    metadata,
		transcripts: transcripts,
		composer:    composer,
		telegram:    telegram,
		facebook:    facebook,
	}
}

// Run turns a video URL into an article. URL problems and a missing
// transcript are reported as *ValidationError before anything is composed.
func (p *Processor) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.YouTubeURL) == "" {
		return nil, &ValidationError{Message: MsgURLRequired}
	}

	ref, ok := video.NewReference(req.YouTubeURL)
	if !ok {
		return nil, &ValidationError{Message: MsgURLInvalid}
	}

	var (
		metadata   video.Metadata
		transcript string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		metadata = p.metadata.Run(gctx, ref.VideoID)
		return nil
	})
	g.Go(func() error {
		var err error
		transcript, err = p.transcripts.Run(gctx, ref.VideoID)
		return err
	})

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("request aborted: %w", ctxErr)
		}
		if errors.Is(err, video.ErrTranscriptUnavailable) {
			slog.Warn("Transcript unavailable", "video_id", ref.VideoID, "error", err)
			return nil, &ValidationError{Message: MsgTranscriptUnavailable, Err: err}
		}
		return nil, err
	}

	normalized := video.Normalize(transcript)

	composed, err := p.composer.Run(article.Input{
		Transcript: normalized,
		Title:      metadata.Title,
		URL:        ref.RawURL,
		Author:     metadata.Author,
	})
	if err != nil {
		return nil, err
	}

	message, err := p.composer.ShareMessage(metadata.Title, ref.RawURL, composed.WordCount)
	if err != nil {
		return nil, fmt.Errorf("failed to build share message: %w", err)
	}

	sharing := Sharing{
		Telegram: p.telegram.Run(ctx, req.TelegramGroups, message),
		Facebook: p.facebook.Run(ctx, req.FacebookGroups, message),
	}

	slog.Info("Article generated",
		"video_id", ref.VideoID,
		"title", metadata.Title,
		"transcript_length", len(transcript),
		"word_count", composed.WordCount)

	return &Result{
		VideoID:           ref.VideoID,
		VideoTitle:        metadata.Title,
		ChannelName:       metadata.Author,
		Article:           composed.Text,
		WordCount:         composed.WordCount,
		Sharing:           sharing,
		AppliedTechniques: p.composer.AppliedTechniques(),
	}, nil
}
