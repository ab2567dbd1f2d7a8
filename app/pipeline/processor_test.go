package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/yt-article/app/article"
	"github.com/lysyi3m/yt-article/app/share"
	"github.com/lysyi3m/yt-article/app/video"
)

type mockMetadataFetcher struct {
	metadata video.Metadata
	calls    atomic.Int32
}

func (m *mockMetadataFetcher) Run(ctx context.Context, videoID string) video.Metadata {
	m.calls.Add(1)
	return m.metadata
}

type mockTranscriptAcquirer struct {
	transcript string
	err        error
	calls      atomic.Int32
	videoID    atomic.Value
}

func (m *mockTranscriptAcquirer) Run(ctx context.Context, videoID string) (string, error) {
	m.calls.Add(1)
	m.videoID.Store(videoID)
	if m.err != nil {
		return "", m.err
	}
	return m.transcript, nil
}

type failingComposer struct {
	ComposerInterface
}

func (f failingComposer) Run(in article.Input) (article.Article, error) {
	return article.Article{}, errors.New("template exploded")
}

func newTestComposer(t *testing.T) *article.Composer {
	t.Helper()

	profile, err := article.DefaultProfile()
	if err != nil {
		t.Fatalf("Failed to load default profile: %v", err)
	}
	composer, err := article.NewComposer(profile, func() time.Time {
		return time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	})
	if err != nil {
		t.Fatalf("Failed to create composer: %v", err)
	}
	return composer
}

func newTestProcessor(t *testing.T, metadata *mockMetadataFetcher, transcripts *mockTranscriptAcquirer) *Processor {
	t.Helper()
	return NewProcessor(metadata, transcripts, newTestComposer(t),
		share.NewTelegramReporter(""), share.NewFacebookReporter(""))
}

func TestProcessor_Success(t *testing.T) {
	metadata := &mockMetadataFetcher{metadata: video.Metadata{Title: "Test Video", Author: "Test Channel"}}
	transcripts := &mockTranscriptAcquirer{transcript: "Hello world"}
	processor := newTestProcessor(t, metadata, transcripts)

	result, err := processor.Run(context.Background(), Request{
		YouTubeURL:     "https://www.youtube.com/watch?v=abc123",
		TelegramGroups: []string{"@g1", "@g2"},
		FacebookGroups: []string{"page"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if got := transcripts.videoID.Load(); got != "abc123" {
		t.Errorf("Expected transcript lookup for 'abc123', got '%v'", got)
	}
	if result.VideoID != "abc123" {
		t.Errorf("Expected video id 'abc123', got '%s'", result.VideoID)
	}
	if result.VideoTitle != "Test Video" {
		t.Errorf("Expected title 'Test Video', got '%s'", result.VideoTitle)
	}
	if result.ChannelName != "Test Channel" {
		t.Errorf("Expected channel 'Test Channel', got '%s'", result.ChannelName)
	}

	padded := "Hello world Hello world Hello world Hello world Hello world Hello world"
	checks := []string{
		"# Test Video\n",
		"## Desenvolvimento do Tema\n\n" + padded + "\n",
		"Visite o canal Test Channel no YouTube",
		"**Link do vídeo:** https://www.youtube.com/watch?v=abc123\n",
	}
	for _, check := range checks {
		if !strings.Contains(result.Article, check) {
			t.Errorf("Expected article to contain %q", check)
		}
	}

	if result.WordCount != len(strings.Fields(result.Article)) {
		t.Errorf("Expected word count %d, got %d", len(strings.Fields(result.Article)), result.WordCount)
	}

	if len(result.Sharing.Telegram) != 2 || len(result.Sharing.Facebook) != 1 {
		t.Fatalf("Expected 2 telegram and 1 facebook results, got %d and %d",
			len(result.Sharing.Telegram), len(result.Sharing.Facebook))
	}
	if result.Sharing.Telegram[1].Group != "@g2" || result.Sharing.Telegram[1].Success {
		t.Errorf("Unexpected telegram result: %+v", result.Sharing.Telegram[1])
	}
	if result.Sharing.Facebook[0].Message != share.FacebookNotConfiguredMessage {
		t.Errorf("Unexpected facebook message: %s", result.Sharing.Facebook[0].Message)
	}

	if len(result.AppliedTechniques) != 10 {
		t.Errorf("Expected 10 applied techniques, got %d", len(result.AppliedTechniques))
	}
}

func TestProcessor_MetadataFallback(t *testing.T) {
	metadata := &mockMetadataFetcher{metadata: video.FallbackMetadata}
	transcripts := &mockTranscriptAcquirer{transcript: strings.Repeat("palavra ", 100)}
	processor := newTestProcessor(t, metadata, transcripts)

	result, err := processor.Run(context.Background(), Request{YouTubeURL: "https://youtu.be/xyz"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if result.VideoTitle != "Vídeo do YouTube" || result.ChannelName != "Canal" {
		t.Errorf("Expected fallback metadata, got '%s' / '%s'", result.VideoTitle, result.ChannelName)
	}
	if !strings.HasPrefix(result.Article, "# Vídeo do YouTube\n") {
		t.Error("Expected article heading to use the fallback title")
	}
	if len(result.Sharing.Telegram) != 0 || result.Sharing.Telegram == nil {
		t.Errorf("Expected empty non-nil telegram results, got %v", result.Sharing.Telegram)
	}
}

func TestProcessor_TranscriptUnavailable(t *testing.T) {
	metadata := &mockMetadataFetcher{metadata: video.Metadata{Title: "Test Video", Author: "Test Channel"}}
	transcripts := &mockTranscriptAcquirer{err: errors.Join(video.ErrTranscriptUnavailable, video.ErrNoCaptions)}
	processor := newTestProcessor(t, metadata, transcripts)

	result, err := processor.Run(context.Background(), Request{YouTubeURL: "https://www.youtube.com/watch?v=abc123"})

	if result != nil {
		t.Errorf("Expected no result, got %+v", result)
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got: %v", err)
	}
	if validationErr.Message != MsgTranscriptUnavailable {
		t.Errorf("Expected transcript message, got '%s'", validationErr.Message)
	}
	if !strings.Contains(err.Error(), "legendas") {
		t.Errorf("Expected message to mention captions, got '%s'", err.Error())
	}
	if !errors.Is(err, video.ErrNoCaptions) {
		t.Error("Expected underlying cause to be preserved")
	}
}

func TestProcessor_InvalidInputMakesNoCalls(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"empty", "", MsgURLRequired},
		{"blank", "   ", MsgURLRequired},
		{"not youtube", "https://example.com/video", MsgURLInvalid},
		{"garbage", "not a url", MsgURLInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metadata := &mockMetadataFetcher{}
			transcripts := &mockTranscriptAcquirer{}
			processor := newTestProcessor(t, metadata, transcripts)

			_, err := processor.Run(context.Background(), Request{YouTubeURL: tt.url})

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got: %v", err)
			}
			if validationErr.Message != tt.message {
				t.Errorf("Expected message '%s', got '%s'", tt.message, validationErr.Message)
			}
			if metadata.calls.Load() != 0 || transcripts.calls.Load() != 0 {
				t.Errorf("Expected no service calls, got metadata=%d transcript=%d",
					metadata.calls.Load(), transcripts.calls.Load())
			}
		})
	}
}

func TestProcessor_UnexpectedError(t *testing.T) {
	metadata := &mockMetadataFetcher{metadata: video.Metadata{Title: "T", Author: "A"}}
	transcripts := &mockTranscriptAcquirer{transcript: "text"}
	processor := NewProcessor(metadata, transcripts, failingComposer{},
		share.NewTelegramReporter(""), share.NewFacebookReporter(""))

	_, err := processor.Run(context.Background(), Request{YouTubeURL: "https://youtu.be/xyz"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		t.Errorf("Expected a non-validation error, got: %v", err)
	}
}

func TestProcessor_OtherTranscriptErrorIsUnexpected(t *testing.T) {
	metadata := &mockMetadataFetcher{}
	transcripts := &mockTranscriptAcquirer{err: context.Canceled}
	processor := newTestProcessor(t, metadata, transcripts)

	_, err := processor.Run(context.Background(), Request{YouTubeURL: "https://youtu.be/xyz"})

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		t.Errorf("Expected a non-validation error, got: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestProcessor_CanceledRequestIsNotValidationError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	metadata := &mockMetadataFetcher{metadata: video.FallbackMetadata}
	transcripts := &mockTranscriptAcquirer{err: errors.Join(video.ErrTranscriptUnavailable, context.Canceled)}
	processor := newTestProcessor(t, metadata, transcripts)

	_, err := processor.Run(ctx, Request{YouTubeURL: "https://youtu.be/xyz"})

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		t.Errorf("Expected a non-validation error for a canceled request, got: %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}
