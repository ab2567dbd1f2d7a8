package pipeline

import (
	"context"

	"github.com/lysyi3m/yt-article/app/article"
	"github.com/lysyi3m/yt-article/app/share"
	"github.com/lysyi3m/yt-article/app/video"
)

const (
	MsgURLRequired           = "URL do YouTube é obrigatória"
	MsgURLInvalid            = "URL do YouTube inválida"
	MsgTranscriptUnavailable = "Não foi possível obter a transcrição do vídeo. Verifique se o vídeo possui legendas disponíveis."
)

type MetadataFetcherInterface interface {
	Run(ctx context.Context, videoID string) video.Metadata
}

type TranscriptAcquirerInterface interface {
	Run(ctx context.Context, videoID string) (string, error)
}

type ComposerInterface interface {
	Run(in article.Input) (article.Article, error)
	ShareMessage(title, url string, wordCount int) (string, error)
	AppliedTechniques() []string
}

var (
	_ MetadataFetcherInterface    = (*video.MetadataFetcher)(nil)
	_ TranscriptAcquirerInterface = (*video.TranscriptAcquirer)(nil)
	_ ComposerInterface           = (*article.Composer)(nil)
)

type Request struct {
	YouTubeURL     string
	TelegramGroups []string
	FacebookGroups []string
}

type Sharing struct {
	Telegram []share.Result
	Facebook []share.Result
}

type Result struct {
	VideoID           string
	VideoTitle        string
	ChannelName       string
	Article           string
	WordCount         int
	Sharing           Sharing
	AppliedTechniques []string
}

// ValidationError is a user-facing failure caused by the request itself.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
