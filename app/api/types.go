package api

import (
	"context"

	"github.com/lysyi3m/yt-article/app/pipeline"
	"github.com/lysyi3m/yt-article/app/share"
)

type ProcessorInterface interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

var _ ProcessorInterface = (*pipeline.Processor)(nil)

type Handler struct {
	processor ProcessorInterface
	version   string
}

type processRequest struct {
	YouTubeURL     string   `json:"youtubeUrl"`
	TelegramGroups []string `json:"telegramGroups"`
	FacebookGroups []string `json:"facebookGroups"`
}

type sharingResponse struct {
	Telegram []share.Result `json:"telegram"`
	Facebook []share.Result `json:"facebook"`
}

type seoResponse struct {
	AppliedTechniques []string `json:"appliedTechniques"`
}

type processResponse struct {
	Success          bool            `json:"success"`
	RequestID        string          `json:"requestId,omitempty"`
	VideoID          string          `json:"videoId"`
	VideoTitle       string          `json:"videoTitle"`
	ChannelName      string          `json:"channelName"`
	Article          string          `json:"article"`
	WordCount        int             `json:"wordCount"`
	Sharing          sharingResponse `json:"sharing"`
	SEOOptimizations seoResponse     `json:"seoOptimizations"`
}
