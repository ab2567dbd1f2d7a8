package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lysyi3m/yt-article/app/pipeline"
)

const msgProcessingFailed = "Erro ao processar a solicitação"

func NewHandler(processor ProcessorInterface, version string) *Handler {
	return &Handler{
		processor: processor,
		version:   version,
	}
}

func (h *Handler) Process(c *gin.Context) {
	requestID := c.GetString(requestIDKey)

	var body processRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Error("Invalid request body", "request_id", requestID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}

	result, err := h.processor.Run(c.Request.Context(), pipeline.Request{
		YouTubeURL:     body.YouTubeURL,
		TelegramGroups: body.TelegramGroups,
		FacebookGroups: body.FacebookGroups,
	})
	if err != nil {
		var validationErr *pipeline.ValidationError
		if errors.As(err, &validationErr) {
			slog.Info("Request rejected", "request_id", requestID, "url", body.YouTubeURL, "reason", validationErr.Message)
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
			return
		}

		slog.Error("Error processing request", "request_id", requestID, "url", body.YouTubeURL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, processResponse{
		Success:     true,
		RequestID:   requestID,
		VideoID:     result.VideoID,
		VideoTitle:  result.VideoTitle,
		ChannelName: result.ChannelName,
		Article:     result.Article,
		WordCount:   result.WordCount,
		Sharing: sharingResponse{
			Telegram: result.Sharing.Telegram,
			Facebook: result.Sharing.Facebook,
		},
		SEOOptimizations: seoResponse{
			AppliedTechniques: result.AppliedTechniques,
		},
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) GetInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":     "YT Article",
		"version":     h.version,
		"description": "Turns YouTube video transcripts into long-form articles",
		"endpoints": map[string]string{
			"process": "POST /api/process",
			"health":  "GET /health",
		},
	})
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return msgProcessingFailed
	}
	return err.Error()
}
