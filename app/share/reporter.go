package share

import (
	"context"
	"log/slog"
)

const (
	TelegramNotConfiguredMessage = "API do Telegram requer configuração de bot token. Configure TELEGRAM_BOT_TOKEN nas variáveis de ambiente."
	FacebookNotConfiguredMessage = "API do Facebook requer access token. Configure FACEBOOK_ACCESS_TOKEN nas variáveis de ambiente."
)

type Result struct {
	Group   string `json:"group"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Reporter returns one Result per destination group, in input order.
type Reporter interface {
	Run(ctx context.Context, groups []string, message string) []Result
}

var (
	_ Reporter = (*TelegramReporter)(nil)
	_ Reporter = (*FacebookReporter)(nil)
)

// TelegramReporter does not deliver yet; every group is reported as not configured.
type TelegramReporter struct {
	botToken string
}

func NewTelegramReporter(botToken string) *TelegramReporter {
	return &TelegramReporter{botToken: botToken}
}

func (r *TelegramReporter) Run(ctx context.Context, groups []string, message string) []Result {
	if r.botToken != "" && len(groups) > 0 {
		slog.Debug("Telegram bot token is set but delivery is not implemented", "groups", len(groups))
	}
	return notConfigured(groups, TelegramNotConfiguredMessage)
}

// FacebookReporter does not deliver yet; every group is reported as not configured.
type FacebookReporter struct {
	accessToken string
}

func NewFacebookReporter(accessToken string) *FacebookReporter {
	return &FacebookReporter{accessToken: accessToken}
}

func (r *FacebookReporter) Run(ctx context.Context, groups []string, message string) []Result {
	if r.accessToken != "" && len(groups) > 0 {
		slog.Debug("Facebook access token is set but delivery is not implemented", "groups", len(groups))
	}
	return notConfigured(groups, FacebookNotConfiguredMessage)
}

func notConfigured(groups []string, message string) []Result {
	results := make([]Result, 0, len(groups))
	for _, group := range groups {
		results = append(results, Result{
			Group:   group,
			Success: false,
			Message: message,
		})
	}
	return results
}
