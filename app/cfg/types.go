package cfg

import "time"

type Cfg struct {
	// HTTP server
	Port         string
	MaxBodyBytes int64

	// Outbound fetching
	UserAgent         string
	FetchTimeout      time.Duration
	PreferredLanguage string

	// Article
	ProfilePath string

	// Distribution
	TelegramBotToken    string
	FacebookAccessToken string

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
