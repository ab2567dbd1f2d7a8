package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server
	Port         string `long:"port" env:"PORT" default:"3000" description:"HTTP server port"`
	MaxBodyBytes int64  `long:"max-body-bytes" env:"MAX_BODY_BYTES" default:"1048576" description:"Maximum accepted request body size in bytes"`

	// Outbound fetching
	UserAgent         string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36" description:"User agent string for outbound requests"`
	FetchTimeout      int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"Timeout in seconds for each outbound request"`
	PreferredLanguage string `long:"preferred-language" env:"PREFERRED_LANGUAGE" default:"pt" description:"Caption language tried before the default track"`

	// Article
	ProfilePath string `long:"profile" env:"PROFILE_PATH" description:"Path to a custom article profile YAML (embedded pt-BR profile when empty)"`

	// Distribution
	TelegramBotToken    string `long:"telegram-bot-token" env:"TELEGRAM_BOT_TOKEN" description:"Telegram bot token"`
	FacebookAccessToken string `long:"facebook-access-token" env:"FACEBOOK_ACCESS_TOKEN" description:"Facebook access token"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"America/Sao_Paulo" description:"Timezone for article dates (e.g., UTC, America/Sao_Paulo)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validate(&raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Cfg{
		Port:                raw.Port,
		MaxBodyBytes:        raw.MaxBodyBytes,
		UserAgent:           raw.UserAgent,
		FetchTimeout:        time.Duration(raw.FetchTimeout) * time.Second,
		PreferredLanguage:   raw.PreferredLanguage,
		ProfilePath:         raw.ProfilePath,
		TelegramBotToken:    raw.TelegramBotToken,
		FacebookAccessToken: raw.FacebookAccessToken,
		Timezone:            raw.Timezone,
		Debug:               raw.Debug,
		Version:             GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func validate(raw *rawCfg) error {
	if raw.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %d", raw.FetchTimeout)
	}
	if raw.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", raw.MaxBodyBytes)
	}
	if raw.PreferredLanguage == "" {
		return fmt.Errorf("preferred language is required")
	}
	if _, err := language.Parse(raw.PreferredLanguage); err != nil {
		return fmt.Errorf("preferred language %q: %w", raw.PreferredLanguage, err)
	}
	return nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
