package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lysyi3m/yt-article/app/api"
	"github.com/lysyi3m/yt-article/app/article"
	"github.com/lysyi3m/yt-article/app/cfg"
	"github.com/lysyi3m/yt-article/app/pipeline"
	"github.com/lysyi3m/yt-article/app/share"
	"github.com/lysyi3m/yt-article/app/video"
)

func main() {
	// A missing .env file is fine; the environment and flags still apply.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting YT Article", "version", appCfg.Version, "port", appCfg.Port)

	profile, err := loadProfile(appCfg.ProfilePath)
	if err != nil {
		slog.Error("Failed to load article profile", "path", appCfg.ProfilePath, "error", err)
		os.Exit(1)
	}

	composer, err := article.NewComposer(profile, time.Now)
	if err != nil {
		slog.Error("Failed to create article composer", "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: appCfg.FetchTimeout}

	metadataFetcher := video.NewMetadataFetcher(httpClient, video.DefaultOEmbedEndpoint, appCfg.UserAgent, appCfg.FetchTimeout)
	captionSource := video.NewCaptionSource(httpClient, video.DefaultWatchBaseURL, appCfg.UserAgent, appCfg.FetchTimeout)
	transcriptAcquirer := video.NewTranscriptAcquirer(captionSource, appCfg.PreferredLanguage)

	processor := pipeline.NewProcessor(
		metadataFetcher,
		transcriptAcquirer,
		composer,
		share.NewTelegramReporter(appCfg.TelegramBotToken),
		share.NewFacebookReporter(appCfg.FacebookAccessToken),
	)

	apiHandler := api.NewHandler(processor, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.MaxBodyBytes)

	// Two caption attempts plus the metadata lookup must fit in one response.
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3*appCfg.FetchTimeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("YT Article shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func loadProfile(path string) (*article.Profile, error) {
	if path == "" {
		return article.DefaultProfile()
	}
	return article.LoadProfile(path)
}
