package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ewintr.nl/tubesum/config"
	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/handler"
	"ewintr.nl/tubesum/process"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

var version = "dev"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("invalid configuration", slog.String("err", err.Error()))
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel, cfg.LogFormat)

	innertube := fetch.NewInnertube(fetch.InnertubeConfig{
		Lang:     cfg.YoutubeLang,
		Location: cfg.YoutubeLocation,
		Limiter:  rate.NewLimiter(rate.Limit(cfg.YoutubeRateLimit), cfg.YoutubeRateBurst),
	}, logger)

	var metadata fetch.MetadataFetcher
	if cfg.YoutubeAPIKey != "" {
		yt, err := fetch.NewYoutube(ctx, cfg.YoutubeAPIKey)
		if err != nil {
			logger.Error("unable to create youtube service", slog.String("err", err.Error()))
			os.Exit(1)
		}
		metadata = yt
	}

	llm := process.NewOpenAISummarizer(process.OpenAIConfig{
		BaseURL:     cfg.OllamaBaseURL,
		APIKey:      cfg.OllamaAPIKey,
		Model:       cfg.OllamaModel,
		Temperature: cfg.LLMTemperature,
		Timeout:     cfg.LLMTimeout,
	})

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: handler.NewServer(handler.ServerConfig{
			Transcriber: process.NewTranscriber(innertube, metadata, logger),
			Summarizer: process.NewSummary(llm, process.SummaryConfig{
				WarnChars: cfg.TranscriptWarnChars,
				MaxChars:  cfg.TranscriptMaxChars,
			}, logger),
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Version:        version,
			Logger:         logger,
		}),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
	}()
	logger.Info("http server started",
		slog.Int("port", cfg.Port),
		slog.String("model", cfg.OllamaModel),
		slog.String("llm", cfg.OllamaBaseURL),
		slog.Bool("metadata", metadata != nil),
	)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", slog.String("err", err.Error()))
	}

	logger.Info("service stopped")
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
