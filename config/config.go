// Package config reads the service settings from the environment. A .env
// file in the working directory is loaded first when present, variables that
// are already set win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	OllamaBaseURL  string
	OllamaModel    string
	OllamaAPIKey   string
	LLMTemperature float32
	LLMTimeout     time.Duration

	TranscriptWarnChars int
	TranscriptMaxChars  int

	YoutubeAPIKey    string
	YoutubeLang      string
	YoutubeLocation  string
	YoutubeRateLimit float64
	YoutubeRateBurst int

	CORSAllowedOrigins string
}

// Load reads .env, when there is one, and then the environment.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() (Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.Port, err = intParam("API_PORT", 3000); err != nil {
		return Config{}, err
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid API_PORT: port must be between 1 and 65535")
	}

	cfg.LogLevel = strings.ToLower(getParam("LOG_LEVEL", "info"))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(getParam("LOG_FORMAT", "text"))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	cfg.OllamaBaseURL = getParam("OLLAMA_BASE_URL", "http://localhost:11434/v1")
	cfg.OllamaModel = getParam("OLLAMA_MODEL", "llama3.2")
	cfg.OllamaAPIKey = getParam("OLLAMA_API_KEY", "ollama")

	temp, err := strconv.ParseFloat(getParam("LLM_TEMPERATURE", "0.3"), 32)
	if err != nil {
		return Config{}, fmt.Errorf("invalid LLM_TEMPERATURE: %w", err)
	}
	cfg.LLMTemperature = float32(temp)
	if cfg.LLMTimeout, err = time.ParseDuration(getParam("LLM_TIMEOUT", "0")); err != nil {
		return Config{}, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}

	if cfg.TranscriptWarnChars, err = intParam("TRANSCRIPT_WARN_CHARS", 32000); err != nil {
		return Config{}, err
	}
	if cfg.TranscriptMaxChars, err = intParam("TRANSCRIPT_MAX_CHARS", 0); err != nil {
		return Config{}, err
	}

	cfg.YoutubeAPIKey = getParam("YOUTUBE_API_KEY", "")
	cfg.YoutubeLang = getParam("YOUTUBE_LANG", "en")
	cfg.YoutubeLocation = getParam("YOUTUBE_LOCATION", "US")
	if cfg.YoutubeRateLimit, err = strconv.ParseFloat(getParam("YOUTUBE_RATE_LIMIT", "5"), 64); err != nil {
		return Config{}, fmt.Errorf("invalid YOUTUBE_RATE_LIMIT: %w", err)
	}
	if cfg.YoutubeRateLimit <= 0 {
		return Config{}, fmt.Errorf("invalid YOUTUBE_RATE_LIMIT: must be above 0")
	}
	if cfg.YoutubeRateBurst, err = intParam("YOUTUBE_RATE_BURST", 5); err != nil {
		return Config{}, err
	}
	if cfg.YoutubeRateBurst < 1 {
		return Config{}, fmt.Errorf("invalid YOUTUBE_RATE_BURST: must be at least 1")
	}

	cfg.CORSAllowedOrigins = getParam("CORS_ALLOWED_ORIGINS", "*")

	return cfg, nil
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}

func intParam(param string, def int) (int, error) {
	val, ok := os.LookupEnv(param)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", param, err)
	}
	return i, nil
}
