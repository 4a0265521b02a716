package process

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOllamaURL   = "http://localhost:11434/v1"
	DefaultModel       = "llama3.2"
	DefaultTemperature = 0.3
)

var ErrNoChoices = errors.New("llm returned no choices")

type OpenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	// Timeout bounds a single completion. Zero means no bound.
	Timeout time.Duration
}

// OpenAISummarizer talks to any OpenAI compatible chat completion endpoint.
// By default that is the one Ollama exposes locally.
type OpenAISummarizer struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

func NewOpenAISummarizer(cfg OpenAIConfig) *OpenAISummarizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	} else {
		clientCfg.BaseURL = DefaultOllamaURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAISummarizer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

func (sum *OpenAISummarizer) Name() string {
	return "openai summarizer"
}

func (sum *OpenAISummarizer) Summarize(ctx context.Context, transcript string) (string, error) {
	if sum.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sum.timeout)
		defer cancel()
	}

	resp, err := sum.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       sum.model,
			Temperature: sum.temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: RenderPrompt(transcript),
				},
			},
		})

	if err != nil {
		return "", fmt.Errorf("failed to fetch summary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[len(resp.Choices)-1].Message.Content, nil
}
