package process_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ewintr.nl/tubesum/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAISummarizer(t *testing.T) {
	var got chatRequest
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"llama3.2","choices":[{"index":0,"message":{"role":"assistant","content":"# Summary\n\nHello world"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	sum := process.NewOpenAISummarizer(process.OpenAIConfig{
		BaseURL:     srv.URL + "/v1",
		APIKey:      "ollama",
		Model:       process.DefaultModel,
		Temperature: process.DefaultTemperature,
	})

	summary, err := sum.Summarize(context.Background(), "Hello world")
	require.NoError(t, err)
	assert.Equal(t, "# Summary\n\nHello world", summary)
	assert.Equal(t, "/v1/chat/completions", gotPath)
	assert.Equal(t, "Bearer ollama", gotAuth)
	assert.Equal(t, "llama3.2", got.Model)
	assert.InDelta(t, 0.3, got.Temperature, 0.0001)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, process.RenderPrompt("Hello world"), got.Messages[0].Content)
}

func TestOpenAISummarizerErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"error":{"message":"model not loaded","type":"server_error"}}`,
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			sum := process.NewOpenAISummarizer(process.OpenAIConfig{BaseURL: srv.URL, APIKey: "ollama"})
			_, err := sum.Summarize(context.Background(), "Hello world")
			assert.Error(t, err)
		})
	}
}
