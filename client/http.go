package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ewintr.nl/tubesum/model"
)

const (
	TranscriptPath = "/api/transcript"
	SummarizePath  = "/api/summarize"
)

// HTTPAPI calls a running server.
type HTTPAPI struct {
	baseURL string
	client  *http.Client
}

func NewHTTPAPI(baseURL string, client *http.Client) *HTTPAPI {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPAPI{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

func (h *HTTPAPI) Transcript(ctx context.Context, url string) (model.Transcript, error) {
	var resp struct {
		Transcript string `json:"transcript"`
		VideoID    string `json:"videoId"`
		Title      string `json:"title"`
	}
	if err := h.post(ctx, TranscriptPath, map[string]string{"url": url}, &resp); err != nil {
		return model.Transcript{}, err
	}

	return model.Transcript{
		VideoID: model.YoutubeVideoID(resp.VideoID),
		Title:   resp.Title,
		Text:    resp.Transcript,
	}, nil
}

func (h *HTTPAPI) Summarize(ctx context.Context, transcript string) (string, error) {
	var resp struct {
		Summary string `json:"summary"`
	}
	if err := h.post(ctx, SummarizePath, map[string]string{"transcript": transcript}, &resp); err != nil {
		return "", err
	}

	return resp.Summary, nil
}

func (h *HTTPAPI) post(ctx context.Context, path string, payload, result any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		_ = json.Unmarshal(raw, &errResp)
		return &APIError{Status: resp.StatusCode, Message: errResp.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("could not decode response of %s: %w", path, err)
	}

	return nil
}
