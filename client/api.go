package client

import (
	"context"
	"fmt"

	"ewintr.nl/tubesum/model"
)

// API is the pair of endpoints the orchestrator drives.
type API interface {
	Transcript(ctx context.Context, url string) (model.Transcript, error)
	Summarize(ctx context.Context, transcript string) (string, error)
}

// APIError is a non-success answer. Message is what the server said, it can
// be empty.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
