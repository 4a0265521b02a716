package fetch

import (
	"context"
	"errors"

	"ewintr.nl/tubesum/model"
)

// ErrNoTranscript is returned when a video does not expose a transcript.
var ErrNoTranscript = errors.New("no transcript available")

type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID model.YoutubeVideoID) ([]model.Segment, error)
}
