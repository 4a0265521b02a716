package process

import (
	"context"
	"errors"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

const (
	MsgInvalidURL         = "Invalid YouTube URL"
	MsgNoTranscript       = "No transcript available for this video"
	MsgEmptySegments      = "Transcript is empty or unavailable"
	MsgTranscriptFallback = "Failed to extract transcript"
)

// Transcriber turns a submitted URL into a single transcript text.
type Transcriber struct {
	transcripts fetch.TranscriptFetcher
	metadata    fetch.MetadataFetcher
	logger      *slog.Logger
}

// NewTranscriber creates a Transcriber. metadata may be nil, in which case
// transcripts carry no title.
func NewTranscriber(transcripts fetch.TranscriptFetcher, metadata fetch.MetadataFetcher, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		transcripts: transcripts,
		metadata:    metadata,
		logger:      logger,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, url string) (model.Transcript, error) {
	videoID, ok := fetch.ExtractVideoID(url)
	if !ok {
		return model.Transcript{}, model.InvalidInput(MsgInvalidURL)
	}
	t.logger.Info("processing video", slog.String("video", string(videoID)))

	segments, err := t.transcripts.FetchTranscript(ctx, videoID)
	switch {
	case errors.Is(err, fetch.ErrNoTranscript):
		return model.Transcript{}, model.NotFound(MsgNoTranscript)
	case err != nil:
		msg := err.Error()
		if msg == "" {
			msg = MsgTranscriptFallback
		}
		return model.Transcript{}, model.Internal(msg, err)
	case len(segments) == 0:
		return model.Transcript{}, model.NotFound(MsgEmptySegments)
	}

	transcript := model.Transcript{
		VideoID: videoID,
		Text:    model.JoinSegments(segments),
		Title:   t.title(ctx, videoID),
	}
	t.logger.Info("transcript extracted", slog.String("video", string(videoID)), slog.Int("length", len(transcript.Text)))

	return transcript, nil
}

// title is best effort, a failing metadata lookup does not fail the transcript.
func (t *Transcriber) title(ctx context.Context, videoID model.YoutubeVideoID) string {
	if t.metadata == nil {
		return ""
	}
	mds, err := t.metadata.FetchMetadata(ctx, []model.YoutubeVideoID{videoID})
	if err != nil {
		t.logger.Warn("failed to fetch metadata", slog.String("video", string(videoID)), slog.String("error", err.Error()))
		return ""
	}

	return mds[videoID].Title
}
