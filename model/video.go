package model

import (
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

type VideoStatus string

const (
	StatusNew         VideoStatus = "new"
	StatusTranscribed VideoStatus = "transcribed"
	StatusSummarized  VideoStatus = "summarized"
)

type YoutubeVideoID string

// Video tracks one submission while it moves through the steps. It is never
// stored.
type Video struct {
	ID        uuid.UUID
	Status    VideoStatus
	YoutubeID YoutubeVideoID
}

func NewVideo() *Video {
	return &Video{
		ID:     uuid.New(),
		Status: StatusNew,
	}
}

// LogValue lets a Video be passed to a logger as a single attribute.
func (v *Video) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("id", v.ID.String()),
		slog.String("status", string(v.Status)),
	}
	if v.YoutubeID != "" {
		attrs = append(attrs, slog.String("youtube_id", string(v.YoutubeID)))
	}
	return slog.GroupValue(attrs...)
}
