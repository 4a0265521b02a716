package process_test

import (
	"context"
	"io"

	"ewintr.nl/tubesum/fetch"
	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFetcher struct {
	segments []model.Segment
	err      error
	calls    []model.YoutubeVideoID
}

func (f *fakeFetcher) FetchTranscript(_ context.Context, videoID model.YoutubeVideoID) ([]model.Segment, error) {
	f.calls = append(f.calls, videoID)
	return f.segments, f.err
}

type fakeMetadata struct {
	mds map[model.YoutubeVideoID]fetch.Metadata
	err error
}

func (f *fakeMetadata) FetchMetadata(_ context.Context, _ []model.YoutubeVideoID) (map[model.YoutubeVideoID]fetch.Metadata, error) {
	return f.mds, f.err
}

type fakeSummarizer struct {
	summary string
	err     error
	got     []string
}

func (f *fakeSummarizer) Name() string { return "fake" }

func (f *fakeSummarizer) Summarize(_ context.Context, transcript string) (string, error) {
	f.got = append(f.got, transcript)
	return f.summary, f.err
}
