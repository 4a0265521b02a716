package client_test

import (
	"context"
	"errors"
	"io"
	"sync"

	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeAPI struct {
	transcript    model.Transcript
	transcriptErr error
	summary       string
	summaryErr    error
	panicOn       string

	mu        sync.Mutex
	summaries []string
}

func (f *fakeAPI) Transcript(_ context.Context, _ string) (model.Transcript, error) {
	if f.panicOn == "transcript" {
		panic("boom")
	}
	return f.transcript, f.transcriptErr
}

func (f *fakeAPI) Summarize(_ context.Context, transcript string) (string, error) {
	f.mu.Lock()
	f.summaries = append(f.summaries, transcript)
	f.mu.Unlock()
	if f.panicOn == "summarize" {
		panic("boom")
	}
	return f.summary, f.summaryErr
}

func (f *fakeAPI) summarizeCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.summaries)
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var errTransport = errors.New("connection refused")
