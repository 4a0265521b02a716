package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

const (
	MsgTranscriptFailed = "Failed to Fetch Transcript"
	MsgSummaryFailed    = "Failed to generate Summary"

	DefaultCopyDelay = 2 * time.Second
	ExportFilename   = "youtube-summary.md"
	ExportMIMEType   = "text/markdown"
)

var ErrNoSummary = errors.New("no summary available")

// Orchestrator drives one front end: it runs submissions against the API and
// keeps the resulting State.
type Orchestrator struct {
	api       API
	logger    *slog.Logger
	copyDelay time.Duration

	mu        sync.Mutex
	state     State
	copyTimer *time.Timer
}

type Option func(*Orchestrator)

// WithCopyDelay sets how long the copied indicator stays on.
func WithCopyDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.copyDelay = d
	}
}

func NewOrchestrator(api API, logger *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		api:       api,
		logger:    logger,
		copyDelay: DefaultCopyDelay,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

func (o *Orchestrator) update(fn func(State) State) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = fn(o.state)
	return o.state
}

// Run submits url. The summarize call is only made after the transcript call
// succeeded. Every exit leaves the state out of the submitting phase.
func (o *Orchestrator) Run(ctx context.Context, url string) (final State) {
	o.update(func(s State) State { return s.Submit(url) })
	video := model.NewVideo()

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("submission panicked", slog.Any("video", video), slog.String("url", url), slog.Any("panic", r))
			final = o.update(func(s State) State { return s.Fail(fmt.Sprint(r)) })
		}
	}()

	transcript, err := o.api.Transcript(ctx, url)
	if err != nil {
		o.logger.Info("transcript failed", slog.Any("video", video), slog.String("url", url), slog.String("error", err.Error()))
		return o.update(func(s State) State { return s.Fail(failMessage(err, MsgTranscriptFailed)) })
	}
	video.YoutubeID = transcript.VideoID
	video.Status = model.StatusTranscribed
	o.logger.Info("transcript received", slog.Any("video", video), slog.Int("length", len(transcript.Text)))

	summary, err := o.api.Summarize(ctx, transcript.Text)
	if err != nil {
		o.logger.Info("summary failed", slog.Any("video", video), slog.String("error", err.Error()))
		return o.update(func(s State) State { return s.Fail(failMessage(err, MsgSummaryFailed)) })
	}
	video.Status = model.StatusSummarized
	o.logger.Info("submission done", slog.Any("video", video), slog.Int("length", len(summary)))

	return o.update(func(s State) State { return s.Succeed(transcript, summary) })
}

// failMessage prefers what the server said, then the fallback for a server
// that said nothing, then whatever went wrong on the way.
func failMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	return err.Error()
}

// Copy puts the summary on the clipboard and sets the copied indicator until
// the copy delay has passed.
func (o *Orchestrator) Copy(cb Clipboard) error {
	summary := o.State().Summary
	if summary == "" {
		return ErrNoSummary
	}
	if err := cb.WriteAll(summary); err != nil {
		return fmt.Errorf("could not copy summary: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = o.state.MarkCopied()
	if o.copyTimer != nil {
		o.copyTimer.Stop()
	}
	o.copyTimer = time.AfterFunc(o.copyDelay, func() {
		o.update(func(s State) State { return s.ClearCopied() })
	})

	return nil
}

// Export writes the summary as Markdown.
func (o *Orchestrator) Export(w io.Writer) error {
	summary := o.State().Summary
	if summary == "" {
		return ErrNoSummary
	}
	_, err := io.WriteString(w, summary)
	return err
}

// ExportFile writes the summary to ExportFilename in dir and returns the path.
func (o *Orchestrator) ExportFile(dir string) (string, error) {
	summary := o.State().Summary
	if summary == "" {
		return "", ErrNoSummary
	}
	path := filepath.Join(dir, ExportFilename)
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("could not export summary: %w", err)
	}

	return path, nil
}
