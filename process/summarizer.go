package process

import (
	"context"
	"fmt"

	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

const (
	MsgEmptyTranscript = "Empty transcript received"
	MsgSummaryFailed   = "Failed to Generate Summary"
)

type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, transcript string) (string, error)
}

type SummaryConfig struct {
	// WarnChars logs a warning for transcripts longer than this. Zero disables.
	WarnChars int
	// MaxChars truncates transcripts longer than this. Zero passes them on unmodified.
	MaxChars int
}

// Summary validates the transcript before handing it to the summarizer and
// classifies what comes back.
type Summary struct {
	summarizer Summarizer
	cfg        SummaryConfig
	logger     *slog.Logger
}

func NewSummary(summarizer Summarizer, cfg SummaryConfig, logger *slog.Logger) *Summary {
	return &Summary{
		summarizer: summarizer,
		cfg:        cfg,
		logger:     logger,
	}
}

func (s *Summary) Summarize(ctx context.Context, transcript string) (string, error) {
	s.logger.Info("received transcript", slog.Int("length", len(transcript)))
	if len(transcript) == 0 {
		return "", model.InvalidInput(MsgEmptyTranscript)
	}

	if s.cfg.WarnChars > 0 && len(transcript) > s.cfg.WarnChars {
		s.logger.Warn("transcript may exceed model context", slog.Int("length", len(transcript)), slog.Int("warn", s.cfg.WarnChars))
	}
	if s.cfg.MaxChars > 0 && len(transcript) > s.cfg.MaxChars {
		transcript = truncate(transcript, s.cfg.MaxChars)
		s.logger.Warn("transcript truncated", slog.Int("length", len(transcript)))
	}

	summary, err := s.summarizer.Summarize(ctx, transcript)
	if err != nil {
		s.logger.Error("summarization failed", slog.String("summarizer", s.summarizer.Name()), slog.String("error", err.Error()))
		return "", model.Internal(MsgSummaryFailed, fmt.Errorf("%s: %w", s.summarizer.Name(), err))
	}
	s.logger.Info("summary generated", slog.String("start", head(summary, 100)))

	return summary, nil
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
