package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ewintr.nl/tubesum/client"
	"ewintr.nl/tubesum/model"
	"golang.org/x/exp/slog"
)

const maxBodySize = 10 << 20

type TranscriptAPI struct {
	transcriber client.Transcriber
	logger      *slog.Logger
}

func NewTranscriptAPI(transcriber client.Transcriber, logger *slog.Logger) *TranscriptAPI {
	return &TranscriptAPI{
		transcriber: transcriber,
		logger:      logger,
	}
}

func (t *TranscriptAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// a body that does not decode counts as a missing url
	var req struct {
		URL string `json:"url"`
	}
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req)

	transcript, err := t.transcriber.Transcribe(r.Context(), req.URL)
	if err != nil {
		kind := model.KindOf(err)
		if kind != model.KindInternal {
			Error(w, kind.HTTPStatus(), model.MessageOf(err))
			return
		}
		t.logger.Error("transcript failed", slog.String("url", req.URL), slog.String("err", err.Error()))
		Error(w, kind.HTTPStatus(), model.MessageOf(err), diagnostic(err))
		return
	}

	JSON(w, http.StatusOK, struct {
		Transcript string `json:"transcript"`
		VideoID    string `json:"videoId"`
		Title      string `json:"title,omitempty"`
	}{
		Transcript: transcript.Text,
		VideoID:    string(transcript.VideoID),
		Title:      transcript.Title,
	})
}

// diagnostic describes the innermost cause of err.
func diagnostic(err error) string {
	root := err
	for {
		next := errors.Unwrap(root)
		if next == nil {
			break
		}
		root = next
	}
	return fmt.Sprintf("%T: %v", root, root)
}

type SummarizeAPI struct {
	summarizer client.Summarizer
	logger     *slog.Logger
}

func NewSummarizeAPI(summarizer client.Summarizer, logger *slog.Logger) *SummarizeAPI {
	return &SummarizeAPI{
		summarizer: summarizer,
		logger:     logger,
	}
}

func (s *SummarizeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Transcript string `json:"transcript"`
	}
	_ = json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req)

	summary, err := s.summarizer.Summarize(r.Context(), req.Transcript)
	if err != nil {
		Error(w, model.KindOf(err).HTTPStatus(), model.MessageOf(err))
		return
	}

	JSON(w, http.StatusOK, struct {
		Summary string `json:"summary"`
	}{
		Summary: summary,
	})
}
