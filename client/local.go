package client

import (
	"context"

	"ewintr.nl/tubesum/model"
)

type Transcriber interface {
	Transcribe(ctx context.Context, url string) (model.Transcript, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// LocalAPI runs the endpoint logic in process and reports failures the way
// the HTTP endpoints would.
type LocalAPI struct {
	transcriber Transcriber
	summarizer  Summarizer
}

func NewLocalAPI(transcriber Transcriber, summarizer Summarizer) *LocalAPI {
	return &LocalAPI{
		transcriber: transcriber,
		summarizer:  summarizer,
	}
}

func (l *LocalAPI) Transcript(ctx context.Context, url string) (model.Transcript, error) {
	transcript, err := l.transcriber.Transcribe(ctx, url)
	if err != nil {
		return model.Transcript{}, asAPIError(err)
	}
	return transcript, nil
}

func (l *LocalAPI) Summarize(ctx context.Context, transcript string) (string, error) {
	summary, err := l.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return "", asAPIError(err)
	}
	return summary, nil
}

func asAPIError(err error) *APIError {
	return &APIError{
		Status:  model.KindOf(err).HTTPStatus(),
		Message: model.MessageOf(err),
	}
}
