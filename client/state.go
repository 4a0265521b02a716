package client

import "ewintr.nl/tubesum/model"

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// State is everything a front end needs to render one submission. It is a
// value, transitions return a new State and leave the receiver alone. A
// transition that does not apply to the current phase is a no-op.
type State struct {
	Phase      Phase
	URL        string
	Transcript model.Transcript
	Summary    string
	Err        string
	Copied     bool
}

func (s State) Loading() bool {
	return s.Phase == PhaseSubmitting
}

// Submit starts a new cycle. Whatever the previous cycle produced is dropped.
func (s State) Submit(url string) State {
	return State{
		Phase: PhaseSubmitting,
		URL:   url,
	}
}

func (s State) Fail(msg string) State {
	if s.Phase != PhaseSubmitting {
		return s
	}
	return State{
		Phase: PhaseFailed,
		URL:   s.URL,
		Err:   msg,
	}
}

func (s State) Succeed(transcript model.Transcript, summary string) State {
	if s.Phase != PhaseSubmitting {
		return s
	}
	return State{
		Phase:      PhaseSuccess,
		URL:        s.URL,
		Transcript: transcript,
		Summary:    summary,
	}
}

func (s State) MarkCopied() State {
	if s.Phase != PhaseSuccess {
		return s
	}
	s.Copied = true
	return s
}

func (s State) ClearCopied() State {
	s.Copied = false
	return s
}
