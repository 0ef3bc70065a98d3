// Package summarizer extracts a session summary, profile updates, and
// candidate facts from a conversation transcript using a language model.
// The memory core treats it as an opaque, possibly-failing collaborator
// and performs no retries of its own.
package summarizer

import "context"

// Turn is one utterance in a session transcript.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CandidateFact is a fact proposed by the model before policy and merge
// rules have been applied.
type CandidateFact struct {
	Category   string  `json:"category"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
}

// Extraction is the full result of summarizing one session. It is produced
// by a single model call so a failure yields no partial result.
type Extraction struct {
	Summary        string            `json:"summary"`
	ProfileUpdates map[string]string `json:"profileUpdates"`
	Facts          []CandidateFact   `json:"facts"`
}

// Summarizer turns a transcript into an Extraction.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, transcript []Turn) (Extraction, error)
}
