// Package record defines the versioned per-user memory document and its
// invariants: the wire format, schema validation, timestamp handling, and
// the normalization rules used for fact deduplication.
package record

import (
	"encoding/json"
	"fmt"
	"time"
)

// Version is the wire format tag. A stored document with any other version
// is treated as absent; there is no in-place migration of older formats.
const Version = 2

// Source marks how a fact entered the record.
type Source string

const (
	SourceSession  Source = "session"
	SourceInferred Source = "inferred"
)

// Fact is an atomic, categorized, confidence-scored statement about a user.
// Timestamps are kept as raw strings on the wire; legacy documents contain
// values without a timezone, which ParseTime resolves with a fixed fallback.
type Fact struct {
	ID         string  `json:"id"`
	Category   string  `json:"category"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
	Source     Source  `json:"source"`
}

// When returns the parsed timestamp, or the zero time if it cannot be parsed.
func (f Fact) When() time.Time {
	t, _ := ParseTime(f.Timestamp)
	return t
}

// Episode is a timestamped free-text summary of one completed session.
type Episode struct {
	Timestamp string `json:"timestamp"`
	Summary   string `json:"summary"`
}

// When returns the parsed timestamp, or the zero time if it cannot be parsed.
func (e Episode) When() time.Time {
	t, _ := ParseTime(e.Timestamp)
	return t
}

// MemoryRecord is the full persisted document for one user. It is always
// read and rewritten whole; the backend offers no partial update.
type MemoryRecord struct {
	Version   int               `json:"version"`
	Revision  int               `json:"revision"`
	UpdatedAt string            `json:"updatedAt"`
	Profile   map[string]string `json:"profile"`
	Facts     []Fact            `json:"facts"`
	Episodes  []Episode         `json:"episodes"`
}

// Empty returns the canonical empty record, the valid state for a user with
// no prior writes. Its revision is 0 so the first write produces revision 1.
func Empty(now time.Time) MemoryRecord {
	return MemoryRecord{
		Version:   Version,
		Revision:  0,
		UpdatedAt: now.UTC().Format(time.RFC3339),
		Profile:   map[string]string{},
		Facts:     []Fact{},
		Episodes:  []Episode{},
	}
}

// DecodeResult is the outcome of validating a stored document. A document is
// either Valid with the decoded record, or invalid with a reason; decoding
// never panics and never partially accepts a document.
type DecodeResult struct {
	Record MemoryRecord
	Valid  bool
	Reason string
}

// Decode parses and validates a stored document. Anything that is not a
// well-formed version-2 record is reported as invalid; callers treat that
// the same as a missing document.
func Decode(data []byte) DecodeResult {
	var rec MemoryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return DecodeResult{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if rec.Version != Version {
		return DecodeResult{Reason: fmt.Sprintf("unsupported version %d, want %d", rec.Version, Version)}
	}
	if rec.Revision < 0 {
		return DecodeResult{Reason: fmt.Sprintf("negative revision %d", rec.Revision)}
	}
	if rec.Profile == nil {
		rec.Profile = map[string]string{}
	}
	if rec.Facts == nil {
		rec.Facts = []Fact{}
	}
	if rec.Episodes == nil {
		rec.Episodes = []Episode{}
	}
	return DecodeResult{Record: rec, Valid: true}
}

// Encode serializes the record for storage.
func Encode(rec MemoryRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	return data, nil
}
