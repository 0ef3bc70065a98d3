// Package memory orchestrates the per-user memory lifecycle: loading the
// stored record, folding in session extractions, and assembling the
// prompt context for new sessions.
package memory

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kioku-ai/kioku/internal/blob"
	"github.com/kioku-ai/kioku/internal/merge"
	"github.com/kioku-ai/kioku/internal/observe"
	"github.com/kioku-ai/kioku/internal/prompt"
	"github.com/kioku-ai/kioku/internal/record"
	"github.com/kioku-ai/kioku/internal/relevance"
	"github.com/kioku-ai/kioku/internal/summarizer"
)

// Context is the memory text prepared for prompt injection at session
// start. Empty is true when the user has no relevant memory, in which
// case Text is empty and no section should be injected.
type Context struct {
	Text     string
	Facts    []record.Fact
	Episodes []record.Episode
	Empty    bool
}

// Service coordinates reads, merges, and writes of per-user memory
// records against a blob backend. A single Service is created per
// process and shared; it holds no per-user state.
type Service struct {
	blobs    blob.Store
	merger   *merge.Merger
	selector *relevance.Selector
	obs      *observe.Observer
	cfg      Config
	now      func() time.Time
}

// NewService validates cfg and returns a Service over the given store.
func NewService(store blob.Store, obs *observe.Observer, cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if obs == nil {
		obs = observe.NewNop()
	}
	return &Service{
		blobs:    store,
		merger:   merge.New(nil, obs, cfg.MaxFacts),
		selector: relevance.New(cfg.MaxPromptFacts, cfg.MaxPromptEpisodes),
		obs:      obs,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

// SetClock overrides the time source. Tests freeze time with this.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// memoryKey escapes the userID so separators in it cannot smuggle path
// segments into the blob key.
func memoryKey(userID string) string {
	return "memories/" + url.PathEscape(userID) + ".json"
}

// load fetches and validates one record. A missing blob or an invalid
// document both come back as (empty record, false); only transient
// storage failures return an error.
func (s *Service) load(ctx context.Context, userID string) (record.MemoryRecord, bool, error) {
	data, err := s.blobs.Get(ctx, memoryKey(userID))
	if errors.Is(err, blob.ErrNotFound) {
		return record.Empty(s.now()), false, nil
	}
	if err != nil {
		return record.MemoryRecord{}, false, newStorageError("failed to read memory record", err)
	}

	res := record.Decode(data)
	if !res.Valid {
		s.obs.Log().Warn().
			Str("userID", userID).
			Str("code", CodeSchemaInvalid).
			Str("reason", res.Reason).
			Msg("stored memory record invalid, treating as absent")
		return record.Empty(s.now()), false, nil
	}
	return res.Record, true, nil
}

// Get returns the user's memory record. A user with no prior writes gets
// the canonical empty record, not an error.
func (s *Service) Get(ctx context.Context, userID string) (record.MemoryRecord, error) {
	ctx, span := s.obs.StartSpan(ctx, "memory.get",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	rec, _, err := s.load(ctx, userID)
	return rec, err
}

// Write merges one session's extraction into the stored record and
// persists it whole.
//
// The record is read twice before merging. Differing revisions mean a
// concurrent writer raced this one; the later read becomes the merge
// base and the detection is logged. This is a heuristic, not a lock:
// overlapping writers converge through the merge rules rather than
// through serialization.
func (s *Service) Write(ctx context.Context, userID, summary string, profileUpdates map[string]string, facts []merge.Candidate) error {
	ctx, span := s.obs.StartSpan(ctx, "memory.write",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	started := time.Now()

	loadedA, foundA, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	loadedB, foundB, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	base := loadedB
	if !foundB && foundA {
		base = loadedA
	}
	stale := loadedA.Revision != loadedB.Revision
	if stale {
		if loadedA.Revision > loadedB.Revision {
			base = loadedA
		}
		s.obs.Log().Warn().
			Str("userID", userID).
			Int("revisionA", loadedA.Revision).
			Int("revisionB", loadedB.Revision).
			Msg("concurrent write detected, merging on later revision")
	}

	now := s.now()

	for k, v := range profileUpdates {
		base.Profile[k] = v
	}

	mergedFacts, stats := s.merger.Merge(base.Facts, facts, now)
	base.Facts = mergedFacts

	episode := record.Episode{Timestamp: record.Stamp(now), Summary: summary}
	base.Episodes = append([]record.Episode{episode}, base.Episodes...)
	sort.SliceStable(base.Episodes, func(i, j int) bool {
		return base.Episodes[i].When().After(base.Episodes[j].When())
	})
	if len(base.Episodes) > s.cfg.MaxEpisodes {
		base.Episodes = base.Episodes[:s.cfg.MaxEpisodes]
	}

	base.Revision++
	base.UpdatedAt = record.Stamp(now)

	data, err := record.Encode(base)
	if err != nil {
		return newStorageError("failed to encode memory record", err)
	}
	if err := s.blobs.Put(ctx, memoryKey(userID), data); err != nil {
		return newStorageError("failed to persist memory record", err)
	}

	s.obs.Log().Info().
		Str("userID", userID).
		Int("revision", base.Revision).
		Str("staleDetected", strconv.FormatBool(stale)).
		Int("facts", len(base.Facts)).
		Int("episodes", len(base.Episodes)).
		Int("factsAdded", stats.Added).
		Int("factsUpdated", stats.Updated).
		Int("rejectedSensitive", stats.RejectedSensitive).
		Int("rejectedEmpty", stats.RejectedEmpty).
		Int("bytes", len(data)).
		Int("durationMs", int(time.Since(started).Milliseconds())).
		Msg("memory record written")
	return nil
}

// BuildContext loads the record, selects the facts and episodes most
// relevant to query, and renders them within the character budget. An
// empty query still yields the most recent, highest-confidence entries,
// which serves as the launch context before the user has said anything.
func (s *Service) BuildContext(ctx context.Context, userID, query string, now time.Time) (Context, error) {
	ctx, span := s.obs.StartSpan(ctx, "memory.build_context",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	rec, _, err := s.load(ctx, userID)
	if err != nil {
		return Context{Empty: true}, err
	}

	sel := s.selector.SelectForPrompt(query, rec, now)
	if sel.Empty() {
		return Context{Empty: true}, nil
	}

	text := prompt.Trim(prompt.Format(sel), s.cfg.MaxMemoryChars)
	return Context{
		Text:     text,
		Facts:    sel.Facts,
		Episodes: sel.Episodes,
	}, nil
}

// RememberSession runs the summarizer over a finished session transcript
// and writes the extraction. A summarizer failure skips the entire write;
// there is no partial persistence of a summary without its facts.
func (s *Service) RememberSession(ctx context.Context, userID string, transcript []summarizer.Turn, sum summarizer.Summarizer) error {
	ctx, span := s.obs.StartSpan(ctx, "memory.remember_session",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("summarizer", sum.Name()),
		))
	defer span.End()

	ext, err := sum.Summarize(ctx, transcript)
	if err != nil {
		s.obs.Log().Error().
			Str("userID", userID).
			Str("summarizer", sum.Name()).
			Err(err).
			Msg("summarizer failed, skipping memory write")
		return newSummarizerError("summarizer failed", err)
	}

	candidates := make([]merge.Candidate, 0, len(ext.Facts))
	for _, f := range ext.Facts {
		candidates = append(candidates, merge.Candidate{
			Category:   f.Category,
			Content:    f.Content,
			Confidence: f.Confidence,
		})
	}
	return s.Write(ctx, userID, ext.Summary, ext.ProfileUpdates, candidates)
}
