// Package merge reconciles newly extracted facts with a user's existing
// fact set. Merging is keyed on normalized category+content so concurrent
// writers converge on the same entries instead of accumulating duplicates.
package merge

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kioku-ai/kioku/internal/observe"
	"github.com/kioku-ai/kioku/internal/policy"
	"github.com/kioku-ai/kioku/internal/record"
)

// Candidate is an incoming fact before it has been admitted to the record.
type Candidate struct {
	Category   string
	Content    string
	Confidence float64
}

// Stats summarizes the outcome of a single merge pass.
type Stats struct {
	Added             int
	Updated           int
	RejectedSensitive int
	RejectedEmpty     int
}

// Merger folds candidate facts into an existing fact set, enforcing the
// sensitive-content policy and the fact retention cap.
type Merger struct {
	policy   *policy.Policy
	obs      *observe.Observer
	maxFacts int
}

// New returns a Merger. A nil policy enables the default rules.
func New(p *policy.Policy, obs *observe.Observer, maxFacts int) *Merger {
	if p == nil {
		p = policy.New(nil)
	}
	if obs == nil {
		obs = observe.NewNop()
	}
	return &Merger{policy: p, obs: obs, maxFacts: maxFacts}
}

// Merge folds incoming candidates into existing facts and returns the merged
// set, newest first, capped at the configured maximum.
//
// Two facts are the same entry when their normalized key matches. On a key
// collision the later timestamp wins the content, and confidence only ever
// rises. Candidates with empty normalized content or a policy violation are
// dropped and counted in Stats.
func (m *Merger) Merge(existing []record.Fact, incoming []Candidate, now time.Time) ([]record.Fact, Stats) {
	var stats Stats

	byKey := make(map[string]record.Fact, len(existing))
	order := make([]string, 0, len(existing))
	for _, f := range existing {
		k := record.Key(f.Category, f.Content)
		if _, ok := byKey[k]; !ok {
			order = append(order, k)
		}
		byKey[k] = f
	}

	stamp := record.Stamp(now)
	for _, c := range incoming {
		category := strings.TrimSpace(c.Category)
		content := strings.TrimSpace(c.Content)
		if category == "" || record.NormalizeContent(content) == "" {
			stats.RejectedEmpty++
			continue
		}
		if v := m.policy.Check(category, content); v != nil {
			stats.RejectedSensitive++
			m.obs.Log().Debug().
				Str("rule", v.Rule).
				Str("category", category).
				Msg("fact rejected by policy")
			continue
		}

		confidence := record.ClampConfidence(c.Confidence)
		k := record.Key(category, content)
		prev, ok := byKey[k]
		if !ok {
			byKey[k] = record.Fact{
				ID:         uuid.NewString(),
				Category:   category,
				Content:    content,
				Confidence: confidence,
				Timestamp:  stamp,
				Source:     record.SourceSession,
			}
			order = append(order, k)
			stats.Added++
			continue
		}

		merged := prev
		if now.After(prev.When()) {
			merged.Content = content
			merged.Timestamp = stamp
			merged.Source = record.SourceSession
		}
		if confidence > merged.Confidence {
			merged.Confidence = confidence
		}
		if merged != prev {
			stats.Updated++
		}
		byKey[k] = merged
	}

	out := make([]record.Fact, 0, len(byKey))
	for _, k := range order {
		out = append(out, byKey[k])
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].When(), out[j].When()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return record.Key(out[i].Category, out[i].Content) < record.Key(out[j].Category, out[j].Content)
	})

	if m.maxFacts > 0 && len(out) > m.maxFacts {
		out = out[:m.maxFacts]
	}
	return out, stats
}
