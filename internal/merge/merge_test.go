package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioku-ai/kioku/internal/record"
)

func newTestMerger(maxFacts int) *Merger {
	return New(nil, nil, maxFacts)
}

func TestMerge_AddsNewFacts(t *testing.T) {
	m := newTestMerger(60)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	facts, stats := m.Merge(nil, []Candidate{
		{Category: "food", Content: "Likes ramen", Confidence: 0.9},
		{Category: "hobby", Content: "Plays piano", Confidence: 0.7},
	}, now)

	require.Len(t, facts, 2)
	assert.Equal(t, 2, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	for _, f := range facts {
		assert.NotEmpty(t, f.ID)
		assert.Equal(t, record.SourceSession, f.Source)
		assert.Equal(t, record.Stamp(now), f.Timestamp)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	m := newTestMerger(60)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	in := []Candidate{{Category: "food", Content: "Likes ramen", Confidence: 0.8}}

	once, _ := m.Merge(nil, in, now)
	twice, stats := m.Merge(once, in, now)

	assert.Equal(t, once, twice)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 0, stats.Updated)
}

func TestMerge_DuplicateKeyNormalization(t *testing.T) {
	m := newTestMerger(60)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	facts, _ := m.Merge(nil, []Candidate{
		{Category: "Food", Content: "Likes  Ramen", Confidence: 0.5},
	}, base)
	facts, stats := m.Merge(facts, []Candidate{
		{Category: "food", Content: "likes ramen", Confidence: 0.5},
	}, base)

	require.Len(t, facts, 1)
	assert.Equal(t, 0, stats.Added)
}

func TestMerge_LaterTimestampWinsContent(t *testing.T) {
	m := newTestMerger(60)
	early := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	facts, _ := m.Merge(nil, []Candidate{
		{Category: "food", Content: "Likes Ramen", Confidence: 0.9},
	}, early)
	facts, stats := m.Merge(facts, []Candidate{
		{Category: "food", Content: "likes  ramen", Confidence: 0.5},
	}, late)

	require.Len(t, facts, 1)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, "likes  ramen", facts[0].Content)
	assert.Equal(t, record.Stamp(late), facts[0].Timestamp)
	// Confidence never decreases on update.
	assert.Equal(t, 0.9, facts[0].Confidence)
}

func TestMerge_EarlierTimestampKeepsContent(t *testing.T) {
	m := newTestMerger(60)
	late := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	early := late.Add(-time.Hour)

	facts, _ := m.Merge(nil, []Candidate{
		{Category: "food", Content: "Likes Ramen", Confidence: 0.5},
	}, late)
	facts, stats := m.Merge(facts, []Candidate{
		{Category: "food", Content: "likes ramen", Confidence: 0.8},
	}, early)

	require.Len(t, facts, 1)
	assert.Equal(t, "Likes Ramen", facts[0].Content)
	assert.Equal(t, record.Stamp(late), facts[0].Timestamp)
	assert.Equal(t, 0.8, facts[0].Confidence)
	assert.Equal(t, 1, stats.Updated)
}

func TestMerge_RejectsSensitive(t *testing.T) {
	m := newTestMerger(60)
	now := time.Now().UTC()

	facts, stats := m.Merge(nil, []Candidate{
		{Category: "health", Content: "Recovering from surgery", Confidence: 0.9},
		{Category: "misc", Content: "My password is hunter2", Confidence: 0.9},
		{Category: "food", Content: "Likes curry", Confidence: 0.6},
	}, now)

	require.Len(t, facts, 1)
	assert.Equal(t, "food", facts[0].Category)
	assert.Equal(t, 2, stats.RejectedSensitive)
	assert.Equal(t, 1, stats.Added)
}

func TestMerge_RejectsEmpty(t *testing.T) {
	m := newTestMerger(60)
	now := time.Now().UTC()

	facts, stats := m.Merge(nil, []Candidate{
		{Category: "food", Content: "   ", Confidence: 0.9},
		{Category: "", Content: "orphaned", Confidence: 0.9},
	}, now)

	assert.Empty(t, facts)
	assert.Equal(t, 2, stats.RejectedEmpty)
}

func TestMerge_CapNewestFirst(t *testing.T) {
	m := newTestMerger(3)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var facts []record.Fact
	contents := []string{"one", "two", "three", "four", "five"}
	for i, c := range contents {
		facts, _ = m.Merge(facts, []Candidate{
			{Category: "misc", Content: c, Confidence: 0.5},
		}, base.Add(time.Duration(i)*time.Hour))
	}

	require.Len(t, facts, 3)
	assert.Equal(t, "five", facts[0].Content)
	assert.Equal(t, "four", facts[1].Content)
	assert.Equal(t, "three", facts[2].Content)
}

func TestMerge_ConfidenceClamped(t *testing.T) {
	m := newTestMerger(60)
	now := time.Now().UTC()

	facts, _ := m.Merge(nil, []Candidate{
		{Category: "food", Content: "Likes ramen", Confidence: 3.7},
	}, now)

	require.Len(t, facts, 1)
	assert.Equal(t, 1.0, facts[0].Confidence)
}

func TestMerge_TimestampTieDeterministic(t *testing.T) {
	m := newTestMerger(60)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	facts, _ := m.Merge(nil, []Candidate{
		{Category: "b", Content: "beta", Confidence: 0.5},
		{Category: "a", Content: "alpha", Confidence: 0.5},
	}, now)

	require.Len(t, facts, 2)
	assert.Equal(t, "alpha", facts[0].Content)
	assert.Equal(t, "beta", facts[1].Content)
}
