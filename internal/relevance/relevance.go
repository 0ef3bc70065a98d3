// Package relevance ranks stored facts and episodes against a session query
// so the prompt only carries the handful of entries most likely to matter.
// Selection is pure given (query, record, now), which keeps ranking
// reproducible under frozen time in tests.
package relevance

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/kioku-ai/kioku/internal/record"
)

// Selection holds the facts and episodes chosen for prompt injection.
type Selection struct {
	Facts    []record.Fact
	Episodes []record.Episode
}

// Empty reports whether nothing was selected. Callers treat an empty
// selection as "no context" and skip prompt formatting entirely.
func (s Selection) Empty() bool {
	return len(s.Facts) == 0 && len(s.Episodes) == 0
}

// Selector picks the top-scoring facts and episodes for a query.
type Selector struct {
	maxFacts    int
	maxEpisodes int
}

// New returns a Selector keeping at most maxFacts facts and maxEpisodes
// episodes per selection.
func New(maxFacts, maxEpisodes int) *Selector {
	return &Selector{maxFacts: maxFacts, maxEpisodes: maxEpisodes}
}

// Tokenize lowercases the query, splits on whitespace and punctuation,
// keeps tokens of at least two runes, and adds the whole normalized query
// as one extra token. The result is deduplicated; an empty or blank query
// yields no tokens.
func Tokenize(query string) []string {
	lower := strings.ToLower(query)
	parts := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})

	seen := make(map[string]struct{}, len(parts)+1)
	tokens := make([]string, 0, len(parts)+1)
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		tokens = append(tokens, tok)
	}

	for _, p := range parts {
		if len([]rune(p)) < 2 {
			continue
		}
		add(p)
	}
	if whole := record.NormalizeContent(query); whole != "" {
		add(whole)
	}
	return tokens
}

// score counts distinct tokens appearing as substrings of text, doubled.
func score(text string, tokens []string) int {
	if len(tokens) == 0 {
		return 0
	}
	lower := strings.ToLower(text)
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			hits++
		}
	}
	return 2 * hits
}

// recencyBonus decays linearly from 1 at age zero to 0 at thirty days.
// Unparseable timestamps get no bonus.
func recencyBonus(f record.Fact, now time.Time) float64 {
	when := f.When()
	if when.IsZero() {
		return 0
	}
	ageDays := now.Sub(when).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	if ageDays >= 30 {
		return 0
	}
	return (30 - ageDays) / 30
}

// SelectForPrompt ranks the record's facts and episodes against the query
// and returns the top entries within the configured limits.
func (s *Selector) SelectForPrompt(query string, rec record.MemoryRecord, now time.Time) Selection {
	tokens := Tokenize(query)

	type scoredFact struct {
		fact      record.Fact
		score     int
		composite float64
	}
	sf := make([]scoredFact, 0, len(rec.Facts))
	for _, f := range rec.Facts {
		sc := score(f.Content, tokens)
		sf = append(sf, scoredFact{
			fact:      f,
			score:     sc,
			composite: float64(sc) + recencyBonus(f, now) + f.Confidence,
		})
	}
	sort.SliceStable(sf, func(i, j int) bool {
		if sf[i].score != sf[j].score {
			return sf[i].score > sf[j].score
		}
		return sf[i].composite > sf[j].composite
	})

	type scoredEpisode struct {
		episode record.Episode
		score   int
	}
	se := make([]scoredEpisode, 0, len(rec.Episodes))
	for _, e := range rec.Episodes {
		se = append(se, scoredEpisode{episode: e, score: score(e.Summary, tokens)})
	}
	sort.SliceStable(se, func(i, j int) bool {
		if se[i].score != se[j].score {
			return se[i].score > se[j].score
		}
		return se[i].episode.When().After(se[j].episode.When())
	})

	var sel Selection
	for i := 0; i < len(sf) && i < s.maxFacts; i++ {
		sel.Facts = append(sel.Facts, sf[i].fact)
	}
	for i := 0; i < len(se) && i < s.maxEpisodes; i++ {
		sel.Episodes = append(sel.Episodes, se[i].episode)
	}
	return sel
}
