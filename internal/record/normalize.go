package record

import (
	"math"
	"strings"
)

// NormalizeContent collapses runs of whitespace to single spaces, trims, and
// lowercases. It defines the content half of a fact's deduplication key.
func NormalizeContent(content string) string {
	return strings.ToLower(strings.Join(strings.Fields(content), " "))
}

// Key returns a fact's deduplication key. No two stored facts share a key.
func Key(category, content string) string {
	return strings.ToLower(category) + "::" + NormalizeContent(content)
}

// ClampConfidence forces a confidence into [0,1] at two-decimal precision.
// Non-finite input defaults to 0.5.
func ClampConfidence(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0.5
	}
	v = math.Round(v*100) / 100
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
