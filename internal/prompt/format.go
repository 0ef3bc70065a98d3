// Package prompt formats selected memory into plain text for prompt
// injection and enforces the hard character ceiling on the result.
package prompt

import (
	"strings"

	"github.com/kioku-ai/kioku/internal/relevance"
)

const (
	factsHeader    = "[Remembered facts]"
	episodesHeader = "[Recent conversation]"
)

// Format renders a selection as labeled sections separated by a blank
// line. An empty selection renders as the empty string.
func Format(sel relevance.Selection) string {
	var sections []string

	if len(sel.Facts) > 0 {
		var b strings.Builder
		b.WriteString(factsHeader)
		for _, f := range sel.Facts {
			b.WriteString("\n- (")
			b.WriteString(f.Category)
			b.WriteString(") ")
			b.WriteString(f.Content)
		}
		sections = append(sections, b.String())
	}

	if len(sel.Episodes) > 0 {
		var b strings.Builder
		b.WriteString(episodesHeader)
		for _, e := range sel.Episodes {
			b.WriteString("\n- ")
			b.WriteString(e.Summary)
		}
		sections = append(sections, b.String())
	}

	return strings.Join(sections, "\n\n")
}
