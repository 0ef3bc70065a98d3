// Package ui renders memory records for terminal output.
package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kioku-ai/kioku/internal/record"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB454"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// RenderRecord formats a full memory record for `show` output.
func RenderRecord(userID string, rec record.MemoryRecord) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf(" Memory: %s ", userID)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("revision %d, updated %s", rec.Revision, rec.UpdatedAt)))
	b.WriteString("\n\n")

	if len(rec.Profile) > 0 {
		b.WriteString(sectionStyle.Render("Profile"))
		b.WriteString("\n")
		keys := make([]string, 0, len(rec.Profile))
		for k := range rec.Profile {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("  %s: %s\n", categoryStyle.Render(k), rec.Profile[k]))
		}
		b.WriteString("\n")
	}

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Facts (%d)", len(rec.Facts))))
	b.WriteString("\n")
	for _, f := range rec.Facts {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			categoryStyle.Render("("+f.Category+")"),
			f.Content,
			dimStyle.Render(fmt.Sprintf("%.2f %s", f.Confidence, f.Timestamp))))
	}
	if len(rec.Facts) == 0 {
		b.WriteString(dimStyle.Render("  none\n"))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Episodes (%d)", len(rec.Episodes))))
	b.WriteString("\n")
	for _, e := range rec.Episodes {
		b.WriteString(fmt.Sprintf("  %s %s\n", dimStyle.Render(e.Timestamp), e.Summary))
	}
	if len(rec.Episodes) == 0 {
		b.WriteString(dimStyle.Render("  none\n"))
	}

	return b.String()
}
