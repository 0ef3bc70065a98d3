// Package tui is the interactive memory browser behind `kioku browse`.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kioku-ai/kioku/internal/record"
	"github.com/kioku-ai/kioku/internal/ui"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5A56E0")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type Model struct {
	UserID   string
	Record   record.MemoryRecord
	Viewport viewport.Model
	Quitting bool
	Ready    bool
	Width    int
	Height   int
}

// RecordMsg replaces the displayed record, e.g. after a reload.
type RecordMsg record.MemoryRecord

func NewModel(userID string, rec record.MemoryRecord) Model {
	return Model{
		UserID: userID,
		Record: rec,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		if !m.Ready {
			m.Viewport = viewport.New(msg.Width, msg.Height-4)
			m.Viewport.SetContent(ui.RenderRecord(m.UserID, m.Record))
			m.Ready = true
		} else {
			m.Viewport.Width = msg.Width
			m.Viewport.Height = msg.Height - 4
		}

	case RecordMsg:
		m.Record = record.MemoryRecord(msg)
		if m.Ready {
			m.Viewport.SetContent(ui.RenderRecord(m.UserID, m.Record))
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.Ready {
		return "\n  Loading memory..."
	}

	header := titleStyle.Render(fmt.Sprintf(" kioku: %s ", m.UserID))
	help := helpStyle.Render(" ↑/↓ scroll, q quit ")

	view := fmt.Sprintf("%s\n%s\n%s", header, m.Viewport.View(), help)

	if m.Quitting {
		return view + "\n"
	}
	return view
}
