package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kioku-ai/kioku/internal/record"
)

func testRecord() record.MemoryRecord {
	return record.MemoryRecord{
		Version:  record.Version,
		Revision: 1,
		Profile:  map[string]string{},
		Facts: []record.Fact{
			{ID: "f1", Category: "food", Content: "Likes ramen", Confidence: 0.9},
		},
	}
}

func TestNewModel(t *testing.T) {
	m := NewModel("user-1", testRecord())

	if m.UserID != "user-1" {
		t.Errorf("expected userID 'user-1', got %q", m.UserID)
	}
	if m.Ready {
		t.Error("model should not be ready before a window size message")
	}
}

func TestModel_WindowSizeMakesReady(t *testing.T) {
	m := NewModel("user-1", testRecord())

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	got := updated.(Model)

	if !got.Ready {
		t.Error("expected model to be ready after window size message")
	}
	if got.Width != 80 || got.Height != 24 {
		t.Errorf("expected 80x24, got %dx%d", got.Width, got.Height)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			m := NewModel("user-1", testRecord())

			var msg tea.KeyMsg
			if key == "ctrl+c" {
				msg = tea.KeyMsg{Type: tea.KeyCtrlC}
			} else {
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
			}

			updated, cmd := m.Update(msg)
			got := updated.(Model)

			if !got.Quitting {
				t.Error("expected quitting state")
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
		})
	}
}

func TestModel_ViewBeforeReady(t *testing.T) {
	m := NewModel("user-1", testRecord())

	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected loading placeholder before ready")
	}
}

func TestModel_ViewShowsRecord(t *testing.T) {
	m := NewModel("user-1", testRecord())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	got := updated.(Model)

	view := got.View()

	if !strings.Contains(view, "user-1") {
		t.Error("expected view to contain the user id")
	}
	if !strings.Contains(view, "Likes ramen") {
		t.Error("expected view to contain fact content")
	}
}

func TestModel_RecordMsgRefreshes(t *testing.T) {
	m := NewModel("user-1", testRecord())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	rec := testRecord()
	rec.Facts[0].Content = "Prefers soba now"
	updated, _ = updated.(Model).Update(RecordMsg(rec))
	got := updated.(Model)

	if !strings.Contains(got.View(), "Prefers soba now") {
		t.Error("expected refreshed record content in view")
	}
}
