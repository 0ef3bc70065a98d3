package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kioku-ai/kioku/internal/config"
	"github.com/kioku-ai/kioku/internal/memory"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.txt")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCLI_CommandsRegistered(t *testing.T) {
	want := map[string]bool{
		"show":     false,
		"context":  false,
		"remember": false,
		"browse":   false,
		"config":   false,
	}

	for _, cmd := range RootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("expected %q command to be registered", name)
		}
	}
}

func TestNewStore_Backends(t *testing.T) {
	for _, backendName := range []string{config.BackendFS, config.BackendSQLite} {
		t.Run(backendName, func(t *testing.T) {
			cfg := config.Default()
			cfg.Backend = backendName
			cfg.DataDir = t.TempDir()

			store, err := newStore(cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer store.Close()

			svc, err := memory.NewService(store, nil, cfg.Memory)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, err := svc.Get(context.Background(), "someone"); err != nil {
				t.Errorf("get through %s backend failed: %v", backendName, err)
			}
		})
	}
}

func TestParseProfilePairs(t *testing.T) {
	profile, err := parseProfilePairs([]string{"name=Yuki", "city=Tokyo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile["name"] != "Yuki" || profile["city"] != "Tokyo" {
		t.Errorf("unexpected profile: %v", profile)
	}

	if _, err := parseProfilePairs([]string{"no-separator"}); err == nil {
		t.Error("expected error for malformed pair")
	}
}

func TestParseFactSpecs(t *testing.T) {
	facts, err := parseFactSpecs([]string{"food:Likes ramen:0.9", "hobby:Plays piano"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	if facts[0].Category != "food" || facts[0].Content != "Likes ramen" || facts[0].Confidence != 0.9 {
		t.Errorf("unexpected fact: %+v", facts[0])
	}
	if facts[1].Confidence != 0.5 {
		t.Errorf("expected default confidence 0.5, got %v", facts[1].Confidence)
	}

	if _, err := parseFactSpecs([]string{"no-separator"}); err == nil {
		t.Error("expected error for malformed fact")
	}
}

func TestParseFactSpecs_ColonsInContent(t *testing.T) {
	facts, err := parseFactSpecs([]string{
		"schedule:meets at 10:30",
		"schedule:standup at 9:00:0.8",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A trailing number outside [0,1] is content, not confidence.
	if facts[0].Content != "meets at 10:30" {
		t.Errorf("expected content to keep the time, got %q", facts[0].Content)
	}
	if facts[0].Confidence != 0.5 {
		t.Errorf("expected default confidence, got %v", facts[0].Confidence)
	}

	// A plausible confidence suffix still parses.
	if facts[1].Content != "standup at 9:00" {
		t.Errorf("unexpected content %q", facts[1].Content)
	}
	if facts[1].Confidence != 0.8 {
		t.Errorf("expected confidence 0.8, got %v", facts[1].Confidence)
	}
}

func TestReadTranscript(t *testing.T) {
	path := writeTempFile(t, "user: I love ramen\nassistant: Noted!\n\n")

	turns, err := readTranscript(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Role != "user" || turns[0].Content != "I love ramen" {
		t.Errorf("unexpected turn: %+v", turns[0])
	}
}

func TestReadTranscript_Malformed(t *testing.T) {
	path := writeTempFile(t, "just words without a role\n")

	if _, err := readTranscript(path); err == nil {
		t.Error("expected error for malformed transcript line")
	}
}

func TestReadTranscript_Empty(t *testing.T) {
	path := writeTempFile(t, "\n\n")

	if _, err := readTranscript(path); err == nil {
		t.Error("expected error for empty transcript")
	}
}
