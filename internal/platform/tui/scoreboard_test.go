package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-reveal/internal/storage"
)

func TestScoreboardShowsScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, e := range []storage.ScoreEntry{
		{GameID: "reveal", Score: 2, Revealed: "食べ"},
		{GameID: "reveal", Player: "bob", Score: 4, Revealed: "食べられ"},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "reveal", "Block Reveal", 100, 30)
	view := m.View()

	for _, want := range []string{"HIGH SCORES - Block Reveal", "bob", "local", "食べられ", "2 games, best 4"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, "reveal", "Block Reveal", 80, 24)

	if !strings.Contains(m.View(), "No scores recorded yet.") {
		t.Error("empty scoreboard should say so")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "reveal", "Block Reveal", 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	sb, ok := next.(ScoreboardModel)
	if !ok || !sb.IsQuitting() {
		t.Fatal("esc should close the scoreboard")
	}
	if !isQuit(cmd) {
		t.Error("closing should quit the program")
	}
}
