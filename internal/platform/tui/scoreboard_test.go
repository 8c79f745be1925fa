package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetrion/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tetrion.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestScoreboardTabs(t *testing.T) {
	store := openTestStore(t)
	store.SaveMatch(storage.Match{Player: "ann", Variant: "mrs", Lines: 12, Frames: 3600, EndReason: "topout"})
	store.SaveMatch(storage.Match{Player: "bob", Variant: "pure", Lines: 40, Frames: 9000, EndReason: "topout"})

	m := NewScoreboardModel(store, 100, 30)
	if len(m.Matches()) != 2 || m.Matches()[0].Player != "bob" {
		t.Fatalf("all tab shows %+v, expected bob then ann", m.Matches())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.Matches()) != 1 || m.Matches()[0].Player != "ann" {
		t.Errorf("mrs tab shows %+v, expected only ann", m.Matches())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if len(m.Matches()) != 1 || m.Matches()[0].Player != "bob" {
		t.Errorf("pure tab shows %+v, expected only bob", m.Matches())
	}

	if view := m.View(); !strings.Contains(view, "HIGH SCORES") || !strings.Contains(view, "bob") {
		t.Errorf("view is missing the title or the row:\n%s", view)
	}
}

func TestScoreboardEmptyAndBack(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No score database") {
		t.Error("view should explain that there is no database")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(ScoreboardModel)
	if !m.IsGoingBack() || cmd == nil {
		t.Error("esc should go back and end the standalone program")
	}
}

func TestFormatPlayTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{10*time.Minute + 500*time.Millisecond, "10:01"},
	}
	for _, tc := range tests {
		if got := formatPlayTime(tc.in); got != tc.want {
			t.Errorf("formatPlayTime(%v) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
