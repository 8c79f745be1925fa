package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/replay"
	"github.com/vovakirdan/tetrion/internal/storage"
	"github.com/vovakirdan/tetrion/internal/tetrion"
)

// pump sends render ticks until cond holds or the deadline passes.
func pump(t *testing.T, m PlayModel, cond func(PlayModel) bool) PlayModel {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond(m) {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached in time")
		}
		time.Sleep(5 * time.Millisecond)
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(PlayModel)
	}
	return m
}

func send(m PlayModel, msg tea.Msg) PlayModel {
	next, _ := m.Update(msg)
	return next.(PlayModel)
}

func newTestPlayModel(t *testing.T, mutate func(*PlayOptions)) PlayModel {
	t.Helper()
	rules := config.DefaultTetrionConfig()
	rules.Timing.ReadyTicks = 1

	opts := PlayOptions{
		Rules:    rules,
		Seed:     99,
		Player:   "tester",
		ShotDir:  t.TempDir(),
		Width:    80,
		Height:   26,
		Embedded: true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	m := NewPlayModel(opts)
	t.Cleanup(m.Close)
	return m
}

func TestPlayModelQuitSavesMatch(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(filepath.Join(dir, "tetrion.db"))
	if err != nil {
		t.Fatalf("storage.Open() error: %v", err)
	}
	defer store.Close()
	recordPath := filepath.Join(dir, "last.yaml")

	m := newTestPlayModel(t, func(o *PlayOptions) {
		o.Store = store
		o.RecordPath = recordPath
	})

	m = pump(t, m, func(m PlayModel) bool {
		return m.Snapshot().State == tetrion.StatePlaying && m.Snapshot().Frame > 0
	})

	m = send(m, runeKey('q'))
	m = pump(t, m, PlayModel.Finished)

	if m.Snapshot().State != tetrion.StateOutro {
		t.Fatalf("state %v after quit, expected Outro", m.Snapshot().State)
	}

	matches, err := store.TopMatches("", 10)
	if err != nil {
		t.Fatalf("TopMatches() error: %v", err)
	}
	if len(matches) != 1 || matches[0].Player != "tester" || matches[0].EndReason != "quit" || matches[0].Seed != 99 {
		t.Fatalf("stored %+v, expected one quit match by tester", matches)
	}

	rec, err := replay.Load(recordPath)
	if err != nil {
		t.Fatalf("replay.Load() error: %v", err)
	}
	if _, err := replay.Verify(rec); err != nil {
		t.Errorf("recorded match does not replay: %v", err)
	}

	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("view does not show the game over overlay")
	}

	m = send(m, runeKey('q'))
	if !m.Leaving() || m.IsQuitting() {
		t.Error("q after the match should leave an embedded play screen")
	}
}

func TestPlayModelRestart(t *testing.T) {
	m := newTestPlayModel(t, nil)

	m = send(m, runeKey('q'))
	m = pump(t, m, PlayModel.Finished)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Finished() {
		t.Fatal("enter did not start a new match")
	}
	defer m.Close()
	pump(t, m, func(m PlayModel) bool {
		return m.Snapshot().State == tetrion.StatePlaying
	})
}

func TestPlayModelExit(t *testing.T) {
	m := newTestPlayModel(t, func(o *PlayOptions) { o.Embedded = false })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(PlayModel)
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("ctrl+c should quit the program")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestPlayModelInvalidRules(t *testing.T) {
	m := newTestPlayModel(t, func(o *PlayOptions) {
		o.Rules.Field.Width = 1
	})

	if !strings.Contains(m.View(), "Error") {
		t.Errorf("view %q does not report the error", m.View())
	}
	m = send(m, runeKey('q'))
	if !m.Leaving() {
		t.Error("q should leave after an error")
	}
}

// waitDone fails the test unless the runner returns in time.
func waitDone(t *testing.T, m PlayModel) {
	t.Helper()
	select {
	case <-m.runner.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("runner still running after its context ended")
	}
}

func TestPlayModelStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := newTestPlayModel(t, func(o *PlayOptions) { o.Context = ctx })
	m = pump(t, m, func(m PlayModel) bool {
		return m.Snapshot().State == tetrion.StatePlaying
	})

	cancel()
	waitDone(t, m)
}

func TestSessionMatchStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rules := config.DefaultTetrionConfig()
	rules.Timing.ReadyTicks = 1

	s := NewSessionModel(SessionOptions{
		Context: ctx,
		Rules:   rules,
		Player:  "remote",
		Seed:    3,
		Width:   80,
		Height:  26,
	})
	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.play == nil {
		t.Fatal("enter on the menu should start a match")
	}
	defer s.Close()

	cancel()
	waitDone(t, *s.play)
}
