package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/replay"
	"github.com/vovakirdan/tetrion/internal/sim"
	"github.com/vovakirdan/tetrion/internal/storage"
	"github.com/vovakirdan/tetrion/internal/tetrion"
)

// PlayOptions configures a play screen.
type PlayOptions struct {
	// Context bounds every match runner, e.g. to an SSH session.
	// Nil means context.Background.
	Context context.Context

	Rules  config.TetrionConfig
	Seed   int64 // 0 picks a new seed per match
	Player string

	Store      *storage.Store // optional match history
	Logger     *log.Logger    // nil discards
	RecordPath string         // write a replay of each finished match here
	ShotDir    string         // screenshot directory, default ~/.tetrion/screenshots

	Width  int
	Height int

	// Embedded play screens leave by setting Leaving instead of quitting
	// the program, so a session model can return to its menu.
	Embedded bool
}

// PlayModel is the Bubble Tea model for one player's matches.
type PlayModel struct {
	opts   PlayOptions
	keys   KeyMap
	help   help.Model
	hold   *HoldTracker
	logger *log.Logger

	runner   *sim.Runner
	cancel   context.CancelFunc
	recorder *replay.Recorder
	seed     int64
	snap     *tetrion.Snapshot
	screen   *core.Screen

	finished bool // the runner of the current match has returned
	status   string
	quitting bool
	leaving  bool
	err      error
}

// NewPlayModel creates a play screen and starts its first match.
func NewPlayModel(opts PlayOptions) PlayModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}

	h := help.New()
	h.ShowAll = false

	m := PlayModel{
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   h,
		hold:   NewHoldTracker(0, 0),
		logger: logger,
		snap:   &tetrion.Snapshot{},
		screen: core.NewScreen(opts.Width, opts.Height-1),
	}
	m.help.Width = opts.Width
	m.start()
	return m
}

// nextSeed returns the seed of the next match.
func (m *PlayModel) nextSeed() int64 {
	if m.opts.Seed != 0 {
		return m.opts.Seed
	}
	return time.Now().UnixNano()
}

// start creates a new match and runs it on its own goroutine.
func (m *PlayModel) start() {
	m.seed = m.nextSeed()
	game, err := tetrion.New(m.opts.Rules, m.seed)
	if err != nil {
		m.err = err
		return
	}

	m.recorder = nil
	var recorder sim.EventRecorder
	if m.opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(m.opts.Rules, m.seed, m.opts.Player)
		recorder = m.recorder
	}

	m.runner = sim.NewRunner(game, sim.RunnerConfig{
		TickRate:      m.opts.Rules.TickRate,
		QueueCapacity: m.opts.Rules.Input.QueueCapacity,
		StopOnOutro:   true,
		Logger:        m.logger,
		Recorder:      recorder,
	})
	m.hold = NewHoldTracker(0, 0)
	m.finished = false
	m.status = ""

	if m.cancel != nil {
		m.cancel()
	}
	parent := m.opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	m.cancel = cancel
	runner, logger := m.runner, m.logger
	go func() {
		if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("runner stopped", "error", err)
		}
	}()

	m.logger.Info("match started", "player", m.opts.Player, "seed", m.seed, "variant", m.opts.Rules.Variant)
}

// stop ends the current match's runner and waits for it to return.
func (m *PlayModel) stop() {
	if m.runner == nil {
		return
	}
	m.runner.Stop()
	m.cancel()
	<-m.runner.Done()
}

// Init starts the render tick.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(frameRate)
}

// Update handles messages.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey forwards key presses to the runner.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Exit):
		m.stop()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Quit) && (m.err != nil || m.finished):
		return m.leave()
	case key.Matches(msg, m.keys.Start) && m.finished:
		m.start()
		return m, nil
	}

	if m.runner == nil || m.finished {
		return m, nil
	}
	if a, ok := m.keys.Action(msg); ok && m.hold.Press(a, m.runner.Now()) {
		m.runner.Push(a, true)
	}
	return m, nil
}

func (m PlayModel) leave() (tea.Model, tea.Cmd) {
	if m.opts.Embedded {
		m.leaving = true
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

// handleTick synthesises key releases and picks up the latest snapshot.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	if m.runner == nil {
		return m, tickCmd(frameRate)
	}

	runner := m.runner
	m.hold.Expire(runner.Now(), func(a core.Action) bool {
		return runner.Push(a, false)
	})
	runner.Bridge().LatestInto(m.snap)

	if !m.finished {
		select {
		case <-runner.Done():
			m.finished = true
			m.finishMatch()
		default:
		}
	}
	return m, tickCmd(frameRate)
}

// finishMatch stores a match whose runner has returned.
func (m *PlayModel) finishMatch() {
	snap := m.runner.Snapshot()
	snap.CopyTo(m.snap)
	m.hold.ReleaseAll(func(core.Action) {})

	// A match quit during the countdown never started.
	if snap.Frame == 0 {
		return
	}

	var notes []string
	if m.opts.Store != nil {
		_, err := m.opts.Store.SaveMatch(storage.Match{
			Player:    m.opts.Player,
			Seed:      m.seed,
			Variant:   m.opts.Rules.Variant,
			Lines:     snap.Lines,
			Pieces:    snap.Pieces,
			Frames:    snap.Frame,
			EndReason: snap.End.String(),
		})
		if err != nil {
			m.logger.Warn("could not save match", "error", err)
		} else {
			notes = append(notes, "match saved")
		}
	}

	if m.recorder != nil {
		rec := m.recorder.Finish(m.runner.Tick(), snap)
		if err := replay.Save(m.opts.RecordPath, rec); err != nil {
			m.logger.Warn("could not save replay", "error", err)
		} else {
			notes = append(notes, "replay written to "+m.opts.RecordPath)
		}
	}

	m.logger.Info("match finished", "player", m.opts.Player, "lines", snap.Lines, "frames", snap.Frame, "reason", snap.End)
	m.status = strings.Join(notes, ", ")
}

// saveScreenshot writes the current screen as plain text.
func (m *PlayModel) saveScreenshot() {
	dir := m.opts.ShotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.status = "screenshot failed: " + err.Error()
			return
		}
		dir = filepath.Join(home, ".tetrion", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}

	tetrion.Render(m.screen, m.snap)
	path := filepath.Join(dir, fmt.Sprintf("tetrion_%s.txt", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "screenshot saved to " + path
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the field and the help footer.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.err != nil {
		return fmt.Sprintf("\n  Error: %v\n\n  Press q to leave.\n", m.err)
	}

	tetrion.Render(m.screen, m.snap)

	footer := m.help.View(m.keys)
	if m.finished {
		footer = "enter: play again • q: leave"
		if m.status != "" {
			footer = m.status + " • " + footer
		}
	} else if m.status != "" {
		footer = m.status
	}
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(footer)
}

// Snapshot returns the last snapshot the screen drew.
func (m PlayModel) Snapshot() *tetrion.Snapshot {
	return m.snap
}

// Finished reports whether the current match is over and stored.
func (m PlayModel) Finished() bool {
	return m.finished
}

// Leaving reports whether an embedded play screen wants to go back.
func (m PlayModel) Leaving() bool {
	return m.leaving
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// Close stops the running match, if any.
func (m PlayModel) Close() {
	m.stop()
}

// Run starts a standalone play screen in the alternate screen buffer.
func Run(opts PlayOptions) error {
	opts.Embedded = false
	model := NewPlayModel(opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if pm, ok := final.(PlayModel); ok {
		pm.Close()
	} else {
		model.Close()
	}
	return err
}
