// Package tetrion implements the deterministic falling-block simulation:
// the playfield, the per-piece state machine, the token-bag randomizer
// and the match state machine that drives them one tick at a time.
//
// Nothing in this package reads the clock or global state. Two matches
// created with the same config and seed and fed the same input produce
// identical snapshots on every tick.
package tetrion

import (
	"fmt"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/input"
)

// State is the top-level match state.
type State uint8

const (
	StateReady   State = iota // intro countdown, nothing moves
	StatePlaying              // pieces fall
	StateOutro                // match over, input ignored
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StateOutro:
		return "Outro"
	default:
		return "Unknown"
	}
}

// EndReason tells why a match reached Outro.
type EndReason uint8

const (
	EndNone EndReason = iota
	EndTopOut
	EndQuit
)

// String returns a human-readable name for the reason.
func (e EndReason) String() string {
	switch e {
	case EndTopOut:
		return "topout"
	case EndQuit:
		return "quit"
	default:
		return "none"
	}
}

// Result reports what one Advance call did.
type Result struct {
	State   State
	Signals Signal
	Lines   int // rows removed by a thump this tick
	End     EndReason
}

// Tetrion is one match. It owns the grid, the current player, the
// randomizer and the input filter.
type Tetrion struct {
	rules      rules
	difficulty *config.DifficultyManager

	state State
	end   EndReason
	ready int
	frame int

	grid       *Grid
	player     Player
	randomizer *Randomizer
	filter     input.Filter
	preview    Cell

	pending uint64 // rows waiting for the thump
	lines   int
	pieces  int
	gravity int
}

// New creates a match in the Ready state.
func New(cfg config.TetrionConfig, seed int64) (*Tetrion, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tetrion: %w", err)
	}

	r := newRules(cfg)
	t := &Tetrion{
		rules:      r,
		difficulty: config.NewDifficultyManager(cfg.Difficulty, cfg.Gravity),
		state:      StateReady,
		ready:      r.readyTicks,
		grid:       NewGrid(r.width, r.height),
		randomizer: NewRandomizer(seed, r.startingTokens),
	}
	t.preview = t.randomizer.Next()
	t.gravity = t.difficulty.Gravity(0, 0)
	return t, nil
}

// MustNew is like New but panics on an invalid config.
func MustNew(cfg config.TetrionConfig, seed int64) *Tetrion {
	t, err := New(cfg, seed)
	if err != nil {
		panic(err)
	}
	return t
}

// State returns the match state.
func (t *Tetrion) State() State {
	return t.state
}

// EndReason returns why the match ended, or EndNone while it runs.
func (t *Tetrion) EndReason() EndReason {
	return t.end
}

// Frame returns the number of Playing ticks so far.
func (t *Tetrion) Frame() int {
	return t.frame
}

// Lines returns the total number of cleared rows.
func (t *Tetrion) Lines() int {
	return t.lines
}

// Pieces returns the number of locked pieces.
func (t *Tetrion) Pieces() int {
	return t.pieces
}

// Grid returns the playfield. Callers must not mutate it.
func (t *Tetrion) Grid() *Grid {
	return t.grid
}

// Player returns the current player. Callers must not mutate it.
func (t *Tetrion) Player() *Player {
	return &t.player
}

// Advance runs exactly one tick with the given raw key state.
func (t *Tetrion) Advance(raw core.Actions) Result {
	in := t.filter.Update(raw)

	switch t.state {
	case StateReady:
		if in.Held(core.ActionQuit) {
			return t.finish(EndQuit)
		}
		t.ready--
		if t.ready <= 0 {
			t.ready = 0
			t.state = StatePlaying
			if !t.spawn() {
				return t.finish(EndTopOut)
			}
		}
		return Result{State: t.state}

	case StatePlaying:
		if in.Held(core.ActionQuit) {
			return t.finish(EndQuit)
		}
		return t.play(in)
	}

	return Result{State: t.state, End: t.end}
}

func (t *Tetrion) play(in input.Frame) Result {
	t.frame++
	t.gravity = t.difficulty.Gravity(t.lines, t.frame)

	sig := t.player.advance(t.grid, in, t.gravity)
	res := Result{State: t.state, Signals: sig}

	if sig.Has(SignalLocked) {
		t.pieces++
		t.pending = t.grid.FullRows()
	}
	if sig.Has(SignalCleared) {
		for y := 0; y < t.rules.height; y++ {
			if t.pending&(1<<uint(y)) != 0 {
				t.grid.ClearRow(y)
			}
		}
	}
	if sig.Has(SignalThump) {
		res.Lines = t.grid.Collapse(t.pending)
		t.lines += res.Lines
		t.pending = 0
	}
	if sig.Has(SignalSpawn) && !t.spawn() {
		end := t.finish(EndTopOut)
		end.Signals = sig
		return end
	}
	return res
}

// spawn replaces the player with the previewed piece. It reports false
// when the new piece overlaps the stack.
func (t *Tetrion) spawn() bool {
	piece := t.preview
	t.preview = t.randomizer.Next()
	t.player = newPlayer(&t.rules, piece, t.preview)
	return fits(t.grid, piece, Spin0, t.rules.spawn)
}

func (t *Tetrion) finish(reason EndReason) Result {
	t.state = StateOutro
	t.end = reason
	return Result{State: t.state, End: reason}
}
