// Package replay records the input of a match as YAML and re-simulates it
// headlessly. A recording holds the seed, the rules and every key change
// keyed by tick, which is all the simulation needs to reproduce a match.
package replay

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/tetrion"
)

// Version is the recording format written by this package.
const Version = 1

// maxOpenTicks bounds a replay that has no recorded length.
const maxOpenTicks = 1 << 24

var (
	// ErrVersion is returned when a recording has an unknown format version.
	ErrVersion = errors.New("replay: unsupported version")
	// ErrMismatch is returned by Verify when the re-simulated match differs.
	ErrMismatch = errors.New("replay: final state mismatch")
)

// Entry is one key change applied at the start of a tick.
type Entry struct {
	Tick    uint64 `yaml:"tick"`
	Action  string `yaml:"action"`
	Pressed bool   `yaml:"pressed"`
}

// Recording is a complete, replayable match.
type Recording struct {
	Version int                  `yaml:"version"`
	Player  string               `yaml:"player,omitempty"`
	Seed    int64                `yaml:"seed"`
	Variant string               `yaml:"variant"`
	Config  config.TetrionConfig `yaml:"config"`
	Ticks   uint64               `yaml:"ticks"`
	Hash    uint64               `yaml:"hash"`
	Lines   int                  `yaml:"lines"`
	Events  []Entry              `yaml:"events"`
}

// Recorder collects events from a sim.Runner. It is safe to call
// RecordEvent from the runner goroutine while another goroutine reads.
type Recorder struct {
	mu  sync.Mutex
	rec Recording
}

// NewRecorder starts a recording for a match with the given rules and seed.
func NewRecorder(cfg config.TetrionConfig, seed int64, player string) *Recorder {
	return &Recorder{rec: Recording{
		Version: Version,
		Player:  player,
		Seed:    seed,
		Variant: cfg.Variant,
		Config:  cfg,
	}}
}

// RecordEvent stores a key change at the tick it was applied.
func (r *Recorder) RecordEvent(tick uint64, ev core.Event) {
	r.mu.Lock()
	r.rec.Events = append(r.rec.Events, Entry{
		Tick:    tick,
		Action:  ev.Action.String(),
		Pressed: ev.Pressed,
	})
	r.mu.Unlock()
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rec.Events)
}

// Finish seals the recording with the final tick count and snapshot.
func (r *Recorder) Finish(ticks uint64, snap *tetrion.Snapshot) Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.rec
	out.Ticks = ticks
	out.Hash = snap.Hash()
	out.Lines = snap.Lines
	out.Events = append([]Entry(nil), r.rec.Events...)
	return out
}

// Save writes a recording as YAML, creating parent directories.
func Save(path string, rec Recording) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("replay: create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("replay: write %s: %w", path, err)
	}
	return nil
}

// Load reads a recording written by Save.
func Load(path string) (Recording, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path is provided by the user on purpose
	if err != nil {
		return Recording{}, fmt.Errorf("replay: read %s: %w", path, err)
	}

	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Recording{}, fmt.Errorf("replay: decode %s: %w", path, err)
	}
	if rec.Version != Version {
		return Recording{}, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return rec, nil
}

// Outcome is the result of a headless replay.
type Outcome struct {
	Snapshot tetrion.Snapshot
	Ticks    uint64
}

// Hash returns the final snapshot hash.
func (o Outcome) Hash() uint64 {
	return o.Snapshot.Hash()
}

// Play re-simulates a recording. It runs rec.Ticks ticks, or until the
// match ends when Ticks is zero.
func Play(rec Recording) (Outcome, error) {
	game, err := tetrion.New(rec.Config, rec.Seed)
	if err != nil {
		return Outcome{}, fmt.Errorf("replay: %w", err)
	}

	events := make([]Entry, len(rec.Events))
	copy(events, rec.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Tick < events[j].Tick
	})

	var (
		raw  core.Actions
		tick uint64
		next int
	)
	for rec.Ticks == 0 || tick < rec.Ticks {
		for next < len(events) && events[next].Tick == tick {
			e := events[next]
			a, ok := core.ParseAction(e.Action)
			if !ok {
				return Outcome{}, fmt.Errorf("replay: unknown action %q at tick %d", e.Action, e.Tick)
			}
			raw.Apply(a, e.Pressed)
			next++
		}
		res := game.Advance(raw)
		tick++
		if rec.Ticks == 0 {
			if res.State == tetrion.StateOutro {
				break
			}
			if tick >= maxOpenTicks {
				return Outcome{}, fmt.Errorf("replay: match did not end within %d ticks", tick)
			}
		}
	}

	return Outcome{Snapshot: game.Snapshot(), Ticks: tick}, nil
}

// Verify replays rec and checks the final hash against the recorded one.
func Verify(rec Recording) (Outcome, error) {
	out, err := Play(rec)
	if err != nil {
		return out, err
	}
	if got := out.Hash(); got != rec.Hash {
		return out, fmt.Errorf("%w: recorded %d, replayed %d", ErrMismatch, rec.Hash, got)
	}
	return out, nil
}
