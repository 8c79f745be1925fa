// Package sim runs a Tetrion match at a fixed tick rate on its own
// goroutine. Producers push timestamped key events into the runner's
// queue; renderers read snapshots from its bridge. The runner goroutine is
// the only one that touches the match itself.
package sim

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/input"
	"github.com/vovakirdan/tetrion/internal/tetrion"
)

// ErrAlreadyRunning is returned when Run is called twice.
var ErrAlreadyRunning = errors.New("sim: runner already started")

// EventRecorder receives every event at the tick it was applied.
// This lets a replay be recorded without the runner knowing its format.
type EventRecorder interface {
	RecordEvent(tick uint64, ev core.Event)
}

// RunnerConfig holds configuration for a Runner.
type RunnerConfig struct {
	TickRate      float64 // ticks per second
	QueueCapacity int
	StopOnOutro   bool // Run returns once the match is over

	Clock    Clock         // nil means SystemClock
	Logger   *log.Logger   // nil discards
	Recorder EventRecorder // optional
}

// Runner drives a match with a catch-up loop: when the host falls behind,
// every missed tick is still simulated, in order, with its own events.
type Runner struct {
	game     *tetrion.Tetrion
	queue    *input.Queue
	bridge   *Bridge
	clock    Clock
	logger   *log.Logger
	recorder EventRecorder

	period      time.Duration
	stopOnOutro bool
	start       time.Time

	// Owned by the runner goroutine.
	tick     uint64
	nextTick time.Duration
	raw      core.Actions
	snap     tetrion.Snapshot
	last     tetrion.Result

	running  atomic.Bool
	started  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner creates a runner for game. Event time starts counting now.
func NewRunner(game *tetrion.Tetrion, cfg RunnerConfig) *Runner {
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &Runner{
		game:        game,
		queue:       input.NewQueue(cfg.QueueCapacity),
		bridge:      NewBridge(),
		clock:       clock,
		logger:      logger,
		recorder:    cfg.Recorder,
		period:      TickPeriod(cfg.TickRate),
		stopOnOutro: cfg.StopOnOutro,
		start:       clock.Now(),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	r.running.Store(true)

	// Renderers see the Ready state before the first tick.
	game.SnapshotInto(&r.snap)
	r.bridge.Publish(&r.snap)
	return r
}

// TickPeriod converts a tick rate to the duration of one tick.
// Non-positive rates fall back to 60 Hz.
func TickPeriod(rate float64) time.Duration {
	if rate <= 0 {
		rate = 60
	}
	return time.Duration(float64(time.Second) / rate)
}

// Queue returns the producer side of the input transport.
func (r *Runner) Queue() *input.Queue {
	return r.queue
}

// Bridge returns the snapshot bridge.
func (r *Runner) Bridge() *Bridge {
	return r.bridge
}

// Now returns the event timestamp for the current moment.
func (r *Runner) Now() time.Duration {
	return r.clock.Now().Sub(r.start)
}

// Push stamps an action with the current time and queues it.
// It returns false when the queue is full and the event was dropped.
func (r *Runner) Push(a core.Action, pressed bool) bool {
	ok := r.queue.Push(core.Event{Action: a, Pressed: pressed, Time: r.Now()})
	if !ok {
		r.logger.Warn("input queue full, event dropped", "action", a, "pressed", pressed)
	}
	return ok
}

// Tick returns the number of ticks run. Only safe on the runner goroutine
// or after Run has returned.
func (r *Runner) Tick() uint64 {
	return r.tick
}

// Running reports whether the runner still accepts ticks.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Stop asks the loop to exit after the current tick.
func (r *Runner) Stop() {
	r.running.Store(false)
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Run ticks the match until Stop is called, ctx is cancelled, or the match
// ends with StopOnOutro set. A cancelled context returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer r.doneOnce.Do(func() {
		close(r.done)
	})

	r.logger.Debug("runner started", "period", r.period)

	for r.running.Load() {
		if err := ctx.Err(); err != nil {
			r.running.Store(false)
			return err
		}

		r.Poll()
		if r.finished() {
			r.running.Store(false)
			break
		}

		wait := r.nextTick - r.Now()
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			r.running.Store(false)
			return ctx.Err()
		case <-r.stop:
		case <-r.clock.After(wait):
		}
	}

	r.logger.Debug("runner stopped", "ticks", r.tick, "state", r.snap.State)
	return nil
}

// Poll runs every tick whose deadline has passed and returns how many ran.
// Run calls it in a loop; tests may call it directly with a ManualClock.
func (r *Runner) Poll() int {
	now := r.Now()
	n := 0
	for r.running.Load() && now >= r.nextTick {
		r.step(r.nextTick)
		n++
		r.nextTick = time.Duration(r.tick) * r.period
		if r.finished() {
			break
		}
	}
	return n
}

func (r *Runner) finished() bool {
	return r.stopOnOutro && r.snap.State == tetrion.StateOutro
}

// step applies the events due by deadline, advances one tick and
// publishes the result.
func (r *Runner) step(deadline time.Duration) {
	for {
		ev, ok := r.queue.Peek()
		if !ok || ev.Time > deadline {
			break
		}
		r.queue.Pop()
		r.raw.Apply(ev.Action, ev.Pressed)
		if r.recorder != nil {
			r.recorder.RecordEvent(r.tick, ev)
		}
	}

	res := r.game.Advance(r.raw)
	r.tick++
	r.game.SnapshotInto(&r.snap)
	r.bridge.Publish(&r.snap)

	if res.End != tetrion.EndNone && r.last.End == tetrion.EndNone {
		r.logger.Info("match over", "reason", res.End, "lines", r.snap.Lines, "frames", r.snap.Frame)
	}
	r.last = res
}

// Snapshot returns the runner's own latest snapshot. Only safe on the
// runner goroutine or after Run has returned; other goroutines use Bridge.
func (r *Runner) Snapshot() *tetrion.Snapshot {
	return &r.snap
}
