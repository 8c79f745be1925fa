package tetrion

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/input"
)

// newPlaying returns a match that has just entered Playing.
func newPlaying(t *testing.T, seed int64) *Tetrion {
	t.Helper()
	cfg := config.DefaultTetrionConfig()
	cfg.Timing.ReadyTicks = 1
	tt, err := New(cfg, seed)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if res := tt.Advance(0); res.State != StatePlaying {
		t.Fatalf("State = %v after the countdown, expected Playing", res.State)
	}
	return tt
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultTetrionConfig()
	cfg.Field.Width = 0

	_, err := New(cfg, 1)
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() error = %v, expected ErrInvalid", err)
	}
}

func TestReadyCountdown(t *testing.T) {
	tt, err := New(config.DefaultTetrionConfig(), 1)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	for i := 1; i < 180; i++ {
		if res := tt.Advance(keys(core.ActionLeft)); res.State != StateReady {
			t.Fatalf("tick %d: State = %v, expected Ready", i, res.State)
		}
	}
	snap := tt.Snapshot()
	if snap.Frame != 0 || snap.Ready != 1 {
		t.Errorf("Frame = %d, Ready = %d before play, expected 0 and 1", snap.Frame, snap.Ready)
	}
	for _, c := range snap.Cells {
		if c != CellEmpty {
			t.Fatal("grid changed during the countdown")
		}
	}

	if res := tt.Advance(0); res.State != StatePlaying {
		t.Fatalf("State = %v on tick 180, expected Playing", res.State)
	}
	if tt.Player().State() != PlayerSpawned {
		t.Errorf("player State() = %v, expected Spawned", tt.Player().State())
	}
}

func TestQuit(t *testing.T) {
	t.Run("during countdown", func(t *testing.T) {
		tt := MustNew(config.DefaultTetrionConfig(), 1)
		res := tt.Advance(keys(core.ActionQuit))
		if res.State != StateOutro || res.End != EndQuit {
			t.Errorf("Advance(Quit) = %+v, expected Outro/Quit", res)
		}
	})

	t.Run("during play", func(t *testing.T) {
		tt := newPlaying(t, 1)
		for i := 0; i < 10; i++ {
			tt.Advance(0)
		}
		res := tt.Advance(keys(core.ActionQuit))
		if res.State != StateOutro || res.End != EndQuit {
			t.Fatalf("Advance(Quit) = %+v, expected Outro/Quit", res)
		}

		frame := tt.Frame()
		for i := 0; i < 10; i++ {
			tt.Advance(keys(core.ActionDown))
		}
		if tt.Frame() != frame {
			t.Errorf("Frame() moved from %d to %d in Outro", frame, tt.Frame())
		}
		if tt.EndReason() != EndQuit {
			t.Errorf("EndReason() = %v, expected quit", tt.EndReason())
		}
	})
}

func TestLineClearEndToEnd(t *testing.T) {
	tt := newPlaying(t, 7)
	tt.player = newPlayer(&tt.rules, PieceI, tt.preview)

	g := tt.Grid()
	for _, x := range []int{0, 1, 2, 7, 8, 9} {
		g.Set(x, 0, CellGarbage)
	}
	g.Set(0, 1, PieceJ)

	tt.Advance(keys(core.ActionUp))
	res := tt.Advance(keys(core.ActionDown))
	if !res.Signals.Has(SignalLocked) {
		t.Fatalf("expected lock, got %+v", res)
	}
	if tt.Pieces() != 1 {
		t.Errorf("Pieces() = %d, expected 1", tt.Pieces())
	}
	if snap := tt.Snapshot(); snap.ClearMask != 1 {
		t.Errorf("ClearMask = %b, expected 1", snap.ClearMask)
	}

	for tick := 1; tick <= 35; tick++ {
		res = tt.Advance(0)
		switch tick {
		case 5:
			if !res.Signals.Has(SignalCleared) {
				t.Fatalf("tick %d: expected clear, got %+v", tick, res)
			}
			if !g.RowEmpty(0) {
				t.Error("row 0 should be emptied on clear")
			}
			if got := g.Get(0, 1).Cell; got != PieceJ {
				t.Errorf("rows must not move before the thump, (0,1) = %v", got)
			}
		case 35:
			if !res.Signals.Has(SignalThump) || res.Lines != 1 {
				t.Fatalf("tick %d: expected thump of 1 line, got %+v", tick, res)
			}
		default:
			if res.Signals != 0 {
				t.Fatalf("tick %d: unexpected signals %b", tick, res.Signals)
			}
		}
	}

	if tt.Lines() != 1 {
		t.Errorf("Lines() = %d, expected 1", tt.Lines())
	}
	if got := g.Get(0, 0).Cell; got != PieceJ {
		t.Errorf("(0,0) = %v, expected the J cell shifted down", got)
	}
	if !g.RowEmpty(1) {
		t.Error("row 1 should be empty after the thump")
	}
	if g.Width() != 10 {
		t.Errorf("Width() = %d, expected 10", g.Width())
	}
	if snap := tt.Snapshot(); snap.ClearMask != 0 {
		t.Errorf("ClearMask = %b after the thump, expected 0", snap.ClearMask)
	}
}

func TestSpawnUsesPreview(t *testing.T) {
	tt := newPlaying(t, 99)
	next := tt.Snapshot().Preview

	tt.Advance(keys(core.ActionUp))
	tt.Advance(keys(core.ActionDown))
	var res Result
	for i := 0; i < 24; i++ {
		res = tt.Advance(0)
	}
	if !res.Signals.Has(SignalSpawn) {
		t.Fatalf("expected spawn 24 ticks after the lock, got %+v", res)
	}

	snap := tt.Snapshot()
	if snap.Piece != next {
		t.Errorf("spawned %v, expected the preview %v", snap.Piece, next)
	}
	if snap.X != 3 || snap.Y != 18 || snap.Rotation != Spin0 {
		t.Errorf("spawned at (%d,%d) rotation %d, expected (3,18) rotation 0", snap.X, snap.Y, snap.Rotation)
	}
}

func TestTopOut(t *testing.T) {
	tt := newPlaying(t, 3)

	tt.Advance(keys(core.ActionUp))
	tt.Advance(keys(core.ActionDown))

	g := tt.Grid()
	for y := 20; y < 22; y++ {
		for x := 3; x < 7; x++ {
			g.Set(x, y, CellGarbage)
		}
	}

	for i := 1; i < 24; i++ {
		if res := tt.Advance(0); res.State != StatePlaying {
			t.Fatalf("tick %d: State = %v, expected Playing", i, res.State)
		}
	}
	res := tt.Advance(0)
	if res.State != StateOutro || res.End != EndTopOut {
		t.Fatalf("Advance() = %+v, expected Outro/TopOut", res)
	}
	if !res.Signals.Has(SignalSpawn) {
		t.Error("top-out result should carry the spawn signal")
	}
}

func scriptedInput(i int) core.Actions {
	var m core.Actions
	switch {
	case i%45 == 10:
		m.Set(core.ActionUp)
	case i%45 == 11:
		m.Set(core.ActionDown)
	}
	if i%7 == 0 {
		m.Set(core.ActionLeft)
	}
	if i%13 < 3 {
		m.Set(core.ActionRight)
	}
	if i%11 == 0 {
		m.Set(core.ActionButton2)
	}
	if i%17 == 0 {
		m.Set(core.ActionButton1)
	}
	return m
}

func TestDeterminism(t *testing.T) {
	cfg := config.DefaultTetrionConfig()
	cfg.Timing.ReadyTicks = 1
	a := MustNew(cfg, 2024)
	b := MustNew(cfg, 2024)

	var sa, sb Snapshot
	for i := 0; i < 3000; i++ {
		in := scriptedInput(i)
		ra, rb := a.Advance(in), b.Advance(in)
		if ra != rb {
			t.Fatalf("tick %d: results differ: %+v vs %+v", i, ra, rb)
		}
		a.SnapshotInto(&sa)
		b.SnapshotInto(&sb)
		if sa.Hash() != sb.Hash() {
			t.Fatalf("tick %d: snapshot hashes differ", i)
		}
	}

	if !a.Grid().Equal(b.Grid()) {
		t.Error("grids differ")
	}
	if a.Pieces() == 0 {
		t.Error("expected some pieces to lock")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	tt := newPlaying(t, 5)
	snap := tt.Snapshot()
	snap.Cells[0] = CellGarbage

	if got := tt.Grid().Get(0, 0).Cell; got != CellEmpty {
		t.Errorf("grid changed through a snapshot: %v", got)
	}

	buf := make([]Cell, 0, 512)
	reused := Snapshot{Cells: buf}
	tt.SnapshotInto(&reused)
	if len(reused.Cells) != 10*22 {
		t.Fatalf("len(Cells) = %d, expected %d", len(reused.Cells), 10*22)
	}
	if &reused.Cells[0] != &buf[:1][0] {
		t.Error("SnapshotInto should reuse a large enough buffer")
	}

	var dst Snapshot
	reused.CopyTo(&dst)
	dst.Cells[0] = PieceS
	if reused.Cells[0] == PieceS {
		t.Error("CopyTo shares the cell buffer")
	}
	if dst.Hash() == reused.Hash() {
		t.Error("changing a cell should change the hash")
	}
}

func TestSnapshotGhostAndPieceCells(t *testing.T) {
	tt := newPlaying(t, 11)
	snap := tt.Snapshot()

	cells, ok := snap.PieceCells()
	if !ok {
		t.Fatal("PieceCells() reported no piece while Spawned")
	}
	for _, c := range cells {
		if c.Y < 20 {
			t.Errorf("spawned cell %v below row 20", c)
		}
	}
	if y := snap.GhostY(); y != -2 {
		t.Errorf("GhostY() = %d on an empty field, expected -2", y)
	}

	tt.Advance(keys(core.ActionUp))
	tt.Advance(keys(core.ActionDown))
	snap = tt.Snapshot()
	if _, ok := snap.PieceCells(); ok {
		t.Error("PieceCells() should report no piece after the lock")
	}
}

func TestSnapshotHashCoversPlayerTimers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(tt *Tetrion)
	}{
		{"sub-cell fall", func(tt *Tetrion) { tt.player.ySub++ }},
		{"lowest row", func(tt *Tetrion) { tt.player.yLowest-- }},
		{"autoshift direction", func(tt *Tetrion) { tt.player.autoshiftDirection = input.DirRight }},
		{"autoshift charge", func(tt *Tetrion) { tt.player.autoshiftCharge++ }},
		{"autoshift delay", func(tt *Tetrion) { tt.player.autoshiftDelay++ }},
		{"clear delay", func(tt *Tetrion) { tt.player.clearDelay++ }},
		{"spawn delay", func(tt *Tetrion) { tt.player.spawnDelay++ }},
		{"rows cleared", func(tt *Tetrion) { tt.player.cleared = true }},
		{"raw input", func(tt *Tetrion) { tt.filter.Update(keys(core.ActionButton3)) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt := newPlaying(t, 5)
			before := tt.Snapshot()
			tc.mutate(tt)
			after := tt.Snapshot()
			if before.Hash() == after.Hash() {
				t.Errorf("hash unchanged after changing the %s", tc.name)
			}
		})
	}
}
