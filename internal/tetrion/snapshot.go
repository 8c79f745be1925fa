package tetrion

import (
	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/input"
)

// Snapshot is a point-in-time copy of a match for renderers, replays and
// determinism checks. It shares no memory with the Tetrion it came from.
type Snapshot struct {
	State   State
	End     EndReason
	Ready   int
	Frame   int
	Lines   int
	Pieces  int
	Gravity int

	Width         int
	Height        int
	VisibleHeight int
	Cells         []Cell // row-major, row 0 at the bottom

	PlayerState PlayerState
	Piece       Cell
	Rotation    Rotation
	X, Y        int
	Preview     Cell
	LockDelay   int

	// Player timers. They are not drawn but must match tick for tick.
	YSub               int
	YLowest            int
	AutoshiftDirection input.Direction
	AutoshiftCharge    int
	AutoshiftDelay     int
	ClearDelay         int
	SpawnDelay         int
	RowsCleared        bool

	RawInput      core.Actions
	LastDirection input.Direction

	ClearMask uint64
	Tokens    [pieceCount]int
	RNGState  uint64
}

// Snapshot returns a fresh copy of the match state.
func (t *Tetrion) Snapshot() Snapshot {
	var s Snapshot
	t.SnapshotInto(&s)
	return s
}

// SnapshotInto fills dst, reusing its cell buffer when large enough.
func (t *Tetrion) SnapshotInto(dst *Snapshot) {
	cells := t.grid.Cells(dst.Cells)
	*dst = Snapshot{
		State:   t.state,
		End:     t.end,
		Ready:   t.ready,
		Frame:   t.frame,
		Lines:   t.lines,
		Pieces:  t.pieces,
		Gravity: t.gravity,

		Width:         t.rules.width,
		Height:        t.rules.height,
		VisibleHeight: t.rules.visibleHeight,
		Cells:         cells,

		PlayerState: t.player.state,
		Piece:       t.player.piece,
		Rotation:    t.player.rotation,
		X:           t.player.pos.X,
		Y:           t.player.pos.Y,
		Preview:     t.preview,
		LockDelay:   t.player.lockDelay,

		YSub:               t.player.ySub,
		YLowest:            t.player.yLowest,
		AutoshiftDirection: t.player.autoshiftDirection,
		AutoshiftCharge:    t.player.autoshiftCharge,
		AutoshiftDelay:     t.player.autoshiftDelay,
		ClearDelay:         t.player.clearDelay,
		SpawnDelay:         t.player.spawnDelay,
		RowsCleared:        t.player.cleared,

		RawInput:      t.filter.Raw(),
		LastDirection: t.filter.LastDirection(),

		ClearMask: t.pending,
		Tokens:    t.randomizer.Tokens(),
		RNGState:  t.randomizer.State(),
	}
}

// CopyTo copies s into dst, reusing dst's cell buffer when large enough.
func (s *Snapshot) CopyTo(dst *Snapshot) {
	cells := dst.Cells
	if cap(cells) < len(s.Cells) {
		cells = make([]Cell, len(s.Cells))
	}
	cells = cells[:len(s.Cells)]
	copy(cells, s.Cells)
	*dst = *s
	dst.Cells = cells
}

// Cell reads a coordinate of the captured grid with the same rules as
// Grid.Get.
func (s *Snapshot) Cell(x, y int) Lookup {
	switch {
	case x < 0 || x >= s.Width || y < 0:
		return Lookup{Kind: Wall}
	case y >= s.Height:
		return Lookup{Kind: Above}
	case y*s.Width+x >= len(s.Cells):
		return Lookup{Kind: Above}
	default:
		return Lookup{Kind: InBounds, Cell: s.Cells[y*s.Width+x]}
	}
}

// HasPiece reports whether a piece is under player control.
func (s *Snapshot) HasPiece() bool {
	return s.Piece.IsPiece() && (s.PlayerState == PlayerSpawned || s.PlayerState == PlayerActive)
}

// PieceCells returns the absolute cells of the controlled piece.
// ok is false when no piece is under control.
func (s *Snapshot) PieceCells() (cells [4]core.Point, ok bool) {
	if !s.HasPiece() {
		return cells, false
	}
	return s.pieceCellsAt(s.Y), true
}

func (s *Snapshot) pieceCellsAt(y int) [4]core.Point {
	var out [4]core.Point
	for i, c := range ShapeOf(s.Piece, s.Rotation) {
		out[i] = core.Point{X: s.X + c.X, Y: y + c.Y}
	}
	return out
}

// GhostY returns the row the controlled piece would land on if dropped
// straight down, or the current row when no piece is under control.
func (s *Snapshot) GhostY() int {
	if !s.HasPiece() {
		return s.Y
	}
	y := s.Y
	for s.pieceFits(y + Down) {
		y += Down
	}
	return y
}

func (s *Snapshot) pieceFits(y int) bool {
	for _, c := range s.pieceCellsAt(y) {
		if s.Cell(c.X, c.Y).Blocked() {
			return false
		}
	}
	return true
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s *Snapshot) Hash() uint64 {
	h := uint64(s.State)
	h = h*31 + uint64(s.End)
	h = h*31 + uint64(s.Ready)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Frame)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Lines)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Pieces)  //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Gravity) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Width)   //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Height)  //#nosec G115 -- hash computation

	for _, c := range s.Cells {
		h = h*31 + uint64(c)
	}

	h = h*31 + uint64(s.PlayerState)
	h = h*31 + uint64(s.Piece)
	h = h*31 + uint64(s.Rotation)
	h = h*31 + uint64(s.X) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Y) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.Preview)
	h = h*31 + uint64(s.LockDelay) //#nosec G115 -- hash computation

	h = h*31 + uint64(s.YSub)               //#nosec G115 -- hash computation
	h = h*31 + uint64(s.YLowest)            //#nosec G115 -- hash computation
	h = h*31 + uint64(s.AutoshiftDirection) //#nosec G115 -- hash computation
	h = h*31 + uint64(s.AutoshiftCharge)    //#nosec G115 -- hash computation
	h = h*31 + uint64(s.AutoshiftDelay)     //#nosec G115 -- hash computation
	h = h*31 + uint64(s.ClearDelay)         //#nosec G115 -- hash computation
	h = h*31 + uint64(s.SpawnDelay)         //#nosec G115 -- hash computation
	if s.RowsCleared {
		h = h*31 + 1
	} else {
		h = h*31 + 2
	}
	h = h*31 + uint64(s.RawInput)
	h = h*31 + uint64(s.LastDirection) //#nosec G115 -- hash computation

	h = h*31 + s.ClearMask

	for _, n := range s.Tokens {
		h = h*31 + uint64(n) //#nosec G115 -- hash computation
	}
	h = h*31 + s.RNGState

	return h
}
