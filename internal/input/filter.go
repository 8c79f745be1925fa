package input

import "github.com/vovakirdan/tetrion/internal/core"

// Direction is a horizontal input direction.
type Direction int8

const (
	DirNone  Direction = 0
	DirLeft  Direction = -1
	DirRight Direction = 1
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "None"
	}
}

// Frame is the filtered input for one tick: the current map plus the
// previous one, so edges can be detected.
type Frame struct {
	Prev core.Actions
	Cur  core.Actions
}

// Held reports whether the action is down this tick.
func (f Frame) Held(a core.Action) bool {
	return f.Cur.Has(a)
}

// Pressed reports whether the action went down this tick.
func (f Frame) Pressed(a core.Action) bool {
	return f.Cur.Has(a) && !f.Prev.Has(a)
}

// Released reports whether the action went up this tick.
func (f Frame) Released(a core.Action) bool {
	return !f.Cur.Has(a) && f.Prev.Has(a)
}

// Horizontal returns the single horizontal direction held, if any.
// After filtering, Left and Right are never held together.
func (f Frame) Horizontal() Direction {
	switch {
	case f.Cur.Has(core.ActionLeft):
		return DirLeft
	case f.Cur.Has(core.ActionRight):
		return DirRight
	default:
		return DirNone
	}
}

// Filter resolves conflicting inputs once per tick.
//
// Vertical input wins over horizontal input. When Left and Right are both
// held, the direction that was already committed keeps winning. If both
// appear on the same tick with nothing committed yet, Left wins.
type Filter struct {
	raw           core.Actions
	cur           core.Actions
	prev          core.Actions
	lastDirection Direction
}

// Update consumes the raw key state for a tick and returns the filtered frame.
func (f *Filter) Update(raw core.Actions) Frame {
	f.prev = f.cur
	f.raw = raw
	f.cur = raw

	if f.cur.Has(core.ActionUp) || f.cur.Has(core.ActionDown) {
		f.cur.Unset(core.ActionLeft)
		f.cur.Unset(core.ActionRight)
	}

	if f.cur.Has(core.ActionLeft) && f.cur.Has(core.ActionRight) {
		if f.lastDirection == DirRight {
			f.cur.Unset(core.ActionLeft)
		} else {
			f.cur.Unset(core.ActionRight)
		}
	}

	switch {
	case f.cur.Has(core.ActionLeft):
		f.lastDirection = DirLeft
	case f.cur.Has(core.ActionRight):
		f.lastDirection = DirRight
	}

	return Frame{Prev: f.prev, Cur: f.cur}
}

// Raw returns the unfiltered state passed to the last Update.
func (f *Filter) Raw() core.Actions {
	return f.raw
}

// LastDirection returns the last horizontal direction that won a tick.
func (f *Filter) LastDirection() Direction {
	return f.lastDirection
}
