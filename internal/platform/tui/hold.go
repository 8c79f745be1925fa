package tui

import (
	"time"

	"github.com/vovakirdan/tetrion/internal/core"
)

// Default hold windows. Terminals send a key once, pause for the
// auto-repeat delay, then repeat it every 30-50ms.
const (
	DefaultTapHold    = 50 * time.Millisecond
	DefaultRepeatHold = 120 * time.Millisecond
)

// HoldTracker turns the press-only key stream of a terminal into press and
// release events. A key is held from its first message; it is released
// once no repeat has arrived within the hold window. The first message
// opens a short tap window, later repeats a longer one that bridges the
// gaps of the auto-repeat stream.
//
// Times are offsets on the caller's clock, so tests can drive it directly.
type HoldTracker struct {
	tap    time.Duration
	repeat time.Duration
	keys   [core.ActionCount]hold
}

type hold struct {
	held     bool
	deadline time.Duration
}

// NewHoldTracker creates a tracker. Non-positive windows use the defaults.
func NewHoldTracker(tap, repeat time.Duration) *HoldTracker {
	if tap <= 0 {
		tap = DefaultTapHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &HoldTracker{tap: tap, repeat: repeat}
}

// Press records a key message for a at time now. It returns true when the
// action was not held before, meaning a press event must be sent.
func (h *HoldTracker) Press(a core.Action, now time.Duration) bool {
	if a >= core.ActionCount {
		return false
	}
	k := &h.keys[a]
	if k.held {
		k.deadline = now + h.repeat
		return false
	}
	k.held = true
	k.deadline = now + h.tap
	return true
}

// Expire releases every action whose hold window has passed by now,
// calling release for each in action order. An action stays held when
// release returns false, and the next Expire tries again.
func (h *HoldTracker) Expire(now time.Duration, release func(core.Action) bool) {
	for a := range h.keys {
		k := &h.keys[a]
		if k.held && now >= k.deadline && release(core.Action(a)) {
			k.held = false
		}
	}
}

// ReleaseAll releases every held action.
func (h *HoldTracker) ReleaseAll(release func(core.Action)) {
	for a := range h.keys {
		if h.keys[a].held {
			h.keys[a].held = false
			release(core.Action(a))
		}
	}
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	return a < core.ActionCount && h.keys[a].held
}
