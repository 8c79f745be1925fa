package core

import (
	"strings"
	"time"
)

// Action is one logical input of the playfield controls.
// Physical keys are mapped onto these by the platform layer.
type Action uint8

const (
	ActionUp      Action = iota // sonic drop
	ActionDown                  // soft drop, lock when grounded
	ActionLeft                  // shift left
	ActionRight                 // shift right
	ActionButton1               // rotate counter-clockwise
	ActionButton2               // rotate clockwise
	ActionButton3               // rotate counter-clockwise
	ActionStart                 // start / restart
	ActionQuit                  // end the match

	ActionCount // number of actions, not an action
)

var actionNames = [ActionCount]string{
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionButton1: "Button1",
	ActionButton2: "Button2",
	ActionButton3: "Button3",
	ActionStart:   "Start",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < ActionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// ParseAction converts a name produced by String back into an Action.
// Matching is case-insensitive.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if strings.EqualFold(n, name) {
			return Action(i), true
		}
	}
	return 0, false
}

// Actions is a key-down bitmap with one bit per Action.
type Actions uint16

// Set marks an action as held.
func (m *Actions) Set(a Action) {
	*m |= 1 << a
}

// Unset marks an action as released.
func (m *Actions) Unset(a Action) {
	*m &^= 1 << a
}

// Apply sets or clears an action depending on pressed.
func (m *Actions) Apply(a Action, pressed bool) {
	if pressed {
		m.Set(a)
	} else {
		m.Unset(a)
	}
}

// Has reports whether the action is held.
func (m Actions) Has(a Action) bool {
	return m&(1<<a) != 0
}

// Clear releases every action.
func (m *Actions) Clear() {
	*m = 0
}

// String lists the held actions, e.g. "Left+Button2".
func (m Actions) String() string {
	var parts []string
	for a := Action(0); a < ActionCount; a++ {
		if m.Has(a) {
			parts = append(parts, a.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// Event is a single timestamped key transition sent from the input
// polling side to the simulation.
//
// Time is an offset on the simulation clock. Producers must deliver
// events in non-decreasing Time order.
type Event struct {
	Action  Action
	Pressed bool
	Time    time.Duration
}
