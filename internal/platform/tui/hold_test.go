package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/tetrion/internal/core"
)

func TestHoldTrackerTap(t *testing.T) {
	h := NewHoldTracker(50*time.Millisecond, 120*time.Millisecond)

	if !h.Press(core.ActionLeft, 0) {
		t.Fatal("first press should emit a press event")
	}

	var released []core.Action
	release := func(a core.Action) bool {
		released = append(released, a)
		return true
	}

	h.Expire(49*time.Millisecond, release)
	if len(released) != 0 {
		t.Fatalf("released %v before the tap window closed", released)
	}
	h.Expire(50*time.Millisecond, release)
	if len(released) != 1 || released[0] != core.ActionLeft {
		t.Fatalf("released %v, expected [Left]", released)
	}
	if h.Held(core.ActionLeft) {
		t.Error("Left still held after release")
	}
}

func TestHoldTrackerAutoRepeat(t *testing.T) {
	h := NewHoldTracker(50*time.Millisecond, 120*time.Millisecond)
	var released []core.Action
	release := func(a core.Action) bool {
		released = append(released, a)
		return true
	}

	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }

	h.Press(core.ActionRight, ms(0))
	h.Expire(ms(60), release) // terminal auto-repeat delay
	if len(released) != 1 {
		t.Fatalf("tap should release before the repeat stream starts, got %v", released)
	}

	// The repeat stream starts: a new press, then repeats every 33ms.
	if !h.Press(core.ActionRight, ms(300)) {
		t.Fatal("press after a release should emit again")
	}
	for at := 333; at <= 600; at += 33 {
		if h.Press(core.ActionRight, ms(at)) {
			t.Fatalf("repeat at %dms emitted a second press", at)
		}
		h.Expire(ms(at+10), release)
	}
	if len(released) != 1 || !h.Held(core.ActionRight) {
		t.Fatalf("key released during the repeat stream: %v", released)
	}

	// Last repeat at 597ms; the hold ends 120ms later.
	h.Expire(ms(716), release)
	if len(released) != 1 {
		t.Fatal("released before the repeat window closed")
	}
	h.Expire(ms(717), release)
	if len(released) != 2 {
		t.Fatalf("expected the stream end to release, got %v", released)
	}
}

func TestHoldTrackerReleaseAll(t *testing.T) {
	h := NewHoldTracker(0, 0)
	h.Press(core.ActionLeft, 0)
	h.Press(core.ActionButton2, 0)
	h.Press(core.ActionCount, 0)

	var released []core.Action
	h.ReleaseAll(func(a core.Action) { released = append(released, a) })

	if len(released) != 2 || released[0] != core.ActionLeft || released[1] != core.ActionButton2 {
		t.Errorf("ReleaseAll() released %v, expected [Left Button2]", released)
	}
	if h.Held(core.ActionLeft) || h.Held(core.ActionButton2) {
		t.Error("actions still held after ReleaseAll")
	}
}

func TestHoldTrackerRetriesRejectedRelease(t *testing.T) {
	h := NewHoldTracker(50*time.Millisecond, 120*time.Millisecond)
	h.Press(core.ActionLeft, 0)

	attempts := 0
	full := func(core.Action) bool {
		attempts++
		return false
	}
	h.Expire(60*time.Millisecond, full)
	if !h.Held(core.ActionLeft) {
		t.Fatal("Left released although the release was rejected")
	}

	var released []core.Action
	h.Expire(76*time.Millisecond, func(a core.Action) bool {
		released = append(released, a)
		return true
	})
	if attempts != 1 || len(released) != 1 || released[0] != core.ActionLeft {
		t.Fatalf("attempts = %d, released %v, expected one retry releasing Left", attempts, released)
	}
	if h.Held(core.ActionLeft) {
		t.Error("Left still held after an accepted release")
	}
}
