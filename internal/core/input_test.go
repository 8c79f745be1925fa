package core

import "testing"

func TestActionsSetUnset(t *testing.T) {
	var m Actions

	m.Set(ActionLeft)
	m.Set(ActionButton2)
	if !m.Has(ActionLeft) || !m.Has(ActionButton2) {
		t.Fatalf("Has() after Set = false, map %s", m)
	}
	if m.Has(ActionRight) {
		t.Error("Has(Right) = true, expected false")
	}

	m.Apply(ActionLeft, false)
	if m.Has(ActionLeft) {
		t.Error("Apply(Left, false) should release Left")
	}

	m.Clear()
	if m != 0 {
		t.Errorf("Clear() left %s held", m)
	}
}

func TestActionsString(t *testing.T) {
	var m Actions
	if m.String() != "none" {
		t.Errorf("String() = %q, expected %q", m.String(), "none")
	}
	m.Set(ActionButton2)
	m.Set(ActionLeft)
	if m.String() != "Left+Button2" {
		t.Errorf("String() = %q, expected %q", m.String(), "Left+Button2")
	}
}

func TestParseAction(t *testing.T) {
	for a := Action(0); a < ActionCount; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("jump"); ok {
		t.Error("ParseAction(jump) should fail")
	}
	if got, ok := ParseAction("button1"); !ok || got != ActionButton1 {
		t.Errorf("ParseAction should be case-insensitive, got %v %v", got, ok)
	}
}
