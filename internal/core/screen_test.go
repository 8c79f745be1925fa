package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetCell(5, 5, 'X', ColorRed)
	if cell := s.GetCell(5, 5); cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0).Color != ColorDefault {
		t.Error("Out of bounds GetCell should return the default colour")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(0, 0, 4, 4), '#', ColorBlue)
	s.Clear()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if cell := s.GetCell(x, y); cell.Rune != ' ' || cell.Color != ColorDefault {
				t.Errorf("After Clear, expected blank at (%d, %d), got %+v", x, y, cell)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Hello", ColorYellow)

	for i, ch := range "Hello" {
		cell := s.GetCell(2+i, 1)
		if cell.Rune != ch || cell.Color != ColorYellow {
			t.Errorf("DrawTextColor: expected yellow %q at (%d, 1), got %+v", ch, 2+i, cell)
		}
	}

	// Only "He" fits
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.r {
			t.Errorf("corner (%d, %d) = %q, expected %q", c.x, c.y, got, c.r)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("DrawBox should draw horizontal and vertical edges")
	}
	if s.Get(3, 2) != ' ' {
		t.Error("DrawBox should leave the interior untouched")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	expected := "abc\nde "
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
	if lines := strings.Split(s.String(), "\n"); len(lines) != 2 {
		t.Errorf("String() should have 2 lines, got %d", len(lines))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetCell(1, 1, 'X', ColorGreen)
	s.SetCell(4, 4, 'Y', ColorGreen)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize() dimensions = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if cell := s.GetCell(1, 1); cell.Rune != 'X' || cell.Color != ColorGreen {
		t.Errorf("Resize should preserve content, got %+v", cell)
	}

	s.Resize(6, 6)
	if s.Get(1, 1) != 'X' {
		t.Error("Growing should preserve content")
	}
	if s.Get(4, 4) != ' ' {
		t.Error("Content cut by shrinking should not come back")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 1, "ab")

	if got := s.Row(1); got != "ab  " {
		t.Errorf("Row(1) = %q, expected %q", got, "ab  ")
	}
	if got := s.Row(5); got != "    " {
		t.Errorf("Row(5) = %q, expected blanks", got)
	}
}
