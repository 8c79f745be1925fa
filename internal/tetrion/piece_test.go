package tetrion

import (
	"testing"

	"github.com/vovakirdan/tetrion/internal/core"
)

func shapeSet(s Shape) map[core.Point]bool {
	m := make(map[core.Point]bool, len(s))
	for _, p := range s {
		m[p] = true
	}
	return m
}

func sameCells(a, b Shape) bool {
	sa, sb := shapeSet(a), shapeSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for p := range sa {
		if !sb[p] {
			return false
		}
	}
	return true
}

func TestPieceTableShapes(t *testing.T) {
	for _, c := range Pieces {
		t.Run(c.String(), func(t *testing.T) {
			for r := Spin0; r <= Spin270; r++ {
				s := ShapeOf(c, r)
				if len(shapeSet(s)) != 4 {
					t.Errorf("rotation %d has duplicate cells: %v", r, s)
				}
				for _, p := range s {
					if p.X < 0 || p.X >= boxSize || p.Y < 0 || p.Y >= boxSize {
						t.Errorf("rotation %d cell %v outside the box", r, p)
					}
				}
			}
		})
	}
}

func TestPieceRotations(t *testing.T) {
	iVertical := Shape{{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	if got := ShapeOf(PieceI, Spin90); !sameCells(got, iVertical) {
		t.Errorf("I Spin90 = %v, expected %v", got, iVertical)
	}

	tRight := Shape{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 2}}
	if got := ShapeOf(PieceT, Spin90); !sameCells(got, tRight) {
		t.Errorf("T Spin90 = %v, expected %v", got, tRight)
	}

	for r := Spin90; r <= Spin270; r++ {
		if !sameCells(ShapeOf(PieceO, r), ShapeOf(PieceO, Spin0)) {
			t.Errorf("O rotation %d changed its cells", r)
		}
	}
}

func TestRotationArithmetic(t *testing.T) {
	tests := []struct {
		r       Rotation
		cw, ccw Rotation
	}{
		{Spin0, Spin90, Spin270},
		{Spin90, Spin180, Spin0},
		{Spin180, Spin270, Spin90},
		{Spin270, Spin0, Spin180},
	}
	for _, tc := range tests {
		if got := tc.r.CW(); got != tc.cw {
			t.Errorf("%d.CW() = %d, expected %d", tc.r, got, tc.cw)
		}
		if got := tc.r.CCW(); got != tc.ccw {
			t.Errorf("%d.CCW() = %d, expected %d", tc.r, got, tc.ccw)
		}
	}
}

func TestShapeOfPanicsOnNonPiece(t *testing.T) {
	for _, c := range []Cell{CellEmpty, CellGarbage} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("ShapeOf(%v) should panic", c)
				}
			}()
			ShapeOf(c, Spin0)
		}()
	}
}

func TestFits(t *testing.T) {
	g := NewGrid(10, 22)
	g.Set(5, 0, CellGarbage)

	tests := []struct {
		name string
		pos  core.Point
		want bool
	}{
		{"open space", core.Point{X: 3, Y: 5}, true},
		{"above the top", core.Point{X: 3, Y: 21}, true},
		{"through the floor", core.Point{X: 0, Y: -3}, false},
		{"into the left wall", core.Point{X: -1, Y: 5}, false},
		{"into the right wall", core.Point{X: 7, Y: 5}, false},
		{"onto locked cell", core.Point{X: 2, Y: -2}, false},
		{"beside locked cell", core.Point{X: 6, Y: -2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := fits(g, PieceI, Spin0, tc.pos); got != tc.want {
				t.Errorf("fits(I, %v) = %v, expected %v", tc.pos, got, tc.want)
			}
		})
	}
}
