package tetrion

import (
	"fmt"

	"github.com/vovakirdan/tetrion/internal/core"
)

// Rotation is a piece orientation in clockwise quarter turns from spawn.
type Rotation uint8

const (
	Spin0 Rotation = iota
	Spin90
	Spin180
	Spin270
)

// CW returns the orientation one quarter turn clockwise.
func (r Rotation) CW() Rotation {
	return (r + 1) & 3
}

// CCW returns the orientation one quarter turn counter-clockwise.
func (r Rotation) CCW() Rotation {
	return (r + 3) & 3
}

// Shape is the four cells of a piece, relative to the bottom-left corner
// of its 4x4 bounding box.
type Shape [4]core.Point

// boxSize is the side of the bounding box every shape must fit in.
const boxSize = 4

// pieceDef is a spawn shape plus its rotation centre in doubled
// coordinates, so that half-cell centres stay integral.
type pieceDef struct {
	spawn  Shape
	center core.Point
}

// Indexed by piece order: I, L, O, Z, T, J, S.
var pieceDefs = [pieceCount]pieceDef{
	{Shape{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}, core.Point{X: 3, Y: 3}},
	{Shape{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 3}}, core.Point{X: 2, Y: 4}},
	{Shape{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}}, core.Point{X: 3, Y: 5}},
	{Shape{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 1, Y: 2}, {X: 2, Y: 2}}, core.Point{X: 2, Y: 4}},
	{Shape{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 3}}, core.Point{X: 2, Y: 4}},
	{Shape{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 0, Y: 3}}, core.Point{X: 2, Y: 4}},
	{Shape{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 3}, {X: 2, Y: 3}}, core.Point{X: 2, Y: 4}},
}

// pieceTable holds every (piece, rotation) shape. Built once at init and
// read-only afterwards.
var pieceTable [pieceCount][4]Shape

// kicks are the offsets tried, in order, when a rotation collides.
var kicks = [...]core.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 0}}

func init() {
	for i, def := range pieceDefs {
		shape := def.spawn
		for r := Spin0; r <= Spin270; r++ {
			if err := validateShape(shape); err != nil {
				panic(fmt.Sprintf("tetrion: piece %s rotation %d: %v", Pieces[i], r, err))
			}
			pieceTable[i][r] = shape
			shape = rotateShape(shape, def.center)
		}
		if shape != def.spawn {
			panic(fmt.Sprintf("tetrion: piece %s does not return to spawn after four turns", Pieces[i]))
		}
	}
}

// rotateShape turns a shape one quarter clockwise around a doubled centre.
// With y pointing up, clockwise maps (dx, dy) to (dy, -dx).
func rotateShape(s Shape, center core.Point) Shape {
	var out Shape
	for i, p := range s {
		dx := 2*p.X - center.X
		dy := 2*p.Y - center.Y
		nx, ny := dy+center.X, -dx+center.Y
		if nx%2 != 0 || ny%2 != 0 {
			panic(fmt.Sprintf("tetrion: rotation centre %v leaves cell %v off the grid", center, p))
		}
		out[i] = core.Point{X: nx / 2, Y: ny / 2}
	}
	return out
}

func validateShape(s Shape) error {
	for i, p := range s {
		if p.X < 0 || p.X >= boxSize || p.Y < 0 || p.Y >= boxSize {
			return fmt.Errorf("cell %v outside the %dx%d box", p, boxSize, boxSize)
		}
		for _, q := range s[:i] {
			if p == q {
				return fmt.Errorf("duplicate cell %v", p)
			}
		}
	}
	return nil
}

// ShapeOf returns the cells of a piece in a given orientation.
// It panics if c is not a piece type.
func ShapeOf(c Cell, r Rotation) Shape {
	if !c.IsPiece() {
		panic(fmt.Sprintf("tetrion: %v is not a piece", c))
	}
	return pieceTable[c.index()][r&3]
}

// fits reports whether a piece placed with its box corner at pos overlaps
// nothing solid.
func fits(g *Grid, c Cell, r Rotation, pos core.Point) bool {
	for _, p := range ShapeOf(c, r) {
		if g.Get(pos.X+p.X, pos.Y+p.Y).Blocked() {
			return false
		}
	}
	return true
}
