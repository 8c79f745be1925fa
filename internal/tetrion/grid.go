package tetrion

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tetrion/internal/config"
)

// Down is the row delta of one gravity step. Row 0 is the bottom of the
// field and y grows upward, so falling decreases y.
const Down = -1

// Grid is the playfield: a fixed-size matrix of locked cells.
// Storage is row-major with index y*width+x.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an empty grid. Dimensions are fixed for its lifetime.
// It panics on dimensions the line-clear bitmask cannot represent.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 || height > config.MaxFieldHeight {
		panic(fmt.Sprintf("tetrion: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Get reads a coordinate. It never fails and never mutates the grid.
func (g *Grid) Get(x, y int) Lookup {
	switch {
	case x < 0 || x >= g.width || y < 0:
		return Lookup{Kind: Wall}
	case y >= g.height:
		return Lookup{Kind: Above}
	default:
		return Lookup{Kind: InBounds, Cell: g.cells[y*g.width+x]}
	}
}

// Set writes a cell. Out-of-range coordinates are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y*g.width+x] = c
}

func (g *Grid) row(y int) []Cell {
	return g.cells[y*g.width : (y+1)*g.width]
}

// RowEmpty reports whether row y holds no locked cells.
func (g *Grid) RowEmpty(y int) bool {
	if y < 0 || y >= g.height {
		return true
	}
	for _, c := range g.row(y) {
		if c != CellEmpty {
			return false
		}
	}
	return true
}

// RowFull reports whether every cell of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.height {
		return false
	}
	for _, c := range g.row(y) {
		if c == CellEmpty {
			return false
		}
	}
	return true
}

// StackHeight returns the first row, counting up from row 0, that holds
// no occupied cell, or Height if every row is occupied.
func (g *Grid) StackHeight() int {
	for y := 0; y < g.height; y++ {
		if g.RowEmpty(y) {
			return y
		}
	}
	return g.height
}

// FullRows returns a bitmask with bit y set for every full row.
func (g *Grid) FullRows() uint64 {
	var mask uint64
	for y := 0; y < g.height; y++ {
		if g.RowFull(y) {
			mask |= 1 << uint(y)
		}
	}
	return mask
}

// ClearRow empties row y without moving anything.
func (g *Grid) ClearRow(y int) {
	if y < 0 || y >= g.height {
		return
	}
	row := g.row(y)
	for i := range row {
		row[i] = CellEmpty
	}
}

// Collapse removes every row whose bit is set in mask and shifts the rows
// above down by the number removed. The top rows become empty.
// It returns the number of rows removed.
func (g *Grid) Collapse(mask uint64) int {
	dst := 0
	for src := 0; src < g.height; src++ {
		if mask&(1<<uint(src)) != 0 {
			continue
		}
		if dst != src {
			copy(g.row(dst), g.row(src))
		}
		dst++
	}
	removed := g.height - dst
	for y := dst; y < g.height; y++ {
		g.ClearRow(y)
	}
	return removed
}

// Cells copies the grid contents into dst, growing it if needed, and
// returns the result.
func (g *Grid) Cells(dst []Cell) []Cell {
	if cap(dst) < len(g.cells) {
		dst = make([]Cell, len(g.cells))
	}
	dst = dst[:len(g.cells)]
	copy(dst, g.cells)
	return dst
}

// Equal reports whether two grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// String renders the grid top row first, one letter per cell.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for _, c := range g.row(y) {
			sb.WriteString(c.String())
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
