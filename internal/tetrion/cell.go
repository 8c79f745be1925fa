package tetrion

import "github.com/vovakirdan/tetrion/internal/core"

// Cell is the content of one playfield square. The piece types double as
// their cell colours.
type Cell uint8

const (
	CellEmpty Cell = iota
	PieceI
	PieceL
	PieceO
	PieceZ
	PieceT
	PieceJ
	PieceS
	CellGarbage

	pieceCount = int(PieceS) // number of piece types
)

// Pieces lists every piece type in table order.
var Pieces = [pieceCount]Cell{PieceI, PieceL, PieceO, PieceZ, PieceT, PieceJ, PieceS}

// IsPiece reports whether the cell is one of the seven piece types.
func (c Cell) IsPiece() bool {
	return c >= PieceI && c <= PieceS
}

// index returns the zero-based piece index. Only valid for pieces.
func (c Cell) index() int {
	return int(c - PieceI)
}

// String returns the single-letter name of the cell.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "."
	case PieceI:
		return "I"
	case PieceL:
		return "L"
	case PieceO:
		return "O"
	case PieceZ:
		return "Z"
	case PieceT:
		return "T"
	case PieceJ:
		return "J"
	case PieceS:
		return "S"
	case CellGarbage:
		return "#"
	default:
		return "?"
	}
}

// Color returns the display colour of the cell.
func (c Cell) Color() core.Color {
	switch c {
	case PieceI:
		return core.ColorRed
	case PieceL:
		return core.ColorOrange
	case PieceO:
		return core.ColorYellow
	case PieceZ:
		return core.ColorGreen
	case PieceT:
		return core.ColorCyan
	case PieceJ:
		return core.ColorBlue
	case PieceS:
		return core.ColorMagenta
	case CellGarbage:
		return core.ColorGray
	default:
		return core.ColorDefault
	}
}

// LookupKind tells what a grid coordinate refers to.
type LookupKind uint8

const (
	// InBounds is a real cell of the field.
	InBounds LookupKind = iota
	// Wall is left or right of the field, or below row 0.
	Wall
	// Above is over the top row. Pieces may occupy it freely.
	Above
)

// String returns a human-readable name for the kind.
func (k LookupKind) String() string {
	switch k {
	case InBounds:
		return "InBounds"
	case Wall:
		return "Wall"
	case Above:
		return "Above"
	default:
		return "Unknown"
	}
}

// Lookup is the result of reading a grid coordinate.
// Cell is only meaningful when Kind is InBounds.
type Lookup struct {
	Kind LookupKind
	Cell Cell
}

// Blocked reports whether a piece cell may not occupy this coordinate.
func (l Lookup) Blocked() bool {
	switch l.Kind {
	case Wall:
		return true
	case InBounds:
		return l.Cell != CellEmpty
	default:
		return false
	}
}

// Flatten collapses the lookup into a single cell value: walls read as
// garbage and the space above the field reads as empty.
func (l Lookup) Flatten() Cell {
	switch l.Kind {
	case Wall:
		return CellGarbage
	case Above:
		return CellEmpty
	default:
		return l.Cell
	}
}
