package core

// Color is the foreground colour of a screen cell.
// The platform maps each value to an ANSI colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Bright returns the bright variant of a basic colour.
// Colours without a bright variant are returned unchanged.
func (c Color) Bright() Color {
	if c >= ColorRed && c <= ColorWhite {
		return c + (ColorBrightRed - ColorRed)
	}
	return c
}
