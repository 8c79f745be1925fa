package tetrion

import (
	"fmt"

	"github.com/vovakirdan/tetrion/internal/core"
)

const (
	cellW  = 2  // screen columns per field cell
	panelW = 14 // side panel width
)

// Layout is where Render placed the field on the screen.
type Layout struct {
	Field core.Rect // box including its border
	Panel core.Rect
}

// FieldSize returns the screen size needed to draw a snapshot.
func FieldSize(snap *Snapshot) (w, h int) {
	return snap.Width*cellW + 2 + panelW + 1, snap.VisibleHeight + 3
}

// Render draws a snapshot into the screen: the visible rows of the field,
// the ghost and active piece, the preview, counters and state overlays.
func Render(dst *core.Screen, snap *Snapshot) Layout {
	dst.Clear()

	needW, needH := FieldSize(snap)
	if dst.Width() < needW || dst.Height() < needH {
		renderTooSmall(dst)
		return Layout{}
	}

	boxW := snap.Width*cellW + 2
	boxH := snap.VisibleHeight + 2
	x0 := (dst.Width() - needW) / 2
	y0 := 1

	layout := Layout{
		Field: core.NewRect(x0, y0, boxW, boxH),
		Panel: core.NewRect(x0+boxW+1, y0, panelW, boxH),
	}

	dst.DrawTextCentered(0, "TETRION")
	dst.DrawBox(layout.Field, core.ColorGray)
	renderField(dst, snap, layout.Field)
	renderPanel(dst, snap, layout.Panel)
	renderOverlay(dst, snap, layout.Field)

	return layout
}

// cellPos converts a field coordinate to the screen position of its left
// column. ok is false for rows outside the visible area.
func cellPos(snap *Snapshot, box core.Rect, x, y int) (sx, sy int, ok bool) {
	if y < 0 || y >= snap.VisibleHeight {
		return 0, 0, false
	}
	return box.X + 1 + x*cellW, box.Y + 1 + (snap.VisibleHeight - 1 - y), true
}

func drawBlock(dst *core.Screen, sx, sy int, text string, c core.Color) {
	dst.DrawTextColor(sx, sy, text, c)
}

func renderField(dst *core.Screen, snap *Snapshot, box core.Rect) {
	for y := 0; y < snap.VisibleHeight; y++ {
		for x := 0; x < snap.Width; x++ {
			sx, sy, _ := cellPos(snap, box, x, y)
			c := snap.Cell(x, y).Flatten()
			if c == CellEmpty {
				drawBlock(dst, sx, sy, " .", core.ColorGray)
				continue
			}
			drawBlock(dst, sx, sy, "[]", c.Color())
		}
	}

	if !snap.HasPiece() {
		return
	}

	ghostY := snap.GhostY()
	if ghostY != snap.Y {
		for _, c := range snap.pieceCellsAt(ghostY) {
			if sx, sy, ok := cellPos(snap, box, c.X, c.Y); ok {
				drawBlock(dst, sx, sy, "::", core.ColorGray)
			}
		}
	}

	cells, _ := snap.PieceCells()
	for _, c := range cells {
		if sx, sy, ok := cellPos(snap, box, c.X, c.Y); ok {
			drawBlock(dst, sx, sy, "[]", snap.Piece.Color().Bright())
		}
	}
}

func renderPanel(dst *core.Screen, snap *Snapshot, panel core.Rect) {
	x, y := panel.X, panel.Y

	dst.DrawText(x, y, "NEXT")
	if snap.Preview.IsPiece() {
		for _, c := range ShapeOf(snap.Preview, Spin0) {
			// Spawn shapes sit in rows 2 and 3 of their box.
			row := y + 1 + (boxSize - 1 - c.Y)
			dst.DrawTextColor(x+c.X*cellW, row, "[]", snap.Preview.Color())
		}
	}

	y += 4
	dst.DrawText(x, y, "LINES")
	dst.DrawText(x, y+1, fmt.Sprintf("%d", snap.Lines))
	dst.DrawText(x, y+3, "PIECES")
	dst.DrawText(x, y+4, fmt.Sprintf("%d", snap.Pieces))
	dst.DrawText(x, y+6, "FRAME")
	dst.DrawText(x, y+7, fmt.Sprintf("%d", snap.Frame))
	dst.DrawText(x, y+9, "GRAVITY")
	dst.DrawText(x, y+10, fmt.Sprintf("%d", snap.Gravity))
}

func renderOverlay(dst *core.Screen, snap *Snapshot, box core.Rect) {
	switch snap.State {
	case StateReady:
		drawOverlay(dst, box, "READY", fmt.Sprintf("%d", snap.Ready))
	case StateOutro:
		reason := "Topped out"
		if snap.End == EndQuit {
			reason = "Quit"
		}
		drawOverlay(dst, box, "GAME OVER", reason, fmt.Sprintf("Lines: %d", snap.Lines))
	case StatePlaying:
		if snap.ClearMask == 0 || snap.PlayerState != PlayerClear {
			return
		}
		for y := 0; y < snap.VisibleHeight; y++ {
			if snap.ClearMask&(1<<uint(y)) == 0 {
				continue
			}
			sx, sy, _ := cellPos(snap, box, 0, y)
			for x := 0; x < snap.Width; x++ {
				drawBlock(dst, sx+x*cellW, sy, "==", core.ColorBrightWhite)
			}
		}
	}
}

// drawOverlay draws centered lines over the middle of the field.
func drawOverlay(dst *core.Screen, box core.Rect, lines ...string) {
	startY := box.Y + (box.H-len(lines))/2
	for i, line := range lines {
		x := box.X + (box.W-len(line))/2
		dst.DrawTextColor(x, startY+i, line, core.ColorBrightWhite)
	}
}

func renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}
