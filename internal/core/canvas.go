package core

import (
	"math"
	"unicode/utf8"
)

// Canvas is the immediate-mode drawing contract games render through.
// Coordinates are in field units, not screen cells.
type Canvas interface {
	// FillRect fills the axis-aligned rectangle with top-left (x, y).
	FillRect(x, y, w, h float64, c Color)
	// FillCircle fills a disc centred on (x, y).
	FillCircle(x, y, r float64, c Color)
	// DrawText draws text horizontally centred on x with its baseline row at y.
	DrawText(text string, x, y float64, c Color)
}

// Block runes used by FieldCanvas.
const (
	FillRune = '█'
	DotRune  = '●'
)

// FieldCanvas projects a logical field of fieldW×fieldH units onto a Screen.
// Every primitive paints at least one cell, so thin paddles and small balls
// stay visible on coarse terminals.
type FieldCanvas struct {
	screen *Screen
	fieldW float64
	fieldH float64
}

// NewFieldCanvas creates a canvas mapping the given field onto the screen.
func NewFieldCanvas(screen *Screen, fieldW, fieldH float64) *FieldCanvas {
	return &FieldCanvas{screen: screen, fieldW: fieldW, fieldH: fieldH}
}

// scale returns the cells-per-unit factors on each axis.
func (fc *FieldCanvas) scale() (float64, float64) {
	if fc.fieldW <= 0 || fc.fieldH <= 0 {
		return 0, 0
	}
	return float64(fc.screen.Width()) / fc.fieldW, float64(fc.screen.Height()) / fc.fieldH
}

// CellAt converts a field point to the screen cell containing it.
func (fc *FieldCanvas) CellAt(x, y float64) (int, int) {
	sx, sy := fc.scale()
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}

// FillRect implements Canvas.
func (fc *FieldCanvas) FillRect(x, y, w, h float64, c Color) {
	sx, sy := fc.scale()
	x0 := int(math.Floor(x * sx))
	y0 := int(math.Floor(y * sy))
	x1 := Max(int(math.Ceil((x+w)*sx)), x0+1)
	y1 := Max(int(math.Ceil((y+h)*sy)), y0+1)
	fc.screen.DrawRect(NewRect(x0, y0, x1-x0, y1-y0), FillRune, c)
}

// FillCircle implements Canvas.
func (fc *FieldCanvas) FillCircle(x, y, r float64, c Color) {
	sx, sy := fc.scale()
	cx, cy := fc.CellAt(x, y)

	x0 := int(math.Floor((x - r) * sx))
	x1 := int(math.Floor((x + r) * sx))
	y0 := int(math.Floor((y - r) * sy))
	y1 := int(math.Floor((y + r) * sy))

	if sx == 0 || sy == 0 || (x0 == x1 && y0 == y1) {
		fc.screen.SetColored(cx, cy, DotRune, c)
		return
	}

	painted := false
	for row := y0; row <= y1; row++ {
		for col := x0; col <= x1; col++ {
			// Distance from the cell centre, in field units.
			dx := (float64(col)+0.5)/sx - x
			dy := (float64(row)+0.5)/sy - y
			if dx*dx+dy*dy <= r*r {
				fc.screen.SetColored(col, row, FillRune, c)
				painted = true
			}
		}
	}
	if !painted {
		fc.screen.SetColored(cx, cy, DotRune, c)
	}
}

// DrawText implements Canvas.
func (fc *FieldCanvas) DrawText(text string, x, y float64, c Color) {
	cx, cy := fc.CellAt(x, y)
	fc.screen.DrawText(cx-utf8.RuneCountInString(text)/2, cy, text, c)
}
