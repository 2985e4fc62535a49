package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/core"
)

// MouseTracker turns terminal mouse events into pointer samples and drag
// deltas. Plain motion places the paddle under the cursor; holding the
// left button drags it relative to where it is, and the wheel nudges it
// one row at a time.
type MouseTracker struct {
	dragging bool
	lastY    int
}

// Apply records one mouse event into frame. rows is the number of
// terminal rows showing the field; events below it are ignored.
func (t *MouseTracker) Apply(msg tea.MouseMsg, rows int, frame *core.InputFrame) {
	if rows <= 0 {
		return
	}
	step := 1 / float64(rows)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		frame.AddDrag(-step)

	case msg.Button == tea.MouseButtonWheelDown:
		frame.AddDrag(step)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		t.dragging = true
		t.lastY = msg.Y

	case msg.Action == tea.MouseActionRelease:
		t.dragging = false

	case msg.Action == tea.MouseActionMotion:
		if t.dragging || msg.Button == tea.MouseButtonLeft {
			if !t.dragging {
				t.dragging = true
				t.lastY = msg.Y
				return
			}
			frame.AddDrag(float64(msg.Y-t.lastY) * step)
			t.lastY = msg.Y
			return
		}
		if msg.Y >= 0 && msg.Y < rows {
			// Cell centre, so the top row is not exactly 0
			frame.SetPointer((float64(msg.Y) + 0.5) / float64(rows))
		}
	}
}

// Dragging reports whether the left button is held.
func (t *MouseTracker) Dragging() bool {
	return t.dragging
}
