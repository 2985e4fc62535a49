package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// ApplyInput moves the player paddle from one input sample. It runs once
// before each Step so input never mutates state in the middle of a tick.
//
// Pointer samples place the paddle centre at the pointer; drag deltas and
// key presses move it relative to where it is. The paddle is clamped to
// the field afterwards.
func ApplyInput(s *State, in core.InputFrame) {
	p := &s.Left

	if y, ok := in.Pointer(); ok {
		p.Y = y*s.Field.H - p.H/2
	}
	if d := in.Drag(); d != 0 {
		p.Y += d * s.Field.H * s.Params.DragGain
	}
	if in.Has(core.ActionUp) {
		p.Y -= s.Params.KeyStep
	}
	if in.Has(core.ActionDown) {
		p.Y += s.Params.KeyStep
	}

	s.clampPaddle(p)
}
