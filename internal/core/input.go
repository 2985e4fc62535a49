package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - nudge paddle up
	ActionDown           // S, Down arrow - nudge paddle down
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the input sample consumed by one simulation tick.
//
// Pointer positions and drag deltas are expressed as fractions of the
// visible field height, so the producer (terminal mouse, SSH session,
// headless driver) does not need to know the field geometry. The platform
// fills a frame between ticks and the game applies it once before stepping.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	pointerY   float64
	hasPointer bool
	dragY      float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetPointer records an absolute pointer sample. Later samples replace
// earlier ones within the same frame.
func (f *InputFrame) SetPointer(fracY float64) {
	f.pointerY = fracY
	f.hasPointer = true
}

// Pointer returns the latest pointer sample, if any.
func (f InputFrame) Pointer() (float64, bool) {
	return f.pointerY, f.hasPointer
}

// AddDrag accumulates a relative vertical movement.
func (f *InputFrame) AddDrag(fracDY float64) {
	f.dragY += fracDY
}

// Drag returns the accumulated relative movement for this frame.
func (f InputFrame) Drag() float64 {
	return f.dragY
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && !f.hasPointer && f.dragY == 0
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.pointerY = 0
	f.hasPointer = false
	f.dragY = 0
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.pointerY = f.pointerY
	clone.hasPointer = f.hasPointer
	clone.dragY = f.dragY
	return clone
}
