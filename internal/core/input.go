package core

// Action represents a semantic game action, abstracted from physical key presses.
// The session reacts to intents such as "move cursor left" or "select",
// never to raw keys.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, K, Up arrow - move cursor up
	ActionDown            // S, J, Down arrow - move cursor down
	ActionLeft            // A, Left arrow - move cursor left
	ActionRight           // D, L, Right arrow - move cursor right
	ActionSelect          // Space - arm or swap the candy under the cursor
	ActionGrab            // Shift+arrow prefix - next direction swipes the armed candy
	ActionHint            // H - jump cursor to a legal swap
	ActionConfirm         // Enter - start game / confirm
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R - restart after game over
	ActionCheckout        // C - claim the bonus after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:     "None",
	ActionUp:       "Up",
	ActionDown:     "Down",
	ActionLeft:     "Left",
	ActionRight:    "Right",
	ActionSelect:   "Select",
	ActionGrab:     "Grab",
	ActionHint:     "Hint",
	ActionConfirm:  "Confirm",
	ActionBack:     "Back",
	ActionRestart:  "Restart",
	ActionCheckout: "Checkout",
	ActionQuit:     "Quit",
	ActionPause:    "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
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

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	for _, v := range f.Actions {
		if v {
			return false
		}
	}
	return true
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
