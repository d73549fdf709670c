package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/candy-bonus/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

var moveKeys = map[string]core.Action{
	"up":    core.ActionUp,
	"w":     core.ActionUp,
	"k":     core.ActionUp,
	"down":  core.ActionDown,
	"s":     core.ActionDown,
	"j":     core.ActionDown,
	"left":  core.ActionLeft,
	"a":     core.ActionLeft,
	"right": core.ActionRight,
	"d":     core.ActionRight,
	"l":     core.ActionRight,
}

// swipeKeys grab the armed candy and move it in one press.
var swipeKeys = map[string]core.Action{
	"shift+up":    core.ActionUp,
	"W":           core.ActionUp,
	"shift+down":  core.ActionDown,
	"S":           core.ActionDown,
	"shift+left":  core.ActionLeft,
	"A":           core.ActionLeft,
	"shift+right": core.ActionRight,
	"D":           core.ActionRight,
}

// MapKey translates a key message to game actions. A swipe yields two
// actions (grab plus a direction). isQuit reports a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (actions []core.Action, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return []core.Action{core.ActionQuit}, true
	}

	if a, ok := swipeKeys[key]; ok {
		return []core.Action{core.ActionGrab, a}, false
	}
	if a, ok := moveKeys[key]; ok {
		return []core.Action{a}, false
	}

	switch key {
	case " ":
		return []core.Action{core.ActionSelect}, false
	case "enter":
		return []core.Action{core.ActionConfirm}, false
	case "h", "?":
		return []core.Action{core.ActionHint}, false
	case "c":
		return []core.Action{core.ActionCheckout}, false
	case "b", "esc":
		return []core.Action{core.ActionBack}, false
	case "p":
		return []core.Action{core.ActionPause}, false
	case "r":
		return []core.Action{core.ActionRestart}, false
	}

	return nil, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	actions, isQuit := km.MapKey(msg)
	for _, a := range actions {
		frame.Set(a)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
