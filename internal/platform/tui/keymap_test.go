package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/candy-bonus/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		want   []core.Action
		isQuit bool
	}{
		{"arrow", tea.KeyMsg{Type: tea.KeyUp}, []core.Action{core.ActionUp}, false},
		{"wasd", runeKey("a"), []core.Action{core.ActionLeft}, false},
		{"vim down", runeKey("j"), []core.Action{core.ActionDown}, false},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace}, []core.Action{core.ActionSelect}, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, []core.Action{core.ActionConfirm}, false},
		{"shift arrow swipes", tea.KeyMsg{Type: tea.KeyShiftRight}, []core.Action{core.ActionGrab, core.ActionRight}, false},
		{"capital swipes", runeKey("W"), []core.Action{core.ActionGrab, core.ActionUp}, false},
		{"h hints", runeKey("h"), []core.Action{core.ActionHint}, false},
		{"question hints", runeKey("?"), []core.Action{core.ActionHint}, false},
		{"checkout", runeKey("c"), []core.Action{core.ActionCheckout}, false},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, []core.Action{core.ActionBack}, false},
		{"pause", runeKey("p"), []core.Action{core.ActionPause}, false},
		{"restart", runeKey("r"), []core.Action{core.ActionRestart}, false},
		{"q quits", runeKey("q"), []core.Action{core.ActionQuit}, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, []core.Action{core.ActionQuit}, true},
		{"unbound", runeKey("z"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tt.msg)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.isQuit, isQuit)
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	assert.False(t, km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyShiftDown}, &frame))
	assert.True(t, frame.Has(core.ActionGrab))
	assert.True(t, frame.Has(core.ActionDown))
	assert.False(t, frame.Has(core.ActionUp))

	assert.True(t, km.MapKeyToFrame(runeKey("q"), &frame))
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	assert.Equal(t, MenuActionUp, km.MapKeyToMenuAction(runeKey("k")))
	assert.Equal(t, MenuActionDown, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, MenuActionSelect, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeySpace}))
	assert.Equal(t, MenuActionScoreboard, km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, MenuActionQuit, km.MapKeyToMenuAction(runeKey("q")))
	assert.Equal(t, MenuActionNone, km.MapKeyToMenuAction(runeKey("x")))
}
