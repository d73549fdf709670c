package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/candy-bonus/internal/core"
	"github.com/vovakirdan/candy-bonus/internal/registry"
)

// fakeGame records what the model feeds it and reports a scripted state.
type fakeGame struct {
	id      string
	state   core.GameState
	resets  int
	frames  []core.InputFrame
	resized [2]int
}

func (g *fakeGame) ID() string    { return g.id }
func (g *fakeGame) Title() string { return "Fake " + g.id }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	rec := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			rec.Set(a)
		}
	}
	g.frames = append(g.frames, rec)
	if in.Has(core.ActionCheckout) && g.state.GameOver {
		g.state.Checkout = true
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(s *core.Screen) { s.DrawText(0, 0, g.id) }
func (g *fakeGame) State() core.GameState { return g.state }
func (g *fakeGame) Resize(w, h int)       { g.resized = [2]int{w, h} }

// fakeCheckoutID is a registered mode whose rounds are already over.
const fakeCheckoutID = "zz_fake_over"

func init() {
	registry.Register(fakeCheckoutID, func() registry.Game {
		return &fakeGame{id: fakeCheckoutID}
	})
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm, cmd
}

func TestGameModelTickDeliversInput(t *testing.T) {
	g := &fakeGame{id: "fake"}
	m := NewGameModel(g, nil, testConfig())
	require.NotNil(t, m.Init())
	assert.Equal(t, 1, g.resets)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := update(t, m, TickMsg{})
	assert.NotNil(t, cmd, "tick chain should continue")

	require.Len(t, g.frames, 1)
	assert.True(t, g.frames[0].Has(core.ActionSelect))

	_, _ = update(t, m, TickMsg{})
	require.Len(t, g.frames, 2)
	assert.False(t, g.frames[1].Has(core.ActionSelect), "input frame not cleared")
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&fakeGame{id: "fake"}, nil, testConfig())
	m, cmd := update(t, m, runeKey("q"))
	assert.True(t, m.IsQuitting())
	assert.True(t, isQuitCmd(cmd))
	assert.Empty(t, m.View())
}

func TestGameModelBackOnlyWhenOverOrPaused(t *testing.T) {
	g := &fakeGame{id: "fake"}
	m := NewGameModel(g, nil, testConfig())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.BackToMenu())

	g.state.Paused = true
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.BackToMenu())
	assert.Nil(t, cmd, "embedded model must not quit the program")
}

func TestGameModelCheckout(t *testing.T) {
	g := &fakeGame{id: "fake"}
	m := NewGameModel(g, nil, testConfig())
	m.standalone = true

	g.state = core.GameState{Score: 120, Bonus: 180, GameOver: true}
	m, _ = update(t, m, TickMsg{})
	assert.True(t, m.scoreSaved)
	assert.False(t, m.WantsCheckout())

	m, _ = update(t, m, runeKey("c"))
	m, cmd := update(t, m, TickMsg{})
	assert.True(t, m.WantsCheckout())
	assert.True(t, isQuitCmd(cmd))
	assert.InDelta(t, 180, m.State().Bonus, 1e-9)
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	g := &fakeGame{id: "fake"}
	m := NewGameModel(g, nil, testConfig())
	m.Init()

	g.state.GameOver = true
	m, _ = update(t, m, TickMsg{})

	m, _ = update(t, m, runeKey("r"))
	m, cmd := update(t, m, TickMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, 2, g.resets)
	assert.False(t, m.State().GameOver)
	assert.False(t, m.scoreSaved)
}

func TestGameModelResize(t *testing.T) {
	g := &fakeGame{id: "fake"}
	m := NewGameModel(g, nil, testConfig())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, [2]int{100, 40}, g.resized)
	assert.Equal(t, 100, m.config.ScreenW)
	assert.Contains(t, m.View(), "fake")
}
