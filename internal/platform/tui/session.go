package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
	"github.com/vovakirdan/candy-bonus/internal/core"
	"github.com/vovakirdan/candy-bonus/internal/registry"
	"github.com/vovakirdan/candy-bonus/internal/storage"
)

// SessionOptions holds what a session needs beyond the runtime config.
type SessionOptions struct {
	Store           *storage.Store
	Checkout        CheckoutCreator
	CheckoutTimeout time.Duration
	Logger          *log.Logger
	Username        string
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
	screenCheckout
)

// SessionModel manages the full flow: menu -> game -> checkout -> menu.
// It is the top-level model for `candy menu` and for SSH sessions.
type SessionModel struct {
	opts      SessionOptions
	config    core.RuntimeConfig
	sessionID string
	logger    *log.Logger
	screen    sessionScreen
	menu      MenuModel
	game      GameModel
	scores    ScoreboardModel
	checkout  CheckoutModel
	lastMode  string
	quitting  bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(cfg core.RuntimeConfig, opts SessionOptions) SessionModel {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:      opts,
		config:    cfg,
		sessionID: id,
		logger:    logger.With("session", id, "user", opts.Username),
		menu:      NewMenuModel(cfg),
	}
}

// ID returns the session identifier.
func (m SessionModel) ID() string {
	return m.sessionID
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenCheckout:
		return m.updateCheckout(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	// the menu asked its own program to quit; that command is dropped here
	switch selected.Choice {
	case ChoicePlay:
		return m.startGame(selected.GameID)
	case ChoiceScoreboard:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH, m.lastMode)
		return m, m.scores.Init()
	case ChoiceCheckout:
		return m.openCheckout(checkout.OfferVSL(), 0)
	default:
		m.quitting = true
		return m, tea.Quit
	}
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("unknown game", "id", id, "err", err)
		return m.backToMenu()
	}

	m.config.Seed = time.Now().UnixNano()
	m.game = NewGameModel(game, m.opts.Store, m.config)
	m.lastMode = id
	m.screen = screenGame
	m.logger.Info("round started", "mode", id)
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(GameModel); ok {
		m.game = game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		return m.backToMenu()
	case m.game.WantsCheckout():
		st := m.game.State()
		m.logger.Info("bonus claimed", "mode", m.lastMode, "score", st.Score, "bonus", st.Bonus)
		return m.openCheckout(checkout.OfferPopup(), st.Bonus)
	}
	return m, cmd
}

func (m SessionModel) openCheckout(offer checkout.Offer, bonus float64) (tea.Model, tea.Cmd) {
	if m.opts.Checkout == nil {
		m.logger.Warn("checkout not configured")
		return m.backToMenu()
	}
	m.screen = screenCheckout
	m.checkout = NewCheckoutModel(m.opts.Checkout, offer, bonus, m.opts.CheckoutTimeout, m.config.ScreenW, m.config.ScreenH)
	return m, m.checkout.Init()
}

// updateScores handles updates when on the scoreboard.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	if scores, ok := next.(ScoreboardModel); ok {
		m.scores = scores
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu()
	}
	return m, cmd
}

// updateCheckout handles updates when in the checkout form.
func (m SessionModel) updateCheckout(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.checkout.Update(msg)
	if co, ok := next.(CheckoutModel); ok {
		m.checkout = co
	}

	switch {
	case m.checkout.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.checkout.IsGoingBack():
		if p := m.checkout.Payment(); p != nil {
			m.logger.Info("payment generated", "payment_id", p.PaymentID, "amount", p.Amount)
		}
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	case screenCheckout:
		return m.checkout.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the full menu flow in the local terminal.
func RunSession(cfg core.RuntimeConfig, opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
