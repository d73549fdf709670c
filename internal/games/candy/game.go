// Package candy implements the Candy Bonus session: a timed (or endless)
// match-3 round on top of the board engine, with score and bonus
// bookkeeping, a selection controller, optional auto-play and rendering.
package candy

import (
	"io"
	"math"
	"math/rand"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/candy-bonus/internal/config"
	"github.com/vovakirdan/candy-bonus/internal/core"
	"github.com/vovakirdan/candy-bonus/internal/games/candy/engine"
	"github.com/vovakirdan/candy-bonus/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeTimed   Mode = "timed"
	ModeEndless Mode = "endless"
)

// Registry IDs.
const (
	IDTimed   = "candy"
	IDEndless = "candy_endless"
)

// Phase is the session phase.
type Phase string

const (
	PhaseIntro    Phase = "intro"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "game_over"
)

// Package-level settings applied to every new game. The CLI sets them
// once before any game is created.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultCandyConfig()
	logger     = log.New(io.Discard)
)

// Configure sets the configuration used by games created afterwards.
func Configure(cfg config.CandyConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// SetLogger sets the logger used for engine diagnostics.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	logger = l
}

func currentSettings() (config.CandyConfig, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings, logger
}

func init() {
	registry.Register(IDTimed, func() registry.Game {
		return New()
	})
	registry.Register(IDEndless, func() registry.Game {
		return NewEndless()
	})
}

// Popup is a floating "+N" bonus shown where a match happened.
type Popup struct {
	Amount  float64
	Col     int
	Row     int
	Special bool
	Age     int
	TTL     int
}

// Game is one Candy Bonus session.
type Game struct {
	mode Mode
	cfg  config.CandyConfig
	log  *log.Logger
	rng  *rand.Rand

	board *engine.Engine
	ctl   *Controller
	auto  autoPlayer

	tick     uint64
	tickRate int
	screenW  int
	screenH  int

	phase    Phase
	rounds   int
	paused   bool
	tooSmall bool

	score      int
	bonus      float64
	finalBonus float64
	matches    int
	specials   int
	swaps      int
	invalids   int
	shuffles   int

	ticksLeft int

	frame      *engine.Frame // last animation frame while the board resolves
	frameWait  int
	popups     []Popup
	hint       [2]engine.Position
	hintTicks  int
	flashTicks int

	checkoutRequested bool
}

// New creates a timed game using the package settings.
func New() *Game {
	cfg, l := currentSettings()
	return NewWithConfig(ModeTimed, cfg, l)
}

// NewEndless creates an endless game using the package settings.
func NewEndless() *Game {
	cfg, l := currentSettings()
	return NewWithConfig(ModeEndless, cfg, l)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(mode Mode, cfg config.CandyConfig, l *log.Logger) *Game {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Game{
		mode: mode,
		cfg:  cfg,
		log:  l.With("mode", string(mode)),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return IDEndless
	}
	return IDTimed
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Candy Bonus (Endless)"
	}
	return "Candy Bonus"
}

// Reset initializes or restarts the session. The first Reset shows the
// intro; later ones (restarts) go straight into play.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	g.phase = PhaseIntro
	g.paused = false
	g.score = 0
	g.bonus = 0
	g.finalBonus = 0
	g.matches = 0
	g.specials = 0
	g.swaps = 0
	g.invalids = 0
	g.shuffles = 0
	g.ticksLeft = 0
	g.frame = nil
	g.frameWait = 0
	g.popups = nil
	g.hintTicks = 0
	g.flashTicks = 0
	g.checkoutRequested = false

	board, err := engine.New(engine.Params{
		Size:       g.cfg.Board.Size,
		Symbols:    g.cfg.Board.Symbols,
		MaxCascade: g.cfg.Board.MaxCascade,
		Source:     rand.New(rand.NewSource(cfg.Seed + 1)),
	})
	if err != nil {
		g.log.Warn("invalid board config, using defaults", "err", err)
		p := engine.DefaultParams()
		p.Source = rand.New(rand.NewSource(cfg.Seed + 1))
		board, _ = engine.New(p) //nolint:errcheck // defaults always validate
	}
	board.SetHooks(engine.Hooks{
		OnMatch:          g.onMatch,
		OnSuccessfulSwap: g.onSuccessfulSwap,
		OnInvalidMove:    g.onInvalidMove,
		OnShuffle:        g.onShuffle,
		OnDiagnostic:     g.onDiagnostic,
	})
	board.Initialize()
	g.board = board
	g.ctl = NewController(board, board.Size())
	g.ctl.SetCursor(engine.Pos(board.Size()/2, board.Size()/2))

	rt := core.RuntimeConfig{TickRate: g.tickRate}
	g.auto = newAutoPlayer(
		g.cfg.Autoplay.Enabled,
		rt.Seconds(g.cfg.Autoplay.Interval),
		g.cfg.Autoplay.Chance,
		g.cfg.Autoplay.Attempts,
		rt.Seconds(0.3),
	)

	g.checkScreenSize()

	if g.rounds > 0 {
		g.start()
	}
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	if g.board != nil {
		g.checkScreenSize()
	}
}

// checkScreenSize checks if the screen is large enough for the board and HUD.
func (g *Game) checkScreenSize() {
	n := g.board.Size()
	minW := core.Max(n*cellWidth+2, 40)
	minH := n*cellHeight + 1 + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

func (g *Game) start() {
	g.rounds++
	g.phase = PhasePlaying
	if g.mode == ModeTimed {
		g.ticksLeft = g.seconds(g.cfg.Session.TimeLimit)
	}
	g.log.Debug("round started", "round", g.rounds, "ticks", g.ticksLeft)
}

func (g *Game) seconds(sec float64) int {
	return core.RuntimeConfig{TickRate: g.tickRate}.Seconds(sec)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.checkoutRequested = false

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case PhaseIntro:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) {
			g.start()
		}
	case PhasePlaying:
		g.stepPlaying(in)
	case PhaseGameOver:
		if in.Has(core.ActionCheckout) {
			g.checkoutRequested = true
		}
	}

	g.agePopups()
	return core.StepResult{State: g.State()}
}

func (g *Game) stepPlaying(in core.InputFrame) {
	if g.mode == ModeTimed && g.ticksLeft > 0 {
		g.ticksLeft--
	}
	if g.hintTicks > 0 {
		g.hintTicks--
	}
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	// the round only ends between moves, never mid-cascade
	if g.board.Busy() {
		g.advanceBoard()
		return
	}
	if g.mode == ModeTimed && g.ticksLeft == 0 {
		g.endRound()
		return
	}

	g.handleInput(in)
	if !g.board.Busy() {
		g.auto.step(g.rng, g.ctl, g.board.Size())
	}
}

var moveActions = []struct {
	action core.Action
	dir    Direction
}{
	{core.ActionUp, DirUp},
	{core.ActionDown, DirDown},
	{core.ActionLeft, DirLeft},
	{core.ActionRight, DirRight},
}

func (g *Game) handleInput(in core.InputFrame) {
	if g.mode == ModeEndless && in.Has(core.ActionConfirm) {
		g.endRound()
		return
	}

	if in.Has(core.ActionHint) {
		g.showHint()
	}

	for _, m := range moveActions {
		if !in.Has(m.action) {
			continue
		}
		if in.Has(core.ActionGrab) {
			g.ctl.Swipe(m.dir)
			return
		}
		g.ctl.MoveCursor(m.dir)
	}

	if in.Has(core.ActionSelect) {
		g.ctl.Select()
	}
}

// advanceBoard plays one resolution phase every phase_ticks ticks.
// With phase_ticks at zero the whole resolution happens in one tick.
func (g *Game) advanceBoard() {
	if g.cfg.Animation.PhaseTicks <= 0 {
		for g.board.Busy() {
			g.board.Advance()
		}
		g.frame = nil
		return
	}

	if g.frameWait > 0 {
		g.frameWait--
		return
	}
	f, done := g.board.Advance()
	if done {
		g.frame = nil
		return
	}
	g.frame = &f
	g.frameWait = g.cfg.Animation.PhaseTicks - 1
}

func (g *Game) showHint() {
	a, b, ok := g.board.FindMove()
	if !ok {
		return
	}
	g.hint = [2]engine.Position{a, b}
	g.hintTicks = g.seconds(1.5)
	g.ctl.Disarm()
	g.ctl.SetCursor(a)
}

func (g *Game) endRound() {
	g.phase = PhaseGameOver
	g.ctl.Disarm()
	g.finalBonus = math.Floor(g.bonus * g.cfg.Scoring.FinalMultiplier)
	if g.cfg.Scoring.FinalJitter > 0 {
		g.finalBonus += float64(g.rng.Intn(g.cfg.Scoring.FinalJitter))
	}
	g.log.Info("round over",
		"score", g.score,
		"bonus", g.bonus,
		"final_bonus", g.finalBonus,
		"matches", g.matches,
		"swaps", g.swaps,
	)
}

// Engine hooks.

func (g *Game) onMatch(length, col, row int) {
	if g.phase != PhasePlaying {
		return
	}
	amount := float64(length) * g.cfg.Scoring.BonusPerTile
	special := length >= g.cfg.Scoring.SpecialLength

	g.score += length * g.cfg.Scoring.PointsPerTile
	g.bonus += amount
	g.matches++
	if special {
		g.specials++
	}
	g.popups = append(g.popups, Popup{
		Amount:  amount,
		Col:     col,
		Row:     row,
		Special: special,
		TTL:     g.seconds(g.cfg.Animation.PopupSeconds),
	})
}

func (g *Game) onSuccessfulSwap() {
	g.swaps++
}

func (g *Game) onInvalidMove() {
	g.invalids++
	g.flashTicks = g.seconds(0.3)
}

func (g *Game) onShuffle() {
	g.shuffles++
	g.log.Debug("board reshuffled", "count", g.shuffles)
}

func (g *Game) onDiagnostic(err error) {
	g.log.Warn("board diagnostic", "err", err, "tick", g.tick)
}

func (g *Game) agePopups() {
	live := g.popups[:0]
	for _, p := range g.popups {
		p.Age++
		if p.Age < p.TTL {
			live = append(live, p)
		}
	}
	g.popups = live
}

// SecondsLeft returns the whole seconds remaining, rounded up.
func (g *Game) SecondsLeft() int {
	if g.tickRate <= 0 {
		return 0
	}
	return (g.ticksLeft + g.tickRate - 1) / g.tickRate
}

// Controller exposes the selection controller, for tests and scripted play.
func (g *Game) Controller() *Controller {
	return g.ctl
}

// Board exposes the engine, for tests and scripted play.
func (g *Game) Board() *engine.Engine {
	return g.board
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	bonus := g.bonus
	if g.phase == PhaseGameOver {
		bonus = g.finalBonus
	}
	return core.GameState{
		Score:    g.score,
		Bonus:    bonus,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused || g.tooSmall || g.phase == PhaseIntro,
		Checkout: g.checkoutRequested,
	}
}
