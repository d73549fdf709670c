package engine

import "fmt"

// State is the engine's lifecycle state.
type State int

const (
	StateIdle      State = iota // accepts Initialize and swaps
	StateSwapping               // tentative exchange pending
	StateResolving              // cascade in progress
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateSwapping:
		return "swapping"
	case StateResolving:
		return "resolving"
	default:
		return "idle"
	}
}

// Outcome is the result of a swap request.
type Outcome int

const (
	OutcomeBusy      Outcome = iota // rejected, an operation is in flight
	OutcomeInvalid                  // not adjacent, or no run formed (reverted)
	OutcomeCommitted                // at least one run formed, cascade resolved
	OutcomePending                  // accepted by BeginSwap, drive with Advance
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeCommitted:
		return "committed"
	case OutcomePending:
		return "pending"
	default:
		return "busy"
	}
}

// Phase identifies the discrete step reported by Advance.
type Phase int

const (
	PhaseSwap    Phase = iota // tentative exchange applied
	PhaseClear                // runs reported and emptied
	PhaseDrop                 // columns compacted
	PhaseRefill               // empty cells filled
	PhaseRevert               // no run formed, exchange undone
	PhaseSettled              // resolution complete, engine idle
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSwap:
		return "swap"
	case PhaseClear:
		return "clear"
	case PhaseDrop:
		return "drop"
	case PhaseRefill:
		return "refill"
	case PhaseRevert:
		return "revert"
	default:
		return "settled"
	}
}

// Frame is an inspectable snapshot taken after one Advance step.
type Frame struct {
	Phase    Phase
	Runs     []MatchRun // set on PhaseClear
	Cleared  int        // cells emptied on PhaseClear
	Refilled int        // cells filled on PhaseRefill
	Shuffled bool       // set on PhaseSettled when a dead board was regenerated
	Swap     [2]Position
	Grid     Grid
}

// Hooks are the engine's outbound notifications. Any hook may be nil.
// Hooks run synchronously while the engine is still busy, so swap requests
// issued from inside a hook are rejected.
type Hooks struct {
	OnMatch          func(length, col, row int)
	OnSuccessfulSwap func()
	OnInvalidMove    func()
	OnShuffle        func()
	OnDiagnostic     func(err error)
}

// Params configures a new engine.
type Params struct {
	Size       int
	Symbols    int
	MaxCascade int // cascade cycles per resolution before giving up
	Source     Source
	Hooks      Hooks
}

// DefaultParams returns the promotional board: 6x6, six candy kinds.
func DefaultParams() Params {
	return Params{
		Size:       DefaultSize,
		Symbols:    DefaultSymbols,
		MaxCascade: DefaultMaxCascade,
	}
}

// Validate checks the board dimensions and alphabet.
func (p Params) Validate() error {
	if p.Size < MinSize || p.Size > MaxSize {
		return fmt.Errorf("engine: size %d out of range [%d, %d]", p.Size, MinSize, MaxSize)
	}
	if p.Symbols < MinSymbols || p.Symbols > MaxSymbols {
		return fmt.Errorf("engine: %d symbols out of range [%d, %d]", p.Symbols, MinSymbols, MaxSymbols)
	}
	if p.MaxCascade < 1 {
		return fmt.Errorf("engine: max cascade must be positive, got %d", p.MaxCascade)
	}
	return nil
}

type step int

const (
	stepExchange step = iota
	stepDetect
	stepDrop
	stepRefill
)

type opKind int

const (
	opInit opKind = iota
	opSwap
)

// operation tracks an in-flight Initialize or swap.
type operation struct {
	kind    opKind
	a, b    Position
	next    step
	matched bool
	cycles  int
}

// Engine is a single match-3 board. It is not safe for concurrent use;
// the busy state is its only exclusion mechanism.
type Engine struct {
	grid       Grid
	symbols    int
	maxCascade int
	src        Source
	hooks      Hooks

	state State
	op    operation
	last  Outcome
}

// New creates an engine with an Empty grid. Call Initialize before play.
func New(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	src := p.Source
	if src == nil {
		src = NewSource(1)
	}
	return &Engine{
		grid:       NewGrid(p.Size),
		symbols:    p.Symbols,
		maxCascade: p.MaxCascade,
		src:        src,
		hooks:      p.Hooks,
		state:      StateIdle,
	}, nil
}

// SetHooks replaces the notification hooks.
func (e *Engine) SetHooks(h Hooks) {
	e.hooks = h
}

// Size returns the board dimension N.
func (e *Engine) Size() int {
	return e.grid.Size()
}

// Symbols returns the alphabet size K.
func (e *Engine) Symbols() int {
	return e.symbols
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Busy reports whether an operation is in flight.
func (e *Engine) Busy() bool {
	return e.state != StateIdle
}

// LastOutcome returns the result of the most recently finished swap.
func (e *Engine) LastOutcome() Outcome {
	return e.last
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// At returns the symbol at p.
func (e *Engine) At(p Position) Symbol {
	return e.grid.At(p)
}

// FindMove returns a swap that would form a run on the current grid.
func (e *Engine) FindMove() (Position, Position, bool) {
	return FindMove(e.grid)
}

// HasPossibleMove reports whether the current grid has any legal swap.
func (e *Engine) HasPossibleMove() bool {
	return HasPossibleMove(e.grid)
}

// Load replaces the grid with g without resolving it. Intended for setting
// up deterministic boards. Rejected while busy or on a size mismatch.
func (e *Engine) Load(g Grid) error {
	if e.Busy() {
		return fmt.Errorf("engine: load while %s", e.state)
	}
	if g.Size() != e.grid.Size() {
		return fmt.Errorf("engine: load %dx%d grid into %dx%d board", g.Size(), g.Size(), e.grid.Size(), e.grid.Size())
	}
	e.grid = g.Clone()
	return nil
}

// Initialize fills every cell with a random symbol and resolves the board to
// a match-free fixed point. Runs found here are reported through OnMatch.
// Returns false if an operation is already in flight.
func (e *Engine) Initialize() bool {
	if e.Busy() {
		return false
	}
	e.grid.fill(e.src, e.symbols)
	e.op = operation{kind: opInit, next: stepDetect}
	e.state = StateResolving
	e.runToCompletion()
	return true
}

// RequestSwap exchanges a and b and resolves the resulting cascade
// synchronously. See BeginSwap for the rejection rules.
func (e *Engine) RequestSwap(a, b Position) Outcome {
	if o := e.BeginSwap(a, b); o != OutcomePending {
		return o
	}
	e.runToCompletion()
	return e.last
}

// BeginSwap validates a swap and arms it without touching the grid.
// Drive it with Advance. A call while busy returns OutcomeBusy with no side
// effects. Non-adjacent or off-board positions signal OnInvalidMove and
// return OutcomeInvalid.
func (e *Engine) BeginSwap(a, b Position) Outcome {
	if e.Busy() {
		return OutcomeBusy
	}
	if !e.grid.InBounds(a) || !e.grid.InBounds(b) || !Adjacent(a, b) {
		e.state = StateSwapping
		call0(e.hooks.OnInvalidMove)
		e.state = StateIdle
		e.last = OutcomeInvalid
		return OutcomeInvalid
	}
	e.op = operation{kind: opSwap, a: a, b: b, next: stepExchange}
	e.state = StateSwapping
	return OutcomePending
}

// Advance performs exactly one phase of the in-flight operation and reports
// it. done is true once the engine is Idle again. Calling Advance while Idle
// returns a PhaseSettled frame and done.
func (e *Engine) Advance() (f Frame, done bool) {
	if !e.Busy() {
		return e.frame(PhaseSettled), true
	}

	switch e.op.next {
	case stepExchange:
		e.grid.swap(e.op.a, e.op.b)
		e.state = StateResolving
		e.op.next = stepDetect
		return e.frame(PhaseSwap), false

	case stepDetect:
		runs := FindRuns(e.grid)
		if len(runs) == 0 {
			return e.settle()
		}
		if e.op.cycles >= e.maxCascade {
			call1(e.hooks.OnDiagnostic, fmt.Errorf("%w after %d cycles", ErrCascadeLimit, e.op.cycles))
			return e.settle()
		}
		e.op.matched = true
		for _, run := range runs {
			c := run.Center()
			if e.hooks.OnMatch != nil {
				e.hooks.OnMatch(run.Length, c.Col, c.Row)
			}
		}
		cleared := e.grid.clearRuns(runs)
		e.op.next = stepDrop
		f = e.frame(PhaseClear)
		f.Runs = runs
		f.Cleared = cleared
		return f, false

	case stepDrop:
		e.grid.drop()
		e.op.next = stepRefill
		return e.frame(PhaseDrop), false

	default: // stepRefill
		filled := e.grid.refill(e.src, e.symbols)
		e.op.cycles++
		e.op.next = stepDetect
		f = e.frame(PhaseRefill)
		f.Refilled = filled
		return f, false
	}
}

// settle finishes the in-flight operation: reverts an unproductive swap or
// confirms a productive one. Hooks fire before the engine returns to Idle.
func (e *Engine) settle() (Frame, bool) {
	if e.op.kind == opSwap && !e.op.matched {
		e.grid.swap(e.op.a, e.op.b)
		f := e.frame(PhaseRevert)
		call0(e.hooks.OnInvalidMove)
		e.finish(OutcomeInvalid)
		return f, true
	}

	shuffled := false
	if !HasPossibleMove(e.grid) {
		shuffled = e.reshuffle()
	}

	f := e.frame(PhaseSettled)
	f.Shuffled = shuffled
	if e.op.kind == opSwap {
		call0(e.hooks.OnSuccessfulSwap)
	}
	e.finish(OutcomeCommitted)
	return f, true
}

// reshuffle regenerates a dead board until it is match-free and playable,
// bounded by the cascade limit. Nothing is reported through OnMatch.
func (e *Engine) reshuffle() bool {
	for range e.maxCascade {
		e.grid.fill(e.src, e.symbols)
		if !HasRuns(e.grid) && HasPossibleMove(e.grid) {
			call0(e.hooks.OnShuffle)
			return true
		}
	}
	call1(e.hooks.OnDiagnostic, fmt.Errorf("%w while reshuffling", ErrCascadeLimit))
	return false
}

func (e *Engine) finish(o Outcome) {
	e.last = o
	e.state = StateIdle
}

func (e *Engine) runToCompletion() {
	for {
		if _, done := e.Advance(); done {
			return
		}
	}
}

func (e *Engine) frame(p Phase) Frame {
	return Frame{
		Phase: p,
		Swap:  [2]Position{e.op.a, e.op.b},
		Grid:  e.grid.Clone(),
	}
}

func call0(fn func()) {
	if fn != nil {
		fn()
	}
}

func call1(fn func(error), err error) {
	if fn != nil {
		fn(err)
	}
}
