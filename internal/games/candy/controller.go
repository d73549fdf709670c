package candy

import (
	"github.com/vovakirdan/candy-bonus/internal/core"
	"github.com/vovakirdan/candy-bonus/internal/games/candy/engine"
)

// Direction is a cursor movement or swipe direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions in a fixed order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Delta returns the (row, col) offset of the direction.
func (d Direction) Delta() (dRow, dCol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 1
	}
}

// Swapper starts swaps on a board. *engine.Engine satisfies it.
type Swapper interface {
	BeginSwap(a, b engine.Position) engine.Outcome
	Busy() bool
}

// SelectResult describes what a selection did.
type SelectResult int

const (
	SelectIgnored  SelectResult = iota // board busy, nothing changed
	SelectArmed                        // first candy picked
	SelectSwapped                      // swap handed to the board
	SelectRejected                     // invalid pair, selection updated
)

// String returns a human-readable name for the result.
func (r SelectResult) String() string {
	switch r {
	case SelectArmed:
		return "armed"
	case SelectSwapped:
		return "swapped"
	case SelectRejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Controller turns cursor movement, taps and swipes into swap requests.
// It owns the cursor and the armed selection; the board decides whether a
// pair is legal and signals invalid moves itself.
type Controller struct {
	board  Swapper
	size   int
	cursor engine.Position
	armed  engine.Position
	hasArm bool
}

// NewController creates a controller for a size×size board with the cursor
// in the top-left corner.
func NewController(board Swapper, size int) *Controller {
	return &Controller{board: board, size: size}
}

// Cursor returns the cursor position.
func (c *Controller) Cursor() engine.Position {
	return c.cursor
}

// Armed returns the armed position, if any.
func (c *Controller) Armed() (engine.Position, bool) {
	return c.armed, c.hasArm
}

// Disarm drops the armed selection.
func (c *Controller) Disarm() {
	c.hasArm = false
}

// SetCursor moves the cursor to p, clamped to the board.
func (c *Controller) SetCursor(p engine.Position) {
	c.cursor = engine.Pos(core.Clamp(p.Row, 0, c.size-1), core.Clamp(p.Col, 0, c.size-1))
}

// MoveCursor moves the cursor one cell, stopping at the edges.
func (c *Controller) MoveCursor(d Direction) {
	dr, dc := d.Delta()
	c.SetCursor(c.cursor.Add(dr, dc))
}

// Select taps the candy under the cursor.
func (c *Controller) Select() SelectResult {
	return c.SelectAt(c.cursor)
}

// SelectAt moves the cursor to p and taps it.
//
// With nothing armed, p becomes armed. Otherwise the pair is handed to the
// board: an accepted swap clears the selection, tapping the armed candy
// again disarms it, and any other rejected pair re-arms on p.
func (c *Controller) SelectAt(p engine.Position) SelectResult {
	if c.board.Busy() {
		return SelectIgnored
	}
	c.SetCursor(p)
	p = c.cursor

	if !c.hasArm {
		c.armed = p
		c.hasArm = true
		return SelectArmed
	}

	from := c.armed
	switch c.board.BeginSwap(from, p) {
	case engine.OutcomePending, engine.OutcomeCommitted:
		c.hasArm = false
		return SelectSwapped
	case engine.OutcomeBusy:
		return SelectIgnored
	}

	if from == p {
		c.hasArm = false
	} else {
		c.armed = p
	}
	return SelectRejected
}

// Swipe swaps the armed candy (or the one under the cursor) with its
// neighbour in direction d. Swiping off the board is rejected by the board
// and clears the selection.
func (c *Controller) Swipe(d Direction) SelectResult {
	if c.board.Busy() {
		return SelectIgnored
	}
	from := c.cursor
	if c.hasArm {
		from = c.armed
	}
	dr, dc := d.Delta()
	to := from.Add(dr, dc)

	c.hasArm = false
	switch c.board.BeginSwap(from, to) {
	case engine.OutcomePending, engine.OutcomeCommitted:
		return SelectSwapped
	case engine.OutcomeBusy:
		return SelectIgnored
	default:
		return SelectRejected
	}
}
