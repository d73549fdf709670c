// Package engine implements the match-3 board engine behind Candy Bonus.
// It owns the candy grid, validates swaps, detects runs and resolves cascades
// (clear, drop, refill) until the board is stable. It has no knowledge of
// timers, scoring or rendering; callers observe it through Hooks and Frames.
package engine

import "errors"

// Symbol is a candy kind. The zero value is Empty.
type Symbol int8

// Empty marks a cell with no candy. It only appears between the phases of a
// resolution, never after a public operation completes.
const Empty Symbol = 0

// Board defaults, matching the promotional game.
const (
	DefaultSize       = 6
	DefaultSymbols    = 6
	DefaultMaxCascade = 100
	MinRunLength      = 3
	MinSize           = 4
	MaxSize           = 12
	MinSymbols        = 3
	MaxSymbols        = 8 // one glyph per kind on screen
)

// ErrCascadeLimit is reported through Hooks.OnDiagnostic when a resolution
// exceeds the configured cycle limit and is cut short.
var ErrCascadeLimit = errors.New("engine: cascade cycle limit reached")

// Position is a (row, col) coordinate. Row grows downward, col rightward.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Add returns the position offset by the given deltas.
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Adjacent reports whether a and b are orthogonal neighbours
// (Manhattan distance exactly 1).
func Adjacent(a, b Position) bool {
	dr := abs(a.Row - b.Row)
	dc := abs(a.Col - b.Col)
	return dr+dc == 1
}

// Orientation is the axis of a match run.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MatchRun is a maximal contiguous horizontal or vertical run of at least
// MinRunLength equal symbols.
type MatchRun struct {
	Orientation Orientation
	Start       Position // leftmost or topmost cell
	Length      int
	Symbol      Symbol
}

// Center returns the representative cell of the run: the floor of the span
// midpoint along the long axis. A 4-run starting at col 2 centers on col 3.
func (r MatchRun) Center() Position {
	offset := (r.Length - 1) / 2
	if r.Orientation == Vertical {
		return r.Start.Add(offset, 0)
	}
	return r.Start.Add(0, offset)
}

// Cells returns every position covered by the run.
func (r MatchRun) Cells() []Position {
	cells := make([]Position, r.Length)
	for i := range r.Length {
		if r.Orientation == Vertical {
			cells[i] = r.Start.Add(i, 0)
		} else {
			cells[i] = r.Start.Add(0, i)
		}
	}
	return cells
}

// Special reports whether the run is long enough to count as a special match.
func (r MatchRun) Special() bool {
	return r.Length > MinRunLength
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
