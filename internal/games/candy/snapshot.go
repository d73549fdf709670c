package candy

import "github.com/vovakirdan/candy-bonus/internal/games/candy/engine"

// Snapshot is a comparable view of a session, used to check that two runs
// with the same seed and input stay in lockstep.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Score     int
	Bonus     float64
	Matches   int
	Specials  int
	Swaps     int
	Invalids  int
	TicksLeft int
	Cursor    engine.Position
	Board     string
}

// Snapshot captures the current session state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:      g.tick,
		Phase:     g.phase,
		Score:     g.score,
		Bonus:     g.bonus,
		Matches:   g.matches,
		Specials:  g.specials,
		Swaps:     g.swaps,
		Invalids:  g.invalids,
		TicksLeft: g.ticksLeft,
		Cursor:    g.ctl.Cursor(),
		Board:     g.board.Grid().String(),
	}
}
