package candy

import (
	"math/rand"

	"github.com/vovakirdan/candy-bonus/internal/games/candy/engine"
)

// autoPlayer makes random moves through the public controller, the same way
// a player tapping two candies would. Moves may well be invalid.
type autoPlayer struct {
	enabled  bool
	interval int // ticks between attempts
	chance   float64
	attempts int
	delay    int // ticks between the two taps

	countdown int
	pending   engine.Position
	hasNext   bool
	wait      int
}

func newAutoPlayer(enabled bool, interval int, chance float64, attempts, delay int) autoPlayer {
	if interval < 1 {
		interval = 1
	}
	return autoPlayer{
		enabled:   enabled,
		interval:  interval,
		chance:    chance,
		attempts:  attempts,
		delay:     delay,
		countdown: interval,
	}
}

// step runs once per idle playing tick.
func (a *autoPlayer) step(rng *rand.Rand, ctl *Controller, size int) {
	if !a.enabled {
		return
	}

	if a.hasNext {
		if a.wait > 0 {
			a.wait--
			return
		}
		a.hasNext = false
		ctl.SelectAt(a.pending)
		return
	}

	a.countdown--
	if a.countdown > 0 {
		return
	}
	a.countdown = a.interval

	if _, armed := ctl.Armed(); armed {
		return
	}
	if rng.Float64() >= a.chance {
		return
	}

	for range a.attempts {
		from := engine.Pos(rng.Intn(size), rng.Intn(size))
		dr, dc := Directions[rng.Intn(len(Directions))].Delta()
		to := from.Add(dr, dc)
		if to.Row < 0 || to.Row >= size || to.Col < 0 || to.Col >= size {
			continue
		}
		if ctl.SelectAt(from) != SelectArmed {
			return
		}
		a.pending = to
		a.hasNext = true
		a.wait = a.delay
		return
	}
}
