package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Seconds converts a duration in seconds to ticks at this tick rate.
func (c RuntimeConfig) Seconds(sec float64) int {
	rate := c.TickRate
	if rate <= 0 {
		rate = 60
	}
	return int(sec * float64(rate))
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Bonus    float64 // Accumulated bonus shown to the player
	GameOver bool    // Whether the game has ended
	Paused   bool    // Whether the game is paused
	Checkout bool    // Player asked to claim the bonus
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
