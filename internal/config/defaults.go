package config

import (
	_ "embed"
)

//go:embed defaults/candy.yaml
var defaultCandyYAML []byte

// DefaultCandyConfig returns the built-in configuration, used when the
// embedded YAML cannot be parsed.
func DefaultCandyConfig() CandyConfig {
	return CandyConfig{
		Board: CandyBoard{
			Size:       6,
			Symbols:    6,
			MaxCascade: 100,
		},
		Session: CandySession{
			TimeLimit:      30,
			LowTimeWarning: 10,
		},
		Scoring: CandyScoring{
			PointsPerTile:   10,
			BonusPerTile:    10,
			SpecialLength:   4,
			FinalMultiplier: 1.5,
			FinalJitter:     200,
		},
		Animation: CandyAnimation{
			PhaseTicks:   6,
			PopupSeconds: 1.5,
		},
		Autoplay: CandyAutoplay{
			Enabled:  false,
			Interval: 2,
			Chance:   0.3,
			Attempts: 10,
		},
		Checkout: CheckoutConfig{
			APIURL:         "http://localhost:3001",
			TimeoutSeconds: 15,
			DefaultFlow:    "popup",
		},
	}
}
