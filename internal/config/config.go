// Package config provides YAML-based configuration loading and difficulty
// presets for Candy Bonus.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// CandyConfig contains all configuration for a Candy Bonus session.
type CandyConfig struct {
	Board     CandyBoard     `yaml:"board"`
	Session   CandySession   `yaml:"session"`
	Scoring   CandyScoring   `yaml:"scoring"`
	Animation CandyAnimation `yaml:"animation"`
	Autoplay  CandyAutoplay  `yaml:"autoplay"`
	Checkout  CheckoutConfig `yaml:"checkout"`
}

// CandyBoard defines the engine's board parameters.
type CandyBoard struct {
	Size       int `yaml:"size"`
	Symbols    int `yaml:"symbols"`
	MaxCascade int `yaml:"max_cascade"`
}

// CandySession defines the timer of a timed game.
type CandySession struct {
	TimeLimit      float64 `yaml:"time_limit"`       // seconds, timed mode only
	LowTimeWarning float64 `yaml:"low_time_warning"` // seconds
}

// CandyScoring defines how matches turn into score and bonus.
type CandyScoring struct {
	PointsPerTile   int     `yaml:"points_per_tile"`
	BonusPerTile    float64 `yaml:"bonus_per_tile"`
	SpecialLength   int     `yaml:"special_length"`
	FinalMultiplier float64 `yaml:"final_multiplier"`
	FinalJitter     int     `yaml:"final_jitter"`
}

// CandyAnimation defines the pacing of board phases and popups.
type CandyAnimation struct {
	PhaseTicks   int     `yaml:"phase_ticks"`
	PopupSeconds float64 `yaml:"popup_seconds"`
}

// CandyAutoplay defines the optional demo mode that plays random moves.
type CandyAutoplay struct {
	Enabled  bool    `yaml:"enabled"`
	Interval float64 `yaml:"interval"` // seconds between attempts
	Chance   float64 `yaml:"chance"`   // probability of acting per attempt
	Attempts int     `yaml:"attempts"` // candidate moves tried per action
}

// CheckoutConfig defines the Pix payment backend.
type CheckoutConfig struct {
	APIURL         string  `yaml:"api_url"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
	DefaultFlow    string  `yaml:"default_flow"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Validate checks that the configuration can drive a session.
func (c CandyConfig) Validate() error {
	var errs []error
	if c.Board.Size < 4 || c.Board.Size > 12 {
		errs = append(errs, fmt.Errorf("board.size %d out of range [4, 12]", c.Board.Size))
	}
	if c.Board.Symbols < 3 || c.Board.Symbols > 8 {
		errs = append(errs, fmt.Errorf("board.symbols %d out of range [3, 8]", c.Board.Symbols))
	}
	if c.Board.MaxCascade < 1 {
		errs = append(errs, fmt.Errorf("board.max_cascade must be positive"))
	}
	if c.Session.TimeLimit <= 0 {
		errs = append(errs, fmt.Errorf("session.time_limit must be positive"))
	}
	if c.Animation.PhaseTicks < 0 {
		errs = append(errs, fmt.Errorf("animation.phase_ticks must not be negative"))
	}
	if c.Autoplay.Chance < 0 || c.Autoplay.Chance > 1 {
		errs = append(errs, fmt.Errorf("autoplay.chance %.2f out of range [0, 1]", c.Autoplay.Chance))
	}
	if u, err := url.Parse(c.Checkout.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("checkout.api_url %q is not an absolute URL", c.Checkout.APIURL))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
