package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides checkout.api_url when set.
const EnvAPIURL = "CANDY_API_URL"

const candyFile = "candy.yaml"

// LoadCandy loads the Candy Bonus configuration. Keys missing from the file
// keep their built-in defaults.
// Search order: customPath -> ~/.candy/configs/candy.yaml -> ./configs/candy.yaml -> embedded default
func LoadCandy(customPath string) (CandyConfig, error) {
	cfg := DefaultCandyConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local one
	for _, path := range []string{userConfigPath(candyFile), filepath.Join("configs", candyFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		attempt := DefaultCandyConfig()
		if err := yaml.Unmarshal(data, &attempt); err == nil {
			return attempt, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCandyYAML, &cfg); err != nil {
		return DefaultCandyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides to cfg.
func ApplyEnv(cfg *CandyConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.Checkout.APIURL = v
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".candy", "configs", filename)
}

// ApplyCandyPreset modifies the config based on a difficulty preset.
// Easier games last longer on a board with fewer candy kinds, so matches
// come up more often. Fixed leaves the loaded values untouched.
func ApplyCandyPreset(cfg *CandyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.TimeLimit = 45
		cfg.Board.Symbols = 5
	case DifficultyNormal:
		cfg.Session.TimeLimit = 30
		cfg.Board.Symbols = 6
	case DifficultyHard:
		cfg.Session.TimeLimit = 20
		cfg.Board.Symbols = 7
	}
}
