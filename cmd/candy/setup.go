package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
	"github.com/vovakirdan/candy-bonus/internal/config"
	"github.com/vovakirdan/candy-bonus/internal/core"
	"github.com/vovakirdan/candy-bonus/internal/games/candy"
	"github.com/vovakirdan/candy-bonus/internal/storage"
)

// app bundles what every command builds from the global flags.
type app struct {
	cfg     config.CandyConfig
	logger  *log.Logger
	store   *storage.Store
	client  *checkout.Client
	logFile *os.File
}

// newApp loads configuration, opens storage and prepares the checkout
// client. Without --log-file, logs go to fallback (io.Discard for
// full-screen commands, since the TUI owns the terminal).
func newApp(fallback io.Writer) (*app, error) {
	a := &app{}

	out := fallback
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		out = f
	}
	a.logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "candy",
	})
	if flagDebug {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.LoadCandy(flagConfig)
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(&cfg)
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return nil, err
		}
		config.ApplyCandyPreset(&cfg, preset)
	}
	if flagAutoplay {
		cfg.Autoplay.Enabled = true
	}
	if flagAPIURL != "" {
		cfg.Checkout.APIURL = flagAPIURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a.cfg = cfg

	candy.Configure(cfg)
	candy.SetLogger(a.logger.WithPrefix("engine"))

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - the game still works
		a.logger.Warn("could not open database", "path", flagDBPath, "err", err)
	} else {
		a.store = store
	}

	opts := []checkout.Option{
		checkout.WithLogger(a.logger.WithPrefix("checkout")),
		checkout.WithTimeout(a.checkoutTimeout()),
	}
	if a.store != nil {
		opts = append(opts, checkout.WithRecorder(a.store))
	}
	a.client = checkout.New(cfg.Checkout.APIURL, opts...)

	return a, nil
}

func (a *app) checkoutTimeout() time.Duration {
	return time.Duration(a.cfg.Checkout.TimeoutSeconds * float64(time.Second))
}

// runtimeConfig sizes the runtime to the current terminal.
func (a *app) runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
