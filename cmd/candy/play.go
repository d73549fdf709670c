package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
	"github.com/vovakirdan/candy-bonus/internal/games/candy"
	"github.com/vovakirdan/candy-bonus/internal/platform/tui"
	"github.com/vovakirdan/candy-bonus/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Play a round of Candy Bonus. The default mode is the timed round;
use candy_endless to play without a timer and cash out with Enter.

Controls:
  Arrows/WASD      - Move cursor
  Space            - Pick a candy, then a neighbour to swap
  Shift+Arrows     - Swap the candy under the cursor in that direction
  H/?              - Show a hint
  Enter            - Start round / cash out (endless)
  C                - Claim bonus (after the round)
  P                - Pause
  R                - Play again (after the round)
  Q/Ctrl+C         - Quit

Examples:
  candy play
  candy play candy_endless
  candy play --endless --autoplay
  candy play --difficulty hard
  candy play --config ./my-candy.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

var flagEndless bool

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play without a timer (same as 'candy play candy_endless')")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := candy.IDTimed
	if flagEndless {
		gameID = candy.IDEndless
	}
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fatal("unknown game mode %q\nRun 'candy list' to see available modes.", gameID)
	}

	a, err := newApp(io.Discard)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("creating game: %v", err)
	}

	cfg := a.runtimeConfig()
	result, err := tui.Run(game, a.store, cfg)
	if err != nil {
		a.Close()
		fatal("running game: %v", err)
	}
	a.logger.Info("round finished", "mode", gameID, "score", result.Score, "bonus", result.Bonus)

	if !result.Checkout {
		return
	}

	payment, err := tui.RunCheckout(a.client, checkout.OfferPopup(), result.Bonus, a.checkoutTimeout(), cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		a.Close()
		fatal("running checkout: %v", err)
	}
	if payment != nil {
		fmt.Printf("Pix generated: %s (R$ %.2f)\n", payment.PaymentID, payment.Amount)
		fmt.Printf("Copy-paste code: %s\n", payment.QRCode)
	}
}
