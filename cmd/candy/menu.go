package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-bonus/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Candy Bonus with the interactive menu",
	Long: `Start Candy Bonus in interactive menu mode.

Pick a mode, play, claim your bonus and come back to the menu to play
again. High scores and the checkout are reachable from the menu too.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  candy menu
  candy menu --fps 30
  candy menu --db ./candy.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	a, err := newApp(io.Discard)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	err = tui.RunSession(a.runtimeConfig(), tui.SessionOptions{
		Store:           a.store,
		Checkout:        a.client,
		CheckoutTimeout: a.checkoutTimeout(),
		Logger:          a.logger,
	})
	if err != nil {
		a.Close()
		fatal("%v", err)
	}
}
