package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-bonus/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Candy Bonus SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the menu.
Scores and payments are stored per-server (all users share the same
leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.candy/host_key

Examples:
  candy serve                           # Listen on :23234 with auto-generated key
  candy serve --ssh :2222               # Listen on port 2222
  candy serve --host-key ./my_host_key  # Use specific host key
  candy serve --db ./candy.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := newApp(os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Checkout = a.client
	cfg.CheckoutTimeout = a.checkoutTimeout()
	cfg.Logger = a.logger

	server, err := tui.NewSSHServer(cfg, a.store)
	if err != nil {
		a.Close()
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting Candy Bonus SSH server on %s\n", cfg.Address)
	fmt.Printf("Payment backend: %s\n", a.cfg.Checkout.APIURL)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		a.Close()
		fatal("server: %v", err)
	}
}
