// candy is a match-3 game for the terminal that turns matched candies into
// a cash bonus, claimable through a Pix checkout.
//
// Usage:
//
//	candy list               - List game modes
//	candy play [mode]        - Play a round (default: candy)
//	candy menu               - Start the interactive menu
//	candy serve              - Start SSH server for remote play
//	candy scores [mode]      - Show high scores
//	candy checkout           - Generate a Pix payment from the command line
//	candy payments           - List recorded Pix payments
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.candy/candy.db)
//	--config <path>     - Custom YAML config
//	--difficulty <name> - easy, normal, hard or fixed
//	--autoplay          - Play random moves automatically
//	--api-url <url>     - Payment backend (overrides config and CANDY_API_URL)
//	--log-file <path>   - Write logs to a file
//	--debug             - Log at debug level
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/candy-bonus/internal/games/candy"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagAPIURL     string
	flagLogFile    string
	flagDebug      bool
	flagAutoplay   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candy",
	Short: "Candy Bonus - match candies, win a bonus",
	Long: `Candy Bonus is a match-3 game for the terminal. Swap neighbouring
candies to line up three or more; every match grows your bonus.
When the round ends you can claim the bonus with a Pix payment.

Available commands:
  list      - Show game modes
  play      - Play a round directly
  menu      - Interactive menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  checkout  - Generate a Pix payment
  payments  - List recorded Pix payments

Examples:
  candy play
  candy play candy_endless --difficulty easy
  candy menu
  candy serve --ssh :2222
  candy checkout --name "Maria" --email maria@example.com`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.candy/candy.db", "Path to the scores and payments database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Payment backend URL")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().BoolVar(&flagAutoplay, "autoplay", false, "Let the board play random moves on its own")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(paymentsCmd)
}
