package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-bonus/internal/games/candy"
	"github.com/vovakirdan/candy-bonus/internal/platform/tui"
	"github.com/vovakirdan/candy-bonus/internal/registry"
)

var (
	flagScoresTUI   bool
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top 10 rounds for a game mode (default: candy).

Examples:
  candy scores
  candy scores candy_endless
  candy scores --all
  candy scores --tui
  candy scores candy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse all modes in the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary of every mode")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded round of the mode")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := candy.IDTimed
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
	if a.store == nil {
		a.Close()
		fatal("could not open database %s", flagDBPath)
	}

	switch {
	case flagScoresAll:
		printAllStats(a)
		return
	case flagScoresClear:
		if err := a.store.ClearScores(gameID); err != nil {
			a.Close()
			fatal("clearing scores: %v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", registry.Title(gameID))
		return
	}

	if flagScoresTUI {
		cfg := a.runtimeConfig()
		if _, err := tui.RunScoreboard(a.store, cfg.ScreenW, cfg.ScreenH, gameID); err != nil {
			a.Close()
			fatal("%v", err)
		}
		return
	}

	scores, err := a.store.TopScores(gameID, 10)
	if err != nil {
		a.Close()
		fatal("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'candy play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "Rank", "Score", "Bonus", "Date")
	fmt.Printf("  %-4s  %-10s  %-12s  %s\n", "----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-12s  %s\n", i+1, entry.Score, candy.FormatBonus(entry.Bonus),
			entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := a.store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Printf("Best: %d  ·  Rounds: %d  ·  Best bonus: %s\n",
			stats.HighScore, stats.GamesCount, candy.FormatBonus(stats.BestBonus))
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load stats: %v\n", err)
	}
}

func printAllStats(a *app) {
	all, err := a.store.GetAllGamesStats()
	if err != nil {
		a.Close()
		fatal("retrieving stats: %v", err)
	}
	if len(all) == 0 {
		fmt.Println("No rounds recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-12s  %s\n", "Mode", "Rounds", "Best", "Avg", "Best bonus", "Last played")
	for _, g := range registry.List() {
		st, ok := all[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-8d  %-8.0f  %-12s  %s\n", g.Title, st.GamesCount, st.HighScore,
			st.AvgScore, candy.FormatBonus(st.BestBonus), st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
