package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/platform/tui"
	"github.com/vovakirdan/tetrion/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresStats string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best matches",
	Long: `Display the best matches, ranked by cleared lines and then by the
fewest frames. --variant limits the list to one variant.

Examples:
  tetrion scores
  tetrion scores --variant pure --limit 20
  tetrion scores --stats alice
  tetrion scores --tui
  tetrion scores --clear --variant mrs`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of matches to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in the interactive scoreboard")
	scoresCmd.Flags().StringVar(&flagScoresStats, "stats", "", "Show statistics for one player")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the matches of --variant (all when empty)")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening match database: %v", err)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearMatches(flagVariant); err != nil {
			fail("%v", err)
		}
		fmt.Println("Matches cleared.")
	case flagScoresStats != "":
		printStats(store, flagScoresStats)
	case flagScoresTUI:
		width, height := terminalSize()
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fail("%v", err)
		}
	default:
		printTopMatches(store)
	}
}

func printTopMatches(store *storage.Store) {
	matches, err := store.TopMatches(flagVariant, flagScoresLimit)
	if err != nil {
		fail("retrieving matches: %v", err)
	}

	title := "all variants"
	if flagVariant != "" {
		title = flagVariant
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetrion play' to set the first high score!")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tPlayer\tLines\tPieces\tTime\tVariant\tEnd\tDate")
	fmt.Fprintln(w, "  ----\t------\t-----\t------\t----\t-------\t---\t----")
	for i, m := range matches {
		played := time.Duration(m.Frames) * time.Second / 60
		fmt.Fprintf(w, "  %d\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
			i+1, m.Player, m.Lines, m.Pieces, played.Round(time.Second), m.Variant, m.EndReason,
			m.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func printStats(store *storage.Store, player string) {
	stats, err := store.PlayerStats(player)
	if err != nil {
		fail("%v", err)
	}
	if stats.Matches == 0 {
		fmt.Printf("No matches recorded for %s.\n", player)
		return
	}

	fmt.Printf("Statistics - %s\n\n", player)
	fmt.Printf("  Matches:      %d\n", stats.Matches)
	fmt.Printf("  Best lines:   %d\n", stats.BestLines)
	fmt.Printf("  Avg lines:    %.1f\n", stats.AvgLines)
	fmt.Printf("  Total lines:  %d\n", stats.TotalLines)
	fmt.Printf("  Total pieces: %d\n", stats.TotalPieces)
	fmt.Printf("  Last played:  %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))

	recent, err := store.RecentMatches(player, 5)
	if err != nil || len(recent) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("  Recent:")
	for _, m := range recent {
		fmt.Printf("    %s  %3d lines  %s\n", m.CreatedAt.Format("2006-01-02 15:04"), m.Lines, m.EndReason)
	}
}
