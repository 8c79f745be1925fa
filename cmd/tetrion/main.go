// tetrion is a terminal falling-block game built on a deterministic,
// fixed-tick simulation.
//
// Usage:
//
//	tetrion play              - Play a match in this terminal
//	tetrion menu              - Menu with matches and high scores
//	tetrion serve             - Start SSH server for remote play
//	tetrion scores            - Show the best matches
//	tetrion replay <file>     - Re-simulate a recorded match
//	tetrion config            - Print the effective rules as YAML
//
// Global flags:
//
//	--seed <value>        - RNG seed for reproducible matches
//	--db <path>           - Database path (default: ~/.tetrion/tetrion.db)
//	--config <path>       - Rules YAML
//	--difficulty <name>   - easy, normal, hard, fixed
//	--variant <name>      - mrs (60 Hz) or pure (59.84 Hz)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVariant    string
	flagLogLevel   string
	flagPlayer     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrion",
	Short: "Tetrion - a falling-block game for your terminal",
	Long: `Tetrion is a falling-block game played in the terminal or over SSH.
Every match is a deterministic simulation: the same seed and the same
inputs always produce the same game, which is what makes replays work.

Available commands:
  play     - Play a match directly
  menu     - Menu with matches and high scores
  serve    - Start SSH server for remote play
  scores   - View the best matches
  replay   - Re-simulate a recorded match
  config   - Print the effective rules

Examples:
  tetrion play
  tetrion play --difficulty hard --record ./last.yaml
  tetrion serve --ssh :2222
  tetrion replay ./last.yaml --verify`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetrion/tetrion.db", "Path to match database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagVariant, "variant", "", "Simulation variant: mrs, pure")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name stored with matches")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// fail prints an error the way every command reports it and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
