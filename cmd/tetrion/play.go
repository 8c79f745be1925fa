package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetrion/internal/core"
	"github.com/vovakirdan/tetrion/internal/platform/tui"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a match in this terminal.

Controls:
  Left/Right, A/D   - Shift
  Up/W              - Sonic drop
  Down/S            - Soft drop, lock when landed
  Z, C              - Rotate counter-clockwise
  X                 - Rotate clockwise
  Q/Esc             - End the match, then leave
  Enter/R           - Play again after a match
  F2                - Save a text screenshot
  Ctrl+C            - Exit immediately

Difficulty options:
  easy   - Start at base gravity, speeds up with cleared lines
  normal - Start at 30% of the gravity curve
  hard   - Start at 70% of the gravity curve
  fixed  - No progression, stays at the configured level

Examples:
  tetrion play
  tetrion play --difficulty hard
  tetrion play --variant pure --seed 42
  tetrion play --record ./last.yaml
  tetrion play --config ./my-rules.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of each finished match to this file")
}

// terminalSize returns the size of stdout, or the defaults.
func terminalSize() (width, height int) {
	def := core.DefaultConfig()
	width, height = def.ScreenW, def.ScreenH
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func runPlay(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("tetrion", true)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := terminalSize()
	err = tui.Run(tui.PlayOptions{
		Rules:      rules,
		Seed:       flagSeed,
		Player:     flagPlayer,
		Store:      store,
		Logger:     logger,
		RecordPath: flagRecord,
		Width:      width,
		Height:     height,
	})
	if err != nil {
		fail("%v", err)
	}
}
