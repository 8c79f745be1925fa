package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Open a menu to start matches and browse high scores.

This is the same screen SSH players see.

Controls:
  Up/Down   - Navigate
  Enter     - Select
  Tab       - High scores
  Q         - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of each finished match to this file")
}

func runMenu(_ *cobra.Command, _ []string) {
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
	err = tui.RunSession(tui.SessionOptions{
		Store:      store,
		Rules:      rules,
		Player:     flagPlayer,
		Seed:       flagSeed,
		Logger:     logger,
		RecordPath: flagRecord,
		Width:      width,
		Height:     height,
	})
	if err != nil {
		fail("%v", err)
	}
}
