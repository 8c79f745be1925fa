package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetrion/internal/config"
	"github.com/vovakirdan/tetrion/internal/storage"
)

// loadRules resolves the rules from --config, --variant and --difficulty.
func loadRules() (config.TetrionConfig, error) {
	cfg, err := config.LoadTetrion(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyVariant(&cfg, flagVariant); err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

// newLogger builds the command logger. Interactive commands log to
// ~/.tetrion/tetrion.log so the output does not draw over the game.
// The returned func closes the log file.
func newLogger(prefix string, toFile bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeLog := func() {}
	if toFile {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		path := filepath.Join(home, ".tetrion", "tetrion.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //#nosec G304 -- fixed path under the home directory
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeLog = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeLog, nil
}

// openStore opens the match database. Failure is a warning: the game
// still works without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open match database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
