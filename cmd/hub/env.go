package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/logging"
	"github.com/vovakirdan/arcade-world/internal/platform/tui"
	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/storage"
)

// localEnv opens the log file and score store for a TUI session on this
// terminal. The returned cleanup closes both.
func localEnv() (tui.Env, func(), error) {
	logFile, err := logging.OpenFile(flagLogFile)
	if err != nil {
		return tui.Env{}, nil, err
	}
	logger := logging.New(logFile, "hub", flagLogLevel)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// Continue without storage - games still work
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
		logFile.Close()
	}
	env := tui.Env{
		Store:  store,
		Logger: logger,
		Options: registry.Options{
			ConfigPath: flagConfig,
			Difficulty: flagDifficulty,
		},
	}
	return env, cleanup, nil
}

// runtimeConfig sizes the screen from the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
