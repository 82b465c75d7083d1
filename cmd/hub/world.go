package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-world/internal/platform/tui"
)

var worldCmd = &cobra.Command{
	Use:   "world",
	Short: "Walk the world map",
	Long: `Start on the world map. Walk into a building to enter it; the game
center holds the game picker. After a game you return to the game center,
and B takes you back outside.

Controls:
  Arrows/WASD  - Walk
  Enter        - Select (menus)
  Tab          - High scores (game center)
  B/Esc        - Back
  Q/Ctrl+C     - Quit

Examples:
  hub world
  hub world --difficulty easy
  hub world --fps 60`,
	Args: cobra.NoArgs,
	RunE: runWorld,
}

func init() {
	worldCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for every game: easy, normal, hard, fixed")
}

func runWorld(_ *cobra.Command, _ []string) error {
	env, cleanup, err := localEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := tui.NewSessionModel(env, runtimeConfig(), os.Getenv("USER"))
	if err != nil {
		return fmt.Errorf("cannot start the world: %w", err)
	}
	env.Logger.Info("session started", "mode", "world")
	return tui.Run(session)
}
