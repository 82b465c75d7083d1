package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-world/internal/platform/tui"
	"github.com/vovakirdan/arcade-world/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move or slide
  Space/Up     - Jump (runner)
  Down/X       - Duck (runner)
  R            - Restart (after game over)
  B/Esc        - Leave
  Ctrl+S       - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - Configured defaults
  hard   - Faster start, steeper speed-up
  fixed  - No progression, speed never changes

Examples:
  hub play snake
  hub play dino --difficulty easy
  hub play snake --difficulty fixed
  hub play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'hub list' to see available games", gameID)
	}

	env, cleanup, err := localEnv()
	if err != nil {
		return err
	}
	defer cleanup()

	session, err := tui.NewGameSession(env, runtimeConfig(), gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}
	env.Logger.Info("session started", "mode", "play", "game", gameID)
	return tui.Run(session)
}
