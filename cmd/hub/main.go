// hub is a terminal world map with an arcade inside: walk the avatar to a
// building and play the games in the game center.
//
// Usage:
//
//	hub                  - Start on the world map (same as hub world)
//	hub list             - List available games
//	hub play <game>      - Play a game directly
//	hub world            - Walk the world map
//	hub serve            - Start SSH server for remote play
//	hub scores <game>    - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>         - Set redraw rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination while the TUI runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/arcade-world/internal/games/dino"
	_ "github.com/vovakirdan/arcade-world/internal/games/hub"
	_ "github.com/vovakirdan/arcade-world/internal/games/puzzle"
	_ "github.com/vovakirdan/arcade-world/internal/games/snake"
	"github.com/vovakirdan/arcade-world/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string

	// Game flags shared by play and world
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hub",
	Short: "Arcade World - walk a tiny world and play games in your terminal",
	Long: `Arcade World is a terminal world map. Walk your avatar into the
game center to pick a game, or visit the other buildings.

Available commands:
  world    - Walk the world map (default)
  list     - Show all available games
  play     - Play a specific game directly
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  hub
  hub play snake --difficulty hard
  hub serve --ssh :2222
  hub scores dino`,
	Args:          cobra.NoArgs,
	RunE:          runWorld,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Redraw rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", logging.DefaultFile, "Log file used while the TUI owns the terminal")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(worldCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
