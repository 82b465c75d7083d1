package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-world/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game in the game center, plus the world map.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	games := registry.List()
	out := cmd.OutOrStdout()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		title := g.Title
		if g.World {
			title += " (map)"
		}
		fmt.Fprintf(out, "  %-*s  %s\n", maxIDLen, g.ID, title)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'hub play <id>' to play a game, or 'hub' to walk the world.")
}
