// Package tui provides the Bubble Tea integration for the arcade hub.
// It handles the terminal UI loop, input mapping and snapshot rendering,
// while the simulation runs on its own clocks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per host frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameElapsed returns the host time between two ticks. The first frame
// has no predecessor and contributes nothing.
func frameElapsed(last, now time.Time) time.Duration {
	if last.IsZero() || now.Before(last) {
		return 0
	}
	return now.Sub(last)
}
