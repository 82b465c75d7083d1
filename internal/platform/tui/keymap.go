package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// KeyMapper translates Bubble Tea key messages to intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a player intent.
// Returns the intent (may be IntentNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (in core.Intent, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.IntentNone, true
	case "w", "up":
		return core.IntentUp, false
	case "s", "down":
		return core.IntentDown, false
	case "a", "left":
		return core.IntentLeft, false
	case "d", "right":
		return core.IntentRight, false
	case " ":
		return core.IntentJump, false
	case "x", "shift+down":
		return core.IntentDuck, false
	case "enter":
		return core.IntentSelect, false
	}
	return core.IntentNone, false
}

// Fallback returns the intent to try when a game rejects in.
// Runners take the arrows as jump and duck.
func Fallback(in core.Intent) core.Intent {
	switch in {
	case core.IntentUp:
		return core.IntentJump
	case core.IntentDown:
		return core.IntentDuck
	}
	return core.IntentNone
}

// Control is a host command that never reaches the simulation.
type Control int

const (
	ControlNone Control = iota
	ControlRestart
	ControlBack
	ControlScreenshot
	ControlGiveUp
)

// MapKeyToControl translates a key to a host control.
func (km *KeyMapper) MapKeyToControl(msg tea.KeyMsg) Control {
	switch msg.String() {
	case "r":
		return ControlRestart
	case "b", "esc":
		return ControlBack
	case "ctrl+s":
		return ControlScreenshot
	case "g":
		return ControlGiveUp
	}
	return ControlNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
