package sim

import "github.com/vovakirdan/arcade-world/internal/core"

// MaxQueuedMoves bounds the discrete moves waiting for a step. Moves beyond
// it are rejected.
const MaxQueuedMoves = 4

// InputMapper buffers intents between steps.
//
// In continuous mode it tracks the current direction (applied by the last
// step) and the requested one (applied by the next). In discrete mode every
// accepted move is queued and the steps apply them in order, one each.
// Rejected intents are dropped silently.
type InputMapper struct {
	mode      InputMode
	current   core.Direction
	requested core.Direction
	moves     []core.Direction
	action    core.Intent
}

// NewInputMapper creates a mapper starting in the given direction.
func NewInputMapper(mode InputMode, initial core.Direction) *InputMapper {
	m := &InputMapper{mode: mode}
	m.Reset(initial)
	return m
}

// Reset clears pending input and sets the current direction.
func (m *InputMapper) Reset(initial core.Direction) {
	m.current = initial
	m.action = core.IntentNone
	m.moves = m.moves[:0]
	m.requested = core.DirNone
	if m.mode == InputContinuous {
		m.requested = initial
	}
}

// Submit offers an intent. valid decides whether an action intent is allowed
// in the current game phase; it may be nil to accept every action.
// Returns whether the intent was accepted.
func (m *InputMapper) Submit(in core.Intent, valid func(core.Intent) bool) bool {
	if in == core.IntentNone {
		return false
	}

	if dir := in.Direction(); dir != core.DirNone {
		switch m.mode {
		case InputContinuous:
			if m.current != core.DirNone && dir == m.current.Opposite() {
				return false
			}
			m.requested = dir
			return true
		case InputDiscrete:
			if len(m.moves) >= MaxQueuedMoves {
				return false
			}
			m.moves = append(m.moves, dir)
			return true
		default:
			return false
		}
	}

	if valid != nil && !valid(in) {
		return false
	}
	m.action = in
	return true
}

// Take returns the command for the next step and clears one-shot input.
func (m *InputMapper) Take() Command {
	cmd := Command{Dir: m.requested, Action: m.action}
	m.action = core.IntentNone
	if m.mode == InputDiscrete {
		cmd.Dir = core.DirNone
		if len(m.moves) > 0 {
			cmd.Dir = m.moves[0]
			m.moves = append(m.moves[:0], m.moves[1:]...)
		}
	}
	return cmd
}

// Commit records the direction a step actually applied as current.
func (m *InputMapper) Commit(dir core.Direction) {
	if dir != core.DirNone {
		m.current = dir
	}
}

// Current returns the direction applied by the last step.
func (m *InputMapper) Current() core.Direction {
	return m.current
}
