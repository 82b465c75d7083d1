package core

// Intent is a discrete player intent, abstracted from physical key presses.
// The platform layer maps raw keys to intents; games only see intents.
type Intent int

const (
	IntentNone   Intent = iota
	IntentUp            // W, Up arrow
	IntentDown          // S, Down arrow
	IntentLeft          // A, Left arrow
	IntentRight         // D, Right arrow
	IntentJump          // Space - jump in runners
	IntentDuck          // Shift+Down / X - duck in runners
	IntentSelect        // Enter - interact with what is under the player
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case IntentNone:
		return "none"
	case IntentUp:
		return "up"
	case IntentDown:
		return "down"
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentJump:
		return "jump"
	case IntentDuck:
		return "duck"
	case IntentSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Direction returns the direction carried by a directional intent,
// or DirNone for action intents.
func (i Intent) Direction() Direction {
	switch i {
	case IntentUp:
		return DirUp
	case IntentDown:
		return DirDown
	case IntentLeft:
		return DirLeft
	case IntentRight:
		return DirRight
	default:
		return DirNone
	}
}

// IsDirectional reports whether the intent moves in a direction.
func (i Intent) IsDirectional() bool {
	return i.Direction() != DirNone
}

// Direction is a movement direction on the map.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the reverse direction. DirNone has no opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

// Delta returns the unit step for the direction in screen coordinates.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}
