package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// ClockModel selects how a game is scheduled.
type ClockModel int

const (
	// ClockInterval fires one step per repeating timer tick (grid games).
	ClockInterval ClockModel = iota
	// ClockFrame accumulates host frame time and steps in fixed increments (physics games).
	ClockFrame
)

func (c ClockModel) String() string {
	if c == ClockFrame {
		return "frame"
	}
	return "interval"
}

// InputMode selects how directional intents are buffered.
type InputMode int

const (
	// InputContinuous keeps the direction until changed and rejects reversals.
	InputContinuous InputMode = iota
	// InputDiscrete queues accepted directions and applies one per step.
	InputDiscrete
	// InputActions takes no directions; only action intents reach the rules.
	InputActions
)

// SpeedScaling tightens the tick interval as the score grows.
// Every zero disables scaling.
type SpeedScaling struct {
	Every     int           // Score points between tightenings
	Decrement time.Duration // Interval reduction per tightening
	Floor     time.Duration // Interval never drops below this
}

// Apply returns the interval after the score moved from prev to next.
func (s SpeedScaling) Apply(interval time.Duration, prev, next int) time.Duration {
	if s.Every <= 0 || next <= prev {
		return interval
	}
	steps := next/s.Every - prev/s.Every
	for range steps {
		interval -= s.Decrement
	}
	return max(interval, s.Floor)
}

// Info describes a rule set to the machine and the host.
type Info struct {
	ID       string
	Title    string
	Clock    ClockModel
	Input    InputMode
	Interval time.Duration // Initial tick interval (fixed step size for ClockFrame)
	Speed    SpeedScaling

	Bounded       bool // Player leaving the bounds loses
	SelfCollision bool // Player head hitting its own body loses
}

// Command is the input applied to one step.
type Command struct {
	Dir    core.Direction // Direction in effect for this step
	Action core.Intent    // Pending action intent (jump, duck, select) or IntentNone
}

// Rules is the game-specific strategy injected into a Machine.
//
// Every method receives the working copy of the world for the current step.
// A Machine never calls Rules concurrently.
type Rules interface {
	// Info returns static game parameters.
	Info() Info

	// Setup populates a freshly reset world with its initial entities.
	Setup(w *World, rng *rand.Rand) error

	// Accepts reports whether an action intent is valid in the current phase,
	// such as jumping only while grounded.
	Accepts(w *World, in core.Intent) bool

	// Advance applies the command and moves every entity by one step of dt.
	Advance(w *World, cmd Command, dt time.Duration, rng *rand.Rand) error

	// Consume handles the player reaching the beneficial entity at index target.
	// It returns the points earned. Returning ErrBoardSaturated ends the run.
	Consume(w *World, target int, rng *rand.Rand) (int, error)

	// Settle runs after collisions were resolved, e.g. to truncate the tail.
	Settle(w *World, consumed bool)

	// Won reports the game-specific win condition and its reason.
	Won(w *World) (bool, string)
}
