// Package sim implements the shared discrete-step simulation core: a world of
// boxed entities, a state machine that advances it one tick at a time, an input
// mapper, a bounded spawner and the clocks that drive stepping.
//
// Game-specific behavior is injected through the Rules interface so every game
// runs on the same loop.
package sim

import (
	"time"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// Kind tags what an entity is.
type Kind int

const (
	KindPlayer Kind = iota
	KindObstacle
	KindFood
	KindTile
	KindPortal
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindFood:
		return "food"
	case KindTile:
		return "tile"
	case KindPortal:
		return "portal"
	default:
		return "unknown"
	}
}

// Entity is a positioned box plus kind-specific state.
type Entity struct {
	ID   int
	Kind Kind
	Box  core.Box

	// Jump physics (runners)
	VY       float64
	Grounded bool
	Ducking  bool

	// Sliding puzzle tiles
	Empty bool
	Value int

	// Portal destination or display text
	Label string
}

// Status is the lifecycle state of a world.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusWon
	StatusLost
)

// Terminal reports whether no further step may mutate the world.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// World is the complete simulation state owned by a Machine.
//
// Player entities form a contiguous block at the front of Entities; index 0
// is the head. The remaining entities keep insertion order, which doubles as
// the z-order for rendering.
type World struct {
	Entities []Entity
	Bounds   core.Box
	Status   Status
	Score    int
	Tick     uint64
	Elapsed  time.Duration
	Interval time.Duration // Current tick interval
	Dir      core.Direction
	Moves    int

	Reason      string // Why the world reached a terminal state
	Destination string // Portal reached, for hub-style worlds

	nextID    int
	spawnWait time.Duration // Time since last timed spawn
}

// Clone returns a deep copy of the world.
func (w *World) Clone() World {
	c := *w
	c.Entities = append([]Entity(nil), w.Entities...)
	return c
}

// Add appends an entity, assigning it a fresh ID, and returns its index.
func (w *World) Add(e Entity) int {
	w.nextID++
	e.ID = w.nextID
	w.Entities = append(w.Entities, e)
	return len(w.Entities) - 1
}

// PushHead inserts a player entity at the front of the body.
func (w *World) PushHead(e Entity) {
	w.nextID++
	e.ID = w.nextID
	e.Kind = KindPlayer
	w.Entities = append(w.Entities, Entity{})
	copy(w.Entities[1:], w.Entities[:len(w.Entities)-1])
	w.Entities[0] = e
}

// PopTail removes the last player entity and returns it.
func (w *World) PopTail() (Entity, bool) {
	n := w.BodyLen()
	if n == 0 {
		return Entity{}, false
	}
	tail := w.Entities[n-1]
	w.Remove(n - 1)
	return tail, true
}

// Remove deletes the entity at index i preserving order.
func (w *World) Remove(i int) {
	if i < 0 || i >= len(w.Entities) {
		return
	}
	w.Entities = append(w.Entities[:i], w.Entities[i+1:]...)
}

// BodyLen returns the number of leading player entities.
func (w *World) BodyLen() int {
	n := 0
	for n < len(w.Entities) && w.Entities[n].Kind == KindPlayer {
		n++
	}
	return n
}

// Head returns the player head, if any.
func (w *World) Head() (*Entity, bool) {
	if w.BodyLen() == 0 {
		return nil, false
	}
	return &w.Entities[0], true
}

// Body returns the player entities, head first.
func (w *World) Body() []Entity {
	return w.Entities[:w.BodyLen()]
}

// Filter returns indices of entities of the given kind.
func (w *World) Filter(kind Kind) []int {
	var out []int
	for i, e := range w.Entities {
		if e.Kind == kind {
			out = append(out, i)
		}
	}
	return out
}

// Boxes returns the boxes of every entity, for spawn occupancy checks.
func (w *World) Boxes() []core.Box {
	out := make([]core.Box, len(w.Entities))
	for i, e := range w.Entities {
		out[i] = e.Box
	}
	return out
}

// SpawnTimer advances the timed-spawn accumulator by dt and reports whether
// every has elapsed since the last spawn. The first spawn fires immediately.
func (w *World) SpawnTimer(dt, every time.Duration) bool {
	if every <= 0 {
		return false
	}
	due := w.Tick == 0 || w.spawnWait+dt >= every
	if due {
		w.spawnWait = 0
		return true
	}
	w.spawnWait += dt
	return false
}
