package sim

import (
	"time"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// Snapshot is an immutable copy of world state handed to renderers and
// subscribers. Mutating it never affects the Machine.
type Snapshot struct {
	GameID      string
	Entities    []Entity
	Bounds      core.Box
	Status      Status
	Score       int
	Tick        uint64
	Elapsed     time.Duration
	Interval    time.Duration
	Dir         core.Direction
	Moves       int
	Reason      string
	Destination string
}

func newSnapshot(id string, w *World) Snapshot {
	return Snapshot{
		GameID:      id,
		Entities:    append([]Entity(nil), w.Entities...),
		Bounds:      w.Bounds,
		Status:      w.Status,
		Score:       w.Score,
		Tick:        w.Tick,
		Elapsed:     w.Elapsed,
		Interval:    w.Interval,
		Dir:         w.Dir,
		Moves:       w.Moves,
		Reason:      w.Reason,
		Destination: w.Destination,
	}
}

// Head returns the player head, if the world has one.
func (s Snapshot) Head() (Entity, bool) {
	if len(s.Entities) == 0 || s.Entities[0].Kind != KindPlayer {
		return Entity{}, false
	}
	return s.Entities[0], true
}

// BodyLen returns the number of player entities.
func (s Snapshot) BodyLen() int {
	n := 0
	for n < len(s.Entities) && s.Entities[n].Kind == KindPlayer {
		n++
	}
	return n
}

// Of returns copies of the entities of the given kind.
func (s Snapshot) Of(kind Kind) []Entity {
	var out []Entity
	for _, e := range s.Entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Result is what score collaborators receive once a run reaches a terminal state.
type Result struct {
	GameID      string
	Status      Status
	Score       int
	Elapsed     time.Duration
	Moves       int
	Reason      string
	Destination string
}

func (s Snapshot) result() Result {
	return Result{
		GameID:      s.GameID,
		Status:      s.Status,
		Score:       s.Score,
		Elapsed:     s.Elapsed,
		Moves:       s.Moves,
		Reason:      s.Reason,
		Destination: s.Destination,
	}
}
