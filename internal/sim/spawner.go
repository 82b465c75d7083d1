package sim

import (
	"errors"
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// ErrBoardSaturated is returned when no free position could be found.
var ErrBoardSaturated = errors.New("sim: board saturated")

// DefaultSpawnAttempts bounds rejection sampling when MaxAttempts is unset.
const DefaultSpawnAttempts = 256

// Spawner places entities at random free positions inside Bounds.
//
// When Cell is positive positions are aligned to a grid of that size,
// otherwise they are drawn freely.
type Spawner struct {
	Bounds      core.Box
	W, H        float64 // Size of the box to place
	Cell        float64 // Grid size, 0 for free placement
	MaxAttempts int
}

// Place draws uniformly random positions until one does not overlap any of
// occupied. After MaxAttempts draws a grid spawner scans the remaining free
// cells once; if the board is full it returns ErrBoardSaturated.
func (s Spawner) Place(rng *rand.Rand, occupied []core.Box) (core.Box, error) {
	attempts := s.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultSpawnAttempts
	}

	if s.W <= 0 || s.H <= 0 || s.W > s.Bounds.W || s.H > s.Bounds.H {
		return core.Box{}, ErrBoardSaturated
	}

	for range attempts {
		b := s.draw(rng)
		if free(b, occupied) {
			return b, nil
		}
	}

	if s.Cell > 0 {
		if cells := s.freeCells(occupied); len(cells) > 0 {
			return cells[rng.Intn(len(cells))], nil
		}
	}
	return core.Box{}, ErrBoardSaturated
}

func (s Spawner) draw(rng *rand.Rand) core.Box {
	if s.Cell > 0 {
		cols, rows := s.grid()
		x := s.Bounds.X + float64(rng.Intn(cols))*s.Cell
		y := s.Bounds.Y + float64(rng.Intn(rows))*s.Cell
		return core.NewBox(x, y, s.W, s.H)
	}
	x := s.Bounds.X + rng.Float64()*(s.Bounds.W-s.W)
	y := s.Bounds.Y + rng.Float64()*(s.Bounds.H-s.H)
	return core.NewBox(x, y, s.W, s.H)
}

// grid returns how many cell-aligned positions fit the bounds on each axis.
func (s Spawner) grid() (cols, rows int) {
	cols = int(math.Floor((s.Bounds.W-s.W)/s.Cell)) + 1
	rows = int(math.Floor((s.Bounds.H-s.H)/s.Cell)) + 1
	return max(cols, 1), max(rows, 1)
}

func (s Spawner) freeCells(occupied []core.Box) []core.Box {
	cols, rows := s.grid()
	var out []core.Box
	for y := range rows {
		for x := range cols {
			b := core.NewBox(s.Bounds.X+float64(x)*s.Cell, s.Bounds.Y+float64(y)*s.Cell, s.W, s.H)
			if free(b, occupied) {
				out = append(out, b)
			}
		}
	}
	return out
}

func free(b core.Box, occupied []core.Box) bool {
	for _, o := range occupied {
		if core.Overlaps(b, o) {
			return false
		}
	}
	return true
}
