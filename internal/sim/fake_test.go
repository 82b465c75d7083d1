package sim

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// lineRules moves a single 1x1 player across a 5x1 strip. Food sits at x=2
// and is moved to x=4 when eaten; a second meal saturates the board.
type lineRules struct {
	info     Info
	target   int
	foods    int
	obstacle bool
	setups   int
}

func newLineRules() *lineRules {
	return &lineRules{
		info: Info{
			ID:       "line",
			Title:    "Line",
			Clock:    ClockInterval,
			Input:    InputContinuous,
			Interval: 100 * time.Millisecond,
			Bounded:  true,
		},
	}
}

func (r *lineRules) Info() Info { return r.info }

func (r *lineRules) Setup(w *World, rng *rand.Rand) error {
	r.setups++
	r.foods = 0
	w.Bounds = core.NewBox(0, 0, 5, 1)
	w.Dir = core.DirRight
	w.PushHead(Entity{Box: core.CellBox(0, 0, 1)})
	w.Add(Entity{Kind: KindFood, Box: core.CellBox(2, 0, 1)})
	if r.obstacle {
		w.Add(Entity{Kind: KindObstacle, Box: core.CellBox(3, 0, 1)})
	}
	// Consume the RNG so determinism across resets is observable.
	w.Moves = rng.Intn(1000)
	return nil
}

func (r *lineRules) Accepts(w *World, in core.Intent) bool {
	return in != core.IntentDuck
}

func (r *lineRules) Advance(w *World, cmd Command, dt time.Duration, rng *rand.Rand) error {
	head, _ := w.Head()
	dx, dy := w.Dir.Delta()
	head.Box = head.Box.Translate(float64(dx), float64(dy))
	return nil
}

func (r *lineRules) Consume(w *World, target int, rng *rand.Rand) (int, error) {
	r.foods++
	if r.foods > 1 {
		return 1, ErrBoardSaturated
	}
	w.Entities[target].Box = core.CellBox(4, 0, 1)
	return 1, nil
}

func (r *lineRules) Settle(w *World, consumed bool) {}

func (r *lineRules) Won(w *World) (bool, string) {
	if r.target > 0 && w.Score >= r.target {
		return true, "target reached"
	}
	return false, ""
}
