// Package puzzle implements the sliding tile puzzle.
package puzzle

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-world/internal/config"
	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/sim"
)

// ID is the registry identifier.
const ID = "puzzle"

// ReasonSolved is the win reason.
const ReasonSolved = "solved"

// Size limits.
const (
	MinSize = 3
	MaxSize = 5
)

var allDirs = [...]core.Direction{core.DirUp, core.DirDown, core.DirLeft, core.DirRight}

// Rules implements sim.Rules for the sliding puzzle.
type Rules struct {
	cfg config.PuzzleConfig
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Sliding Puzzle"}, func(opts registry.Options) (sim.Rules, error) {
		cfg, err := config.LoadPuzzle(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New validates cfg and builds the rule set.
func New(cfg config.PuzzleConfig) (*Rules, error) {
	if cfg.Size < MinSize || cfg.Size > MaxSize {
		return nil, fmt.Errorf("puzzle: size %d outside %d-%d", cfg.Size, MinSize, MaxSize)
	}
	if cfg.ShuffleMoves < 1 {
		cfg.ShuffleMoves = 100
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = 50
	}
	return &Rules{cfg: cfg}, nil
}

// Size returns the board edge length.
func (r *Rules) Size() int {
	return r.cfg.Size
}

// Info implements sim.Rules.
func (r *Rules) Info() sim.Info {
	return sim.Info{
		ID:       ID,
		Title:    "Sliding Puzzle",
		Clock:    sim.ClockInterval,
		Input:    sim.InputDiscrete,
		Interval: time.Duration(r.cfg.TickMs) * time.Millisecond,
	}
}

// Setup lays out the solved board and shuffles it with random legal moves.
func (r *Rules) Setup(w *sim.World, rng *rand.Rand) error {
	n := r.cfg.Size
	w.Bounds = core.NewBox(0, 0, float64(n), float64(n))
	for i := range n * n {
		e := sim.Entity{Kind: sim.KindTile, Box: core.CellBox(i%n, i/n, 1), Value: i + 1}
		if i == n*n-1 {
			e.Empty = true
			e.Value = 0
		}
		w.Add(e)
	}

	for i := 0; i < r.cfg.ShuffleMoves || Solved(w, n); i++ {
		var legal []core.Direction
		for _, d := range allDirs {
			if r.neighbor(w, d) >= 0 {
				legal = append(legal, d)
			}
		}
		r.slide(w, legal[rng.Intn(len(legal))])
	}
	return nil
}

// Accepts implements sim.Rules. Only moves are taken.
func (r *Rules) Accepts(w *sim.World, in core.Intent) bool {
	return false
}

// Advance slides the tile next to the gap in the requested direction.
func (r *Rules) Advance(w *sim.World, cmd sim.Command, dt time.Duration, rng *rand.Rand) error {
	if cmd.Dir == core.DirNone {
		return nil
	}
	if r.slide(w, cmd.Dir) {
		w.Moves++
		if Solved(w, r.cfg.Size) {
			w.Score = max(1, r.cfg.Size*r.cfg.Size*10-w.Moves)
		}
	}
	return nil
}

// Consume implements sim.Rules.
func (r *Rules) Consume(w *sim.World, target int, rng *rand.Rand) (int, error) {
	return 0, nil
}

// Settle implements sim.Rules.
func (r *Rules) Settle(w *sim.World, consumed bool) {}

// Won reports a solved board.
func (r *Rules) Won(w *sim.World) (bool, string) {
	if Solved(w, r.cfg.Size) {
		return true, ReasonSolved
	}
	return false, ""
}

func (r *Rules) empty(w *sim.World) int {
	for i, e := range w.Entities {
		if e.Empty {
			return i
		}
	}
	return -1
}

// neighbor returns the index of the tile that moves into the gap when
// sliding in direction d, or -1. Sliding up moves the tile below the gap.
func (r *Rules) neighbor(w *sim.World, d core.Direction) int {
	ei := r.empty(w)
	if ei < 0 {
		return -1
	}
	dx, dy := d.Delta()
	gap := w.Entities[ei].Box
	want := gap.Translate(float64(-dx), float64(-dy))
	if core.OutOfBounds(want, w.Bounds) {
		return -1
	}
	for i, e := range w.Entities {
		if i != ei && e.Box.X == want.X && e.Box.Y == want.Y {
			return i
		}
	}
	return -1
}

func (r *Rules) slide(w *sim.World, d core.Direction) bool {
	ti := r.neighbor(w, d)
	if ti < 0 {
		return false
	}
	ei := r.empty(w)
	w.Entities[ti].Box, w.Entities[ei].Box = w.Entities[ei].Box, w.Entities[ti].Box
	return true
}

// Solved reports whether every tile sits at its home cell.
func Solved(w *sim.World, n int) bool {
	for _, e := range w.Entities {
		if e.Kind != sim.KindTile {
			continue
		}
		home := e.Value - 1
		if e.Empty {
			home = n*n - 1
		}
		if int(e.Box.X) != home%n || int(e.Box.Y) != home/n {
			return false
		}
	}
	return true
}
