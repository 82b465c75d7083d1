// Package snake implements the grid Snake rule set.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-world/internal/config"
	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/sim"
)

// ID is the registry identifier.
const ID = "snake"

// ReasonTarget is the win reason once the target score is reached.
const ReasonTarget = "target score reached"

// Rules implements sim.Rules for Snake.
type Rules struct {
	cfg     config.SnakeConfig
	start   core.Direction
	spawner sim.Spawner
	walls   []core.Point
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Snake"}, func(opts registry.Options) (sim.Rules, error) {
		cfg, err := config.LoadSnake(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, ok := config.ParsePreset(opts.Difficulty)
		if !ok {
			return nil, fmt.Errorf("snake: unknown difficulty %q", opts.Difficulty)
		}
		config.ApplySnakePreset(&cfg, preset)
		return New(cfg)
	})
}

// New validates cfg and builds the rule set.
func New(cfg config.SnakeConfig) (*Rules, error) {
	b := cfg.Board
	if b.Width < 2 || b.Height < 2 {
		return nil, fmt.Errorf("snake: board %dx%d too small", b.Width, b.Height)
	}
	if cfg.Speed.InitialMs <= 0 {
		return nil, errors.New("snake: initial interval must be positive")
	}
	if cfg.Gameplay.FoodPoints <= 0 {
		cfg.Gameplay.FoodPoints = 1
	}

	dir, err := parseDirection(cfg.Start.Direction)
	if err != nil {
		return nil, err
	}
	if cfg.Start.Length < 1 {
		cfg.Start.Length = 1
	}

	r := &Rules{
		cfg:   cfg,
		start: dir,
		spawner: sim.Spawner{
			Bounds: core.NewBox(0, 0, float64(b.Width), float64(b.Height)),
			W:      1,
			H:      1,
			Cell:   1,
		},
		walls: parseLayout(b.Layout, b.Width, b.Height),
	}

	bounds := r.spawner.Bounds
	for _, p := range r.body() {
		if core.OutOfBounds(core.CellBox(p.X, p.Y, 1), bounds) {
			return nil, fmt.Errorf("snake: start body leaves the %dx%d board", b.Width, b.Height)
		}
		for _, wall := range r.walls {
			if wall == p {
				return nil, fmt.Errorf("snake: start body overlaps wall at (%d,%d)", p.X, p.Y)
			}
		}
	}
	return r, nil
}

// Info implements sim.Rules.
func (r *Rules) Info() sim.Info {
	s := r.cfg.Speed
	return sim.Info{
		ID:       ID,
		Title:    "Snake",
		Clock:    sim.ClockInterval,
		Input:    sim.InputContinuous,
		Interval: s.Initial(),
		Speed: sim.SpeedScaling{
			Every:     s.Every,
			Decrement: time.Duration(s.DecrementMs) * time.Millisecond,
			Floor:     time.Duration(s.FloorMs) * time.Millisecond,
		},
		Bounded:       true,
		SelfCollision: true,
	}
}

// body returns the starting segments, head first.
func (r *Rules) body() []core.Point {
	dx, dy := r.start.Delta()
	st := r.cfg.Start
	out := make([]core.Point, st.Length)
	for i := range out {
		out[i] = core.Point{X: st.X - i*dx, Y: st.Y - i*dy}
	}
	return out
}

// Setup implements sim.Rules.
func (r *Rules) Setup(w *sim.World, rng *rand.Rand) error {
	w.Bounds = r.spawner.Bounds
	w.Dir = r.start

	body := r.body()
	for i := len(body) - 1; i >= 0; i-- {
		w.PushHead(sim.Entity{Box: core.CellBox(body[i].X, body[i].Y, 1)})
	}
	for _, p := range r.walls {
		w.Add(sim.Entity{Kind: sim.KindObstacle, Box: core.CellBox(p.X, p.Y, 1)})
	}

	food, err := r.spawner.Place(rng, w.Boxes())
	if err != nil {
		return fmt.Errorf("snake: place food: %w", err)
	}
	w.Add(sim.Entity{Kind: sim.KindFood, Box: food})
	return nil
}

// Accepts implements sim.Rules. Snake has no action intents.
func (r *Rules) Accepts(w *sim.World, in core.Intent) bool {
	return false
}

// Advance pushes a new head one cell in the current direction. The tail is
// dropped in Settle so food eaten this step grows the body.
func (r *Rules) Advance(w *sim.World, cmd sim.Command, dt time.Duration, rng *rand.Rand) error {
	head, ok := w.Head()
	if !ok {
		return errors.New("snake: no head")
	}
	dx, dy := w.Dir.Delta()
	w.PushHead(sim.Entity{Box: head.Box.Translate(float64(dx), float64(dy))})
	return nil
}

// Consume relocates the eaten food to a free cell.
func (r *Rules) Consume(w *sim.World, target int, rng *rand.Rand) (int, error) {
	points := r.cfg.Gameplay.FoodPoints

	occupied := w.Boxes()
	occupied = append(occupied[:target], occupied[target+1:]...)
	box, err := r.spawner.Place(rng, occupied)
	if err != nil {
		w.Remove(target)
		return points, err
	}
	w.Entities[target].Box = box
	return points, nil
}

// Settle drops the tail unless the snake just ate.
func (r *Rules) Settle(w *sim.World, consumed bool) {
	if !consumed {
		w.PopTail()
	}
}

// Won implements sim.Rules.
func (r *Rules) Won(w *sim.World) (bool, string) {
	if t := r.cfg.Gameplay.TargetScore; t > 0 && w.Score >= t {
		return true, ReasonTarget
	}
	return false, ""
}

func parseDirection(s string) (core.Direction, error) {
	switch s {
	case "", "right":
		return core.DirRight, nil
	case "left":
		return core.DirLeft, nil
	case "up":
		return core.DirUp, nil
	case "down":
		return core.DirDown, nil
	default:
		return core.DirNone, fmt.Errorf("snake: unknown direction %q", s)
	}
}

// parseLayout reads '#' cells as walls, ignoring anything outside the board.
func parseLayout(layout []string, width, height int) []core.Point {
	var walls []core.Point
	for y, row := range layout {
		if y >= height {
			break
		}
		for x, ch := range row {
			if x < width && ch == '#' {
				walls = append(walls, core.Point{X: x, Y: y})
			}
		}
	}
	return walls
}
