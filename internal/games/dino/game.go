// Package dino implements a Dino Run style runner: the player jumps over
// ground obstacles and ducks under flying ones until the time limit runs out.
package dino

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
const ID = "dino"

// ReasonSurvived is the win reason once the time limit has elapsed.
const ReasonSurvived = "time limit survived"

// DuckSteps is how many steps a single duck lasts.
const DuckSteps = 30

// Rules implements sim.Rules for Dino Run.
type Rules struct {
	cfg     config.DinoConfig
	groundY float64
	lane    lane
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Dino Run"}, func(opts registry.Options) (sim.Rules, error) {
		cfg, err := config.LoadDino(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		preset, ok := config.ParsePreset(opts.Difficulty)
		if !ok {
			return nil, fmt.Errorf("dino: unknown difficulty %q", opts.Difficulty)
		}
		config.ApplyDinoPreset(&cfg, preset)
		return New(cfg)
	})
}

// New validates cfg and builds the rule set.
func New(cfg config.DinoConfig) (*Rules, error) {
	c := cfg.Canvas
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("dino: invalid canvas %vx%v", c.Width, c.Height)
	}
	if cfg.Physics.StepMs <= 0 {
		return nil, errors.New("dino: step_ms must be positive")
	}
	p := cfg.Player
	ground := c.Height - c.GroundOffset
	if p.Width <= 0 || p.Height <= 0 || p.Height > ground || p.X < 0 || p.X+p.Width > c.Width {
		return nil, errors.New("dino: player does not fit the canvas")
	}
	o := cfg.Obstacles
	if o.Width <= 0 || o.Height <= 0 {
		return nil, errors.New("dino: invalid obstacle size")
	}
	if o.HighChance < 0 || o.HighChance > 1 {
		return nil, fmt.Errorf("dino: high_chance %v outside [0, 1]", o.HighChance)
	}
	if o.HighChance > 0 && (o.HighClearance <= 0 || o.HighClearance+o.Height > ground) {
		return nil, errors.New("dino: flying obstacles do not fit above the ground")
	}

	return &Rules{
		cfg:     cfg,
		groundY: ground,
		lane: lane{
			cfg:        cfg.Obstacles,
			groundY:    ground,
			difficulty: config.NewDifficultyManager(cfg.Difficulty),
		},
	}, nil
}

// GroundY returns the y coordinate of the ground line.
func (r *Rules) GroundY() float64 {
	return r.groundY
}

// Info implements sim.Rules.
func (r *Rules) Info() sim.Info {
	return sim.Info{
		ID:       ID,
		Title:    "Dino Run",
		Clock:    sim.ClockFrame,
		Input:    sim.InputActions,
		Interval: time.Duration(r.cfg.Physics.StepMs) * time.Millisecond,
	}
}

// Setup places the runner on the ground.
func (r *Rules) Setup(w *sim.World, rng *rand.Rand) error {
	w.Bounds = core.NewBox(0, 0, r.cfg.Canvas.Width, r.cfg.Canvas.Height)
	p := r.cfg.Player
	w.PushHead(sim.Entity{
		Box:      core.NewBox(p.X, r.groundY-p.Height, p.Width, p.Height),
		Grounded: true,
	})
	return nil
}

// Accepts allows jumping and ducking only while on the ground.
func (r *Rules) Accepts(w *sim.World, in core.Intent) bool {
	head, ok := w.Head()
	if !ok {
		return false
	}
	switch in {
	case core.IntentJump, core.IntentDuck:
		return head.Grounded
	default:
		return false
	}
}

// Advance applies the pending action, integrates jump physics and scrolls
// the obstacle lane. Cleared obstacles score a point each.
func (r *Rules) Advance(w *sim.World, cmd sim.Command, dt time.Duration, rng *rand.Rand) error {
	head, ok := w.Head()
	if !ok {
		return errors.New("dino: no runner")
	}
	ph := r.cfg.Physics

	switch {
	case cmd.Action == core.IntentJump && head.Grounded:
		r.stand(head)
		head.VY = ph.JumpImpulse
		head.Grounded = false
	case cmd.Action == core.IntentDuck && head.Grounded:
		head.Ducking = true
		head.Value = DuckSteps
	}

	if head.Ducking {
		head.Box.H = r.cfg.Player.Height / 2
		head.Box.Y = r.groundY - head.Box.H
		head.Value--
		if head.Value <= 0 {
			r.stand(head)
		}
	}

	if !head.Grounded {
		head.VY = min(head.VY+ph.Gravity, ph.MaxFallSpeed)
		head.Box.Y += head.VY
		if top := r.groundY - head.Box.H; head.Box.Y >= top {
			head.Box.Y = top
			head.VY = 0
			head.Grounded = true
		}
	}

	w.Score += r.lane.update(w, dt, rng)
	return nil
}

func (r *Rules) stand(e *sim.Entity) {
	e.Ducking = false
	e.Value = 0
	e.Box.H = r.cfg.Player.Height
	e.Box.Y = r.groundY - e.Box.H
}

// Consume implements sim.Rules. The runner has no pickups.
func (r *Rules) Consume(w *sim.World, target int, rng *rand.Rand) (int, error) {
	return 0, nil
}

// Settle implements sim.Rules.
func (r *Rules) Settle(w *sim.World, consumed bool) {}

// Won reports a win once the run lasted the configured duration.
func (r *Rules) Won(w *sim.World) (bool, string) {
	d := time.Duration(r.cfg.Gameplay.DurationSec) * time.Second
	if d > 0 && w.Elapsed >= d {
		return true, ReasonSurvived
	}
	return false, ""
}
