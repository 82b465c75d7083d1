// Package hub implements the world map: an avatar walking between
// buildings. Reaching a building ends the run with that building as the
// destination.
package hub

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
const ID = "world"

// Portal destinations on the default map.
const (
	PortalBank      = "bank"
	PortalArcade    = "arcade"
	PortalAssistant = "assistant"
)

// Rules implements sim.Rules for the world map.
type Rules struct {
	cfg config.HubConfig
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "World", World: true}, func(opts registry.Options) (sim.Rules, error) {
		cfg, err := config.LoadHub(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg)
	})
}

// New validates cfg and builds the rule set.
func New(cfg config.HubConfig) (*Rules, error) {
	b := core.NewBox(0, 0, cfg.Bounds.Width, cfg.Bounds.Height)
	if !b.Valid() {
		return nil, errors.New("hub: invalid bounds")
	}
	p := cfg.Player
	if p.Size <= 0 || p.Step <= 0 {
		return nil, errors.New("hub: player size and step must be positive")
	}
	if core.OutOfBounds(core.NewBox(p.X, p.Y, p.Size, p.Size), b) {
		return nil, errors.New("hub: player starts outside the map")
	}
	if cfg.TickMs <= 0 {
		cfg.TickMs = 50
	}

	seen := map[string]bool{}
	for _, pc := range cfg.Portals {
		if pc.ID == "" || seen[pc.ID] {
			return nil, fmt.Errorf("hub: duplicate or empty portal id %q", pc.ID)
		}
		seen[pc.ID] = true
		if !core.NewBox(pc.X, pc.Y, pc.W, pc.H).Valid() {
			return nil, fmt.Errorf("hub: portal %s has no area", pc.ID)
		}
	}
	return &Rules{cfg: cfg}, nil
}

// Portals returns the configured buildings.
func (r *Rules) Portals() []config.PortalConfig {
	return r.cfg.Portals
}

// Title returns the display name of a portal.
func (r *Rules) Title(id string) string {
	for _, p := range r.cfg.Portals {
		if p.ID == id {
			if p.Title != "" {
				return p.Title
			}
			break
		}
	}
	return id
}

// Info implements sim.Rules.
func (r *Rules) Info() sim.Info {
	return sim.Info{
		ID:       ID,
		Title:    "World",
		Clock:    sim.ClockInterval,
		Input:    sim.InputDiscrete,
		Interval: time.Duration(r.cfg.TickMs) * time.Millisecond,
	}
}

// Setup places the avatar and the buildings.
func (r *Rules) Setup(w *sim.World, rng *rand.Rand) error {
	w.Bounds = core.NewBox(0, 0, r.cfg.Bounds.Width, r.cfg.Bounds.Height)
	p := r.cfg.Player
	w.PushHead(sim.Entity{Box: core.NewBox(p.X, p.Y, p.Size, p.Size)})
	for _, pc := range r.cfg.Portals {
		w.Add(sim.Entity{Kind: sim.KindPortal, Box: core.NewBox(pc.X, pc.Y, pc.W, pc.H), Label: pc.ID})
	}
	return nil
}

// Accepts implements sim.Rules. The map only takes moves.
func (r *Rules) Accepts(w *sim.World, in core.Intent) bool {
	return false
}

// Advance moves the avatar one step. Moves that would leave the map are
// dropped.
func (r *Rules) Advance(w *sim.World, cmd sim.Command, dt time.Duration, rng *rand.Rand) error {
	head, ok := w.Head()
	if !ok {
		return errors.New("hub: no avatar")
	}
	if cmd.Dir == core.DirNone {
		return nil
	}
	dx, dy := cmd.Dir.Delta()
	step := r.cfg.Player.Step
	next := head.Box.Translate(float64(dx)*step, float64(dy)*step)
	if core.OutOfBounds(next, w.Bounds) {
		return nil
	}
	head.Box = next
	w.Moves++
	return nil
}

// Consume implements sim.Rules.
func (r *Rules) Consume(w *sim.World, target int, rng *rand.Rand) (int, error) {
	return 0, nil
}

// Settle implements sim.Rules.
func (r *Rules) Settle(w *sim.World, consumed bool) {}

// Won reports arrival once the avatar is within range of a building and
// records it as the destination.
func (r *Rules) Won(w *sim.World) (bool, string) {
	head, ok := w.Head()
	if !ok {
		return false, ""
	}
	for _, i := range w.Filter(sim.KindPortal) {
		portal := w.Entities[i]
		if core.Distance(head.Box, portal.Box) < r.cfg.InteractRange {
			w.Destination = portal.Label
			return true, "entered " + portal.Label
		}
	}
	return false, ""
}
