package dino

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/arcade-world/internal/config"
	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/sim"
)

// lane handles spawning, movement and removal of obstacles. Ground
// obstacles are jumped over; flying ones are ducked under.
type lane struct {
	cfg        config.DinoObstacles
	groundY    float64
	difficulty *config.DifficultyManager
}

// spawn returns a fresh obstacle at the spawn line.
func (l lane) spawn(rng *rand.Rand) sim.Entity {
	c := l.cfg
	if c.HighChance > 0 && rng.Float64() < c.HighChance {
		return sim.Entity{
			Kind: sim.KindObstacle,
			Box:  core.NewBox(c.SpawnX, l.groundY-c.HighClearance-c.Height, c.Width, c.Height),
		}
	}
	return sim.Entity{
		Kind:     sim.KindObstacle,
		Box:      core.NewBox(c.SpawnX, l.groundY-c.Height, c.Width, c.Height),
		Grounded: true,
	}
}

// speed returns the per-step obstacle speed for the current difficulty.
func (l lane) speed(w *sim.World) float64 {
	return l.difficulty.Speed(l.cfg.Speed, w.Score, w.Tick)
}

// spawnEvery returns the current spawn interval.
func (l lane) spawnEvery(w *sim.World) time.Duration {
	base := time.Duration(l.cfg.SpawnEveryMs) * time.Millisecond
	return l.difficulty.Interval(base, w.Score, w.Tick)
}

// update moves obstacles left, removes the ones that left the canvas and
// spawns a new one when due. It returns how many obstacles were cleared.
func (l lane) update(w *sim.World, dt time.Duration, rng *rand.Rand) int {
	dx := -l.speed(w)
	cleared := 0
	for i := len(w.Entities) - 1; i >= 0; i-- {
		e := &w.Entities[i]
		if e.Kind != sim.KindObstacle {
			continue
		}
		e.Box = e.Box.Translate(dx, 0)
		if e.Box.Right() <= w.Bounds.X {
			w.Remove(i)
			cleared++
		}
	}

	if w.SpawnTimer(dt, l.spawnEvery(w)) {
		w.Add(l.spawn(rng))
	}
	return cleared
}
