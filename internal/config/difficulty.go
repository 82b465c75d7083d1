package config

import "time"

// DifficultyManager turns score or elapsed steps into a level between the
// configured initial level and 1.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager clamps the initial level into [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	cfg.InitialLevel = min(max(cfg.InitialLevel, 0), 1)
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled reports whether the level grows during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

func (d *DifficultyManager) progress(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return 0
	}
	span := float64(max(d.cfg.Progression.MaxAt, 1))
	var at float64
	switch d.cfg.Progression.Type {
	case "score":
		at = float64(score)
	case "time":
		at = float64(ticks)
	}
	return min(at/span, 1)
}

// Level returns the current difficulty in [InitialLevel, 1].
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	base := d.cfg.InitialLevel
	return base + d.progress(score, ticks)*(1-base)
}

// Speed grows base by up to SpeedMultiplier at full level.
func (d *DifficultyManager) Speed(base float64, score int, ticks uint64) float64 {
	return base * (1 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// Interval shortens base by up to IntervalReduction at full level, never
// below half of base.
func (d *DifficultyManager) Interval(base time.Duration, score int, ticks uint64) time.Duration {
	cut := min(max(d.Level(score, ticks)*d.cfg.Scaling.IntervalReduction, 0), 0.5)
	return time.Duration(float64(base) * (1 - cut))
}
