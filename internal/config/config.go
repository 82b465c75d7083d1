// Package config provides YAML-based game configuration loading and
// difficulty management for the hub and its games.
package config

import "time"

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Board      SnakeBoard       `yaml:"board"`
	Start      SnakeStart       `yaml:"start"`
	Speed      SpeedConfig      `yaml:"speed"`
	Gameplay   SnakeGameplay    `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeBoard defines the grid.
type SnakeBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Layout optionally draws walls with '#', one string per row.
	Layout []string `yaml:"layout"`
}

// SnakeStart defines the initial body.
type SnakeStart struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Length    int    `yaml:"length"`
	Direction string `yaml:"direction"`
}

// SnakeGameplay defines scoring rules.
type SnakeGameplay struct {
	TargetScore int `yaml:"target_score"` // 0 = endless
	FoodPoints  int `yaml:"food_points"`
}

// SpeedConfig defines the tick interval and how it tightens with score.
type SpeedConfig struct {
	InitialMs   int `yaml:"initial_ms"`
	Every       int `yaml:"every"`
	DecrementMs int `yaml:"decrement_ms"`
	FloorMs     int `yaml:"floor_ms"`
}

// Initial returns the starting interval.
func (s SpeedConfig) Initial() time.Duration {
	return time.Duration(s.InitialMs) * time.Millisecond
}

// DinoConfig contains all configuration for Dino Run.
type DinoConfig struct {
	Canvas     DinoCanvas       `yaml:"canvas"`
	Physics    DinoPhysics      `yaml:"physics"`
	Obstacles  DinoObstacles    `yaml:"obstacles"`
	Player     DinoPlayer       `yaml:"player"`
	Gameplay   DinoGameplay     `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DinoCanvas defines the world size in pixels.
type DinoCanvas struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundOffset float64 `yaml:"ground_offset"` // Distance of the ground line from the bottom
}

// DinoPhysics defines jump physics per step.
type DinoPhysics struct {
	StepMs       int     `yaml:"step_ms"`
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// DinoObstacles defines obstacle size, speed and spawning.
type DinoObstacles struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"` // Pixels per step
	SpawnEveryMs int     `yaml:"spawn_every_ms"`
	SpawnX       float64 `yaml:"spawn_x"`

	// Flying obstacles leave HighClearance pixels above the ground: a ducking
	// runner passes beneath them, a standing one does not.
	HighChance    float64 `yaml:"high_chance"` // 0..1 share of spawns that fly
	HighClearance float64 `yaml:"high_clearance"`
}

// DinoPlayer defines the runner box.
type DinoPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DinoGameplay defines the win condition.
type DinoGameplay struct {
	DurationSec int `yaml:"duration_sec"` // Surviving this long wins, 0 = endless
}

// HubConfig contains the world map layout.
type HubConfig struct {
	Bounds        HubBounds      `yaml:"bounds"`
	Player        HubPlayer      `yaml:"player"`
	Portals       []PortalConfig `yaml:"portals"`
	InteractRange float64        `yaml:"interact_range"`
	TickMs        int            `yaml:"tick_ms"`
}

// HubBounds defines the map size in pixels.
type HubBounds struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// HubPlayer defines the avatar.
type HubPlayer struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
	Step float64 `yaml:"step"`
}

// PortalConfig places one building on the map.
type PortalConfig struct {
	ID    string  `yaml:"id"`
	Title string  `yaml:"title"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
}

// PuzzleConfig contains sliding puzzle settings.
type PuzzleConfig struct {
	Size         int `yaml:"size"`
	ShuffleMoves int `yaml:"shuffle_moves"`
	TickMs       int `yaml:"tick_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction cut from spawn intervals at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
