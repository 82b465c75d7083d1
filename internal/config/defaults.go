package config

import (
	"embed"
	"path"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultSnakeConfig returns the hardcoded Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{Width: 20, Height: 20},
		Start: SnakeStart{X: 10, Y: 10, Length: 3, Direction: "right"},
		Speed: SpeedConfig{
			InitialMs:   250,
			Every:       5,
			DecrementMs: 10,
			FloorMs:     50,
		},
		Gameplay: SnakeGameplay{FoodPoints: 1},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultDinoConfig returns the hardcoded Dino Run configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Canvas: DinoCanvas{Width: 800, Height: 400, GroundOffset: 64},
		Physics: DinoPhysics{
			StepMs:       16,
			Gravity:      1.0,
			JumpImpulse:  -14.0,
			MaxFallSpeed: 14.0,
		},
		Obstacles: DinoObstacles{
			Width:         20,
			Height:        30,
			Speed:         5,
			SpawnEveryMs:  2000,
			SpawnX:        800,
			HighChance:    0.25,
			HighClearance: 30,
		},
		Player:   DinoPlayer{X: 100, Width: 50, Height: 50},
		Gameplay: DinoGameplay{DurationSec: 30},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.4,
			},
		},
	}
}

// DefaultHubConfig returns the hardcoded world map.
func DefaultHubConfig() HubConfig {
	return HubConfig{
		Bounds: HubBounds{Width: 400, Height: 300},
		Player: HubPlayer{X: 150, Y: 150, Size: 16, Step: 7},
		Portals: []PortalConfig{
			{ID: "bank", Title: "Bank", X: 103, Y: 170, W: 60, H: 60},
			{ID: "arcade", Title: "Game Center", X: 307, Y: 160, W: 35, H: 50},
			{ID: "assistant", Title: "Robot", X: 140, Y: 90, W: 32, H: 32},
		},
		InteractRange: 30,
		TickMs:        50,
	}
}

// DefaultPuzzleConfig returns the hardcoded sliding puzzle configuration.
func DefaultPuzzleConfig() PuzzleConfig {
	return PuzzleConfig{Size: 3, ShuffleMoves: 100, TickMs: 50}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile(path.Join("defaults", gameID+".yaml"))
	if err != nil {
		return nil
	}
	return data
}
