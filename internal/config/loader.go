package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration for gameID into a copy of def.
// Search order: customPath -> ~/.arcade/configs/<id>.yaml -> ./configs/<id>.yaml
// -> embedded default -> def.
//
// Files are decoded on top of def, so a partial file only overrides the keys
// it names. Only an unreadable or malformed customPath is an error; broken
// files elsewhere in the search path are skipped.
func Load[T any](gameID, customPath string, def T) (T, error) {
	filename := gameID + ".yaml"

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return def, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg := def
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return def, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, p := range candidates {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		cfg := def
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	if data := GetDefaultYAML(gameID); data != nil {
		cfg := def
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}
	return def, nil
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string) (SnakeConfig, error) {
	return Load("snake", customPath, DefaultSnakeConfig())
}

// LoadDino loads Dino Run configuration.
func LoadDino(customPath string) (DinoConfig, error) {
	return Load("dino", customPath, DefaultDinoConfig())
}

// LoadHub loads the world map.
func LoadHub(customPath string) (HubConfig, error) {
	return Load("hub", customPath, DefaultHubConfig())
}

// LoadPuzzle loads sliding puzzle configuration.
func LoadPuzzle(customPath string) (PuzzleConfig, error) {
	return Load("puzzle", customPath, DefaultPuzzleConfig())
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplySnakePreset adjusts speed scaling for a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Speed.InitialMs += 50
		cfg.Speed.Every *= 2
	case DifficultyHard:
		cfg.Speed.InitialMs = max(cfg.Speed.FloorMs, cfg.Speed.InitialMs-100)
		cfg.Speed.DecrementMs += 5
	case DifficultyFixed:
		cfg.Speed.Every = 0
	}
}

// ApplyDinoPreset modifies the config based on a difficulty preset.
func ApplyDinoPreset(cfg *DinoConfig, preset DifficultyPreset) {
	applyPreset(&cfg.Difficulty, preset)
}

func applyPreset(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
		return
	}
	d.Enabled = true
	d.InitialLevel = InitialLevelForPreset(preset)
}
