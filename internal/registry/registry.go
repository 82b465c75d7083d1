// Package registry provides a global registry for rule set factories.
// Games register themselves in init() functions, allowing the hosts to
// discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-world/internal/sim"
)

// ErrUnknownGame is returned by Create for an unregistered ID.
var ErrUnknownGame = errors.New("registry: unknown game")

// Options carries per-run settings into a factory.
type Options struct {
	ConfigPath string // Custom YAML path, empty for the default search order
	Difficulty string // Difficulty preset name, empty for normal
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	World bool // The hub map rather than an arcade game
}

// Factory builds a rule set from its loaded configuration.
type Factory func(opts Options) (sim.Rules, error)

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	if info.Title == "" {
		info.Title = info.ID
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Games returns the arcade games, excluding world maps, sorted by ID.
func Games() []GameInfo {
	var out []GameInfo
	for _, g := range List() {
		if !g.World {
			out = append(out, g)
		}
	}
	return out
}

// Lookup returns the metadata for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create builds the rule set registered under id.
func Create(id string, opts Options) (sim.Rules, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}

	rules, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %s: %w", id, err)
	}
	return rules, nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
