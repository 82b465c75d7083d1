package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/arcade-world/internal/sim"
)

func TestRegisterAndCreate(t *testing.T) {
	calls := 0
	Register(GameInfo{ID: "test_a", Title: "Test A"}, func(opts Options) (sim.Rules, error) {
		calls++
		if opts.Difficulty != "hard" {
			t.Errorf("difficulty = %q", opts.Difficulty)
		}
		return nil, nil
	})
	Register(GameInfo{ID: "test_map", World: true}, func(Options) (sim.Rules, error) {
		return nil, errors.New("broken")
	})

	if !Exists("test_a") {
		t.Fatal("test_a not registered")
	}
	if _, err := Create("test_a", Options{Difficulty: "hard"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if calls != 1 {
		t.Errorf("factory calls = %d", calls)
	}

	info, ok := Lookup("test_map")
	if !ok || info.Title != "test_map" || !info.World {
		t.Errorf("Lookup = %+v, %v", info, ok)
	}
	for _, g := range Games() {
		if g.ID == "test_map" {
			t.Error("world map listed as a game")
		}
	}
	if _, err := Create("test_map", Options{}); err == nil {
		t.Error("factory error not propagated")
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("nope", Options{})
	if !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("err = %v, want ErrUnknownGame", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "test_dup"}, func(Options) (sim.Rules, error) { return nil, nil })
	defer func() {
		if recover() == nil {
			t.Error("duplicate registration did not panic")
		}
	}()
	Register(GameInfo{ID: "test_dup"}, func(Options) (sim.Rules, error) { return nil, nil })
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("List not sorted: %v", list)
		}
	}
}
