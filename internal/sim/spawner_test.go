package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/arcade-world/internal/core"
)

func TestPlaceAvoidsOccupied(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sp := Spawner{Bounds: core.NewBox(0, 0, 4, 4), W: 1, H: 1, Cell: 1}

	var occupied []core.Box
	for range 15 {
		b, err := sp.Place(rng, occupied)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if core.OutOfBounds(b, sp.Bounds) {
			t.Fatalf("placed outside bounds: %+v", b)
		}
		for _, o := range occupied {
			if core.Overlaps(b, o) {
				t.Fatalf("placed %+v over %+v", b, o)
			}
		}
		occupied = append(occupied, b)
	}
}

func TestPlaceFindsLastFreeCell(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sp := Spawner{Bounds: core.NewBox(0, 0, 3, 3), W: 1, H: 1, Cell: 1, MaxAttempts: 1}

	var occupied []core.Box
	for y := range 3 {
		for x := range 3 {
			if x == 2 && y == 1 {
				continue
			}
			occupied = append(occupied, core.CellBox(x, y, 1))
		}
	}

	b, err := sp.Place(rng, occupied)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if b.X != 2 || b.Y != 1 {
		t.Errorf("placed at (%v,%v), want (2,1)", b.X, b.Y)
	}
}

func TestPlaceSaturated(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sp := Spawner{Bounds: core.NewBox(0, 0, 2, 2), W: 1, H: 1, Cell: 1}
	occupied := []core.Box{core.NewBox(0, 0, 2, 2)}

	if _, err := sp.Place(rng, occupied); !errors.Is(err, ErrBoardSaturated) {
		t.Fatalf("err = %v, want ErrBoardSaturated", err)
	}
}

func TestPlaceFree(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sp := Spawner{Bounds: core.NewBox(0, 0, 800, 400), W: 20, H: 30}
	for range 20 {
		b, err := sp.Place(rng, nil)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if core.OutOfBounds(b, sp.Bounds) {
			t.Fatalf("out of bounds: %+v", b)
		}
	}
}

func TestPlaceTooLarge(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	sp := Spawner{Bounds: core.NewBox(0, 0, 2, 2), W: 3, H: 1, Cell: 1}
	if _, err := sp.Place(rng, nil); !errors.Is(err, ErrBoardSaturated) {
		t.Fatalf("err = %v", err)
	}
}

func TestPlaceDeterministic(t *testing.T) {
	sp := Spawner{Bounds: core.NewBox(0, 0, 20, 20), W: 1, H: 1, Cell: 1}
	a, _ := sp.Place(rand.New(rand.NewSource(99)), nil)
	b, _ := sp.Place(rand.New(rand.NewSource(99)), nil)
	if a != b {
		t.Errorf("same seed placed %+v and %+v", a, b)
	}
}
