package core

import "testing"

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir, expected Direction
	}{
		{DirUp, DirDown},
		{DirDown, DirUp},
		{DirLeft, DirRight},
		{DirRight, DirLeft},
		{DirNone, DirNone},
	}

	for _, tc := range tests {
		if got := tc.dir.Opposite(); got != tc.expected {
			t.Errorf("%s.Opposite() = %s, expected %s", tc.dir, got, tc.expected)
		}
		if tc.dir != DirNone && tc.dir.Opposite().Opposite() != tc.dir {
			t.Errorf("%s.Opposite() is not an involution", tc.dir)
		}
	}
}

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
		{DirNone, 0, 0},
	}

	for _, tc := range tests {
		dx, dy := tc.dir.Delta()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%s.Delta() = (%d, %d), expected (%d, %d)", tc.dir, dx, dy, tc.dx, tc.dy)
		}
	}
}

func TestIntentDirection(t *testing.T) {
	tests := []struct {
		in       Intent
		expected Direction
	}{
		{IntentUp, DirUp},
		{IntentDown, DirDown},
		{IntentLeft, DirLeft},
		{IntentRight, DirRight},
		{IntentJump, DirNone},
		{IntentDuck, DirNone},
		{IntentSelect, DirNone},
		{IntentNone, DirNone},
	}

	for _, tc := range tests {
		t.Run(tc.in.String(), func(t *testing.T) {
			if got := tc.in.Direction(); got != tc.expected {
				t.Errorf("Direction() = %s, expected %s", got, tc.expected)
			}
			if tc.in.IsDirectional() != (tc.expected != DirNone) {
				t.Errorf("IsDirectional() mismatch for %s", tc.in)
			}
		})
	}
}
