package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/arcade-world/internal/core"
)

func TestDirectionLockUsesCurrentDirection(t *testing.T) {
	m := NewInputMapper(InputContinuous, core.DirRight)

	if m.Submit(core.IntentLeft, nil) {
		t.Fatal("reversal accepted")
	}
	if !m.Submit(core.IntentUp, nil) {
		t.Fatal("up rejected")
	}
	// The lock compares against the applied direction, not the pending one.
	if !m.Submit(core.IntentDown, nil) {
		t.Fatal("down rejected while current is still right")
	}

	cmd := m.Take()
	if cmd.Dir != core.DirDown {
		t.Fatalf("cmd.Dir = %v, want down", cmd.Dir)
	}
	m.Commit(cmd.Dir)

	if m.Submit(core.IntentUp, nil) {
		t.Error("reversal of committed direction accepted")
	}
}

func TestContinuousDirectionPersists(t *testing.T) {
	m := NewInputMapper(InputContinuous, core.DirRight)
	for range 3 {
		if cmd := m.Take(); cmd.Dir != core.DirRight {
			t.Fatalf("cmd.Dir = %v", cmd.Dir)
		}
	}
}

func TestDiscreteMovesAreOneShot(t *testing.T) {
	m := NewInputMapper(InputDiscrete, core.DirNone)

	if !m.Submit(core.IntentLeft, nil) {
		t.Fatal("left rejected")
	}
	if cmd := m.Take(); cmd.Dir != core.DirLeft {
		t.Fatalf("cmd.Dir = %v, want left", cmd.Dir)
	}
	if cmd := m.Take(); cmd.Dir != core.DirNone {
		t.Errorf("move applied twice: %v", cmd.Dir)
	}
}

func TestDiscreteMovesQueueInOrder(t *testing.T) {
	m := NewInputMapper(InputDiscrete, core.DirNone)

	// Two presses before one step: neither is lost, reversals included.
	if !m.Submit(core.IntentDown, nil) || !m.Submit(core.IntentUp, nil) {
		t.Fatal("move rejected")
	}
	for _, want := range []core.Direction{core.DirDown, core.DirUp, core.DirNone} {
		if cmd := m.Take(); cmd.Dir != want {
			t.Fatalf("cmd.Dir = %v, want %v", cmd.Dir, want)
		}
	}

	for i := range MaxQueuedMoves {
		if !m.Submit(core.IntentRight, nil) {
			t.Fatalf("move %d rejected", i)
		}
	}
	if m.Submit(core.IntentRight, nil) {
		t.Error("move accepted beyond the queue bound")
	}
	m.Reset(core.DirNone)
	if cmd := m.Take(); cmd.Dir != core.DirNone {
		t.Errorf("reset kept queued move %v", cmd.Dir)
	}
}

func TestActionModeRejectsDirections(t *testing.T) {
	m := NewInputMapper(InputActions, core.DirNone)

	if m.Submit(core.IntentUp, nil) {
		t.Error("direction accepted in action mode")
	}
	if !m.Submit(core.IntentJump, nil) {
		t.Fatal("jump rejected")
	}
	if cmd := m.Take(); cmd.Dir != core.DirNone || cmd.Action != core.IntentJump {
		t.Errorf("cmd = %+v", cmd)
	}
}

func TestActionValidation(t *testing.T) {
	m := NewInputMapper(InputContinuous, core.DirRight)
	grounded := false
	valid := func(in core.Intent) bool { return in != core.IntentJump || grounded }

	if m.Submit(core.IntentJump, valid) {
		t.Error("jump accepted while airborne")
	}
	grounded = true
	if !m.Submit(core.IntentJump, valid) {
		t.Error("jump rejected while grounded")
	}
	if cmd := m.Take(); cmd.Action != core.IntentJump {
		t.Errorf("cmd.Action = %v", cmd.Action)
	}
	if cmd := m.Take(); cmd.Action != core.IntentNone {
		t.Errorf("action applied twice: %v", cmd.Action)
	}
}

func TestSpeedScaling(t *testing.T) {
	s := SpeedScaling{Every: 5, Decrement: 10 * time.Millisecond, Floor: 50 * time.Millisecond}

	tests := []struct {
		name       string
		interval   time.Duration
		prev, next int
		want       time.Duration
	}{
		{"below threshold", 250 * time.Millisecond, 3, 4, 250 * time.Millisecond},
		{"crosses threshold", 250 * time.Millisecond, 4, 5, 240 * time.Millisecond},
		{"crosses two", 250 * time.Millisecond, 4, 10, 230 * time.Millisecond},
		{"floor", 55 * time.Millisecond, 9, 10, 50 * time.Millisecond},
		{"at floor", 50 * time.Millisecond, 14, 15, 50 * time.Millisecond},
		{"no change", 250 * time.Millisecond, 5, 5, 250 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Apply(tt.interval, tt.prev, tt.next); got != tt.want {
				t.Errorf("Apply = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (SpeedScaling{}).Apply(time.Second, 0, 100); got != time.Second {
		t.Errorf("disabled scaling changed interval to %v", got)
	}
}

func TestSpeedScalingNeverBelowFloor(t *testing.T) {
	s := SpeedScaling{Every: 1, Decrement: 30 * time.Millisecond, Floor: 50 * time.Millisecond}
	interval := 250 * time.Millisecond
	for score := range 100 {
		interval = s.Apply(interval, score, score+1)
		if interval < s.Floor {
			t.Fatalf("interval %v below floor at score %d", interval, score+1)
		}
	}
}
