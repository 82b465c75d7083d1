package sim

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingStepper struct {
	mu        sync.Mutex
	steps     int
	stopAfter int // Report a terminal status after this many steps, 0 for never
	intervals []time.Duration
	idle      bool
}

func (s *countingStepper) Step() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idle {
		return StepResult{Status: StatusIdle}
	}
	s.steps++
	status := StatusRunning
	if s.stopAfter > 0 && s.steps >= s.stopAfter {
		status = StatusWon
	}
	return StepResult{Stepped: true, Status: status, Tick: uint64(s.steps)}
}

func (s *countingStepper) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(100-s.steps) * time.Millisecond
}

func (s *countingStepper) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

func newManualClock(s Stepper) (*IntervalClock, chan time.Time, chan StepResult, *[]time.Duration) {
	ticks := make(chan time.Time)
	stepped := make(chan StepResult, 16)
	var waits []time.Duration
	c := NewIntervalClock(s)
	c.After = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		return ticks
	}
	c.OnStep = func(r StepResult) { stepped <- r }
	return c, ticks, stepped, &waits
}

func TestIntervalClockStepsPerFire(t *testing.T) {
	s := &countingStepper{}
	c, ticks, stepped, waits := newManualClock(s)
	c.Start(context.Background())

	for range 3 {
		ticks <- time.Now()
		<-stepped
	}
	c.Stop()

	if got := s.count(); got != 3 {
		t.Fatalf("steps = %d, want 3", got)
	}
	// Every wait re-reads the interval.
	want := []time.Duration{100 * time.Millisecond, 99 * time.Millisecond, 98 * time.Millisecond}
	for i, d := range want {
		if (*waits)[i] != d {
			t.Errorf("wait %d = %v, want %v", i, (*waits)[i], d)
		}
	}
}

func TestIntervalClockNoStepAfterStop(t *testing.T) {
	s := &countingStepper{}
	c, ticks, stepped, _ := newManualClock(s)
	c.Start(context.Background())

	ticks <- time.Now()
	<-stepped
	c.Stop()

	select {
	case ticks <- time.Now():
		t.Fatal("clock still receiving after Stop")
	case <-time.After(50 * time.Millisecond):
	}
	if got := s.count(); got != 1 {
		t.Errorf("steps = %d, want 1", got)
	}
	c.Stop()
}

func TestIntervalClockExitsOnTerminal(t *testing.T) {
	s := &countingStepper{stopAfter: 2}
	c, ticks, stepped, _ := newManualClock(s)
	c.Start(context.Background())

	for range 2 {
		ticks <- time.Now()
		<-stepped
	}
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("clock did not exit after terminal step")
	}
}

func TestIntervalClockExitsWhenNotRunning(t *testing.T) {
	s := &countingStepper{idle: true}
	c, ticks, stepped, _ := newManualClock(s)
	c.Start(context.Background())

	ticks <- time.Now()
	if r := <-stepped; r.Stepped {
		t.Fatal("idle stepper reported a step")
	}
	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("clock kept running for an idle world")
	}
}

func TestIntervalClockContextCancel(t *testing.T) {
	s := &countingStepper{}
	c, _, _, _ := newManualClock(s)
	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatal("clock ignored context cancellation")
	}
}

func TestIntervalClockDrivesMachine(t *testing.T) {
	m := newTestMachine(t, newLineRules())
	c, ticks, stepped, _ := newManualClock(m)
	m.Start()
	c.Start(context.Background())

	ticks <- time.Now()
	<-stepped
	c.Stop()

	if tick := m.Snapshot().Tick; tick != 1 {
		t.Errorf("tick = %d, want 1", tick)
	}
}

func TestFrameClockAccumulates(t *testing.T) {
	s := &countingStepper{}
	c := NewFrameClock(s, 16*time.Millisecond)

	if got := len(c.Advance(50 * time.Millisecond)); got != 3 {
		t.Fatalf("steps = %d, want 3", got)
	}
	// 2ms carried over.
	if got := len(c.Advance(14 * time.Millisecond)); got != 1 {
		t.Fatalf("steps = %d, want 1", got)
	}
	if got := len(c.Advance(5 * time.Millisecond)); got != 0 {
		t.Fatalf("steps = %d, want 0", got)
	}
}

func TestFrameClockCapsSteps(t *testing.T) {
	s := &countingStepper{}
	c := NewFrameClock(s, 16*time.Millisecond)

	if got := len(c.Advance(time.Second)); got != DefaultMaxFrameSteps {
		t.Fatalf("steps = %d, want %d", got, DefaultMaxFrameSteps)
	}
	// The excess was dropped.
	if got := len(c.Advance(time.Millisecond)); got != 0 {
		t.Errorf("steps after cap = %d, want 0", got)
	}
}

func TestFrameClockStopsOnTerminal(t *testing.T) {
	s := &countingStepper{stopAfter: 2}
	c := NewFrameClock(s, 10*time.Millisecond)

	res := c.Advance(100 * time.Millisecond)
	if len(res) != 2 || res[1].Status != StatusWon {
		t.Fatalf("results = %+v", res)
	}
}

func TestFrameClockStopIsPermanent(t *testing.T) {
	s := &countingStepper{}
	c := NewFrameClock(s, 10*time.Millisecond)
	c.Stop()

	if res := c.Advance(time.Second); res != nil {
		t.Errorf("Advance after Stop ran %d steps", len(res))
	}
	if s.count() != 0 {
		t.Error("stepper was called after Stop")
	}
}

func TestDriverPicksClock(t *testing.T) {
	rules := newLineRules()
	rules.info.Clock = ClockFrame
	rules.info.Interval = 10 * time.Millisecond
	m := newTestMachine(t, rules)
	m.Start()

	d := NewDriver(m, nil)
	d.Start(context.Background())
	if got := len(d.Frame(10 * time.Millisecond)); got != 1 {
		t.Fatalf("frame steps = %d, want 1", got)
	}
	d.Stop()
	if res := d.Frame(time.Second); res != nil {
		t.Error("frame ran after Stop")
	}
}
