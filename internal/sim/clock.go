package sim

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxFrameSteps caps how many fixed steps a single frame may run.
const DefaultMaxFrameSteps = 25

// Stepper is what clocks drive. *Machine implements it.
type Stepper interface {
	Step() StepResult
	Interval() time.Duration
}

// Clock is a running step scheduler.
type Clock interface {
	Stop()
}

// IntervalClock steps once per timer fire, re-reading the interval before
// every wait so speed changes take effect on the next tick.
type IntervalClock struct {
	stepper Stepper

	// After returns a channel that fires after d. Defaults to time.After.
	After func(d time.Duration) <-chan time.Time
	// OnStep, if set, is called after every step from the clock goroutine.
	OnStep func(StepResult)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewIntervalClock creates a clock for s. It does nothing until Start.
func NewIntervalClock(s Stepper) *IntervalClock {
	return &IntervalClock{stepper: s, After: time.After}
}

// Start launches the loop. The loop exits on Stop, when ctx is done, or once
// a step reports the world is no longer running. Starting a started clock is
// a no-op.
func (c *IntervalClock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != nil {
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.loop(ctx, c.done)
}

func (c *IntervalClock) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	after := c.After
	if after == nil {
		after = time.After
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-after(c.stepper.Interval()):
		}
		if ctx.Err() != nil {
			return
		}

		res := c.stepper.Step()
		if c.OnStep != nil {
			c.OnStep(res)
		}
		if !res.Stepped || res.Status.Terminal() {
			return
		}
	}
}

// Stop cancels the loop and waits for it to exit. No step fires after Stop
// returns.
func (c *IntervalClock) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the loop has exited. It is nil before Start.
func (c *IntervalClock) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// FrameClock accumulates host frame time and runs fixed-size steps.
type FrameClock struct {
	stepper  Stepper
	StepSize time.Duration
	MaxSteps int

	mu      sync.Mutex
	acc     time.Duration
	stopped bool
}

// NewFrameClock creates a frame clock stepping s in increments of step.
func NewFrameClock(s Stepper, step time.Duration) *FrameClock {
	return &FrameClock{stepper: s, StepSize: step, MaxSteps: DefaultMaxFrameSteps}
}

// Advance adds elapsed frame time and runs as many whole steps as fit, up to
// MaxSteps. Time beyond the cap is dropped. It returns the results of the
// steps that ran.
func (c *FrameClock) Advance(elapsed time.Duration) []StepResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.StepSize <= 0 || elapsed <= 0 {
		return nil
	}

	limit := c.MaxSteps
	if limit <= 0 {
		limit = DefaultMaxFrameSteps
	}

	c.acc += elapsed
	var out []StepResult
	for c.acc >= c.StepSize {
		if len(out) == limit {
			c.acc = 0
			break
		}
		c.acc -= c.StepSize
		res := c.stepper.Step()
		out = append(out, res)
		if !res.Stepped || res.Status.Terminal() {
			c.acc = 0
			break
		}
	}
	return out
}

// Stop makes every later Advance a no-op.
func (c *FrameClock) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.acc = 0
	c.mu.Unlock()
}

// Driver picks and owns the clock matching a game's clock model, so a host
// can drive any game through one surface.
type Driver struct {
	interval *IntervalClock
	frame    *FrameClock
}

// NewDriver builds the clock for m's clock model.
func NewDriver(m *Machine, onStep func(StepResult)) *Driver {
	info := m.Info()
	if info.Clock == ClockFrame {
		return &Driver{frame: NewFrameClock(m, info.Interval)}
	}
	c := NewIntervalClock(m)
	c.OnStep = onStep
	return &Driver{interval: c}
}

// Start begins interval stepping. Frame clocks are driven by Frame instead.
func (d *Driver) Start(ctx context.Context) {
	if d.interval != nil {
		d.interval.Start(ctx)
	}
}

// Frame feeds host frame time to a frame clock. Interval clocks ignore it.
func (d *Driver) Frame(elapsed time.Duration) []StepResult {
	if d.frame == nil {
		return nil
	}
	return d.frame.Advance(elapsed)
}

// Stop halts the underlying clock.
func (d *Driver) Stop() {
	if d.interval != nil {
		d.interval.Stop()
	}
	if d.frame != nil {
		d.frame.Stop()
	}
}
