package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// Loss and win reasons recorded on the world.
const (
	ReasonOutOfBounds    = "out of bounds"
	ReasonSelfCollision  = "self collision"
	ReasonObstacle       = "obstacle collision"
	ReasonBoardSaturated = "board saturated"
	ReasonStopped        = "stopped"
)

// DefaultReportTimeout bounds a single Reporter call.
const DefaultReportTimeout = 5 * time.Second

// Reporter receives results once a run has reached a terminal state.
type Reporter interface {
	Report(ctx context.Context, r Result) error
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, r Result) error

func (f ReporterFunc) Report(ctx context.Context, r Result) error { return f(ctx, r) }

// Transition describes a status change.
type Transition struct {
	From, To Status
	Snapshot Snapshot
}

// StepResult summarizes one call to Step.
type StepResult struct {
	Stepped    bool // False when the world was not running
	Status     Status
	Score      int
	ScoreDelta int
	Tick       uint64
}

// Option configures a Machine.
type Option func(*Machine)

// WithSeed sets the RNG seed used by every Reset.
func WithSeed(seed int64) Option {
	return func(m *Machine) { m.seed = seed }
}

// WithReporter sets the collaborator that receives terminal results.
func WithReporter(r Reporter) Option {
	return func(m *Machine) { m.reporter = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithReportTimeout bounds each Reporter call.
func WithReportTimeout(d time.Duration) Option {
	return func(m *Machine) {
		if d > 0 {
			m.reportTimeout = d
		}
	}
}

type subscriber struct {
	id int
	fn func(Transition)
}

// Machine owns a World and advances it one step at a time using injected Rules.
//
// All mutation happens under a single lock, so Step, SubmitInput and Reset
// never interleave. Subscribers and the Reporter are invoked after the lock
// is released.
type Machine struct {
	mu    sync.Mutex
	rules Rules
	info  Info
	world World
	input *InputMapper
	rng   *rand.Rand
	seed  int64

	subs    []subscriber
	nextSub int
	pending []Transition

	// notifyMu keeps notifications in transition order across goroutines.
	notifyMu sync.Mutex

	reporter      Reporter
	reportTimeout time.Duration
	reports       sync.WaitGroup

	logger    *log.Logger
	startedAt time.Time
}

// NewMachine builds a Machine for rules and resets it to idle.
func NewMachine(rules Rules, opts ...Option) (*Machine, error) {
	if rules == nil {
		return nil, errors.New("sim: nil rules")
	}
	info := rules.Info()
	m := &Machine{
		rules:         rules,
		info:          info,
		input:         NewInputMapper(info.Input, core.DirNone),
		seed:          time.Now().UnixNano(),
		reportTimeout: DefaultReportTimeout,
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.mu.Lock()
	err := m.resetLocked()
	m.pending = nil
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Info returns the static rule parameters.
func (m *Machine) Info() Info {
	return m.info
}

// Seed returns the seed applied on Reset.
func (m *Machine) Seed() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seed
}

// Start moves an idle world to running. It is a no-op in any other status.
func (m *Machine) Start() {
	m.mu.Lock()
	if m.world.Status != StatusIdle {
		m.mu.Unlock()
		return
	}
	m.startedAt = time.Now()
	m.setStatus(StatusRunning, "")
	m.unlockAndNotify()
}

// Reset restores the initial world under the configured seed. A running
// world is stopped first.
func (m *Machine) Reset() error {
	m.mu.Lock()
	err := m.resetLocked()
	m.unlockAndNotify()
	return err
}

// Reseed changes the seed and resets.
func (m *Machine) Reseed(seed int64) error {
	m.mu.Lock()
	m.seed = seed
	err := m.resetLocked()
	m.unlockAndNotify()
	return err
}

// Stop ends a running world as lost with the given reason. The result is
// reported like any other terminal transition.
func (m *Machine) Stop(reason string) {
	m.mu.Lock()
	if m.world.Status != StatusRunning {
		m.mu.Unlock()
		return
	}
	if reason == "" {
		reason = ReasonStopped
	}
	m.setStatus(StatusLost, reason)
	m.unlockAndNotify()
}

func (m *Machine) resetLocked() error {
	from := m.world.Status
	m.rng = rand.New(rand.NewSource(m.seed))

	w := World{Status: StatusIdle, Interval: m.info.Interval}
	if err := m.rules.Setup(&w, m.rng); err != nil {
		return fmt.Errorf("sim: setup %s: %w", m.info.ID, err)
	}
	w.Status = StatusIdle
	if w.Interval <= 0 {
		w.Interval = m.info.Interval
	}
	m.world = w
	m.input.Reset(w.Dir)

	if from != StatusIdle {
		m.pending = append(m.pending, Transition{From: from, To: StatusIdle, Snapshot: m.snapshotLocked()})
	}
	return nil
}

// SubmitInput offers an intent for the next step. Intents are dropped while
// the world is not running, and whenever the rules reject them.
func (m *Machine) SubmitInput(in core.Intent) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.world.Status != StatusRunning {
		return false
	}
	return m.input.Submit(in, func(i core.Intent) bool {
		return m.rules.Accepts(&m.world, i)
	})
}

// Snapshot returns a deep copy of the current world.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	s := newSnapshot(m.info.ID, &m.world)
	if s.Dir == core.DirNone {
		s.Dir = m.input.Current()
	}
	return s
}

// Status returns the current status.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world.Status
}

// Interval returns the current tick interval.
func (m *Machine) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world.Interval
}

// Subscribe registers fn for status transitions and returns a function that
// removes it. Callbacks run in transition order on the goroutine that caused
// the change and must not call Start, Reset, Stop or Step.
func (m *Machine) Subscribe(fn func(Transition)) (cancel func()) {
	m.mu.Lock()
	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscriber{id: id, fn: fn})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.subs = slices.DeleteFunc(m.subs, func(s subscriber) bool { return s.id == id })
			m.mu.Unlock()
		})
	}
}

// Step advances a running world by one tick. When the world is not running
// it does nothing.
func (m *Machine) Step() StepResult {
	m.mu.Lock()
	if m.world.Status != StatusRunning {
		res := StepResult{Status: m.world.Status, Score: m.world.Score, Tick: m.world.Tick}
		m.mu.Unlock()
		return res
	}

	prevScore := m.world.Score
	m.stepLocked()
	res := StepResult{
		Stepped:    true,
		Status:     m.world.Status,
		Score:      m.world.Score,
		ScoreDelta: m.world.Score - prevScore,
		Tick:       m.world.Tick,
	}
	m.unlockAndNotify()
	return res
}

func (m *Machine) stepLocked() {
	cmd := m.input.Take()
	next := m.world.Clone()
	if cmd.Dir != core.DirNone {
		next.Dir = cmd.Dir
	}

	dt := next.Interval
	if m.info.Clock == ClockFrame {
		dt = m.info.Interval
	}

	if err := m.rules.Advance(&next, cmd, dt, m.rng); err != nil {
		m.abortLocked(&next, err)
		return
	}

	if reason, lost := m.collisionLocked(&next); lost {
		// The working copy is discarded; only the outcome is recorded.
		m.setStatus(StatusLost, reason)
		return
	}

	consumed, err := m.consumeLocked(&next)
	if err != nil {
		m.abortLocked(&next, err)
		return
	}

	m.rules.Settle(&next, consumed)
	next.Interval = m.info.Speed.Apply(next.Interval, m.world.Score, next.Score)
	next.Tick++
	next.Elapsed += dt

	m.input.Commit(cmd.Dir)
	m.world = next
	if won, reason := m.rules.Won(&m.world); won {
		m.setStatus(StatusWon, reason)
	}
}

// collisionLocked runs the terminal checks in order: bounds, body, obstacles.
func (m *Machine) collisionLocked(w *World) (string, bool) {
	head, ok := w.Head()
	if !ok {
		return "", false
	}
	if m.info.Bounded && core.OutOfBounds(head.Box, w.Bounds) {
		return ReasonOutOfBounds, true
	}
	body := w.Body()
	if m.info.SelfCollision {
		for _, seg := range body[1:] {
			if core.Overlaps(head.Box, seg.Box) {
				return ReasonSelfCollision, true
			}
		}
	}
	for _, i := range w.Filter(KindObstacle) {
		for _, seg := range body {
			if core.Overlaps(seg.Box, w.Entities[i].Box) {
				return ReasonObstacle, true
			}
		}
	}
	return "", false
}

func (m *Machine) consumeLocked(w *World) (bool, error) {
	head, ok := w.Head()
	if !ok {
		return false, nil
	}
	hb := head.Box

	var hits []int
	for _, i := range w.Filter(KindFood) {
		if core.Overlaps(hb, w.Entities[i].Box) {
			hits = append(hits, i)
		}
	}
	// Highest index first so removals do not shift pending targets.
	slices.Reverse(hits)

	for _, i := range hits {
		pts, err := m.rules.Consume(w, i, m.rng)
		if pts > 0 {
			w.Score += pts
		}
		if err != nil {
			return true, err
		}
	}
	return len(hits) > 0, nil
}

// abortLocked ends the step after a rule error. Saturation commits the
// working copy as a win; anything else is a loss on the previous state.
func (m *Machine) abortLocked(next *World, err error) {
	if errors.Is(err, ErrBoardSaturated) {
		next.Tick++
		m.world = *next
		m.setStatus(StatusWon, ReasonBoardSaturated)
		return
	}
	m.logger.Error("rules failed", "game", m.info.ID, "tick", m.world.Tick, "error", err)
	m.setStatus(StatusLost, err.Error())
}

// setStatus records a transition for delivery after the lock is released.
func (m *Machine) setStatus(to Status, reason string) {
	from := m.world.Status
	if from == to {
		return
	}
	m.world.Status = to
	if to.Terminal() {
		m.world.Reason = reason
	}
	m.pending = append(m.pending, Transition{From: from, To: to, Snapshot: m.snapshotLocked()})
}

// unlockAndNotify releases the step lock and delivers pending transitions.
// Must be called with mu held.
func (m *Machine) unlockAndNotify() {
	pending := m.pending
	m.pending = nil
	if len(pending) == 0 {
		m.mu.Unlock()
		return
	}
	subs := slices.Clone(m.subs)
	started := m.startedAt

	m.notifyMu.Lock()
	m.mu.Unlock()
	defer m.notifyMu.Unlock()

	for _, t := range pending {
		m.logger.Debug("transition",
			"game", m.info.ID,
			"from", t.From,
			"to", t.To,
			"score", t.Snapshot.Score,
			"reason", t.Snapshot.Reason,
		)
		for _, s := range subs {
			s.fn(t)
		}
		if t.To.Terminal() {
			m.dispatch(t.Snapshot.result(), started)
		}
	}
}

func (m *Machine) dispatch(r Result, started time.Time) {
	if m.reporter == nil {
		return
	}
	if !started.IsZero() {
		m.logger.Debug("run finished", "game", r.GameID, "wall", time.Since(started).Round(time.Millisecond))
	}

	m.reports.Add(1)
	go func() {
		defer m.reports.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.reportTimeout)
		defer cancel()
		if err := m.reporter.Report(ctx, r); err != nil {
			m.logger.Warn("report failed", "game", r.GameID, "score", r.Score, "error", err)
		}
	}()
}

// Flush waits for outstanding Reporter calls.
func (m *Machine) Flush() {
	m.reports.Wait()
}
