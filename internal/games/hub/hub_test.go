package hub

import (
	"context"
	"sync"
	"testing"

	"github.com/vovakirdan/arcade-world/internal/config"
	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/sim"
)

func newMachine(t *testing.T, opts ...sim.Option) *sim.Machine {
	t.Helper()
	r, err := New(config.DefaultHubConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m, err := sim.NewMachine(r, opts...)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func walk(m *sim.Machine, in core.Intent, n int) sim.StepResult {
	var res sim.StepResult
	for range n {
		m.SubmitInput(in)
		res = m.Step()
		if res.Status.Terminal() {
			break
		}
	}
	return res
}

func TestSetup(t *testing.T) {
	m := newMachine(t)
	s := m.Snapshot()

	head, ok := s.Head()
	if !ok || head.Box != core.NewBox(150, 150, 16, 16) {
		t.Fatalf("avatar = %+v", head)
	}
	portals := s.Of(sim.KindPortal)
	if len(portals) != 3 {
		t.Fatalf("portals = %+v", portals)
	}
	if portals[0].Label != PortalBank || portals[0].Box != core.NewBox(103, 170, 60, 60) {
		t.Errorf("bank = %+v", portals[0])
	}
}

func TestMovesAreOneShot(t *testing.T) {
	m := newMachine(t)
	m.Start()

	m.SubmitInput(core.IntentRight)
	m.Step()
	m.Step()

	head, _ := m.Snapshot().Head()
	if head.Box.X != 157 {
		t.Errorf("x = %v, want 157", head.Box.X)
	}
	if moves := m.Snapshot().Moves; moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
}

func TestLeavingMapIsRejected(t *testing.T) {
	m := newMachine(t)
	m.Start()

	res := walk(m, core.IntentLeft, 30)
	if res.Status != sim.StatusRunning {
		t.Fatalf("status = %v, want running", res.Status)
	}
	s := m.Snapshot()
	head, _ := s.Head()
	if head.Box.X != 3 || s.Moves != 21 {
		t.Errorf("x = %v moves = %d", head.Box.X, s.Moves)
	}
}

func TestEnterPortal(t *testing.T) {
	tests := []struct {
		name  string
		in    core.Intent
		steps int
		want  string
	}{
		{"arcade", core.IntentRight, 22, PortalArcade},
		{"assistant", core.IntentUp, 4, PortalAssistant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(t)
			m.Start()

			for i := range tt.steps {
				res := walk(m, tt.in, 1)
				if i < tt.steps-1 && res.Status != sim.StatusRunning {
					t.Fatalf("arrived early at step %d", i+1)
				}
			}
			s := m.Snapshot()
			if s.Status != sim.StatusWon || s.Destination != tt.want {
				t.Errorf("status = %v destination = %q", s.Status, s.Destination)
			}
		})
	}
}

func TestDestinationReported(t *testing.T) {
	var mu sync.Mutex
	var got []sim.Result
	rep := sim.ReporterFunc(func(ctx context.Context, r sim.Result) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, r)
		return nil
	})

	m := newMachine(t, sim.WithReporter(rep))
	m.Start()
	walk(m, core.IntentUp, 10)
	m.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].Destination != PortalAssistant || got[0].GameID != ID {
		t.Errorf("results = %+v", got)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.HubConfig)
	}{
		{"no bounds", func(c *config.HubConfig) { c.Bounds.Width = 0 }},
		{"no step", func(c *config.HubConfig) { c.Player.Step = 0 }},
		{"outside", func(c *config.HubConfig) { c.Player.X = 399 }},
		{"duplicate portal", func(c *config.HubConfig) {
			c.Portals = append(c.Portals, c.Portals[0])
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultHubConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestTitle(t *testing.T) {
	r, err := New(config.DefaultHubConfig())
	if err != nil {
		t.Fatal(err)
	}
	if got := r.Title(PortalArcade); got != "Game Center" {
		t.Errorf("Title = %q", got)
	}
	if got := r.Title("nowhere"); got != "nowhere" {
		t.Errorf("Title = %q", got)
	}
}
