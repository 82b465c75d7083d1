package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/report"
	"github.com/vovakirdan/arcade-world/internal/sim"
	"github.com/vovakirdan/arcade-world/internal/storage"
)

// ReasonGaveUp ends a run the player abandoned with the give up key. Such
// runs are reported like any loss.
const ReasonGaveUp = "gave up"

// Env holds what every hosted game shares within one session.
type Env struct {
	Store   *storage.Store // May be nil; scores are then only logged
	Logger  *log.Logger
	Options registry.Options
	Ctx     context.Context // Ends every clock when done; nil means background
}

func (e Env) context() context.Context {
	if e.Ctx == nil {
		return context.Background()
	}
	return e.Ctx
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) reporter() sim.Reporter {
	reps := []sim.Reporter{report.LogReporter{Logger: e.logger()}}
	if e.Store != nil {
		reps = append(reps, e.Store)
	}
	return report.Fanout(reps...)
}

func (e Env) best(gameID string) int {
	if e.Store == nil {
		return 0
	}
	high, err := e.Store.HighScore(gameID)
	if err != nil {
		e.logger().Warn("could not read high score", "game", gameID, "error", err)
	}
	return high
}

// allStats returns per-game stats keyed by game id; nil without a store.
func (e Env) allStats() map[string]*storage.GameStats {
	if e.Store == nil {
		return nil
	}
	stats, err := e.Store.GetAllGamesStats()
	if err != nil {
		e.logger().Warn("could not read game stats", "error", err)
	}
	return stats
}

// GameModel hosts one Machine and the clock that drives it. Keys become
// intents; host frames feed frame clocks and trigger redraws.
type GameModel struct {
	env     Env
	info    registry.GameInfo
	rules   sim.Rules
	machine *sim.Machine
	driver  *sim.Driver
	cancel  context.CancelFunc

	screen    *core.Screen
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	best      int
	lastTick  time.Time

	autoStart  bool
	quitting   bool
	backToMenu bool
}

// NewGameModel builds the rule set for gameID and a Machine around it.
// A zero seed in cfg picks one from the clock.
func NewGameModel(env Env, gameID string, cfg core.RuntimeConfig) (*GameModel, error) {
	info, ok := registry.Lookup(gameID)
	if !ok {
		return nil, fmt.Errorf("tui: %w: %q", registry.ErrUnknownGame, gameID)
	}
	rules, err := registry.Create(gameID, env.Options)
	if err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m, err := sim.NewMachine(rules,
		sim.WithSeed(cfg.Seed),
		sim.WithReporter(env.reporter()),
		sim.WithLogger(env.logger().With("game", gameID)),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot start %s: %w", gameID, err)
	}
	return &GameModel{
		env:       env,
		info:      info,
		rules:     rules,
		machine:   m,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		best:      env.best(gameID),
		autoStart: info.World,
	}, nil
}

// Init starts the world right away for the map; arcade games wait for the
// first key.
func (m *GameModel) Init() tea.Cmd {
	if m.autoStart {
		m.start()
	}
	return nil
}

func (m *GameModel) start() {
	m.machine.Start()
	if m.driver != nil {
		return
	}
	ctx, cancel := context.WithCancel(m.env.context())
	m.cancel = cancel
	m.driver = sim.NewDriver(m.machine, nil)
	m.driver.Start(ctx)
}

func (m *GameModel) stopClock() {
	if m.driver != nil {
		m.driver.Stop()
		m.driver = nil
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

// Close stops the clock and waits for pending results to be reported.
// A run still in progress is discarded, not reported.
func (m *GameModel) Close() {
	m.stopClock()
	if m.machine.Status() == sim.StatusRunning {
		if err := m.machine.Reset(); err != nil {
			m.env.logger().Warn("reset on close failed", "game", m.info.ID, "error", err)
		}
	}
	m.machine.Flush()
}

// Restart reseeds the world and, for the map, starts it again.
func (m *GameModel) Restart() {
	m.stopClock()
	m.machine.Flush()
	if err := m.machine.Reseed(time.Now().UnixNano()); err != nil {
		m.env.logger().Error("restart failed", "game", m.info.ID, "error", err)
		return
	}
	m.best = m.env.best(m.info.ID)
	m.lastTick = time.Time{}
	if m.autoStart {
		m.start()
	}
}

// Update handles one message and returns a command, if any.
func (m *GameModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	case TickMsg:
		now := time.Time(msg)
		if m.driver != nil {
			m.driver.Frame(frameElapsed(m.lastTick, now))
		}
		m.lastTick = now
	}
	return nil
}

func (m *GameModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	in, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.Close()
		return tea.Quit
	}

	status := m.machine.Status()
	switch m.keyMapper.MapKeyToControl(msg) {
	case ControlBack:
		m.backToMenu = true
		return nil
	case ControlRestart:
		if status.Terminal() {
			m.Restart()
		}
		return nil
	case ControlScreenshot:
		m.saveScreenshot()
		return nil
	case ControlGiveUp:
		if status == sim.StatusRunning && !m.autoStart {
			m.machine.Stop(ReasonGaveUp)
		}
		return nil
	}

	if in == core.IntentNone {
		return nil
	}
	if status == sim.StatusIdle {
		m.start()
	}
	if !m.machine.SubmitInput(in) {
		if alt := Fallback(in); alt != core.IntentNone {
			m.machine.SubmitInput(alt)
		}
	}
	return nil
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.env.logger().Warn("screenshot failed", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.info.ID, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.env.logger().Warn("screenshot failed", "error", err)
	}
}

func (m *GameModel) draw() {
	hint := "Arrows/WASD: Move  |  G: Give up  |  B: Back  |  Q: Quit"
	switch {
	case m.autoStart:
		hint = "Arrows/WASD: Walk to a building  |  Q: Quit"
	case m.machine.Info().Input == sim.InputActions:
		hint = "Space/Up: Jump  |  Down/X: Duck  |  G: Give up  |  B: Back"
	}
	DrawSnapshot(m.screen, m.machine.Snapshot(), HUD{
		Title: strings.ToUpper(m.info.Title),
		Best:  m.best,
		Hint:  hint,
	})
}

// View renders the current snapshot.
func (m *GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Snapshot returns the hosted world state.
func (m *GameModel) Snapshot() sim.Snapshot {
	return m.machine.Snapshot()
}

// GameID returns the hosted game.
func (m *GameModel) GameID() string {
	return m.info.ID
}

// IsQuitting returns true if user requested to quit entirely.
func (m *GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m *GameModel) BackToMenu() bool {
	return m.backToMenu
}
