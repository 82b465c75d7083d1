package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/games/hub"
	"github.com/vovakirdan/arcade-world/internal/sim"
)

type sessionState int

const (
	stateWorld sessionState = iota
	stateMenu
	stateGame
	stateScores
	stateNotice
)

// SessionModel manages the full flow: world map -> building -> game
// center -> game -> game center -> world map.
// This is the top-level model for both local and SSH sessions.
type SessionModel struct {
	env      Env
	config   core.RuntimeConfig
	username string
	state    sessionState

	world  *GameModel
	menu   MenuModel
	game   *GameModel
	scores ScoreboardModel
	notice string

	direct   bool // Started straight into a game; leaving it ends the session
	quitting bool
}

// NewSessionModel starts a session on the world map.
func NewSessionModel(env Env, cfg core.RuntimeConfig, username string) (*SessionModel, error) {
	world, err := NewGameModel(env, hub.ID, cfg)
	if err != nil {
		return nil, err
	}
	return &SessionModel{
		env:      env,
		config:   cfg,
		username: username,
		state:    stateWorld,
		world:    world,
	}, nil
}

// NewGameSession starts a session directly in one game.
func NewGameSession(env Env, cfg core.RuntimeConfig, gameID string) (*SessionModel, error) {
	game, err := NewGameModel(env, gameID, cfg)
	if err != nil {
		return nil, err
	}
	return &SessionModel{
		env:    env,
		config: cfg,
		state:  stateGame,
		game:   game,
		direct: true,
	}, nil
}

// Init starts the active world and the frame ticker.
func (m *SessionModel) Init() tea.Cmd {
	if m.world != nil {
		m.world.Init()
	}
	if m.game != nil {
		m.game.Init()
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages for the session.
func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		for _, g := range []*GameModel{m.world, m.game} {
			if g != nil {
				g.Update(msg)
			}
		}
		m.menu, _ = m.menu.Update(msg)
		if m.state == stateScores {
			m.scores, _ = m.scores.Update(msg)
		}
		return m, nil

	case TickMsg:
		if g := m.active(); g != nil {
			g.Update(msg)
		}
		m.checkWorld()
		return m, tickCmd(m.config.TickRate)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *SessionModel) active() *GameModel {
	switch m.state {
	case stateWorld:
		return m.world
	case stateGame:
		return m.game
	}
	return nil
}

func (m *SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateWorld:
		cmd := m.world.Update(msg)
		if m.world.IsQuitting() {
			return m.quit()
		}
		// The map has nowhere to go back to.
		m.world.backToMenu = false
		m.checkWorld()
		return m, cmd

	case stateMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		switch {
		case m.menu.IsQuitting():
			return m.quit()
		case m.menu.WantsBack():
			m.returnToWorld()
		case m.menu.WantsScoreboard():
			m.scores = NewScoreboardModel(m.env, m.config.ScreenW, m.config.ScreenH)
			m.state = stateScores
		case m.menu.Selected() != nil:
			m.startGame(m.menu.Selected().GameID)
		}
		return m, cmd

	case stateGame:
		cmd := m.game.Update(msg)
		if m.game.IsQuitting() {
			return m.quit()
		}
		if m.game.BackToMenu() {
			m.game.Close()
			m.game = nil
			if m.direct {
				return m.quit()
			}
			m.openMenu()
		}
		return m, cmd

	case stateScores:
		var cmd tea.Cmd
		m.scores, cmd = m.scores.Update(msg)
		if m.scores.IsQuitting() {
			return m.quit()
		}
		if m.scores.IsGoingBack() {
			m.openMenu()
		}
		return m, cmd

	case stateNotice:
		if _, isQuit := m.world.keyMapper.MapKey(msg); isQuit {
			return m.quit()
		}
		m.returnToWorld()
	}
	return m, nil
}

// checkWorld follows the portal the avatar just reached.
func (m *SessionModel) checkWorld() {
	if m.state != stateWorld || m.world == nil {
		return
	}
	snap := m.world.Snapshot()
	if snap.Status != sim.StatusWon || snap.Destination == "" {
		return
	}
	m.world.stopClock()
	m.env.logger().Info("entered building", "user", m.username, "building", snap.Destination)

	if snap.Destination == hub.PortalArcade {
		m.openMenu()
		return
	}
	title := snap.Destination
	if t, ok := m.world.rules.(interface{ Title(string) string }); ok {
		title = t.Title(snap.Destination)
	}
	m.notice = fmt.Sprintf("%s is closed right now.", title)
	m.state = stateNotice
}

func (m *SessionModel) openMenu() {
	m.menu = NewMenuModel(m.env, m.config.ScreenW, m.config.ScreenH)
	m.state = stateMenu
}

func (m *SessionModel) startGame(gameID string) {
	game, err := NewGameModel(m.env, gameID, m.config)
	if err != nil {
		m.env.logger().Error("could not start game", "game", gameID, "error", err)
		m.openMenu()
		return
	}
	game.Init()
	m.game = game
	m.state = stateGame
}

func (m *SessionModel) returnToWorld() {
	m.world.Restart()
	m.state = stateWorld
}

func (m *SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

// Close stops every hosted world. It is safe to call more than once.
func (m *SessionModel) Close() {
	if m.game != nil {
		m.game.Close()
	}
	if m.world != nil {
		m.world.Close()
	}
}

// View renders the current view.
func (m *SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.state {
	case stateWorld:
		return m.world.View()
	case stateMenu:
		return m.menu.View()
	case stateGame:
		return m.game.View()
	case stateScores:
		return m.scores.View()
	case stateNotice:
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(1, 4).
			Render(m.notice + "\n\nPress any key to head back outside.")
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
	}
	return ""
}

// Run runs a session on the local terminal until the user quits.
func Run(m *SessionModel) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
