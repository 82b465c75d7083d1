package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-world/internal/registry"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
	Runs   int
}

// MenuModel is the game picker shown inside the game center.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper

	quitting       bool
	back           bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel lists every registered arcade game with its best score and
// number of recorded runs.
func NewMenuModel(env Env, width, height int) MenuModel {
	stats := env.allStats()
	games := registry.Games()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if st := stats[g.ID]; st != nil {
			item.Best, item.Runs = st.HighScore, st.GamesCount
		}
		items = append(items, item)
	}
	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}
	case MenuActionBack:
		m.back = true
	case MenuActionScoreboard:
		m.openScoreboard = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("G A M E   C E N T E R"), m.width, 21))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width, 0))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-16s", item.Title)
		if item.Runs > 0 {
			line += fmt.Sprintf(" best %-5d %d runs", item.Best, item.Runs)
		}
		width := len(line)
		if i == m.cursor {
			line = cursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width, width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  B: World  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width, len(controls)))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user asked to leave the game center.
func (m MenuModel) WantsBack() bool {
	return m.back
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text within width. visible is the printed width of
// text when it carries escape codes; zero means len(text).
func centerText(text string, width, visible int) string {
	if visible == 0 {
		visible = len(text)
	}
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}
