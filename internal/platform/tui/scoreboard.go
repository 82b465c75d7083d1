package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-world/internal/registry"
	"github.com/vovakirdan/arcade-world/internal/storage"
)

const (
	boardRows   = 100 // runs loaded per game
	listWidth   = 20  // game list, wide layout only
	wideLayout  = 80
	dateColumn  = 12
	fixedColumn = 6 + 8 + 8 + 7 + 6 // rank, score, time, moves, result
)

var (
	boardTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardPane   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type boardKeys struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Wins   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Wins, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("up/down", "scroll")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right", "next game")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("left", "prev game")),
		Wins:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wins only")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded runs per arcade game.
type ScoreboardModel struct {
	env   Env
	games []registry.GameInfo
	game  int

	runs     []storage.ScoreEntry
	stats    *storage.GameStats
	winsOnly bool

	table table.Model
	help  help.Model
	keys  boardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel opens the board on the first arcade game. Without a
// store every board is empty.
func NewScoreboardModel(env Env, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		env:    env,
		games:  registry.Games(),
		help:   help.New(),
		keys:   newBoardKeys(),
		width:  width,
		height: height,
	}
	m.layout()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool { return m.width >= wideLayout }

// layout rebuilds the table for the current size. The date column takes
// whatever width is left.
func (m *ScoreboardModel) layout() {
	avail := m.width - 4
	if m.wide() {
		avail -= listWidth + 3
	}
	date := dateColumn
	if rest := avail - fixedColumn; rest > date {
		date = min(rest, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Moves", Width: 7},
			{Title: "Result", Width: 6},
			{Title: "Date", Width: date},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(st)
	m.table = t
	m.help.Width = m.width
	m.fill()
}

// load reads the current game's runs and stats from the store.
func (m *ScoreboardModel) load() {
	m.runs, m.stats = nil, nil
	store := m.env.Store
	if store == nil || len(m.games) == 0 {
		m.fill()
		return
	}
	id := m.games[m.game].ID
	var err error
	if m.runs, err = store.TopScores(id, boardRows); err != nil {
		m.env.logger().Warn("could not read scores", "game", id, "error", err)
	}
	if m.stats, err = store.GetGameStats(id); err != nil {
		m.env.logger().Warn("could not read game stats", "game", id, "error", err)
	}
	m.fill()
}

func (m *ScoreboardModel) fill() {
	rows := make([]table.Row, 0, len(m.runs))
	for _, r := range m.runs {
		if m.winsOnly && r.Outcome != "won" {
			continue
		}
		rows = append(rows, table.Row{
			"#" + strconv.Itoa(len(rows)+1),
			strconv.Itoa(r.Score),
			clock(r.Elapsed),
			strconv.Itoa(r.Moves),
			r.Outcome,
			r.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) cycle(step int) {
	if n := len(m.games); n > 0 {
		m.game = (m.game + step + n) % n
		m.load()
	}
}

// Update handles keys and resizes.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		case key.Matches(msg, m.keys.Wins):
			m.winsOnly = !m.winsOnly
			m.fill()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title += " - " + m.games[m.game].Title
	}
	if m.winsOnly {
		title += " (wins)"
	}

	var b strings.Builder
	b.WriteString(boardTitle.Render(centerText(title, m.width, 0)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width, 0))
	b.WriteString("\n\n")

	runs := boardPane.Render(m.runsView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.gameList(), "  ", runs))
	} else {
		b.WriteString(centerText(m.gameTabs(), m.width, 0))
		b.WriteString("\n\n")
		b.WriteString(runs)
	}

	b.WriteString("\n")
	b.WriteString(boardMuted.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) gameList() string {
	var b strings.Builder
	b.WriteString("Games\n")
	b.WriteString(strings.Repeat("-", listWidth-4))
	for i, g := range m.games {
		b.WriteString("\n")
		if i == m.game {
			b.WriteString(boardTitle.Render("> " + clip(g.Title, listWidth-6)))
		} else {
			b.WriteString("  " + clip(g.Title, listWidth-6))
		}
	}
	return boardPane.Width(listWidth).Render(b.String())
}

func (m ScoreboardModel) gameTabs() string {
	if len(m.games) == 0 {
		return ""
	}
	tabs := make([]string, len(m.games))
	plain := 0
	for i, g := range m.games {
		name := clip(g.Title, 10)
		plain += len(name) + 3
		if i == m.game {
			tabs[i] = boardActive.Render(name)
		} else {
			tabs[i] = boardMuted.Render(" " + name + " ")
		}
	}
	if plain > m.width-4 {
		return fmt.Sprintf("< %s >", m.games[m.game].Title)
	}
	return strings.Join(tabs, " ")
}

// statsLine summarizes every recorded run of the current game.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return ""
	}
	line := fmt.Sprintf("Runs: %d  Wins: %d  Avg: %.1f", st.GamesCount, st.Wins, st.AvgScore)
	if st.BestTime > 0 {
		line += "  Fastest win: " + clock(st.BestTime)
	}
	return line
}

func (m ScoreboardModel) runsView() string {
	if len(m.table.Rows()) == 0 {
		msg := "No scores recorded yet.\nPlay a game to set a high score!"
		if m.winsOnly && len(m.runs) > 0 {
			msg = "No wins yet."
		}
		return boardMuted.Italic(true).Padding(2, 4).Render(msg)
	}
	return m.table.View()
}

// clip shortens s to at most n runes, marking the cut with a dot.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack reports whether the player left the board.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit the session.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
