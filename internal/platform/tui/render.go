package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/arcade-world/internal/core"
)

// ansi holds the 256-color code of every core.Color; ColorDefault is left
// unstyled.
var ansi = map[core.Color]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrown:        "130",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
}

var cellStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansi)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range ansi {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

func styleOf(c core.Color) lipgloss.Style {
	if st, ok := cellStyles[c]; ok {
		return st
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen turns the cell buffer into terminal text. Each run of
// same-colored cells in a row is styled once.
func RenderScreen(s *core.Screen) string {
	var out, run strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		cur := core.ColorDefault
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if x > 0 && cell.Color != cur {
				out.WriteString(styleOf(cur).Render(run.String()))
				run.Reset()
			}
			cur = cell.Color
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			out.WriteString(styleOf(cur).Render(run.String()))
			run.Reset()
		}
	}
	return out.String()
}
