package tui

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/vovakirdan/arcade-world/internal/core"
	"github.com/vovakirdan/arcade-world/internal/sim"
)

// viewport maps world coordinates onto screen cells. Terminal cells are
// roughly twice as tall as they are wide, so x is scaled twice as much.
type viewport struct {
	ox, oy int
	sx, sy float64
	w, h   int
}

// fitViewport places bounds inside the w x h area at (x, y), centered and
// aspect corrected.
func fitViewport(bounds core.Box, x, y, w, h int) viewport {
	if !bounds.Valid() || w <= 0 || h <= 0 {
		return viewport{ox: x, oy: y}
	}
	s := math.Min(float64(w)/(2*bounds.W), float64(h)/bounds.H)
	vw := int(math.Floor(bounds.W * 2 * s))
	vh := int(math.Floor(bounds.H * s))
	return viewport{
		ox: x + (w-vw)/2,
		oy: y + (h-vh)/2,
		sx: 2 * s,
		sy: s,
		w:  vw,
		h:  vh,
	}
}

// rect returns the cell rectangle covering b. Every visible box covers at
// least one cell.
func (v viewport) rect(bounds, b core.Box) (x, y, w, h int) {
	x0 := int(math.Floor((b.X - bounds.X) * v.sx))
	y0 := int(math.Floor((b.Y - bounds.Y) * v.sy))
	x1 := int(math.Floor((b.Right() - bounds.X) * v.sx))
	y1 := int(math.Floor((b.Bottom() - bounds.Y) * v.sy))
	return v.ox + x0, v.oy + y0, max(1, x1-x0), max(1, y1-y0)
}

// HUD is the text drawn around a snapshot.
type HUD struct {
	Title string
	Best  int
	Hint  string
}

// DrawSnapshot paints a world snapshot with a status line on top and a
// hint line at the bottom.
func DrawSnapshot(s *core.Screen, snap sim.Snapshot, hud HUD) {
	s.Clear()
	if s.Width() < 4 || s.Height() < 4 {
		return
	}

	s.DrawTextColored(1, 0, statusLine(snap, hud), core.ColorWhite)

	v := fitViewport(snap.Bounds, 1, 2, s.Width()-2, s.Height()-4)
	s.DrawFrame(v.ox-1, v.oy-1, v.w+2, v.h+2, core.ColorGray)

	for i, e := range snap.Entities {
		drawEntity(s, v, snap.Bounds, e, i == 0)
	}

	hint := hud.Hint
	switch snap.Status {
	case sim.StatusIdle:
		hint = "Press any key to start  |  " + hint
	case sim.StatusWon, sim.StatusLost:
		hint = fmt.Sprintf("%s: %s  |  R: Restart  B: Back", outcome(snap.Status), snap.Reason)
	}
	s.DrawTextCentered(s.Height()-1, hint)
}

func statusLine(snap sim.Snapshot, hud HUD) string {
	line := fmt.Sprintf("%s  Score: %d", hud.Title, snap.Score)
	if hud.Best > 0 {
		line += fmt.Sprintf("  Best: %d", hud.Best)
	}
	if snap.Moves > 0 {
		line += fmt.Sprintf("  Moves: %d", snap.Moves)
	}
	return line + "  " + clock(snap.Elapsed)
}

func outcome(st sim.Status) string {
	if st == sim.StatusWon {
		return "YOU WIN"
	}
	return "GAME OVER"
}

func clock(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func drawEntity(s *core.Screen, v viewport, bounds core.Box, e sim.Entity, head bool) {
	x, y, w, h := v.rect(bounds, e.Box)

	switch e.Kind {
	case sim.KindPlayer:
		r, c := 'o', core.ColorGreen
		if head {
			r, c = '@', core.ColorBrightGreen
		}
		if e.Ducking {
			c = core.ColorYellow
		}
		s.FillRect(x, y, w, h, r, c)
	case sim.KindFood:
		s.FillRect(x, y, w, h, '*', core.ColorRed)
	case sim.KindObstacle:
		if e.Grounded {
			s.FillRect(x, y, w, h, '#', core.ColorBrown)
		} else {
			s.FillRect(x, y, w, h, '=', core.ColorMagenta)
		}
	case sim.KindPortal:
		s.DrawFrame(x, y, w, h, core.ColorCyan)
		drawLabel(s, x, y, w, h, e.Label, core.ColorCyan)
	case sim.KindTile:
		if e.Empty {
			return
		}
		s.DrawFrame(x, y, w, h, core.ColorBlue)
		drawLabel(s, x, y, w, h, strconv.Itoa(e.Value), core.ColorBrightYellow)
	}
}

// drawLabel centers text inside a rectangle, clipping it to the width.
func drawLabel(s *core.Screen, x, y, w, h int, text string, c core.Color) {
	runes := []rune(text)
	if len(runes) > w-2 {
		runes = runes[:max(0, w-2)]
	}
	s.DrawTextColored(x+(w-len(runes))/2, y+h/2, string(runes), c)
}
