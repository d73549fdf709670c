package candy

import (
	"fmt"

	"github.com/vovakirdan/candy-bonus/internal/core"
	"github.com/vovakirdan/candy-bonus/internal/games/candy/engine"
)

const (
	cellWidth  = 4 // columns per candy, including the selection brackets
	cellHeight = 2 // rows per candy
	hudHeight  = 3
)

// candyStyle is how one symbol looks on screen.
type candyStyle struct {
	glyph rune
	color core.Color
}

var candyStyles = []candyStyle{
	{'●', core.ColorRed},
	{'◆', core.ColorCyan},
	{'▲', core.ColorGreen},
	{'■', core.ColorYellow},
	{'★', core.ColorPurple},
	{'♥', core.ColorPink},
	{'✚', core.ColorOrange},
	{'◉', core.ColorWhite},
}

func styleFor(s engine.Symbol) candyStyle {
	if s == engine.Empty {
		return candyStyle{' ', core.ColorDefault}
	}
	return candyStyles[(int(s)-1)%len(candyStyles)]
}

// FormatBonus formats a bonus amount the way the HUD shows it.
func FormatBonus(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	n := g.board.Size()
	boardW := n*cellWidth + 2
	boardH := n*cellHeight + 1
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY, boardW, boardH)
	g.renderPopups(dst, boardX, boardY)
	g.renderFooter(dst, boardY+boardH+1)

	area := core.NewRect(0, 0, g.screenW, g.screenH)
	switch {
	case g.phase == PhaseIntro:
		g.renderIntro(dst, area)
	case g.phase == PhaseGameOver:
		g.renderGameOver(dst, area)
	case g.paused:
		g.renderPaused(dst, area)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, bonus total and timer.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	dst.DrawTextCenteredWithColor(0, "🍬 CANDY BONUS 🍬", core.ColorPink)

	bonus := "Bonus: " + FormatBonus(g.bonus)
	dst.DrawTextWithColor(boardX, 1, bonus, core.ColorBrightGreen)

	var timer string
	timerColor := core.ColorWhite
	if g.mode == ModeTimed {
		left := g.SecondsLeft()
		timer = fmt.Sprintf("Time: %ds", left)
		if float64(left) <= g.cfg.Session.LowTimeWarning {
			timerColor = core.ColorBrightRed
		}
	} else {
		timer = "Endless"
	}
	dst.DrawTextWithColor(boardX+boardW-len(timer), 1, timer, timerColor)

	stats := fmt.Sprintf("Score: %d  Combos: %d", g.score, g.specials)
	dst.DrawTextWithColor(boardX, 2, stats, core.ColorGray)
}

// renderBoard draws the grid, the cursor and the armed candy. While the
// board resolves, the last animation frame is drawn instead of the live grid.
func (g *Game) renderBoard(dst *core.Screen, x, y, w, h int) {
	border := core.ColorPurple
	if g.flashTicks > 0 {
		border = core.ColorRed
	}
	dst.DrawBoxWithColor(core.NewRect(x, y, w, h), border)

	grid := g.board.Grid()
	cleared := map[engine.Position]bool{}
	if g.frame != nil {
		grid = g.frame.Grid
		for _, run := range g.frame.Runs {
			for _, p := range run.Cells() {
				cleared[p] = true
			}
		}
	}

	cursor := g.ctl.Cursor()
	armed, hasArm := g.ctl.Armed()
	showCursor := g.phase == PhasePlaying && !g.board.Busy()

	n := grid.Size()
	for row := range n {
		for col := range n {
			p := engine.Pos(row, col)
			cx := x + 1 + col*cellWidth
			cy := y + 1 + row*cellHeight

			st := styleFor(grid.At(p))
			if cleared[p] {
				st = candyStyle{'✦', core.ColorBrightYellow}
			}
			dst.SetWithColor(cx+1, cy, st.glyph, st.color)

			switch {
			case showCursor && hasArm && p == armed:
				dst.SetWithColor(cx, cy, '(', core.ColorBrightYellow)
				dst.SetWithColor(cx+2, cy, ')', core.ColorBrightYellow)
			case showCursor && p == cursor:
				dst.SetWithColor(cx, cy, '[', core.ColorWhite)
				dst.SetWithColor(cx+2, cy, ']', core.ColorWhite)
			case g.hintTicks > 0 && (p == g.hint[0] || p == g.hint[1]):
				dst.SetWithColor(cx, cy, '›', core.ColorBrightGreen)
				dst.SetWithColor(cx+2, cy, '‹', core.ColorBrightGreen)
			}
		}
	}
}

// renderPopups draws "+N" labels that drift upward as they age.
func (g *Game) renderPopups(dst *core.Screen, boardX, boardY int) {
	for _, p := range g.popups {
		rise := 0
		if p.TTL > 0 {
			rise = p.Age * cellHeight / p.TTL
		}
		text := fmt.Sprintf("+%.0f", p.Amount)
		color := core.ColorBrightGreen
		if p.Special {
			text += "!"
			color = core.ColorBrightYellow
		}
		px := boardX + 1 + p.Col*cellWidth
		py := boardY + 1 + p.Row*cellHeight - rise
		dst.DrawTextWithColor(px, py, text, color)
	}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if y >= g.screenH {
		return
	}
	help := "←↑↓→ move  Space select  Shift+← swipe  H hint  P pause  Q quit"
	if g.mode == ModeEndless {
		help = "←↑↓→ move  Space select  H hint  Enter cash out  Q quit"
	}
	dst.DrawTextCenteredWithColor(y, help, core.ColorGray)
}

func (g *Game) renderIntro(dst *core.Screen, area core.Rect) {
	lines := []string{
		"How to play",
		"",
		"Swap neighbouring candies to line up",
		"3 or more of the same kind.",
		"Every match adds to your bonus.",
		"4+ in a row is a special combo!",
	}
	if g.mode == ModeTimed {
		lines = append(lines, fmt.Sprintf("You have %.0f seconds.", g.cfg.Session.TimeLimit))
	}
	lines = append(lines, "", "Press Enter to start")
	g.renderDialog(dst, area, lines, core.ColorPurple)
}

func (g *Game) renderGameOver(dst *core.Screen, area core.Rect) {
	title := "Time's up!"
	if g.mode == ModeEndless {
		title = "Cashed out!"
	}
	lines := []string{
		title,
		"",
		"Your bonus:",
		FormatBonus(g.finalBonus),
		"",
		fmt.Sprintf("Score %d · %d matches", g.score, g.matches),
		"",
		"C  claim your bonus",
		"R  play again",
		"Q  quit",
	}
	g.renderDialog(dst, area, lines, core.ColorPink)
}

func (g *Game) renderPaused(dst *core.Screen, area core.Rect) {
	g.renderDialog(dst, area, []string{"PAUSED", "", "Press P to resume"}, core.ColorYellow)
}

// renderDialog draws a centered box with the given lines.
func (g *Game) renderDialog(dst *core.Screen, area core.Rect, lines []string, color core.Color) {
	w := 0
	for _, l := range lines {
		w = core.Max(w, len([]rune(l)))
	}
	box := area.Centered(w+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxWithColor(box, color)
	for i, l := range lines {
		c := core.ColorWhite
		if i == 0 {
			c = color
		}
		x := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextWithColor(x, box.Y+1+i, l, c)
	}
}
