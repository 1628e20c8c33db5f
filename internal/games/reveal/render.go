package reveal

import (
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/vovakirdan/block-reveal/internal/core"
)

// Visual characters for rendering
const (
	BlockChar  = '█'
	PaddleChar = '='
	BallChar   = '●'
)

// Minimum terminal size for the playfield.
const (
	MinScreenW = 30
	MinScreenH = 12
)

// hudRows is the number of screen rows above the playfield.
const hudRows = 1

// viewport maps arena units onto screen cells below the HUD.
type viewport struct {
	sx, sy float64
}

func newViewport(dst *core.Screen, snap *Snapshot) viewport {
	return viewport{
		sx: float64(dst.Width()) / snap.Width,
		sy: float64(dst.Height()-hudRows) / snap.Height,
	}
}

// rect returns the cells covered by a box. Every visible box covers at
// least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(b.X * v.sx))
	y0 := int(math.Floor(b.Y*v.sy)) + hudRows
	x1 := int(math.Floor(b.Right() * v.sx))
	y1 := int(math.Floor(b.Bottom()*v.sy)) + hudRows
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

func (v viewport) point(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx)), int(math.Floor(y*v.sy)) + hudRows
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		renderError(dst, g.err)
		return
	}
	if g.session == nil {
		return
	}
	if dst.Width() < MinScreenW || dst.Height() < MinScreenH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	snap := &g.last
	v := newViewport(dst, snap)

	for _, b := range snap.Blocks {
		color := core.ColorBlue
		if (b.Row+b.Col)%2 == 1 {
			color = core.ColorCyan
		}
		dst.DrawRect(v.rect(b.Box), BlockChar, color)
	}

	for _, m := range snap.Markers {
		x, y := v.point(m.X, m.Y)
		w := uniseg.StringWidth(m.Glyph)
		dst.DrawCluster(x-w/2, y, m.Glyph, core.ColorYellow)
	}

	dst.DrawRect(v.rect(snap.Paddle), PaddleChar, core.ColorGreen)

	cx, cy := snap.Ball.Center()
	bx, by := v.point(cx, cy)
	by = core.Clamp(by, hudRows, dst.Height()-1)
	dst.SetColored(bx, by, BallChar, core.ColorRed)

	renderHUD(dst, snap)

	switch snap.Phase {
	case PhaseNotStarted:
		dst.DrawTextCentered(dst.Height()/2, "Press SPACE to start")
	case PhaseGameOver:
		renderGameOver(dst, snap)
	}
}

func renderHUD(dst *core.Screen, snap *Snapshot) {
	label := fmt.Sprintf("Revealed %d/%d ", snap.Destroyed(), snap.Total)
	dst.DrawTextColored(0, 0, label, core.ColorWhite)
	dst.DrawTextColored(len(label), 0, snap.Revealed(), core.ColorYellow)
}

func renderGameOver(dst *core.Screen, snap *Snapshot) {
	boxW := 28
	boxH := 6
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2), ' ', core.ColorDefault)
	dst.DrawBox(r)
	dst.DrawTextCentered(r.Y+1, "GAME OVER")
	dst.DrawTextCentered(r.Y+2, fmt.Sprintf("Revealed %d of %d", snap.Destroyed(), snap.Total))
	dst.DrawHLine(r.X+1, r.Y+3, r.W-2, '─')
	dst.DrawTextCentered(r.Y+4, "R: Restart  Q: Quit")
}

func renderError(dst *core.Screen, err error) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Configuration error")
	dst.DrawTextCentered(y+1, err.Error())
}
