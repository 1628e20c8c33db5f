package core

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Cell is a single screen position.
// Glyph holds one grapheme cluster. An empty Glyph marks the right half of a
// double-width cluster that starts in the cell to the left.
type Cell struct {
	Glyph string
	Color Color
}

var blankCell = Cell{Glyph: " "}

// continuation reports whether the cell is covered by a wide cluster.
func (c Cell) continuation() bool {
	return c.Glyph == ""
}

// Screen is a 2D cell buffer for rendering game graphics.
// It decouples game rendering from the terminal, allowing games to draw
// with simple cell operations while the platform handles actual display.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := Min(oldW, width)
	copyH := Min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
		// A wide cluster cut in half by the new right edge becomes a blank.
		if copyW < oldW && copyW > 0 && oldCells[y][copyW].continuation() {
			s.cells[y][copyW-1] = blankCell
		}
	}
}

// Clear fills the entire screen with blank cells.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Set places a rune at the given position with the default color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune at the given position.
func (s *Screen) SetColored(x, y int, r rune, color Color) {
	s.DrawCluster(x, y, string(r), color)
}

// DrawCluster places one grapheme cluster at (x, y) and returns the number of
// cells it occupies. Double-width clusters take the cell to their right as
// well; clusters that would not fit are not drawn.
func (s *Screen) DrawCluster(x, y int, cluster string, color Color) int {
	width := uniseg.StringWidth(cluster)
	if width < 1 {
		width = 1
	}
	if x < 0 || x+width > s.width || y < 0 || y >= s.height {
		return width
	}

	for i := 0; i < width; i++ {
		s.release(x+i, y)
	}
	s.cells[y][x] = Cell{Glyph: cluster, Color: color}
	for i := 1; i < width; i++ {
		s.cells[y][x+i] = Cell{Color: color}
	}
	return width
}

// release blanks any wide cluster partially covering (x, y) before the cell
// is overwritten.
func (s *Screen) release(x, y int) {
	row := s.cells[y]
	if row[x].continuation() {
		for lead := x - 1; lead >= 0; lead-- {
			wasContinuation := row[lead].continuation()
			row[lead] = blankCell
			if !wasContinuation {
				break
			}
		}
	}
	for next := x + 1; next < s.width && row[next].continuation(); next++ {
		row[next] = blankCell
	}
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
// Clusters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes a colored string horizontally starting at (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, color Color) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		x += s.DrawCluster(x, y, g.Str(), color)
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - uniseg.StringWidth(text)) / 2
	s.DrawText(x, y, text)
}

// DrawRect fills a rectangular area with the given rune and color.
func (s *Screen) DrawRect(r Rect, fill rune, color Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColored(x, y, fill, color)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect) {
	s.Set(r.X, r.Y, '┌')
	s.Set(r.Right()-1, r.Y, '┐')
	s.Set(r.X, r.Bottom()-1, '└')
	s.Set(r.Right()-1, r.Bottom()-1, '┘')

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.Set(x, r.Y, '─')
		s.Set(x, r.Bottom()-1, '─')
	}

	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.Set(r.X, y, '│')
		s.Set(r.Right()-1, y, '│')
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (s *Screen) DrawHLine(x, y, length int, r rune) {
	for i := 0; i < length; i++ {
		s.Set(x+i, y, r)
	}
}

// String converts the screen buffer to a plain string, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(s.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteString(c.Glyph)
	}
	return sb.String()
}
