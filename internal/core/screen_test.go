package core

import (
	"strings"
	"testing"
)

// runeAt returns the first rune of the cluster at (x, y), or a space for
// blank, covered or out-of-bounds cells.
func runeAt(s *Screen, x, y int) rune {
	for _, r := range s.GetCell(x, y).Glyph {
		return r
	}
	return ' '
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if runeAt(s, x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", runeAt(s, x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	if runeAt(s, 5, 5) != 'X' {
		t.Errorf("cell (5, 5) = %q, expected 'X'", runeAt(s, 5, 5))
	}
	if s.GetCell(5, 5).Color != ColorRed {
		t.Errorf("GetCell(5, 5).Color = %d, expected ColorRed", s.GetCell(5, 5).Color)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if runeAt(s, -1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenWideCluster(t *testing.T) {
	s := NewScreen(6, 1)

	if w := s.DrawCluster(1, 0, "豆", ColorDefault); w != 2 {
		t.Fatalf("DrawCluster width = %d, expected 2", w)
	}
	if got := s.Row(0); got != " 豆   " {
		t.Errorf("Row(0) = %q, expected %q", got, " 豆   ")
	}

	// Overwriting the covered half releases the whole cluster
	s.Set(2, 0, 'x')
	if got := s.Row(0); got != "  x   " {
		t.Errorf("Row(0) after overwrite = %q, expected %q", got, "  x   ")
	}

	// A wide cluster that does not fit at the right edge is dropped
	s.DrawCluster(5, 0, "何", ColorDefault)
	if runeAt(s, 5, 0) != ' ' {
		t.Errorf("Clipped wide cluster should not be drawn, got %q", runeAt(s, 5, 0))
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	for i, ch := range "Hello" {
		if runeAt(s, 2+i, 1) != ch {
			t.Errorf("DrawText: expected %q at (%d, 1), got %q", ch, 2+i, runeAt(s, 2+i, 1))
		}
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello")
	if runeAt(s, 18, 0) != 'H' || runeAt(s, 19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}

	// Wide text advances two cells per cluster
	s.DrawText(0, 2, "食べ")
	if runeAt(s, 0, 2) != '食' || runeAt(s, 2, 2) != 'べ' {
		t.Errorf("Wide text misplaced: row = %q", s.Row(2))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if runeAt(s, x, 2) != 'H' || runeAt(s, x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#', ColorBlue)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if runeAt(s, x, y) != '#' {
				t.Errorf("DrawRect: expected '#' at (%d, %d), got %q", x, y, runeAt(s, x, y))
			}
		}
	}

	if runeAt(s, 1, 1) != ' ' || runeAt(s, 5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if runeAt(s, c.x, c.y) != c.r {
			t.Errorf("Corner at (%d, %d) should be %q, got %q", c.x, c.y, c.r, runeAt(s, c.x, c.y))
		}
	}

	for x := 2; x < 5; x++ {
		if runeAt(s, x, 1) != '─' || runeAt(s, x, 4) != '─' {
			t.Errorf("Horizontal edge missing at x=%d", x)
		}
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawHLine(1, 1, 10, '─')

	if got := s.Row(1); got != " ─────" {
		t.Errorf("Row(1) = %q, expected the line clipped at the right edge", got)
	}
	if got := s.Row(0); got != "      " {
		t.Errorf("Row(0) = %q, expected untouched", got)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	expected := "AAAAA\nBBBBB\nCCCCC"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("Content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestScreenResizeCutsWideCluster(t *testing.T) {
	s := NewScreen(4, 1)
	s.DrawText(2, 0, "豆")

	s.Resize(3, 1)
	if got := s.Row(0); got != "   " {
		t.Errorf("Row(0) = %q, expected the split cluster to be blanked", got)
	}
}
