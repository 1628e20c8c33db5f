package reveal

import (
	"errors"
	"slices"
	"testing"

	"github.com/vovakirdan/block-reveal/internal/core"
)

func TestArenaLayout(t *testing.T) {
	a := DefaultArena()
	blocks := a.Layout()

	if len(blocks) != 36 {
		t.Fatalf("Layout() = %d blocks, expected 36", len(blocks))
	}

	tests := []struct {
		id    int
		row   int
		col   int
		box   core.Box
		glyph string
	}{
		{0, 0, 0, core.NewBox(35, 460, 40, 40), "食"},
		{8, 0, 8, core.NewBox(395, 460, 40, 40), "？"},
		{9, 1, 0, core.NewBox(35, 415, 40, 40), "ら"},
		{35, 3, 8, core.NewBox(395, 325, 40, 40), "よ"},
	}

	for _, tt := range tests {
		b := blocks[tt.id]
		if b.ID != tt.id || b.Row != tt.row || b.Col != tt.col {
			t.Errorf("block %d: got id=%d row=%d col=%d", tt.id, b.ID, b.Row, b.Col)
		}
		if b.Box != tt.box {
			t.Errorf("block %d: Box = %+v, expected %+v", tt.id, b.Box, tt.box)
		}
		if b.Glyph != tt.glyph {
			t.Errorf("block %d: Glyph = %q, expected %q", tt.id, b.Glyph, tt.glyph)
		}
	}
}

func TestArenaLayoutNoOverlap(t *testing.T) {
	a := DefaultArena()
	blocks := a.Layout()

	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Box.Intersects(blocks[j].Box) {
				t.Fatalf("blocks %d and %d overlap", i, j)
			}
		}
	}
}

func TestArenaInitialEntities(t *testing.T) {
	a := DefaultArena()

	p := a.NewPaddle()
	if p.Box != core.NewBox(207, 75, 65, 10) {
		t.Errorf("NewPaddle() = %+v, expected centered at x=207", p.Box)
	}

	b := a.NewBall()
	if b.Box != core.NewBox(240, 255, 20, 20) {
		t.Errorf("NewBall().Box = %+v", b.Box)
	}
	if b.DX != 3 || b.DY != 3 {
		t.Errorf("NewBall() velocity = (%v, %v), expected (3, 3)", b.DX, b.DY)
	}
}

func TestArenaGlyphsGraphemes(t *testing.T) {
	a := Arena{Letters: "ae\u0301b"}
	got := a.Glyphs()
	expected := []string{"a", "e\u0301", "b"}

	if !slices.Equal(got, expected) {
		t.Errorf("Glyphs() = %q, expected %q", got, expected)
	}
}

func TestArenaValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Arena)
		err    error
	}{
		{"default", func(a *Arena) {}, nil},
		{"short letters", func(a *Arena) { a.Letters = "食べ" }, ErrNotEnoughLetters},
		{"combining marks count once", func(a *Arena) {
			a.Rows, a.Cols = 1, 3
			a.Letters = "e\u0301e\u0301"
		}, ErrNotEnoughLetters},
		{"no multiplier", func(a *Arena) { a.Multiplier = 1 }, ErrInvalidArena},
		{"empty grid", func(a *Arena) { a.Rows = 0 }, ErrInvalidArena},
		{"paddle wider than arena", func(a *Arena) { a.PaddleW = 500 }, ErrInvalidArena},
		{"zero ball", func(a *Arena) { a.BallRadius = 0 }, ErrInvalidArena},
		{"zero size", func(a *Arena) { a.Width = 0 }, ErrInvalidArena},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := DefaultArena()
			tt.mutate(&a)

			err := a.Validate()
			if tt.err == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, expected nil", err)
				}
				return
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Validate() = %v, expected %v", err, tt.err)
			}
		})
	}
}
