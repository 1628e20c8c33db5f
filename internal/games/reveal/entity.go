package reveal

import (
	"math"

	"github.com/vovakirdan/block-reveal/internal/core"
)

// Ball is the moving ball. Box is its bounding box; DX and DY are the
// displacement applied per tick.
type Ball struct {
	Box core.Box
	DX  float64
	DY  float64
}

// Speed returns the velocity magnitude.
func (b Ball) Speed() float64 {
	return math.Hypot(b.DX, b.DY)
}

// Paddle is the player's paddle. Only its X changes during a game.
type Paddle struct {
	Box core.Box
}

// Move shifts the paddle horizontally, keeping it within [0, arenaW-width].
func (p *Paddle) Move(dx, arenaW float64) {
	p.Box.X = core.ClampF(p.Box.X+dx, 0, arenaW-p.Box.W)
}

// Block is a destructible block and the character it hides.
type Block struct {
	ID    int      `json:"id"` // Row-major index, stable for the whole game
	Row   int      `json:"row"`
	Col   int      `json:"col"`
	Box   core.Box `json:"box"`
	Glyph string   `json:"-"` // Hidden until the block is destroyed
}

// Marker returns the destroyed marker for this block.
func (b Block) Marker() Marker {
	cx, cy := b.Box.Center()
	return Marker{
		BlockID: b.ID,
		X:       cx,
		Y:       cy,
		Glyph:   b.Glyph,
	}
}

// Marker records a destroyed block: the center it occupied and the
// character it revealed. Markers are only drawn, never collided with.
type Marker struct {
	BlockID int     `json:"block_id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Glyph   string  `json:"glyph"`
}
