// Package reveal implements Block Reveal, a block breaker where every
// destroyed block uncovers one character of a hidden phrase.
//
// The arena uses continuous units with the origin at the top-left corner and
// y growing downwards. The paddle guards the top edge: a ball that reaches it
// ends the game, while the bottom edge is a solid wall.
package reveal

import (
	"errors"
	"fmt"
	"math"

	"github.com/rivo/uniseg"

	"github.com/vovakirdan/block-reveal/internal/config"
	"github.com/vovakirdan/block-reveal/internal/core"
)

// Configuration errors returned by Arena.Validate.
var (
	ErrNotEnoughLetters = errors.New("not enough letters for the block grid")
	ErrInvalidArena     = errors.New("invalid arena")
)

// Arena is the immutable geometry and tuning of one game.
// It is built once at setup and shared by pointer with the resolver.
type Arena struct {
	Width  float64
	Height float64

	Rows              int
	Cols              int
	BlockW            float64
	BlockH            float64
	BlockGap          float64
	BlockOffsetX      float64
	BlockOffsetBottom float64

	PaddleW    float64
	PaddleH    float64
	PaddleY    float64
	PaddleStep float64 // Distance moved per tick while a direction is held

	BallRadius float64
	BallX      float64 // Initial top-left of the ball's bounding box
	BallY      float64
	VelocityX  float64 // Initial per-tick displacement
	VelocityY  float64
	Multiplier float64 // Escalation applied on every paddle or block hit

	Letters string
}

// DefaultArena returns the arena built from the default configuration.
func DefaultArena() Arena {
	return NewArena(config.DefaultRevealConfig())
}

// NewArena converts a loaded configuration into an arena.
// The difficulty level scales the initial velocity once, at setup.
func NewArena(cfg config.RevealConfig) Arena {
	speed := config.NewDifficultyManager(cfg.Difficulty).SpeedFactor()

	return Arena{
		Width:             cfg.Arena.Width,
		Height:            cfg.Arena.Height,
		Rows:              cfg.Blocks.Rows,
		Cols:              cfg.Blocks.Cols,
		BlockW:            cfg.Blocks.Width,
		BlockH:            cfg.Blocks.Height,
		BlockGap:          cfg.Blocks.Gap,
		BlockOffsetX:      cfg.Blocks.OffsetX,
		BlockOffsetBottom: cfg.Blocks.OffsetBottom,
		PaddleW:           cfg.Paddle.Width,
		PaddleH:           cfg.Paddle.Height,
		PaddleY:           cfg.Paddle.Y,
		PaddleStep:        cfg.Paddle.Step,
		BallRadius:        cfg.Ball.Radius,
		BallX:             cfg.Ball.X,
		BallY:             cfg.Ball.Y,
		VelocityX:         cfg.Ball.VelocityX * speed,
		VelocityY:         cfg.Ball.VelocityY * speed,
		Multiplier:        cfg.Ball.Multiplier,
		Letters:           cfg.Letters,
	}
}

// BlockCount returns the number of blocks in the grid.
func (a *Arena) BlockCount() int {
	return a.Rows * a.Cols
}

// Glyphs splits Letters into grapheme clusters.
func (a *Arena) Glyphs() []string {
	glyphs := make([]string, 0, uniseg.GraphemeClusterCount(a.Letters))
	g := uniseg.NewGraphemes(a.Letters)
	for g.Next() {
		glyphs = append(glyphs, g.Str())
	}
	return glyphs
}

// Validate reports configuration errors. It must pass before any entity is built.
func (a *Arena) Validate() error {
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("reveal: arena %vx%v: %w", a.Width, a.Height, ErrInvalidArena)
	case a.Rows <= 0 || a.Cols <= 0:
		return fmt.Errorf("reveal: block grid %dx%d: %w", a.Rows, a.Cols, ErrInvalidArena)
	case a.BlockW <= 0 || a.BlockH <= 0:
		return fmt.Errorf("reveal: block size %vx%v: %w", a.BlockW, a.BlockH, ErrInvalidArena)
	case a.PaddleW <= 0 || a.PaddleH <= 0 || a.PaddleW > a.Width:
		return fmt.Errorf("reveal: paddle size %vx%v: %w", a.PaddleW, a.PaddleH, ErrInvalidArena)
	case a.BallRadius <= 0:
		return fmt.Errorf("reveal: ball radius %v: %w", a.BallRadius, ErrInvalidArena)
	case !(a.Multiplier > 1):
		return fmt.Errorf("reveal: speed multiplier %v must exceed 1: %w", a.Multiplier, ErrInvalidArena)
	}

	if have, need := uniseg.GraphemeClusterCount(a.Letters), a.BlockCount(); have < need {
		return fmt.Errorf("reveal: %d letters for %d blocks: %w", have, need, ErrNotEnoughLetters)
	}
	return nil
}

// Layout builds the live blocks in row-major fill order, one glyph each.
// Row 0 sits just above the bottom edge. The arena must be valid.
func (a *Arena) Layout() []Block {
	glyphs := a.Glyphs()
	pitchX := a.BlockW + a.BlockGap
	pitchY := a.BlockH + a.BlockGap

	blocks := make([]Block, 0, a.BlockCount())
	for row := 0; row < a.Rows; row++ {
		for col := 0; col < a.Cols; col++ {
			id := len(blocks)
			blocks = append(blocks, Block{
				ID:  id,
				Row: row,
				Col: col,
				Box: core.NewBox(
					float64(col)*pitchX+a.BlockOffsetX,
					a.Height-float64(row+1)*pitchY-a.BlockOffsetBottom,
					a.BlockW,
					a.BlockH,
				),
				Glyph: glyphs[id],
			})
		}
	}
	return blocks
}

// NewPaddle returns the paddle centered horizontally on its row.
func (a *Arena) NewPaddle() Paddle {
	return Paddle{
		Box: core.NewBox(math.Floor((a.Width-a.PaddleW)/2), a.PaddleY, a.PaddleW, a.PaddleH),
	}
}

// NewBall returns the ball at its initial position and velocity.
func (a *Arena) NewBall() Ball {
	d := a.BallRadius * 2
	return Ball{
		Box: core.NewBox(a.BallX, a.BallY, d, d),
		DX:  a.VelocityX,
		DY:  a.VelocityY,
	}
}
