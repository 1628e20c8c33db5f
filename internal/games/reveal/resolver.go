package reveal

import (
	"slices"

	"github.com/vovakirdan/block-reveal/internal/core"
)

// Resolution is the outcome of one resolver step.
type Resolution struct {
	Ball      Ball
	Blocks    []Block // Live blocks after the step
	Destroyed *Marker // Set when a block was removed this step

	CrossedTop bool // The ball reached the top edge; the game is lost
	HitWall    bool // Left or right wall reflection
	HitFloor   bool // Bottom wall reflection
	HitPaddle  bool
}

// Resolve advances the ball by one tick and resolves its collisions.
//
// The checks run in a fixed order and are not exclusive: walls, then the
// paddle, then the blocks, each acting on the same candidate box, so a block
// reflection can stack on top of a wall or paddle reflection in one tick.
// At most one block is removed: the first one in slice order that the
// candidate overlaps. The blocks slice passed in is never modified.
func Resolve(a *Arena, ball Ball, paddle Paddle, blocks []Block) Resolution {
	prev := ball.Box
	dx, dy := ball.DX, ball.DY
	next := prev.Moved(dx, dy)

	res := Resolution{Blocks: blocks}

	if next.Left() <= 0 || next.Right() >= a.Width {
		dx = -dx
		res.HitWall = true
	}

	// No clamp: the ball keeps moving on the tick it leaves the arena.
	if next.Top() <= 0 {
		res.CrossedTop = true
	}

	if next.Bottom() >= a.Height {
		dy = -dy
		next = next.WithBottom(a.Height)
		res.HitFloor = true
	}

	if next.Intersects(paddle.Box) {
		switch {
		case prev.Bottom() <= paddle.Box.Top() && dy > 0:
			dy = -dy
			next = next.WithBottom(paddle.Box.Top())
		case prev.Top() >= paddle.Box.Bottom() && dy < 0:
			dy = -dy
			next = next.WithTop(paddle.Box.Bottom())
		default:
			dx = -dx
		}
		dx *= a.Multiplier
		dy *= a.Multiplier
		res.HitPaddle = true
	}

	if i := firstOverlap(next, blocks); i >= 0 {
		hit := blocks[i]
		res.Blocks = slices.Delete(slices.Clone(blocks), i, i+1)
		marker := hit.Marker()
		res.Destroyed = &marker

		// Reflection is chosen by where the ball's center was before the
		// move, not by the edge that was actually crossed.
		if cy := prev.CenterY(); cy < hit.Box.Top() || cy > hit.Box.Bottom() {
			dy = -dy
		} else {
			dx = -dx
		}
		dx *= a.Multiplier
		dy *= a.Multiplier
	}

	res.Ball = Ball{Box: next, DX: dx, DY: dy}
	return res
}

// firstOverlap returns the index of the first block overlapping box, or -1.
func firstOverlap(box core.Box, blocks []Block) int {
	return slices.IndexFunc(blocks, func(b Block) bool {
		return box.Intersects(b.Box)
	})
}
