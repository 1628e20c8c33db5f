package reveal

import (
	"math"
	"slices"
	"strings"

	"github.com/vovakirdan/block-reveal/internal/core"
)

// Snapshot is an immutable copy of a session at the end of a tick.
// It is what renderers and spectators consume.
type Snapshot struct {
	Tick    uint64   `json:"tick"`
	Phase   Phase    `json:"phase"`
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Paddle  core.Box `json:"paddle"`
	Ball    core.Box `json:"ball"`
	DX      float64  `json:"dx"`
	DY      float64  `json:"dy"`
	Blocks  []Block  `json:"blocks"`
	Markers []Marker `json:"markers"`
	Total   int      `json:"total"`
}

// Snapshot returns the current state. Slices are copied so later ticks do
// not affect it.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:    s.tick,
		Phase:   s.machine.Phase(),
		Width:   s.arena.Width,
		Height:  s.arena.Height,
		Paddle:  s.paddle.Box,
		Ball:    s.ball.Box,
		DX:      s.ball.DX,
		DY:      s.ball.DY,
		Blocks:  slices.Clone(s.blocks),
		Markers: slices.Clone(s.markers),
		Total:   s.arena.BlockCount(),
	}
}

// Destroyed returns the number of blocks removed so far.
func (snap *Snapshot) Destroyed() int {
	return len(snap.Markers)
}

// Revealed returns the uncovered characters in the order they were revealed.
func (snap *Snapshot) Revealed() string {
	var sb strings.Builder
	for _, m := range snap.Markers {
		sb.WriteString(m.Glyph)
	}
	return sb.String()
}

// Speed returns the ball's velocity magnitude.
func (snap *Snapshot) Speed() float64 {
	return math.Hypot(snap.DX, snap.DY)
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = hashString(h, string(snap.Phase))
	h = hashBox(h, snap.Paddle)
	h = hashBox(h, snap.Ball)
	h = h*31 + math.Float64bits(snap.DX)
	h = h*31 + math.Float64bits(snap.DY)

	for _, b := range snap.Blocks {
		h = h*31 + uint64(b.ID) //#nosec G115 -- hash computation
	}
	for _, m := range snap.Markers {
		h = h*31 + uint64(m.BlockID) //#nosec G115 -- hash computation
		h = hashString(h, m.Glyph)
	}
	return h
}

func hashBox(h uint64, b core.Box) uint64 {
	h = h*31 + math.Float64bits(b.X)
	h = h*31 + math.Float64bits(b.Y)
	h = h*31 + math.Float64bits(b.W)
	return h*31 + math.Float64bits(b.H)
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}
