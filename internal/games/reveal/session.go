package reveal

import "fmt"

// Intent is the player input for one tick.
type Intent struct {
	Left  bool // Move-left held
	Right bool // Move-right held
	Start bool // Start signal
	Quit  bool // Stop running after this tick boundary
}

// Session owns every entity of one game and advances it one tick at a time.
// It is not safe for concurrent use; a new game needs a new Session.
type Session struct {
	arena   Arena
	ball    Ball
	paddle  Paddle
	blocks  []Block
	markers []Marker
	machine StateMachine

	tick    uint64
	stopped bool
}

// NewSession validates the arena and builds the initial entities.
func NewSession(arena Arena) (*Session, error) {
	if err := arena.Validate(); err != nil {
		return nil, err
	}

	s := &Session{arena: arena}
	s.blocks = s.arena.Layout()
	s.paddle = s.arena.NewPaddle()
	s.ball = s.arena.NewBall()
	s.markers = make([]Marker, 0, len(s.blocks))
	return s, nil
}

// Arena returns the session's arena.
func (s *Session) Arena() *Arena {
	return &s.arena
}

// Phase returns the current game phase.
func (s *Session) Phase() Phase {
	return s.machine.Phase()
}

// Stopped reports whether a quit intent has been honored.
func (s *Session) Stopped() bool {
	return s.stopped
}

// Tick applies one frame of input, advances the simulation and returns the
// snapshot to render. Once stopped, Tick only returns the final snapshot.
func (s *Session) Tick(in Intent) Snapshot {
	if s.stopped {
		return s.Snapshot()
	}
	if in.Quit {
		s.stopped = true
		return s.Snapshot()
	}

	s.tick++

	// The paddle answers input in every phase.
	if in.Left {
		s.paddle.Move(-s.arena.PaddleStep, s.arena.Width)
	}
	if in.Right {
		s.paddle.Move(s.arena.PaddleStep, s.arena.Width)
	}

	if in.Start {
		s.machine.Start()
	}

	if s.machine.Phase() == PhasePlaying {
		s.step()
	}

	return s.Snapshot()
}

// step runs the resolver once and commits its outputs.
func (s *Session) step() {
	if phase := s.machine.Phase(); phase != PhasePlaying {
		panic(fmt.Sprintf("reveal: resolver invoked in phase %s", phase))
	}

	before := len(s.blocks)
	res := Resolve(&s.arena, s.ball, s.paddle, s.blocks)

	removed := before - len(res.Blocks)
	if removed < 0 || removed > 1 || (removed == 1) != (res.Destroyed != nil) {
		panic(fmt.Sprintf("reveal: tick %d removed %d blocks", s.tick, removed))
	}

	s.ball = res.Ball
	s.blocks = res.Blocks
	if res.Destroyed != nil {
		s.markers = append(s.markers, *res.Destroyed)
	}
	if len(s.markers)+len(s.blocks) != s.arena.BlockCount() {
		panic(fmt.Sprintf("reveal: %d markers and %d live blocks for %d blocks",
			len(s.markers), len(s.blocks), s.arena.BlockCount()))
	}

	if res.CrossedTop {
		s.machine.BallCrossedTop()
	}
}
