package reveal

// Phase is the game's lifecycle state.
type Phase string

const (
	PhaseNotStarted Phase = "not_started" // Waiting for the start signal; ball frozen
	PhasePlaying    Phase = "playing"     // Ball in motion
	PhaseGameOver   Phase = "game_over"   // Terminal; ball frozen
)

// StateMachine drives NotStarted -> Playing -> GameOver.
// The zero value is in PhaseNotStarted.
type StateMachine struct {
	phase Phase
}

// Phase returns the current phase.
func (m *StateMachine) Phase() Phase {
	if m.phase == "" {
		return PhaseNotStarted
	}
	return m.phase
}

// Start moves NotStarted to Playing. It reports whether a transition happened.
func (m *StateMachine) Start() bool {
	if m.Phase() != PhaseNotStarted {
		return false
	}
	m.phase = PhasePlaying
	return true
}

// BallCrossedTop moves Playing to GameOver. It reports whether a transition happened.
func (m *StateMachine) BallCrossedTop() bool {
	if m.Phase() != PhasePlaying {
		return false
	}
	m.phase = PhaseGameOver
	return true
}
