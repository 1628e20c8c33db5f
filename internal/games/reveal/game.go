package reveal

import (
	"github.com/vovakirdan/block-reveal/internal/config"
	"github.com/vovakirdan/block-reveal/internal/core"
	"github.com/vovakirdan/block-reveal/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// lettersOverride replaces the configured hidden phrase when set
var lettersOverride string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLetters overrides the hidden phrase for new games.
func SetLetters(letters string) {
	lettersOverride = letters
}

// Game adapts a Session to the platform's registry.Game interface.
type Game struct {
	session *Session
	last    Snapshot
	runtime core.RuntimeConfig
	err     error
	quit    bool // Quit requested while there is no session
}

// New creates a new Block Reveal game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "reveal"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Block Reveal"
}

// Reset loads the configuration and builds a fresh session.
// A configuration error leaves the game without a session; see Err.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.session = nil
	g.last = Snapshot{}
	g.quit = false

	cfg, err := config.LoadReveal(configPath)
	if err != nil {
		g.err = err
		return
	}
	if difficultyPreset != "" {
		config.ApplyRevealPreset(&cfg, difficultyPreset)
	}
	if lettersOverride != "" {
		cfg.Letters = lettersOverride
	}

	session, err := NewSession(NewArena(cfg))
	if err != nil {
		g.err = err
		return
	}

	g.err = nil
	g.session = session
	g.last = session.Snapshot()
}

// Err returns the configuration error of the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		g.quit = g.quit || in.Has(core.ActionQuit)
		return core.StepResult{State: g.State()}
	}

	g.last = g.session.Tick(IntentFrom(in))
	return core.StepResult{State: g.State()}
}

// IntentFrom maps platform actions to a tick intent.
func IntentFrom(in core.InputFrame) Intent {
	return Intent{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Start: in.Has(core.ActionStart),
		Quit:  in.Has(core.ActionQuit),
	}
}

// State returns the current game state.
// The score is the number of blocks destroyed. Without a session the game is
// over and keeps showing its error until the player quits.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true, Stopped: g.quit}
	}
	return core.GameState{
		Score:    g.last.Destroyed(),
		GameOver: g.last.Phase == PhaseGameOver,
		Stopped:  g.session.Stopped(),
	}
}

// Snapshot returns the snapshot produced by the last tick.
func (g *Game) Snapshot() Snapshot {
	return g.last
}

// Observe returns the last snapshot for spectators.
func (g *Game) Observe() any {
	return g.last
}

// Summary returns the text revealed so far, stored with the score.
func (g *Game) Summary() string {
	return g.last.Revealed()
}

func init() {
	registry.Register("reveal", func() registry.Game {
		return New()
	})
}
