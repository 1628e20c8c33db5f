package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-reveal/internal/core"
	"github.com/vovakirdan/block-reveal/internal/registry"
	"github.com/vovakirdan/block-reveal/internal/storage"
)

// Publisher receives the observable state of a game after every tick.
type Publisher interface {
	Publish(gameID, player string, state any)
}

// Options configures a Model beyond the game itself.
type Options struct {
	Player    string      // Recorded with saved scores
	Logger    *log.Logger // Defaults to a discarding logger
	Publisher Publisher   // Optional spectator feed
	HoldTicks int         // Key hold window, DefaultHoldTicks if zero
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       Options
	keyMapper  *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	gameState  core.GameState
	ticks      int64 // Ticks since the last reset
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
// The game must already be Reset by the caller.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.HoldTicks == 0 {
		opts.HoldTicks = DefaultHoldTicks
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		held:       NewHeldKeys(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.opts.Logger.Info("game started", "game", m.game.ID(), "player", m.opts.Player)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions take effect on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keyMapper.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case holdable(action):
		m.held.Press(action)
	case action == core.ActionRestart && !m.gameState.GameOver:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize only resizes the buffer: the arena has fixed units and is
// rescaled on render, so the running game is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver && !m.gameState.Stopped {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.ticks = 0
		m.scoreSaved = false
		m.inputFrame.Clear()
		m.held.Reset()
		m.opts.Logger.Info("game restarted", "game", m.game.ID(), "player", m.opts.Player)
		return m, tickCmd(m.config.TickRate)
	}

	m.held.Apply(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.ticks++

	m.publish()

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	m.held.Advance()

	if m.gameState.Stopped {
		m.opts.Logger.Info("game stopped", "game", m.game.ID(), "player", m.opts.Player, "score", m.gameState.Score)
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) publish() {
	if m.opts.Publisher == nil {
		return
	}
	if obs, ok := m.game.(registry.Observable); ok {
		m.opts.Publisher.Publish(m.game.ID(), m.opts.Player, obs.Observe())
	}
}

// saveScore records a finished game. Saving is best-effort: failures are
// logged and the game continues.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score == 0 {
		return
	}

	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.opts.Player,
		Score:  m.gameState.Score,
		Ticks:  m.ticks,
	}
	if s, ok := m.game.(registry.Summarizer); ok {
		entry.Revealed = s.Summary()
	}

	best, bestErr := m.store.HighScore(entry.GameID)
	if bestErr != nil {
		m.opts.Logger.Warn("could not read high score", "game", entry.GameID, "error", bestErr)
	}

	if _, err := m.store.SaveScore(entry); err != nil {
		m.opts.Logger.Warn("could not save score", "game", entry.GameID, "error", err)
		return
	}
	m.opts.Logger.Info("score saved", "game", entry.GameID, "player", entry.Player, "score", entry.Score)
	if bestErr == nil && entry.Score > best {
		m.opts.Logger.Info("new high score", "game", entry.GameID, "player", entry.Player, "score", entry.Score, "previous", best)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".reveal", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run resets the game and starts the Bubble Tea program.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) error {
	game.Reset(cfg)
	if err := game.Err(); err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(game, store, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
