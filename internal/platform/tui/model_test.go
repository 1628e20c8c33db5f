package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/block-reveal/internal/core"
	"github.com/vovakirdan/block-reveal/internal/games/reveal"
	"github.com/vovakirdan/block-reveal/internal/storage"
)

// scriptedGame ends the game after a fixed number of ticks.
type scriptedGame struct {
	endAfter int
	ticks    int
	resets   int
	inputs   []core.InputFrame
	state    core.GameState
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }
func (g *scriptedGame) Err() error    { return nil }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.ticks = 0
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	g.inputs = append(g.inputs, frame)

	g.ticks++
	g.state.Score = g.ticks
	if g.ticks >= g.endAfter {
		g.state.GameOver = true
	}
	if in.Has(core.ActionQuit) {
		g.state.Stopped = true
	}
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.Clear() }
func (g *scriptedGame) State() core.GameState   { return g.state }
func (g *scriptedGame) Observe() any            { return g.ticks }
func (g *scriptedGame) Summary() string         { return "abc" }

type recordingPublisher struct {
	states []any
}

func (p *recordingPublisher) Publish(gameID, player string, state any) {
	p.states = append(p.states, state)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelHeldKeysReachGame(t *testing.T) {
	g := &scriptedGame{endAfter: 1000}
	m := NewModel(g, nil, core.DefaultConfig(), Options{HoldTicks: 2})

	m, _ = step(t, m, keyPress('a'))
	m, _ = step(t, m, TickMsg{})
	m, _ = step(t, m, TickMsg{})
	m, _ = step(t, m, TickMsg{})

	if !g.inputs[0].Has(core.ActionLeft) || !g.inputs[1].Has(core.ActionLeft) {
		t.Error("left should be held for the hold window")
	}
	if g.inputs[2].Has(core.ActionLeft) {
		t.Error("left should be released after the hold window")
	}
}

func TestModelOneShotActions(t *testing.T) {
	g := &scriptedGame{endAfter: 1000}
	m := NewModel(g, nil, core.DefaultConfig(), Options{})

	m, _ = step(t, m, keyPress(' '))
	m, _ = step(t, m, TickMsg{})
	m, _ = step(t, m, TickMsg{})

	if !g.inputs[0].Has(core.ActionStart) {
		t.Error("start should reach the first tick")
	}
	if g.inputs[1].Has(core.ActionStart) {
		t.Error("start should not repeat on the next tick")
	}
}

func TestModelQuitBetweenTicks(t *testing.T) {
	g := &scriptedGame{endAfter: 1000}
	m := NewModel(g, nil, core.DefaultConfig(), Options{})

	m, cmd := step(t, m, keyPress('q'))
	if cmd != nil {
		t.Error("quit should wait for the next tick")
	}

	m, cmd = step(t, m, TickMsg{})
	if !isQuit(cmd) {
		t.Error("a stopped game should quit the program")
	}
	if !m.State().Stopped {
		t.Error("model state should be stopped")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{endAfter: 3}
	m := NewModel(g, store, core.DefaultConfig(), Options{Player: "alice"})

	for i := 0; i < 6; i++ {
		m, _ = step(t, m, TickMsg{})
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected one saved score, got %d", len(scores))
	}
	if scores[0].Score != 3 || scores[0].Player != "alice" || scores[0].Revealed != "abc" || scores[0].Ticks != 3 {
		t.Errorf("unexpected entry: %+v", scores[0])
	}
}

func TestModelLogsNewHighScore(t *testing.T) {
	tests := []struct {
		name     string
		previous int
		want     bool
	}{
		{"first game", 0, true},
		{"beats previous", 2, true},
		{"ties previous", 3, false},
		{"below previous", 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
			if err != nil {
				t.Fatalf("Open() failed: %v", err)
			}
			defer store.Close()

			if tc.previous > 0 {
				if _, err := store.SaveScore(storage.ScoreEntry{GameID: "scripted", Score: tc.previous}); err != nil {
					t.Fatalf("SaveScore() failed: %v", err)
				}
			}

			var buf bytes.Buffer
			g := &scriptedGame{endAfter: 3}
			m := NewModel(g, store, core.DefaultConfig(), Options{Logger: log.New(&buf)})
			for i := 0; i < 3; i++ {
				m, _ = step(t, m, TickMsg{})
			}

			if got := strings.Contains(buf.String(), "new high score"); got != tc.want {
				t.Errorf("new high score logged = %v, expected %v\n%s", got, tc.want, buf.String())
			}
		})
	}
}

func TestModelKeepsConfigErrorOnScreen(t *testing.T) {
	reveal.SetLetters("ab")
	t.Cleanup(func() { reveal.SetLetters("") })

	g := reveal.New()
	cfg := core.DefaultConfig()
	g.Reset(cfg)
	if g.Err() == nil {
		t.Fatal("Reset() should fail with too few letters")
	}

	m := NewModel(g, nil, cfg, Options{})
	m, cmd := step(t, m, TickMsg{})
	if isQuit(cmd) {
		t.Fatal("a configuration error should not end the program on its own")
	}
	if !strings.Contains(m.View(), "Configuration error") {
		t.Error("the configuration error should be rendered")
	}

	m, _ = step(t, m, keyPress('q'))
	_, cmd = step(t, m, TickMsg{})
	if !isQuit(cmd) {
		t.Error("quit should end the program")
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &scriptedGame{endAfter: 2}
	m := NewModel(g, nil, core.DefaultConfig(), Options{})

	m, _ = step(t, m, keyPress('r'))
	m, _ = step(t, m, TickMsg{})
	if g.resets != 0 {
		t.Fatal("restart should be ignored while playing")
	}

	m, _ = step(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}

	m, _ = step(t, m, keyPress('r'))
	m, _ = step(t, m, TickMsg{})
	if g.resets != 1 || m.State().GameOver {
		t.Errorf("restart after game over should reset, resets=%d", g.resets)
	}
}

func TestModelPublishes(t *testing.T) {
	g := &scriptedGame{endAfter: 1000}
	pub := &recordingPublisher{}
	m := NewModel(g, nil, core.DefaultConfig(), Options{Publisher: pub})

	m, _ = step(t, m, TickMsg{})
	_, _ = step(t, m, TickMsg{})

	if len(pub.states) != 2 || pub.states[1] != 2 {
		t.Errorf("published %v, expected one state per tick", pub.states)
	}
}

func TestModelDrivesReveal(t *testing.T) {
	g := reveal.New()
	cfg := core.DefaultConfig()
	g.Reset(cfg)
	if err := g.Err(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	m := NewModel(g, nil, cfg, Options{})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = step(t, m, TickMsg{})
	_, _ = step(t, m, TickMsg{})

	// Held for two ticks at 5 units per tick from x=207.
	if x := g.Snapshot().Paddle.X; x != 217 {
		t.Errorf("paddle x = %v, expected 217", x)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &scriptedGame{endAfter: 1000}
	m := NewModel(g, nil, core.DefaultConfig(), Options{})

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 0 {
		t.Error("resizing should not reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 30 {
		t.Errorf("screen is %dx%d, expected 100x30", m.screen.Width(), m.screen.Height())
	}
}
