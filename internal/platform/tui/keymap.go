package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/block-reveal/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Unknown keys map to ActionNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit
	case "left", "a", "h":
		return core.ActionLeft
	case "right", "d", "l":
		return core.ActionRight
	case " ", "enter":
		return core.ActionStart
	case "r":
		return core.ActionRestart
	}
	return core.ActionNone
}

// holdable reports whether an action is a held state rather than a one-shot.
func holdable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight
}

// DefaultHoldTicks keeps a direction held for about 150ms at 60 ticks per
// second, bridging the gaps between terminal key repeats.
const DefaultHoldTicks = 9

// HeldKeys turns key presses into held states.
// Terminals report presses and repeats but never releases, so a direction
// stays held for a window of ticks after its last press. Pressing the
// opposite direction releases it at once.
type HeldKeys struct {
	window int
	now    uint64
	until  map[core.Action]uint64
}

// NewHeldKeys creates a tracker that holds each press for window ticks.
func NewHeldKeys(window int) *HeldKeys {
	if window < 1 {
		window = 1
	}
	return &HeldKeys{
		window: window,
		until:  make(map[core.Action]uint64),
	}
}

// Press records a press of a holdable action.
func (h *HeldKeys) Press(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}
	h.until[a] = h.now + uint64(h.window) //#nosec G115 -- window is positive
}

// Held reports whether the action is held on the current tick.
func (h *HeldKeys) Held(a core.Action) bool {
	return h.until[a] > h.now
}

// Apply sets every held action on the frame.
func (h *HeldKeys) Apply(frame *core.InputFrame) {
	for a, until := range h.until {
		if until > h.now {
			frame.Set(a)
		}
	}
}

// Advance moves to the next tick and forgets expired holds.
func (h *HeldKeys) Advance() {
	h.now++
	for a, until := range h.until {
		if until <= h.now {
			delete(h.until, a)
		}
	}
}

// Reset releases every held action.
func (h *HeldKeys) Reset() {
	clear(h.until)
}
