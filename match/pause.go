package match

import (
	"github.com/lixenwraith/pf-sandbox/event"
	"github.com/lixenwraith/pf-sandbox/input"
)

// stepPause runs the pause/debug controller for one tick
// Only the frame-advance path mutates players
func (m *Match) stepPause(inputs []input.PlayerInput, keys input.KeyState) {
	m.checkInputs(inputs)
	m.statPaused.Add(1)
	b := &m.bindings

	if keys.Pressed(b.FrameAdvance) {
		m.statAdvances.Add(1)
		m.stepGame(inputs)
		return
	}

	// First valid focus key wins, slots beyond the player count are ignored
	players := len(m.selectedFighters)
	for slot, k := range b.Focus {
		if keys.Pressed(k) && slot < players {
			m.focused = slot
			break
		}
	}

	switch {
	case keys.Pressed(b.Physics):
		m.pushDebug(DebugPhysics)
	case keys.Pressed(b.Input):
		if b.ShiftHeld(keys) {
			m.pushDebug(DebugInputDiff)
		} else {
			m.pushDebug(DebugInput)
		}
	case keys.Pressed(b.Action):
		m.pushDebug(DebugAction)
	case keys.Pressed(b.Frame):
		m.pushDebug(DebugFrame)
	case keys.Pressed(b.Clear):
		m.overlay.Clear()
		m.statOverlay.Store(0)
	}

	for i := range inputs {
		if inputs[i].Start.Press {
			m.pending.PushOnce(event.EventResumePressed)
		}
	}
	m.dispatch()

	// Fighter and stage edits for the focused player would be applied here
}

func (m *Match) pushDebug(kind DebugKind) {
	m.overlay.Push(DebugOutput{Kind: kind, Player: m.focused})
	m.statOverlay.Store(int64(m.overlay.Len()))
}
