package match

import (
	"fmt"
	"log"

	"github.com/lixenwraith/pf-sandbox/constants"
	"github.com/lixenwraith/pf-sandbox/event"
	"github.com/lixenwraith/pf-sandbox/input"
)

// Tick runs one simulation tick for the current mode
// inputs must hold exactly one sample per player; keys may be nil outside Paused
func (m *Match) Tick(inputs []input.PlayerInput, keys input.KeyState) {
	switch m.mode {
	case ModeRunning:
		m.stepGame(inputs)
	case ModePaused:
		if keys == nil {
			keys = input.NoKeys
		}
		m.stepPause(inputs, keys)
	case ModeResults:
		m.stepResults()
	}
	m.flushCues()
}

func (m *Match) checkInputs(inputs []input.PlayerInput) {
	if len(inputs) != len(m.selectedFighters) {
		panic(fmt.Sprintf("match: %d input samples for %d players", len(inputs), len(m.selectedFighters)))
	}
}

// stepGame advances every player by one frame under the shared-state locks
func (m *Match) stepGame(inputs []input.PlayerInput) {
	m.checkInputs(inputs)

	m.prevInputs = m.curInputs
	m.curInputs = append([]input.PlayerInput(nil), inputs...)

	// Lock order: Players -> Fighters -> Stages, released in reverse
	players := m.roster.lock()
	fighters := m.fighters.RLock()
	stages := m.stages.RLock()
	defer m.roster.unlock()
	defer m.fighters.RUnlock()
	defer m.stages.RUnlock()

	// The owner may Replace a catalog between ticks; a shrunk catalog is a precondition failure
	if m.selectedStage >= len(stages) {
		panic(fmt.Sprintf("match: selected stage %d no longer in catalog of %d", m.selectedStage, len(stages)))
	}
	for i, f := range m.selectedFighters {
		if f >= len(fighters) {
			panic(fmt.Sprintf("match: player %d selected fighter %d no longer in catalog of %d", i, f, len(fighters)))
		}
	}

	stage := &stages[m.selectedStage]

	for i := range players {
		if inputs[i].Start.Press {
			m.pending.PushOnce(event.EventPausePressed)
		}
		m.ruleSet.Step(&players[i], inputs[i], &fighters[m.selectedFighters[i]], stage)
	}

	m.frames++
	m.statFrames.Store(int64(m.frames))

	m.dispatch()

	view := FrameView{
		Frame:      m.frames,
		Players:    players,
		Inputs:     m.curInputs,
		PrevInputs: m.prevInputs,
		Fighters:   fighters,
		Selected:   m.selectedFighters,
		Stage:      stage,
	}
	if err := m.overlay.Render(m.opts.Diagnostics, &view, constants.FrameHeaderRule); err != nil {
		log.Printf("[MATCH] frame=%d diagnostics write failed: %v", m.frames, err)
	}
}

// stepResults is terminal: no player mutation, no frame advance
func (m *Match) stepResults() {}
