package match

import (
	"fmt"
	"log"

	"github.com/lixenwraith/pf-sandbox/engine/fsm"
	"github.com/lixenwraith/pf-sandbox/event"
)

// DefaultMatchFSMConfig is the mode graph: Running and Paused share the Live
// parent, whose tick transition ends the match from either child
const DefaultMatchFSMConfig = `
initial: Running

states:
  Live:
    transitions:
      - {trigger: Tick, target: Results, guard: TimeUp}

  Running:
    parent: Live
    on_enter:
      - {action: EnterMode, args: Running}
      - {action: Cue, args: EventResumePressed}
    transitions:
      - {trigger: EventPausePressed, target: Paused, guard: LocalPlay}

  Paused:
    parent: Live
    on_enter:
      - {action: EnterMode, args: Paused}
      - {action: PauseClock}
      - {action: Cue, args: EventPausePressed}
    on_exit:
      - {action: ResumeClock}
    transitions:
      - {trigger: EventResumePressed, target: Running}

  Results:
    on_enter:
      - {action: EnterMode, args: Results}
      - {action: EndMatch}
      - {action: Cue, args: EventMatchEnd}
`

// registerFSMComponents registers the guards and actions the mode graph references
func registerFSMComponents(machine *fsm.Machine[*Match]) {
	machine.RegisterGuard("TimeUp", func(m *Match) bool {
		return m.timeUp()
	})

	machine.RegisterGuard("LocalPlay", func(m *Match) bool {
		if m.opts.Netplay && !m.warnedLocal {
			m.warnedLocal = true
			log.Printf("[MATCH] frame=%d start press ignored: pausing is disabled outside local play", m.frames)
		}
		return !m.opts.Netplay
	})

	machine.RegisterAction("EnterMode", func(m *Match, args any) {
		name, _ := args.(string)
		mode, ok := parseMode(name)
		if !ok {
			panic(fmt.Sprintf("match: EnterMode with unknown mode %v", args))
		}
		if m.ready {
			log.Printf("[MATCH] frame=%d %s -> %s", m.frames, m.mode, mode)
		}
		m.mode = mode
		m.statMode.Store(mode.String())
	})

	machine.RegisterAction("PauseClock", func(m *Match, _ any) {
		m.clock.Pause()
	})

	machine.RegisterAction("ResumeClock", func(m *Match, _ any) {
		m.clock.Resume()
	})

	machine.RegisterAction("EndMatch", func(m *Match, _ any) {
		m.endFrame = m.frames
		m.clock.Resume()
	})

	// Cue is suppressed while entering the initial state
	// Cues are queued here and delivered by flushCues outside the step locks
	machine.RegisterAction("Cue", func(m *Match, args any) {
		if !m.ready || m.opts.Cues == nil {
			return
		}
		name, _ := args.(string)
		if et, ok := event.GetEventType(name); ok {
			m.cues = append(m.cues, et)
		}
	})
}

func (m *Match) buildMachine() error {
	m.machine = fsm.NewMachine[*Match]()
	registerFSMComponents(m.machine)
	if err := m.machine.LoadConfig([]byte(DefaultMatchFSMConfig)); err != nil {
		return fmt.Errorf("match: load mode graph: %w", err)
	}
	if err := m.machine.Init(m); err != nil {
		return fmt.Errorf("match: init mode graph: %w", err)
	}
	m.ready = true
	return nil
}

// flushCues hands queued cues to the sink; callers must hold no shared-state lock
func (m *Match) flushCues() {
	if len(m.cues) == 0 {
		return
	}
	cues := m.cues
	m.cues = nil
	for _, et := range cues {
		m.opts.Cues.Cue(et)
	}
}

// dispatch delivers queued events, then evaluates tick transitions
func (m *Match) dispatch() {
	for _, et := range m.pending.Drain() {
		m.machine.HandleEvent(m, et)
	}
	m.machine.Update(m)
}
