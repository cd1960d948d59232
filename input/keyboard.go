package input

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pf-sandbox/core"
)

// DefaultHoldWindow is how long a key counts as held after its last event
// Terminals report key repeats but never releases
const DefaultHoldWindow = 120 * time.Millisecond

// Clock is the time source used to age held keys
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Keyboard adapts a tcell screen into the debug KeyReader and a local input Source
// Player 0 is driven from the keyboard; remaining players are idle
type Keyboard struct {
	screen tcell.Screen
	clock  Clock

	mu         sync.Mutex
	debugPress [keyCount]bool // consumed by Snapshot
	padPress   [keyCount]bool // consumed by Read
	lastSeen   [keyCount]time.Time
	holdWindow time.Duration

	players int
	pad     Pad

	onQuit func()
	done   chan struct{}
}

// NewKeyboard creates a keyboard bound to screen for a match of players participants
// screen may be nil when events are fed through HandleEvent directly
func NewKeyboard(screen tcell.Screen, players int, clock Clock) *Keyboard {
	if clock == nil {
		clock = wallClock{}
	}
	return &Keyboard{
		screen:     screen,
		clock:      clock,
		holdWindow: DefaultHoldWindow,
		players:    players,
		done:       make(chan struct{}),
	}
}

// OnQuit registers the callback invoked on Escape or Ctrl-C
func (kb *Keyboard) OnQuit(fn func()) {
	kb.mu.Lock()
	kb.onQuit = fn
	kb.mu.Unlock()
}

// Start pumps screen events until the screen is finalized
func (kb *Keyboard) Start() {
	core.Go(func() {
		defer close(kb.done)
		for {
			ev := kb.screen.PollEvent()
			if ev == nil {
				return
			}
			kb.HandleEvent(ev)
		}
	})
}

// Done is closed once the event pump exits
func (kb *Keyboard) Done() <-chan struct{} {
	return kb.done
}

// HandleEvent records a single tcell event
func (kb *Keyboard) HandleEvent(ev tcell.Event) {
	keyEv, ok := ev.(*tcell.EventKey)
	if !ok {
		return
	}

	if keyEv.Key() == tcell.KeyCtrlC || keyEv.Key() == tcell.KeyEscape {
		kb.mu.Lock()
		quit := kb.onQuit
		kb.mu.Unlock()
		if quit != nil {
			quit()
		}
		return
	}

	k, shifted := translateKey(keyEv)
	now := kb.clock.Now()

	kb.mu.Lock()
	defer kb.mu.Unlock()
	if shifted || keyEv.Modifiers()&tcell.ModShift != 0 {
		kb.lastSeen[KeyLShift] = now
	}
	if k == KeyNone {
		return
	}
	kb.debugPress[k] = true
	kb.padPress[k] = true
	kb.lastSeen[k] = now
}

// Snapshot implements KeyReader, consuming presses since the previous snapshot
func (kb *Keyboard) Snapshot() KeyState {
	now := kb.clock.Now()

	kb.mu.Lock()
	defer kb.mu.Unlock()

	var s KeySnapshot
	for k := Key(1); k < keyCount; k++ {
		s.pressed[k] = kb.debugPress[k]
		s.held[k] = kb.debugPress[k] || kb.heldLocked(k, now)
		kb.debugPress[k] = false
	}
	return s
}

// Read implements Source
func (kb *Keyboard) Read(uint64) []PlayerInput {
	now := kb.clock.Now()

	kb.mu.Lock()
	down := func(k Key) bool { return kb.padPress[k] || kb.heldLocked(k, now) }
	raw := PadState{
		Start:  kb.padPress[KeyEnter],
		A:      down(KeyZ),
		B:      down(KeyC),
		Jump:   down(KeyX) || down(KeyUp),
		Shield: down(KeyV),
	}
	if down(KeyLeft) {
		raw.StickX -= 1
	}
	if down(KeyRight) {
		raw.StickX += 1
	}
	if down(KeyDown) {
		raw.StickY -= 1
	}
	for k := range kb.padPress {
		kb.padPress[k] = false
	}
	kb.mu.Unlock()

	out := make([]PlayerInput, kb.players)
	for i := range out {
		out[i] = Idle()
	}
	if kb.players > 0 {
		out[0] = kb.pad.Sample(raw)
	}
	return out
}

func (kb *Keyboard) heldLocked(k Key, now time.Time) bool {
	seen := kb.lastSeen[k]
	return !seen.IsZero() && now.Sub(seen) <= kb.holdWindow
}

// translateKey maps a tcell key event to a Key and whether it implies shift
func translateKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyF1:
		return KeyF1, false
	case tcell.KeyF2:
		return KeyF2, false
	case tcell.KeyF3:
		return KeyF3, false
	case tcell.KeyF4:
		return KeyF4, false
	case tcell.KeyF5:
		return KeyF5, false
	case tcell.KeyF14:
		// Shift+F2 on terminals that encode shifted function keys as F13-F24
		return KeyF2, true
	case tcell.KeyEnter:
		return KeyEnter, false
	case tcell.KeyLeft:
		return KeyLeft, false
	case tcell.KeyRight:
		return KeyRight, false
	case tcell.KeyUp:
		return KeyUp, false
	case tcell.KeyDown:
		return KeyDown, false
	case tcell.KeyRune:
		return translateRune(ev.Rune())
	}
	return KeyNone, false
}

func translateRune(r rune) (Key, bool) {
	switch r {
	case ' ':
		return KeySpace, false
	case '1':
		return Key1, false
	case '2':
		return Key2, false
	case '3':
		return Key3, false
	case '4':
		return Key4, false
	case 'z':
		return KeyZ, false
	case 'Z':
		return KeyZ, true
	case 'x':
		return KeyX, false
	case 'X':
		return KeyX, true
	case 'c':
		return KeyC, false
	case 'C':
		return KeyC, true
	case 'v':
		return KeyV, false
	case 'V':
		return KeyV, true
	}
	return KeyNone, false
}
