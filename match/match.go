// Package match is the per-frame simulation core: it steps every player from
// one input sample per tick, enforces the time limit, and runs the pause/debug
// controller while the session keeps ticking.
package match

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/constants"
	"github.com/lixenwraith/pf-sandbox/engine"
	"github.com/lixenwraith/pf-sandbox/engine/fsm"
	"github.com/lixenwraith/pf-sandbox/event"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/status"
)

// Mode is the top-level match state
type Mode int

const (
	ModeRunning Mode = iota
	ModePaused
	ModeResults
)

func (m Mode) String() string {
	switch m {
	case ModeRunning:
		return "Running"
	case ModePaused:
		return "Paused"
	case ModeResults:
		return "Results"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func parseMode(s string) (Mode, bool) {
	for _, m := range []Mode{ModeRunning, ModePaused, ModeResults} {
		if m.String() == s {
			return m, true
		}
	}
	return 0, false
}

// RuleSet is the fighter/stage step capability
// Step is the sole mutator of p; f and s are read-only
type RuleSet interface {
	Step(p *Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage)
}

// RuleSetFunc adapts a function to RuleSet
type RuleSetFunc func(p *Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage)

// Step implements RuleSet
func (fn RuleSetFunc) Step(p *Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage) {
	fn(p, in, f, s)
}

// CueSink receives match events for feedback such as audio
type CueSink interface {
	Cue(et event.EventType)
}

// Options configures a match beyond the package and selection
type Options struct {
	// Netplay disables pausing from player start presses
	// The zero value is local play, where any start press pauses
	Netplay bool

	// Diagnostics receives overlay output; nil discards it
	Diagnostics io.Writer

	// Bindings overrides the debug key layout; nil uses the defaults
	Bindings *input.DebugBindings

	// Cues is notified on pause, resume and match end; may be nil
	Cues CueSink

	// Metrics publishes counters for other goroutines; nil allocates a private registry
	Metrics *status.Registry

	// Clock is the real-time source for pause accounting; nil uses the system clock
	Clock engine.TimeProvider

	// Sleeper paces Run between ticks; nil uses the system clock
	Sleeper engine.Sleeper

	// TickInterval is the sleep between ticks; zero uses the 16ms default
	TickInterval time.Duration

	// MaxFrames ends Run once the frame counter reaches it; zero is unlimited
	MaxFrames uint64
}

// Match is one running game between the selected fighters on the selected stage
// All methods except Roster and Metrics belong to the simulation goroutine
type Match struct {
	rules    catalog.Rules
	fighters *catalog.Shared[catalog.Fighter]
	stages   *catalog.Shared[catalog.Stage]
	roster   *Roster

	selectedFighters []int
	selectedStage    int
	fighterNames     []string
	stageName        string

	ruleSet  RuleSet
	opts     Options
	bindings input.DebugBindings

	machine *fsm.Machine[*Match]
	mode    Mode
	ready   bool
	pending event.Queue
	// cues raised by mode changes, emitted once the shared-state locks are released
	cues []event.EventType

	frames      uint64
	endFrame    uint64
	focused     int
	overlay     Overlay
	prevInputs  []input.PlayerInput
	curInputs   []input.PlayerInput
	clock       *engine.PausableClock
	warnedLocal bool

	metrics       *status.Registry
	statFrames    *atomic.Int64
	statMode      *status.AtomicString
	statPaused    *atomic.Int64
	statAdvances  *atomic.Int64
	statOverlay   *atomic.Int64
	statLocalPlay *atomic.Bool
}

// New creates a match from a package, with one selected fighter per player
// Players spawn at the stage's spawn points in order, with the package stock count
func New(pkg *catalog.Package, ruleSet RuleSet, selectedFighters []int, selectedStage int, opts Options) (*Match, error) {
	if pkg == nil {
		return nil, errors.New("match: nil package")
	}
	if ruleSet == nil {
		return nil, errors.New("match: nil rule set")
	}
	if len(selectedFighters) == 0 {
		return nil, errors.New("match: no players selected")
	}

	fighters := pkg.Fighters.RLock()
	names := make([]string, len(selectedFighters))
	for i, idx := range selectedFighters {
		if idx < 0 || idx >= len(fighters) {
			pkg.Fighters.RUnlock()
			return nil, fmt.Errorf("match: player %d selects fighter %d of %d", i, idx, len(fighters))
		}
		names[i] = fighters[idx].Name
	}
	pkg.Fighters.RUnlock()

	stages := pkg.Stages.RLock()
	if selectedStage < 0 || selectedStage >= len(stages) {
		pkg.Stages.RUnlock()
		return nil, fmt.Errorf("match: stage %d of %d", selectedStage, len(stages))
	}
	stage := stages[selectedStage]
	if len(stage.SpawnPoints) < len(selectedFighters) {
		pkg.Stages.RUnlock()
		return nil, fmt.Errorf("match: stage %q has %d spawn points for %d players",
			stage.Name, len(stage.SpawnPoints), len(selectedFighters))
	}
	players := make([]Player, len(selectedFighters))
	for i := range players {
		players[i] = NewPlayer(stage.SpawnPoints[i], pkg.Rules.StockCount)
	}
	pkg.Stages.RUnlock()

	rules := pkg.Rules
	if rules.TicksPerSecond == 0 {
		rules.TicksPerSecond = constants.TicksPerSecond
	}

	bindings := input.DefaultDebugBindings()
	if opts.Bindings != nil {
		bindings = *opts.Bindings
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.TickInterval
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = status.NewRegistry()
	}

	m := &Match{
		rules:            rules,
		fighters:         pkg.Fighters,
		stages:           pkg.Stages,
		roster:           newRoster(players),
		selectedFighters: append([]int(nil), selectedFighters...),
		selectedStage:    selectedStage,
		fighterNames:     names,
		stageName:        stage.Name,
		ruleSet:          ruleSet,
		opts:             opts,
		bindings:         bindings,
		clock:            engine.NewPausableClock(opts.Clock),
		metrics:          metrics,
		statFrames:       metrics.Ints.Get("match.frames"),
		statMode:         metrics.Strings.Get("match.mode"),
		statPaused:       metrics.Ints.Get("match.paused_ticks"),
		statAdvances:     metrics.Ints.Get("match.frame_advances"),
		statOverlay:      metrics.Ints.Get("match.overlay_outputs"),
		statLocalPlay:    metrics.Bools.Get("match.local_play"),
	}
	m.statLocalPlay.Store(!opts.Netplay)
	m.statFrames.Store(0)

	if err := m.buildMachine(); err != nil {
		return nil, err
	}

	log.Printf("[MATCH] created: stage=%q fighters=%q stocks=%d time_limit=%ds local_play=%t",
		m.stageName, names, rules.StockCount, rules.TimeLimit, !opts.Netplay)
	return m, nil
}

// Mode returns the current match mode
func (m *Match) Mode() Mode {
	return m.mode
}

// Frames returns the frame counter
func (m *Match) Frames() uint64 {
	return m.frames
}

// Focused returns the player targeted by debug commands
func (m *Match) Focused() int {
	return m.focused
}

// Overlay returns the registered debug outputs in order
func (m *Match) Overlay() []DebugOutput {
	return m.overlay.Outputs()
}

// Rules returns the match's copy of the package rules
func (m *Match) Rules() catalog.Rules {
	return m.rules
}

// Roster returns the shared player collection, safe for other goroutines
func (m *Match) Roster() *Roster {
	return m.roster
}

// Metrics returns the registry the match publishes to, safe for other goroutines
func (m *Match) Metrics() *status.Registry {
	return m.metrics
}

// timeUp reports whether elapsed match time exceeds the time limit
// Compared exactly in frames, so a 1s limit at 60 ticks/s ends on frame 61
// Whole seconds and the remainder are compared separately so large limits cannot overflow
func (m *Match) timeUp() bool {
	secs, rem := m.frames/m.rules.TicksPerSecond, m.frames%m.rules.TicksPerSecond
	return secs > m.rules.TimeLimit || (secs == m.rules.TimeLimit && rem > 0)
}
