package match

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/event"
	"github.com/lixenwraith/pf-sandbox/input"
)

// recordingRules logs every step by spawn x and nudges players along the stick
type recordingRules struct {
	visits []float64
}

func (r *recordingRules) Step(p *Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage) {
	p.ActionFrame++
	p.Pos = p.Pos.Add(mgl64.Vec2{in.StickX, 0})
	if in.Jump.Press {
		p.SetAction(ActionAirborne)
		p.Airborne = true
	}
	r.visits = append(r.visits, p.Spawn.X())
}

func (r *recordingRules) steps() int {
	return len(r.visits)
}

type cueLog struct {
	events []event.EventType
}

func (c *cueLog) Cue(et event.EventType) {
	c.events = append(c.events, et)
}

func testPackage(timeLimit uint64) *catalog.Package {
	pkg := catalog.Default()
	pkg.Rules.TimeLimit = timeLimit
	pkg.Rules.TicksPerSecond = 60
	return pkg
}

func newTestMatch(t *testing.T, players int, timeLimit uint64, opts Options) (*Match, *recordingRules) {
	t.Helper()
	fighters := make([]int, players)
	for i := range fighters {
		fighters[i] = i % 3
	}
	rules := &recordingRules{}
	m, err := New(testPackage(timeLimit), rules, fighters, 0, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, rules
}

func localOpts() Options {
	return Options{}
}

func idle(n int) []input.PlayerInput {
	return input.IdleSource{Players: n}.Read(0)
}

func startBy(n, who int) []input.PlayerInput {
	in := idle(n)
	in[who].Start = input.Button{Value: true, Press: true}
	return in
}

func press(keys ...input.Key) input.KeyState {
	return input.NewKeySnapshot(keys, nil)
}

func pressShift(keys ...input.Key) input.KeyState {
	return input.NewKeySnapshot(keys, []input.Key{input.KeyLShift})
}

func runTicks(m *Match, n, players int) {
	for i := 0; i < n; i++ {
		m.Tick(idle(players), nil)
	}
}

func pauseMatch(t *testing.T, m *Match, players int) {
	t.Helper()
	m.Tick(startBy(players, 0), nil)
	if m.Mode() != ModePaused {
		t.Fatalf("mode = %s, want Paused", m.Mode())
	}
}
