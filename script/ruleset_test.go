package script

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/match"
	"github.com/lixenwraith/pf-sandbox/status"
)

func defaults(t *testing.T) (catalog.Fighter, catalog.Stage) {
	t.Helper()
	pkg := catalog.Default()
	f, _ := pkg.Fighters.Get(0)
	s, _ := pkg.Stages.Get(1)
	return f, s
}

type countingRules struct{ calls int }

func (c *countingRules) Step(p *match.Player, _ input.PlayerInput, _ *catalog.Fighter, _ *catalog.Stage) {
	c.calls++
	p.ActionFrame = -1
}

func TestScriptMutatesPlayer(t *testing.T) {
	src := `
function step(p, input, fighter, stage)
  p.x = p.x + params.dx
  p.vy = #stage.platforms
  p.stocks = p.stocks - 1
  p.action = "Shield"
  p.action_frame = 7
  p.facing_right = input.jump.press
end`
	reg := status.NewRegistry()
	rs, err := New(src, `{"dx": 2.5}`, nil, reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rs.Close()

	f, s := defaults(t)
	p := match.NewPlayer(mgl64.Vec2{1, 0}, 3)
	in := input.Idle()
	in.Jump = input.Button{Value: true, Press: true}
	rs.Step(&p, in, &f, &s)

	if p.Pos.X() != 3.5 || p.Vel.Y() != float64(len(s.Platforms)) {
		t.Errorf("pos=%v vel=%v", p.Pos, p.Vel)
	}
	if p.Stocks != 2 || p.Action != match.ActionShield || p.ActionFrame != 7 || !p.FacingRight {
		t.Errorf("player = %+v", p)
	}
	if reg.Ints.Get("script.calls").Load() != 1 {
		t.Error("call not counted")
	}
}

func TestUnknownActionKeepsCurrent(t *testing.T) {
	rs, err := New(`function step(p) p.action = "Dancing" end`, "", nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rs.Close()
	f, s := defaults(t)
	p := match.NewPlayer(mgl64.Vec2{}, 3)
	p.Action = match.ActionWalk
	rs.Step(&p, input.Idle(), &f, &s)
	if p.Action != match.ActionWalk {
		t.Errorf("action = %s, want Walk", p.Action)
	}
}

func TestRuntimeErrorUsesFallback(t *testing.T) {
	fb := &countingRules{}
	reg := status.NewRegistry()
	rs, err := New(`function step(p) error("boom") end`, "", fb, reg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rs.Close()

	f, s := defaults(t)
	p := match.NewPlayer(mgl64.Vec2{}, 3)
	for i := 0; i < 3; i++ {
		rs.Step(&p, input.Idle(), &f, &s)
	}
	if fb.calls != 3 || p.ActionFrame != -1 {
		t.Errorf("fallback calls = %d, frame = %d", fb.calls, p.ActionFrame)
	}
	if rs.Failures() != 3 || reg.Ints.Get("script.errors").Load() != 3 {
		t.Errorf("failures = %d", rs.Failures())
	}
	if !strings.Contains(reg.Strings.Get("script.last_error").Load(), "boom") {
		t.Error("last error not recorded")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cases := []struct {
		name, src, params, want string
	}{
		{"syntax", "function step(", "", "load"},
		{"missing step", "x = 1", "", "want function"},
		{"bad params", "function step() end", "{nope", "JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.src, tc.params, nil, nil)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestParamsNested(t *testing.T) {
	src := `
function step(p)
  p.x = params.tuning.walk * #params.list
  if params.flag then p.y = 1 end
end`
	rs, err := New(src, `{"tuning":{"walk":2},"list":[1,2,3],"flag":true}`, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer rs.Close()
	f, s := defaults(t)
	p := match.NewPlayer(mgl64.Vec2{}, 3)
	rs.Step(&p, input.Idle(), &f, &s)
	if p.Pos != (mgl64.Vec2{6, 1}) {
		t.Errorf("pos = %v, want (6,1)", p.Pos)
	}
}

func TestBuiltinWalksAndJumps(t *testing.T) {
	rs, err := New(Builtin, "", nil, nil)
	if err != nil {
		t.Fatalf("builtin: %v", err)
	}
	defer rs.Close()
	f, s := defaults(t)
	p := match.NewPlayer(s.SpawnPoints[0], 3)

	walk := input.Idle()
	walk.StickX = 1
	rs.Step(&p, walk, &f, &s)
	if p.Action != match.ActionWalk || p.Vel.X() != f.WalkSpeed {
		t.Fatalf("walk: %+v", p)
	}

	jump := input.Idle()
	jump.Jump = input.Button{Value: true, Press: true}
	rs.Step(&p, jump, &f, &s)
	if !p.Airborne {
		t.Fatal("jump did not leave the ground")
	}
	for i := 0; i < 200 && p.Airborne; i++ {
		rs.Step(&p, input.Idle(), &f, &s)
	}
	if p.Airborne || p.Pos.Y() != 0 || p.Action != match.ActionIdle {
		t.Errorf("landing: %+v", p)
	}
}
