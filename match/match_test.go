package match

import (
	"strings"
	"testing"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/event"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/status"
)

func TestNewValidation(t *testing.T) {
	pkg := testPackage(8)
	rules := &recordingRules{}

	tests := []struct {
		name     string
		pkg      *catalog.Package
		rules    RuleSet
		fighters []int
		stage    int
		want     string
	}{
		{"nil package", nil, rules, []int{0}, 0, "nil package"},
		{"nil rules", pkg, nil, []int{0}, 0, "nil rule set"},
		{"no players", pkg, rules, nil, 0, "no players"},
		{"fighter range", pkg, rules, []int{0, 7}, 0, "selects fighter 7"},
		{"stage range", pkg, rules, []int{0}, 5, "stage 5"},
		{"spawn points", pkg, rules, []int{0, 0, 0, 0, 0}, 0, "spawn points"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.pkg, tt.rules, tt.fighters, tt.stage, Options{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNewPlacesPlayersAtSpawns(t *testing.T) {
	m, _ := newTestMatch(t, 4, 8, localOpts())
	if m.Mode() != ModeRunning || m.Frames() != 0 || m.Focused() != 0 {
		t.Fatalf("initial state: mode=%s frames=%d focus=%d", m.Mode(), m.Frames(), m.Focused())
	}

	wantX := []float64{-30, 30, -10, 10}
	players := m.Roster().Snapshot()
	if len(players) != 4 {
		t.Fatalf("players = %d, want 4", len(players))
	}
	for i, p := range players {
		if p.Pos.X() != wantX[i] || p.Stocks != 3 || p.Action != ActionIdle {
			t.Errorf("player %d = %+v", i, p)
		}
	}
}

func TestMatchSharesCatalogHandles(t *testing.T) {
	pkg := testPackage(8)
	var seen string
	rules := RuleSetFunc(func(p *Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage) {
		seen = f.Name
	})
	m, err := New(pkg, rules, []int{0}, 0, localOpts())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Catalog edits by the owner are visible to the match on the next step
	fighters := []catalog.Fighter{{Name: "Replaced"}}
	pkg.Fighters.Replace(fighters)
	m.Tick(idle(1), nil)
	if seen != "Replaced" {
		t.Errorf("fighter seen = %q, want the shared entry", seen)
	}
}

func TestRulesAreCopiedIn(t *testing.T) {
	pkg := testPackage(8)
	m, err := New(pkg, &recordingRules{}, []int{0}, 0, localOpts())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pkg.Rules.TimeLimit = 0
	m.Tick(idle(1), nil)
	if m.Mode() != ModeRunning {
		t.Error("package rule edits must not reach a running match")
	}
}

func TestCuesOnTransitions(t *testing.T) {
	cues := &cueLog{}
	opts := localOpts()
	opts.Cues = cues
	m, _ := newTestMatch(t, 2, 1, opts)
	if len(cues.events) != 0 {
		t.Fatalf("entering the initial state must not cue, got %v", cues.events)
	}

	pauseMatch(t, m, 2)
	m.Tick(startBy(2, 1), nil)
	runTicks(m, 60, 2)

	want := []event.EventType{event.EventPausePressed, event.EventResumePressed, event.EventMatchEnd}
	if len(cues.events) != len(want) {
		t.Fatalf("cues = %v, want %v", cues.events, want)
	}
	for i := range want {
		if cues.events[i] != want[i] {
			t.Errorf("cue %d = %s, want %s", i, cues.events[i], want[i])
		}
	}
}

func TestMetricsPublished(t *testing.T) {
	reg := status.NewRegistry()
	opts := localOpts()
	opts.Metrics = reg
	m, _ := newTestMatch(t, 2, 8, opts)

	runTicks(m, 5, 2)
	pauseMatch(t, m, 2)

	if got := reg.Ints.Get("match.frames").Load(); got != 6 {
		t.Errorf("match.frames = %d, want 6", got)
	}
	if got := reg.Strings.Get("match.mode").Load(); got != "Paused" {
		t.Errorf("match.mode = %q, want Paused", got)
	}
	if !reg.Bools.Get("match.local_play").Load() {
		t.Error("match.local_play should be true")
	}
}

func TestRosterViewDuringTicks(t *testing.T) {
	m, _ := newTestMatch(t, 2, 8, localOpts())

	done := make(chan struct{})
	stop := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			m.Roster().View(func(players []Player) {
				if len(players) != 2 {
					t.Errorf("view saw %d players", len(players))
				}
				_ = players[0].Pos.X() + players[1].Pos.X()
			})
		}
	}()

	in := idle(2)
	in[0].StickX = 1
	for i := 0; i < 200; i++ {
		m.Tick(in, nil)
	}
	close(stop)
	<-done

	if x := m.Roster().Snapshot()[0].Pos.X(); x != -30+200 {
		t.Errorf("player 0 x = %v, want 170", x)
	}
}

func TestModeAndActionNames(t *testing.T) {
	if ModeResults.String() != "Results" || Mode(9).String() != "Mode(9)" {
		t.Error("mode names")
	}
	if ActionJumpSquat.String() != "JumpSquat" || ActionState(42).String() != "Action(42)" {
		t.Error("action names")
	}
	if _, ok := parseMode("Paused"); !ok {
		t.Error("parseMode(Paused)")
	}
}
