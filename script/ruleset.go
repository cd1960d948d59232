// Package script runs fighter step logic written in Lua.
//
// A script defines a global function step(p, input, fighter, stage). The
// player table p is read back after the call; input, fighter and stage are
// read-only views. JSON parameters are exposed as the global table params.
package script

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"

	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/match"
	"github.com/lixenwraith/pf-sandbox/physics"
	"github.com/lixenwraith/pf-sandbox/status"
)

const stepFunc = "step"

// Builtin is a walk-and-fall script used when no script file is configured
//
//go:embed builtin.lua
var Builtin string

// RuleSet implements match.RuleSet over a Lua state
// A failing call leaves the player to the fallback rule set, or unchanged without one
type RuleSet struct {
	mu       sync.Mutex
	l        *lua.LState
	step     lua.LValue
	fallback match.RuleSet

	failures  atomic.Int64
	statCalls *atomic.Int64
	statErrs  *atomic.Int64
	lastErr   *status.AtomicString
}

// Load reads a script file and builds a rule set from it
func Load(path, params string, fallback match.RuleSet, reg *status.Registry) (*RuleSet, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return New(string(src), params, fallback, reg)
}

// New compiles source, installs params and resolves the step function
func New(source, params string, fallback match.RuleSet, reg *status.Registry) (*RuleSet, error) {
	if params != "" && !gjson.Valid(params) {
		return nil, fmt.Errorf("script: params are not valid JSON")
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	l := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.LoadLibName, lua.OpenPackage},
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		l.Push(l.NewFunction(lib.fn))
		l.Push(lua.LString(lib.name))
		l.Call(1, 0)
	}
	registerHelpers(l)

	if params == "" {
		l.SetGlobal("params", l.NewTable())
	} else {
		l.SetGlobal("params", jsonToLua(l, gjson.Parse(params)))
	}

	if err := l.DoString(source); err != nil {
		l.Close()
		return nil, fmt.Errorf("script: load: %w", err)
	}
	step := l.GetGlobal(stepFunc)
	if step.Type() != lua.LTFunction {
		l.Close()
		return nil, fmt.Errorf("script: global %q is %s, want function", stepFunc, step.Type())
	}

	return &RuleSet{
		l:         l,
		step:      step,
		fallback:  fallback,
		statCalls: reg.Ints.Get("script.calls"),
		statErrs:  reg.Ints.Get("script.errors"),
		lastErr:   reg.Strings.Get("script.last_error"),
	}, nil
}

// Step calls the script step function for one player
func (r *RuleSet) Step(p *match.Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statCalls.Add(1)
	pt := playerTable(r.l, p)
	err := r.l.CallByParam(lua.P{Fn: r.step, NRet: 0, Protect: true},
		pt, inputTable(r.l, in), fighterTable(r.l, f), stageTable(r.l, s))
	if err != nil {
		r.statErrs.Add(1)
		r.lastErr.Store(err.Error())
		if r.failures.Add(1) == 1 {
			log.Printf("[SCRIPT] step failed, using fallback: %v", err)
		}
		if r.fallback != nil {
			r.fallback.Step(p, in, f, s)
		}
		return
	}
	readPlayer(pt, p)
}

// Failures returns how many step calls raised an error
func (r *RuleSet) Failures() int64 {
	return r.failures.Load()
}

// Close releases the Lua state
func (r *RuleSet) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.l.Close()
}

func registerHelpers(l *lua.LState) {
	l.Register("approach", func(l *lua.LState) int {
		l.Push(lua.LNumber(physics.Approach(float64(l.CheckNumber(1)), float64(l.CheckNumber(2)), float64(l.CheckNumber(3)))))
		return 1
	})
	l.Register("stick_active", func(l *lua.LState) int {
		l.Push(lua.LBool(physics.StickActive(float64(l.CheckNumber(1)))))
		return 1
	})
	l.Register("clamp", func(l *lua.LState) int {
		v, lo, hi := float64(l.CheckNumber(1)), float64(l.CheckNumber(2)), float64(l.CheckNumber(3))
		l.Push(lua.LNumber(min(max(v, lo), hi)))
		return 1
	})
}

// jsonToLua converts a parsed JSON value into the matching Lua value
func jsonToLua(l *lua.LState, v gjson.Result) lua.LValue {
	switch {
	case v.IsObject(), v.IsArray():
		tbl := l.NewTable()
		arr := v.IsArray()
		idx := 1
		v.ForEach(func(key, val gjson.Result) bool {
			if arr {
				tbl.RawSetInt(idx, jsonToLua(l, val))
				idx++
			} else {
				tbl.RawSetString(key.String(), jsonToLua(l, val))
			}
			return true
		})
		return tbl
	}
	switch v.Type {
	case gjson.Number:
		return lua.LNumber(v.Float())
	case gjson.String:
		return lua.LString(v.String())
	case gjson.True:
		return lua.LTrue
	case gjson.False:
		return lua.LFalse
	}
	return lua.LNil
}
