package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/match"
)

func playerTable(l *lua.LState, p *match.Player) *lua.LTable {
	t := l.NewTable()
	t.RawSetString("x", lua.LNumber(p.Pos.X()))
	t.RawSetString("y", lua.LNumber(p.Pos.Y()))
	t.RawSetString("vx", lua.LNumber(p.Vel.X()))
	t.RawSetString("vy", lua.LNumber(p.Vel.Y()))
	t.RawSetString("spawn_x", lua.LNumber(p.Spawn.X()))
	t.RawSetString("spawn_y", lua.LNumber(p.Spawn.Y()))
	t.RawSetString("stocks", lua.LNumber(p.Stocks))
	t.RawSetString("action", lua.LString(p.Action.String()))
	t.RawSetString("action_frame", lua.LNumber(p.ActionFrame))
	t.RawSetString("facing_right", lua.LBool(p.FacingRight))
	t.RawSetString("airborne", lua.LBool(p.Airborne))
	t.RawSetString("respawn_timer", lua.LNumber(p.RespawnTimer))
	return t
}

// readPlayer copies script-visible fields back; unknown action names keep the current action
func readPlayer(t *lua.LTable, p *match.Player) {
	num := func(key string, cur float64) float64 {
		if n, ok := t.RawGetString(key).(lua.LNumber); ok {
			return float64(n)
		}
		return cur
	}
	p.Pos[0] = num("x", p.Pos[0])
	p.Pos[1] = num("y", p.Pos[1])
	p.Vel[0] = num("vx", p.Vel[0])
	p.Vel[1] = num("vy", p.Vel[1])
	p.Stocks = int(num("stocks", float64(p.Stocks)))
	p.RespawnTimer = int(num("respawn_timer", float64(p.RespawnTimer)))
	p.FacingRight = lua.LVAsBool(t.RawGetString("facing_right"))
	p.Airborne = lua.LVAsBool(t.RawGetString("airborne"))

	frame := int(num("action_frame", float64(p.ActionFrame)))
	if name, ok := t.RawGetString("action").(lua.LString); ok {
		if a, ok := match.ParseActionState(string(name)); ok {
			p.Action = a
		}
	}
	p.ActionFrame = frame
}

func buttonTable(l *lua.LState, b input.Button) *lua.LTable {
	t := l.NewTable()
	t.RawSetString("value", lua.LBool(b.Value))
	t.RawSetString("press", lua.LBool(b.Press))
	return t
}

func inputTable(l *lua.LState, in input.PlayerInput) *lua.LTable {
	t := l.NewTable()
	t.RawSetString("plugged", lua.LBool(in.Plugged))
	t.RawSetString("start", buttonTable(l, in.Start))
	t.RawSetString("a", buttonTable(l, in.A))
	t.RawSetString("b", buttonTable(l, in.B))
	t.RawSetString("jump", buttonTable(l, in.Jump))
	t.RawSetString("shield", buttonTable(l, in.Shield))
	t.RawSetString("stick_x", lua.LNumber(in.StickX))
	t.RawSetString("stick_y", lua.LNumber(in.StickY))
	return t
}

func fighterTable(l *lua.LState, f *catalog.Fighter) *lua.LTable {
	t := l.NewTable()
	t.RawSetString("name", lua.LString(f.Name))
	t.RawSetString("walk_speed", lua.LNumber(f.WalkSpeed))
	t.RawSetString("air_speed", lua.LNumber(f.AirSpeed))
	t.RawSetString("jump_velocity", lua.LNumber(f.JumpVelocity))
	t.RawSetString("gravity", lua.LNumber(f.Gravity))
	t.RawSetString("max_fall_speed", lua.LNumber(f.MaxFallSpeed))
	t.RawSetString("friction", lua.LNumber(f.Friction))
	t.RawSetString("jump_squat", lua.LNumber(f.JumpSquat))
	t.RawSetString("respawn_frames", lua.LNumber(f.RespawnFrames))
	return t
}

func stageTable(l *lua.LState, s *catalog.Stage) *lua.LTable {
	t := l.NewTable()
	t.RawSetString("name", lua.LString(s.Name))
	platforms := l.NewTable()
	for i, pl := range s.Platforms {
		pt := l.NewTable()
		pt.RawSetString("x", lua.LNumber(pl.X))
		pt.RawSetString("y", lua.LNumber(pl.Y))
		pt.RawSetString("w", lua.LNumber(pl.W))
		platforms.RawSetInt(i+1, pt)
	}
	t.RawSetString("platforms", platforms)
	bz := l.NewTable()
	bz.RawSetString("left", lua.LNumber(s.BlastZone.Left))
	bz.RawSetString("bottom", lua.LNumber(s.BlastZone.Bottom))
	bz.RawSetString("right", lua.LNumber(s.BlastZone.Right))
	bz.RawSetString("top", lua.LNumber(s.BlastZone.Top))
	t.RawSetString("blast_zone", bz)
	return t
}
