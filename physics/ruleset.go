package physics

import (
	"log"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pf-sandbox/catalog"
	"github.com/lixenwraith/pf-sandbox/input"
	"github.com/lixenwraith/pf-sandbox/match"
	"github.com/lixenwraith/pf-sandbox/status"
)

// RuleSet steps players with the fighter's movement parameters
type RuleSet struct {
	statStocksLost *atomic.Int64
	statPeakSpeed  *status.AtomicFloat
}

// NewRuleSet creates a rule set publishing to reg, which may be nil
func NewRuleSet(reg *status.Registry) *RuleSet {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &RuleSet{
		statStocksLost: reg.Ints.Get("physics.stocks_lost"),
		statPeakSpeed:  reg.Floats.Get("physics.peak_speed"),
	}
}

// Step implements match.RuleSet
func (r *RuleSet) Step(p *match.Player, in input.PlayerInput, f *catalog.Fighter, s *catalog.Stage) {
	p.ActionFrame++

	switch p.Action {
	case match.ActionDefeated:
		return
	case match.ActionRespawn:
		p.Vel = mgl64.Vec2{}
		p.RespawnTimer--
		if p.RespawnTimer <= 0 {
			p.RespawnTimer = 0
			p.SetAction(match.ActionIdle)
		}
		return
	}

	if p.Airborne {
		r.stepAir(p, in, f)
	} else {
		r.stepGround(p, in, f)
	}

	prev := p.Pos
	p.Pos = p.Pos.Add(p.Vel)
	r.statPeakSpeed.Max(p.Vel.Len())

	switch {
	case p.Airborne && p.Vel.Y() <= 0:
		if y, ok := Landing(prev, p.Pos, s); ok {
			p.Pos[1] = y
			p.Vel[1] = 0
			p.Airborne = false
			p.SetAction(match.ActionIdle)
		}
	case !p.Airborne && !OnPlatform(p.Pos, s):
		p.Airborne = true
		p.SetAction(match.ActionAirborne)
	}

	if OutOfBounds(p.Pos, s) {
		r.loseStock(p, f)
	}
}

func (r *RuleSet) stepGround(p *match.Player, in input.PlayerInput, f *catalog.Fighter) {
	switch {
	case p.Action == match.ActionJumpSquat:
		ApplyFriction(&p.Vel, f.Friction)
		if p.ActionFrame >= f.JumpSquat {
			p.Vel[1] = f.JumpVelocity
			p.Airborne = true
			p.SetAction(match.ActionAirborne)
		}
	case in.Jump.Press:
		p.SetAction(match.ActionJumpSquat)
	case in.Shield.Value:
		ApplyFriction(&p.Vel, f.Friction)
		p.SetAction(match.ActionShield)
	case StickActive(in.StickX):
		p.Vel[0] = in.StickX * f.WalkSpeed
		p.FacingRight = in.StickX > 0
		p.SetAction(match.ActionWalk)
	default:
		ApplyFriction(&p.Vel, f.Friction)
		p.SetAction(match.ActionIdle)
	}
}

func (r *RuleSet) stepAir(p *match.Player, in input.PlayerInput, f *catalog.Fighter) {
	target := 0.0
	if StickActive(in.StickX) {
		target = in.StickX * f.AirSpeed
	}
	p.Vel[0] = Approach(p.Vel.X(), target, f.Friction)
	ApplyGravity(&p.Vel, f.Gravity, f.MaxFallSpeed)
}

// loseStock removes a stock and either respawns or defeats the player
func (r *RuleSet) loseStock(p *match.Player, f *catalog.Fighter) {
	r.statStocksLost.Add(1)
	p.Stocks--
	p.Pos = p.Spawn
	p.Vel = mgl64.Vec2{}
	p.Airborne = false

	if p.Stocks <= 0 {
		p.Stocks = 0
		p.SetAction(match.ActionDefeated)
		log.Printf("[PHYSICS] %s defeated", f.Name)
		return
	}

	p.RespawnTimer = f.RespawnFrames
	p.SetAction(match.ActionRespawn)
	if p.RespawnTimer <= 0 {
		p.SetAction(match.ActionIdle)
	}
}
