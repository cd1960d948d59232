package match

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pf-sandbox/catalog"
)

// ActionState is the coarse animation/action a player is in
type ActionState int

const (
	ActionIdle ActionState = iota
	ActionWalk
	ActionJumpSquat
	ActionAirborne
	ActionShield
	ActionRespawn
	ActionDefeated
)

var actionNames = [...]string{
	ActionIdle:      "Idle",
	ActionWalk:      "Walk",
	ActionJumpSquat: "JumpSquat",
	ActionAirborne:  "Airborne",
	ActionShield:    "Shield",
	ActionRespawn:   "Respawn",
	ActionDefeated:  "Defeated",
}

func (a ActionState) String() string {
	if a >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseActionState resolves an action name, reporting false when unknown
func ParseActionState(name string) (ActionState, bool) {
	for i, n := range actionNames {
		if n == name {
			return ActionState(i), true
		}
	}
	return ActionIdle, false
}

// Player is one participant's mutable simulation state
// Only the rule set mutates it, once per stepped tick
type Player struct {
	Pos   mgl64.Vec2
	Vel   mgl64.Vec2
	Spawn mgl64.Vec2

	Stocks int

	Action      ActionState
	ActionFrame int
	FacingRight bool
	Airborne    bool

	// RespawnTimer counts down while Action is ActionRespawn
	RespawnTimer int
}

// NewPlayer places a player at spawn with the given stock count
func NewPlayer(spawn catalog.Point, stocks int) Player {
	return Player{
		Pos:         spawn,
		Spawn:       spawn,
		Stocks:      stocks,
		Action:      ActionIdle,
		FacingRight: spawn.X() <= 0,
	}
}

// SetAction switches action, restarting the action frame on change
func (p *Player) SetAction(a ActionState) {
	if p.Action != a {
		p.Action = a
		p.ActionFrame = 0
	}
}

// Facing returns "right" or "left"
func (p *Player) Facing() string {
	if p.FacingRight {
		return "right"
	}
	return "left"
}

// PhysicsString renders the raw physics state on one line
func (p *Player) PhysicsString() string {
	return fmt.Sprintf("pos=(%.2f,%.2f) vel=(%.2f,%.2f) airborne=%t facing=%s stocks=%d",
		p.Pos.X(), p.Pos.Y(), p.Vel.X(), p.Vel.Y(), p.Airborne, p.Facing(), p.Stocks)
}

// ActionString renders the current action against the player's fighter
func (p *Player) ActionString(f *catalog.Fighter) string {
	return fmt.Sprintf("fighter=%q action=%s action_frame=%d", f.Name, p.Action, p.ActionFrame)
}
