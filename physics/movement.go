// Package physics is the reference fighter rule set: grounded walking, jump
// squat, air drift under gravity, platform landing and blast-zone stock loss.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StickDeadZone is the stick magnitude below which input is ignored
const StickDeadZone = 0.2

// Approach moves v towards target by at most step
func Approach(v, target, step float64) float64 {
	switch {
	case v < target:
		return math.Min(v+step, target)
	case v > target:
		return math.Max(v-step, target)
	}
	return v
}

// ApplyFriction decays horizontal velocity towards zero
func ApplyFriction(vel *mgl64.Vec2, friction float64) {
	vel[0] = Approach(vel.X(), 0, friction)
}

// ApplyGravity accelerates downwards, capped at maxFall
// Returns true if the fall speed was clamped
func ApplyGravity(vel *mgl64.Vec2, gravity, maxFall float64) bool {
	vel[1] -= gravity
	if vel.Y() < -maxFall {
		vel[1] = -maxFall
		return true
	}
	return false
}

// StickActive reports whether a stick axis is outside the dead zone
func StickActive(axis float64) bool {
	return math.Abs(axis) >= StickDeadZone
}
