// Package catalog holds fighter and stage definitions shared between the
// package owner and every running match, plus the match rules they ship with.
package catalog

import "github.com/go-gl/mathgl/mgl64"

// Point is a stage-space coordinate
type Point = mgl64.Vec2

// Rules is the immutable match configuration carried by a package
type Rules struct {
	StockCount     int    `yaml:"stock_count"`
	TimeLimit      uint64 `yaml:"time_limit"` // Seconds
	TicksPerSecond uint64 `yaml:"ticks_per_second"`
}

// Fighter describes a selectable character
// Fields beyond Name are consumed by the rule set, not by the match core
type Fighter struct {
	Name string

	WalkSpeed    float64
	AirSpeed     float64
	JumpVelocity float64
	Gravity      float64
	MaxFallSpeed float64
	Friction     float64

	// JumpSquat is the number of grounded frames before leaving the ground
	JumpSquat int
	// RespawnFrames is how long the fighter stays in the respawn state after losing a stock
	RespawnFrames int
}

// Platform is a horizontal surface players can stand on
type Platform struct {
	X, Y, W float64
}

// Left returns the platform left edge
func (p Platform) Left() float64 { return p.X - p.W/2 }

// Right returns the platform right edge
func (p Platform) Right() float64 { return p.X + p.W/2 }

// Rect is an axis-aligned area, used for blast zones
type Rect struct {
	Left, Bottom, Right, Top float64
}

// Contains reports whether pt is inside the rect
func (r Rect) Contains(pt Point) bool {
	return pt.X() >= r.Left && pt.X() <= r.Right && pt.Y() >= r.Bottom && pt.Y() <= r.Top
}

// Stage describes a selectable arena
type Stage struct {
	Name        string
	SpawnPoints []Point
	Platforms   []Platform
	BlastZone   Rect
}
