package catalog

import "github.com/go-gl/mathgl/mgl64"

// Default returns the builtin sandbox package used when no package loader is wired
func Default() *Package {
	fighters := []Fighter{
		{
			Name:          "Base Fighter",
			WalkSpeed:     1.2,
			AirSpeed:      0.9,
			JumpVelocity:  3.4,
			Gravity:       0.16,
			MaxFallSpeed:  2.8,
			Friction:      0.12,
			JumpSquat:     3,
			RespawnFrames: 90,
		},
		{
			Name:          "Heavy",
			WalkSpeed:     0.8,
			AirSpeed:      0.6,
			JumpVelocity:  2.9,
			Gravity:       0.2,
			MaxFallSpeed:  3.4,
			Friction:      0.18,
			JumpSquat:     5,
			RespawnFrames: 90,
		},
		{
			Name:          "Floaty",
			WalkSpeed:     1.0,
			AirSpeed:      1.1,
			JumpVelocity:  3.0,
			Gravity:       0.09,
			MaxFallSpeed:  1.6,
			Friction:      0.08,
			JumpSquat:     4,
			RespawnFrames: 90,
		},
	}

	stages := []Stage{
		{
			Name: "Battlefield",
			SpawnPoints: []Point{
				mgl64.Vec2{-30, 0},
				mgl64.Vec2{30, 0},
				mgl64.Vec2{-10, 0},
				mgl64.Vec2{10, 0},
			},
			Platforms: []Platform{
				{X: 0, Y: 0, W: 120},
				{X: -30, Y: 30, W: 30},
				{X: 30, Y: 30, W: 30},
			},
			BlastZone: Rect{Left: -200, Bottom: -120, Right: 200, Top: 200},
		},
		{
			Name: "Final Destination",
			SpawnPoints: []Point{
				mgl64.Vec2{-40, 0},
				mgl64.Vec2{40, 0},
				mgl64.Vec2{-15, 0},
				mgl64.Vec2{15, 0},
			},
			Platforms: []Platform{
				{X: 0, Y: 0, W: 160},
			},
			BlastZone: Rect{Left: -220, Bottom: -120, Right: 220, Top: 220},
		},
	}

	return NewPackage("sandbox", Rules{}, fighters, stages)
}
