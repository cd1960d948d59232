package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/pf-sandbox/catalog"
)

// groundEpsilon tolerates float drift when checking platform contact
const groundEpsilon = 1e-6

// OnPlatform reports whether pos rests on any platform of s
func OnPlatform(pos mgl64.Vec2, s *catalog.Stage) bool {
	for _, pl := range s.Platforms {
		if pos.X() >= pl.Left() && pos.X() <= pl.Right() && math.Abs(pos.Y()-pl.Y) <= groundEpsilon {
			return true
		}
	}
	return false
}

// Landing finds the highest platform crossed moving from prev to next while falling
// Returns the landing height and whether a platform was crossed
func Landing(prev, next mgl64.Vec2, s *catalog.Stage) (float64, bool) {
	best, found := 0.0, false
	for _, pl := range s.Platforms {
		if next.X() < pl.Left() || next.X() > pl.Right() {
			continue
		}
		if prev.Y() >= pl.Y-groundEpsilon && next.Y() <= pl.Y {
			if !found || pl.Y > best {
				best, found = pl.Y, true
			}
		}
	}
	return best, found
}

// OutOfBounds reports whether pos has left the stage blast zone
func OutOfBounds(pos mgl64.Vec2, s *catalog.Stage) bool {
	return !s.BlastZone.Contains(pos)
}
