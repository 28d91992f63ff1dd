package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hit describes where a ray met the surface
type Hit struct {
	Point    mgl64.Vec3
	Distance float64
}

// Raycaster answers ray queries against the world
type Raycaster interface {
	Raycast(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool)
}

const (
	rayStep       = 0.05
	refineSteps   = 12
	surfaceMargin = 1e-9
)

// Raycast marches a ray over the heightfield and returns the first point at or below
// the surface. A ray starting below the surface hits at distance zero.
func (t *Terrain) Raycast(origin, direction mgl64.Vec3, maxDistance float64) (Hit, bool) {
	if maxDistance < 0 || direction.Len() == 0 {
		return Hit{}, false
	}
	dir := direction.Normalize()

	below := func(d float64) bool {
		p := origin.Add(dir.Mul(d))
		h, ok := t.HeightAt(p.X(), p.Z())
		return ok && p.Y() <= h+surfaceMargin
	}

	if below(0) {
		return Hit{Point: origin, Distance: 0}, true
	}

	step := math.Min(rayStep, maxDistance)
	if step == 0 {
		return Hit{}, false
	}
	prev := 0.0
	for d := step; ; d += step {
		if d > maxDistance {
			d = maxDistance
		}
		if below(d) {
			// Bisect between the last free sample and this one.
			lo, hi := prev, d
			for i := 0; i < refineSteps; i++ {
				mid := (lo + hi) / 2
				if below(mid) {
					hi = mid
				} else {
					lo = mid
				}
			}
			return Hit{Point: origin.Add(dir.Mul(hi)), Distance: hi}, true
		}
		if d >= maxDistance {
			return Hit{}, false
		}
		prev = d
	}
}

// GroundProbe is a single fixed-length ray cast along an object's local down axis
type GroundProbe struct {
	World  Raycaster
	Length float64
}

// Grounded reports whether there is a surface within Length below origin.
// A miss, or a probe with no world, means airborne.
func (g GroundProbe) Grounded(origin, up mgl64.Vec3) bool {
	if g.World == nil {
		return false
	}
	_, hit := g.World.Raycast(origin, up.Mul(-1), g.Length)
	return hit
}
