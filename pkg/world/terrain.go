package world

import (
	"math"
	"math/rand"
)

// Platform is a raised, flat-topped block on the terrain
type Platform struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
	Height     float64
}

// Contains reports whether (x, z) lies over the platform
func (p Platform) Contains(x, z float64) bool {
	return x >= p.MinX && x <= p.MaxX && z >= p.MinZ && z <= p.MaxZ
}

// Terrain is a bounded heightfield made of a flat base and platforms.
// Outside the bounds there is no ground at all.
type Terrain struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
	BaseHeight float64
	Platforms  []Platform
}

// NewTerrain returns an empty terrain covering width x depth centred on the origin
func NewTerrain(width, depth float64) *Terrain {
	return &Terrain{
		MinX: -width / 2,
		MinZ: -depth / 2,
		MaxX: width / 2,
		MaxZ: depth / 2,
	}
}

// AddPlatform adds a raised block to the terrain
func (t *Terrain) AddPlatform(p Platform) {
	t.Platforms = append(t.Platforms, p)
}

// InBounds reports whether (x, z) is over the terrain
func (t *Terrain) InBounds(x, z float64) bool {
	return x >= t.MinX && x <= t.MaxX && z >= t.MinZ && z <= t.MaxZ
}

// HeightAt returns the surface height at (x, z) and false when there is no ground there
func (t *Terrain) HeightAt(x, z float64) (float64, bool) {
	if !t.InBounds(x, z) {
		return math.Inf(-1), false
	}
	h := t.BaseHeight
	for _, p := range t.Platforms {
		if p.Contains(x, z) && p.Height > h {
			h = p.Height
		}
	}
	return h, true
}

// Scatter adds count random platforms using seed. Low steps are drivable kerbs and
// ramps; taller ones act as walls. keepClear is a list of (x, z, radius) circles
// that stay free, e.g. spawn points.
func (t *Terrain) Scatter(seed int64, count int, keepClear [][3]float64) {
	rng := rand.New(rand.NewSource(seed))
	width := t.MaxX - t.MinX
	depth := t.MaxZ - t.MinZ

	maxAttempts := count * 20
	for added, attempts := 0, 0; added < count && attempts < maxAttempts; attempts++ {
		w := 4 + rng.Float64()*10
		d := 4 + rng.Float64()*10
		x := t.MinX + rng.Float64()*(width-w)
		z := t.MinZ + rng.Float64()*(depth-d)

		height := 0.15 + rng.Float64()*0.3
		if rng.Float64() < 0.35 {
			height = 1.5 + rng.Float64()*2
		}
		candidate := Platform{MinX: x, MinZ: z, MaxX: x + w, MaxZ: z + d, Height: height}

		if blocksAny(candidate, keepClear) {
			continue
		}
		t.AddPlatform(candidate)
		added++
	}
}

func blocksAny(p Platform, circles [][3]float64) bool {
	for _, c := range circles {
		// Closest point of the rectangle to the circle centre.
		cx := math.Max(p.MinX, math.Min(c[0], p.MaxX))
		cz := math.Max(p.MinZ, math.Min(c[1], p.MaxZ))
		if math.Hypot(cx-c[0], cz-c[1]) < c[2] {
			return true
		}
	}
	return false
}
