package background

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/backroads/pkg/world"
)

// Generator bakes the top-down ground texture for a terrain
type Generator struct {
	PixelsPerUnit int
	// KeepClear lists (x, z, radius) circles left free of vegetation
	KeepClear [][3]float64
}

// NewGenerator creates a new background generator
func NewGenerator(pixelsPerUnit int) *Generator {
	return &Generator{PixelsPerUnit: pixelsPerUnit}
}

// Size is the texture size in pixels for t
func (g *Generator) Size(t *world.Terrain) (int, int) {
	ppu := float64(g.PixelsPerUnit)
	return int(math.Ceil((t.MaxX - t.MinX) * ppu)), int(math.Ceil((t.MaxZ - t.MinZ) * ppu))
}

// GroundImage bakes t into an ebiten image. Pixel (0, 0) is the terrain's
// (MinX, MaxZ) corner so +Z points up the screen.
func (g *Generator) GroundImage(t *world.Terrain, seed int64) *ebiten.Image {
	return ebiten.NewImageFromImage(g.Ground(t, seed))
}

// Ground paints grass noise, then vegetation off the platforms, then the
// platforms themselves: low kerbs in light concrete and walls in dark stone.
func (g *Generator) Ground(t *world.Terrain, seed int64) *image.RGBA {
	w, h := g.Size(t)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(seed))

	// Base grass layer (dark rich green)
	fill(img, img.Bounds(), color.RGBA{30, 100, 30, 255})

	// Add noise/texture to grass
	for i := 0; i < w*h/10; i++ {
		shade := uint8(80 + rng.Intn(60))
		img.SetRGBA(rng.Intn(w), rng.Intn(h), color.RGBA{30, shade, 30, 255})
	}

	// Vegetation, thinner than the old forest so there's room to drive
	step := 4 * g.PixelsPerUnit
	for py := 0; py < h; py += step {
		density := 0.25 + 0.15*math.Sin(float64(py)*0.01)
		for px := 0; px < w; px += step + rng.Intn(step) {
			if rng.Float64() > density {
				continue
			}
			x, z := g.toWorld(t, px, py)
			if g.occupied(t, x, z) {
				continue
			}
			if rng.Float64() < 0.3 {
				g.drawTree(img, px, py, rng)
			} else {
				g.drawBush(img, px, py, rng)
			}
		}
	}

	for _, p := range t.Platforms {
		c := color.RGBA{150, 150, 140, 255}
		if p.Height-t.BaseHeight > 1 {
			c = color.RGBA{70, 65, 60, 255}
		}
		x0, y0 := g.toPixel(t, p.MinX, p.MaxZ)
		x1, y1 := g.toPixel(t, p.MaxX, p.MinZ)
		fill(img, image.Rect(x0, y0, x1, y1), c)
		outline(img, image.Rect(x0, y0, x1, y1), color.RGBA{40, 40, 40, 255})
	}

	return img
}

func (g *Generator) toPixel(t *world.Terrain, x, z float64) (int, int) {
	ppu := float64(g.PixelsPerUnit)
	return int(math.Round((x - t.MinX) * ppu)), int(math.Round((t.MaxZ - z) * ppu))
}

func (g *Generator) toWorld(t *world.Terrain, px, py int) (float64, float64) {
	ppu := float64(g.PixelsPerUnit)
	return t.MinX + float64(px)/ppu, t.MaxZ - float64(py)/ppu
}

// occupied reports whether vegetation at (x, z) would sit on or next to a
// platform, or inside a keep-clear circle.
func (g *Generator) occupied(t *world.Terrain, x, z float64) bool {
	const margin = 2.0
	for _, p := range t.Platforms {
		if x >= p.MinX-margin && x <= p.MaxX+margin && z >= p.MinZ-margin && z <= p.MaxZ+margin {
			return true
		}
	}
	for _, c := range g.KeepClear {
		if math.Hypot(x-c[0], z-c[1]) <= c[2] {
			return true
		}
	}
	return false
}

// drawTree draws a simple pine seen from above: dark rings around a trunk
func (g *Generator) drawTree(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := g.PixelsPerUnit + rng.Intn(g.PixelsPerUnit)
	leaves := color.RGBA{
		uint8(20 + rng.Intn(30)),
		uint8(80 + rng.Intn(60)),
		uint8(20 + rng.Intn(30)),
		255,
	}
	disc(img, x, y, radius, leaves)
	disc(img, x, y, radius*2/3, darken(leaves, 0.8))
	disc(img, x, y, radius/4, color.RGBA{60, 40, 20, 255})
}

// drawBush draws a round bush
func (g *Generator) drawBush(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := g.PixelsPerUnit/2 + rng.Intn(g.PixelsPerUnit)
	disc(img, x, y, radius, color.RGBA{
		uint8(40 + rng.Intn(40)),
		uint8(100 + rng.Intn(50)),
		uint8(40 + rng.Intn(40)),
		255,
	})
}

func disc(img *image.RGBA, x, y, radius int, c color.RGBA) {
	b := img.Bounds()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			if p := (image.Point{x + dx, y + dy}); p.In(b) {
				img.SetRGBA(p.X, p.Y, c)
			}
		}
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func outline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func darken(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}
