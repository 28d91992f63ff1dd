package game

import (
	"hash/fnv"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/golangdaddy/backroads/pkg/background"
	"github.com/golangdaddy/backroads/pkg/camera"
)

const (
	pixelsPerUnit = 8  // ground texture resolution
	spritePPU     = 16 // car sprite resolution
	carWidth      = 2.0
	carLength     = 4.0
	markerSize    = 12
)

var paints = []color.RGBA{
	{200, 40, 40, 255},
	{40, 90, 200, 255},
	{230, 180, 30, 255},
	{40, 160, 80, 255},
	{220, 220, 220, 255},
}

// paintFor gives each preset a stable body colour
func paintFor(preset string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(preset))
	return paints[h.Sum32()%uint32(len(paints))]
}

type sprites struct {
	car        *ebiten.Image
	player     *ebiten.Image
	pedestrian *ebiten.Image
}

func newSprites(body color.RGBA) *sprites {
	return &sprites{
		car:        renderCar(body),
		player:     renderMarker(color.RGBA{255, 255, 255, 255}),
		pedestrian: renderMarker(color.RGBA{240, 150, 60, 255}),
	}
}

// renderCar paints a top-down car with the bonnet at the top of the image
func renderCar(body color.RGBA) *ebiten.Image {
	w, h := int(carWidth*spritePPU), int(carLength*spritePPU)
	img := ebiten.NewImage(w, h)
	fill := func(r image.Rectangle, c color.Color) {
		img.SubImage(r).(*ebiten.Image).Fill(c)
	}

	img.Fill(color.RGBA{20, 20, 20, 255})
	fill(image.Rect(2, 2, w-2, h-2), body)

	// Windscreen and rear window
	fill(image.Rect(w/5, h/5, w-w/5, h/5+h/8), color.RGBA{150, 200, 255, 220})
	fill(image.Rect(w/5, h-h/5-h/12, w-w/5, h-h/5), color.RGBA{120, 160, 200, 220})

	// Wheels
	wheel := color.RGBA{30, 30, 30, 255}
	ww, wh := w/6, h/6
	for _, y := range []int{h / 10, h - h/10 - wh} {
		fill(image.Rect(0, y, ww, y+wh), wheel)
		fill(image.Rect(w-ww, y, w, y+wh), wheel)
	}

	// Headlights
	fill(image.Rect(3, 2, 3+w/5, 5), color.RGBA{255, 250, 200, 255})
	fill(image.Rect(w-3-w/5, 2, w-3, 5), color.RGBA{255, 250, 200, 255})
	return img
}

// renderMarker paints a filled circle with a dark rim
func renderMarker(c color.RGBA) *ebiten.Image {
	img := image.NewRGBA(image.Rect(0, 0, markerSize, markerSize))
	r := float64(markerSize) / 2
	for y := 0; y < markerSize; y++ {
		for x := 0; x < markerSize; x++ {
			dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
			switch d := dx*dx + dy*dy; {
			case d <= (r-1.5)*(r-1.5):
				img.SetRGBA(x, y, c)
			case d <= r*r:
				img.SetRGBA(x, y, color.RGBA{20, 20, 20, 255})
			}
		}
	}
	return ebiten.NewImageFromImage(img)
}

// viewGeoM maps the ground plane to the screen. World X runs right and world Z
// runs up the screen, then the frame's rotation and zoom apply about its centre.
func viewGeoM(f camera.Frame, width, height int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-f.X, f.Z)
	g.Rotate(-f.Rotation)
	g.Scale(f.Zoom, f.Zoom)
	g.Translate(float64(width)/2, float64(height)/2)
	return g
}

// worldToScreen projects p through view
func worldToScreen(view ebiten.GeoM, p mgl64.Vec3) (float64, float64) {
	return view.Apply(p.X(), -p.Z())
}

// spriteGeoM places a sprite centred on p, turned to heading and sized to
// worldWidth units. Things higher up are drawn slightly larger.
func spriteGeoM(img *ebiten.Image, p mgl64.Vec3, heading, worldWidth float64, view ebiten.GeoM) ebiten.GeoM {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scale := worldWidth / float64(w) * (1 + p.Y()*0.05)

	var g ebiten.GeoM
	g.Translate(-float64(w)/2, -float64(h)/2)
	g.Scale(scale, scale)
	g.Rotate(heading)
	g.Translate(p.X(), -p.Z())
	g.Concat(view)
	return g
}

// Draw renders the ground, the people and the car, then the HUD
func (ws *WorldScene) Draw(screen *ebiten.Image) {
	if ws.ground == nil {
		gen := background.NewGenerator(pixelsPerUnit)
		gen.KeepClear = [][3]float64{{carSpawn.X(), carSpawn.Z(), spawnClearRadius}}
		ws.ground = gen.GroundImage(ws.terrain, ws.opts.Config.World.Seed)
	}
	if ws.sprites == nil {
		ws.sprites = newSprites(paintFor(ws.car.Preset.Name))
	}

	screen.Fill(color.RGBA{15, 20, 15, 255})
	view := viewGeoM(ws.follow.Frame, screen.Bounds().Dx(), screen.Bounds().Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(1/float64(pixelsPerUnit), 1/float64(pixelsPerUnit))
	op.GeoM.Translate(ws.terrain.MinX, -ws.terrain.MaxZ)
	op.GeoM.Concat(view)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(ws.ground, op)

	for _, p := range ws.pedestrians {
		ws.drawSprite(screen, ws.sprites.pedestrian, p.Position(), 0, 0.8, view)
		x, y := worldToScreen(view, p.Position())
		ebitenutil.DebugPrintAt(screen, p.Name, int(x)+8, int(y)-8)
	}

	ws.drawSprite(screen, ws.sprites.car, ws.car.Position(), ws.car.State.Heading(), carWidth, view)

	if !ws.occupancy.Inside() {
		ws.drawSprite(screen, ws.sprites.player, ws.player.Position(), ws.facing, 0.8, view)
	}

	ws.hud.Draw(screen, ws.readout())
}

func (ws *WorldScene) drawSprite(screen, img *ebiten.Image, p mgl64.Vec3, heading, worldWidth float64, view ebiten.GeoM) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM = spriteGeoM(img, p, heading, worldWidth, view)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
