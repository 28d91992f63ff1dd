package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/golangdaddy/backroads/pkg/camera"
)

// KMHPerUnit converts world units per second to km/h, one unit being a metre
const KMHPerUnit = 3.6

// Readout is what the HUD shows for one frame
type Readout struct {
	Speed    float64 // signed, units per second
	MaxSpeed float64
	Steering float64 // -1..1
	Grounded bool
	Inside   bool
	NearCar  bool
	View     camera.View
	Car      string
	Message  string
}

// Gear is R while rolling backwards, D while rolling forwards and N at rest
func Gear(speed float64) string {
	switch {
	case speed > 0.05:
		return "D"
	case speed < -0.05:
		return "R"
	}
	return "N"
}

// Lines is the status block under the speedometer
func (r Readout) Lines() []string {
	var lines []string
	if r.Inside {
		air := "on ground"
		if !r.Grounded {
			air = "airborne"
		}
		lines = append(lines,
			fmt.Sprintf("%s  gear %s  %s", r.Car, Gear(r.Speed), air),
			fmt.Sprintf("camera: %s  (V switch, C look back, H horn, E get out)", r.View),
		)
	} else if r.NearCar {
		lines = append(lines, "E: get in")
	} else {
		lines = append(lines, "WASD: walk")
	}
	if r.Message != "" {
		lines = append(lines, r.Message)
	}
	return lines
}

// gaugeColor fades green to yellow to red as fraction goes 0 to 1
func gaugeColor(fraction float64) color.RGBA {
	fraction = math.Max(0, math.Min(1, fraction))
	if fraction < 0.5 {
		ratio := fraction / 0.5
		return color.RGBA{uint8(100 + ratio*155), 255, 100, 255}
	}
	ratio := (fraction - 0.5) / 0.5
	return color.RGBA{255, uint8(255 - ratio*155), uint8(100 - ratio*100), 255}
}

// HUD draws the driving overlay
type HUD struct{}

func (HUD) Draw(screen *ebiten.Image, r Readout) {
	y := 20
	if r.Inside {
		drawSpeedometer(screen, 20, 20, r)
		drawSteeringIndicator(screen, r.Steering)
		y = 150
	}
	for _, line := range r.Lines() {
		ebitenutil.DebugPrintAt(screen, line, 20, y)
		y += 16
	}
}

// drawSpeedometer draws a speedometer displaying current speed in km/h
func drawSpeedometer(screen *ebiten.Image, x, y float64, r Readout) {
	const width, height = 180.0, 120.0
	kmh := math.Abs(r.Speed) * KMHPerUnit
	fraction := 0.0
	if r.MaxSpeed > 0 {
		fraction = math.Abs(r.Speed) / r.MaxSpeed
	}

	fillRect(screen, x, y, width, height, color.RGBA{20, 20, 30, 200})
	strokeRect(screen, x, y, width, height, 2, color.RGBA{100, 100, 120, 255})

	speedText := fmt.Sprintf("%.0f", kmh)
	const textScale = 3.0
	op := &text.DrawOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(x+width/2-text.Advance(speedText, face)*textScale/2, y+30)
	op.ColorScale.ScaleWithColor(gaugeColor(fraction))
	text.Draw(screen, speedText, face, op)

	drawText(screen, "KM/H "+Gear(r.Speed), x+width/2, y+85, 20, color.RGBA{200, 200, 200, 255})

	// Gauge bar
	gx, gy, gw, gh := x+10, y+height-25, width-20, 15.0
	fillRect(screen, gx, gy, gw, gh, color.RGBA{40, 40, 40, 255})
	if fw := gw * math.Min(fraction, 1); fw > 0 {
		fillRect(screen, gx, gy, fw, gh, gaugeColor(fraction))
	}
	strokeRect(screen, gx, gy, gw, gh, 1, color.RGBA{150, 150, 150, 255})
}

// drawSteeringIndicator draws a wheel in the bottom-right corner with a spoke at
// the current steering angle, red when turned and green when centred.
func drawSteeringIndicator(screen *ebiten.Image, steering float64) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cx, cy := float64(w-80), float64(h-80)
	const radius = 30.0

	wheel := color.RGBA{100, 100, 100, 255}
	for a := 0.0; a < 2*math.Pi; a += 0.1 {
		fillRect(screen, cx+radius*math.Cos(a)-2, cy+radius*math.Sin(a)-2, 4, 4, wheel)
	}

	spoke := color.RGBA{50, 255, 50, 255}
	if math.Abs(steering) > 0.1 {
		spoke = color.RGBA{255, 50, 50, 255}
	}
	angle := steering * math.Pi / 2
	for t := 0.0; t <= 1.0; t += 0.05 {
		px := cx + (radius-5)*math.Sin(angle)*t
		py := cy - (radius-5)*math.Cos(angle)*t
		fillRect(screen, px-2, py-2, 4, 4, spoke)
	}
	fillRect(screen, cx-3, cy-3, 6, 6, color.RGBA{200, 200, 200, 255})

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Steering: %.1f", steering), w-150, h-25)
}
