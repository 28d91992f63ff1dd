package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/backroads/pkg/input"
)

// TitleScreen represents the main title screen
type TitleScreen struct {
	// Start is the button that leaves the title screen. Whoever builds the
	// screen decides what it does.
	Start *Button

	src       input.Source
	startTime time.Time
}

// NewTitleScreen lays out a title screen for a width x height window
func NewTitleScreen(src input.Source, width, height int) *TitleScreen {
	const buttonWidth, buttonHeight = 300.0, 50.0
	return &TitleScreen{
		Start:     NewButton("Start", float64(width)/2-buttonWidth/2, float64(height)*0.6, buttonWidth, buttonHeight),
		src:       src,
		startTime: time.Now(),
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	ts.Start.Update(ts.src)
	if ts.src.JustPressed(input.Confirm) {
		ts.Start.Click()
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	// Pulsing scale effect (1.0 to 1.1)
	titleScale := 8.0 * (1.0 + 0.1*math.Sin(elapsed*2.0))
	brightness := math.Min(1.0+0.2*math.Sin(elapsed*1.5), 1.0)
	drawTitle(screen, "BACKROADS", centerX, centerY-8, titleScale, color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	})
	drawTitle(screen, "Park it anywhere", centerX, centerY+80, 2.0, color.RGBA{180, 180, 200, 255})

	ts.Start.Draw(screen)

	if int(elapsed*2)%2 == 0 { // Blink every 0.5 seconds
		drawText(screen, "Click Start or press ENTER", centerX, float64(height)-100, 24, color.RGBA{150, 200, 255, 255})
	}

	drawDecorativeElements(screen, width, height)
}

// drawDecorativeElements draws the two rules framing the title
func drawDecorativeElements(screen *ebiten.Image, width, height int) {
	lineColor := color.RGBA{50, 60, 80, 100}
	fillRect(screen, 0, float64(height)/6, float64(width), 2, lineColor)
	fillRect(screen, 0, float64(height)*5/6, float64(width), 2, lineColor)
}
