package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/vehicle"
)

// Choice is what the player picked in the garage
type Choice struct {
	Preset vehicle.Preset
	// Load means resume the saved game instead of starting with Preset
	Load bool
}

// GarageScreen represents the car selection screen
type GarageScreen struct {
	src      input.Source
	presets  []vehicle.Preset
	canLoad  bool
	selected int
	onChoose func(Choice)
}

// NewGarageScreen lists presets, plus a Load Game row when canLoad is set
func NewGarageScreen(src input.Source, presets []vehicle.Preset, canLoad bool, onChoose func(Choice)) *GarageScreen {
	return &GarageScreen{
		src:      src,
		presets:  presets,
		canLoad:  canLoad,
		onChoose: onChoose,
	}
}

func (gs *GarageScreen) rows() int {
	n := len(gs.presets)
	if gs.canLoad {
		n++
	}
	return n
}

func (gs *GarageScreen) Selected() int { return gs.selected }

// Move shifts the selection by delta rows, wrapping at either end
func (gs *GarageScreen) Move(delta int) {
	n := gs.rows()
	if n == 0 {
		return
	}
	gs.selected = ((gs.selected+delta)%n + n) % n
}

// Choose reports the selected row to the callback
func (gs *GarageScreen) Choose() {
	if gs.onChoose == nil || gs.rows() == 0 {
		return
	}
	if gs.selected >= len(gs.presets) {
		gs.onChoose(Choice{Load: true})
		return
	}
	gs.onChoose(Choice{Preset: gs.presets[gs.selected]})
}

// Update handles input for the garage screen
func (gs *GarageScreen) Update() error {
	if gs.src.JustPressed(input.MenuUp) {
		gs.Move(-1)
	}
	if gs.src.JustPressed(input.MenuDown) {
		gs.Move(1)
	}
	if gs.src.JustPressed(input.Confirm) {
		gs.Choose()
	}
	return nil
}

// Draw renders the garage screen
func (gs *GarageScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{20, 20, 30, 255})

	centerX := float64(width) / 2
	drawTitle(screen, "SELECT CAR", centerX, 50, 4.0, color.RGBA{255, 200, 50, 255})

	if gs.rows() == 0 {
		drawText(screen, "No cars available", centerX, float64(height)/2, 24, color.RGBA{255, 255, 255, 255})
		return
	}

	startY := 150.0
	spacing := 80.0
	buttonWidth := 600.0
	buttonHeight := 60.0
	buttonX := centerX - buttonWidth/2

	for i := 0; i < gs.rows(); i++ {
		label := "Load Game"
		if i < len(gs.presets) {
			label = formatPresetInfo(gs.presets[i])
		}

		bgColor := color.RGBA{40, 40, 60, 255}
		textColor := color.RGBA{255, 255, 255, 255}
		if i == gs.selected {
			bgColor = color.RGBA{60, 100, 140, 255}
			textColor = color.RGBA{200, 240, 255, 255}
		}
		drawButton(screen, label, buttonX, startY+float64(i)*spacing, buttonWidth, buttonHeight, bgColor, textColor)
	}

	drawText(screen, "Arrow Keys: Navigate | Enter: Select", centerX, float64(height)-50, 20, color.RGBA{150, 150, 150, 255})
}

// formatPresetInfo formats a preset for its garage row
func formatPresetInfo(p vehicle.Preset) string {
	return fmt.Sprintf("%s - Top: %.0f km/h | Brakes: %.0f | Lock: %.0f deg",
		p.Label(), p.Tuning.MaxSpeed*3.6, p.Tuning.Braking, p.Tuning.MaxTurnAngle)
}
