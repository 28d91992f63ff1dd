package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/backroads/pkg/input"
)

// Button is a clickable rectangle. A click is a press and release that both land
// on the button.
type Button struct {
	X, Y, Width, Height float64
	Label               string

	listeners []func()
	hovered   bool
	pressed   bool
}

func NewButton(label string, x, y, width, height float64) *Button {
	return &Button{X: x, Y: y, Width: width, Height: height, Label: label}
}

// OnClick adds a listener
func (b *Button) OnClick(fn func()) {
	b.listeners = append(b.listeners, fn)
}

// Click fires every listener in the order they were added
func (b *Button) Click() {
	for _, fn := range b.listeners {
		fn()
	}
}

func (b *Button) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx >= b.X && fx < b.X+b.Width && fy >= b.Y && fy < b.Y+b.Height
}

func (b *Button) Hovered() bool { return b.hovered }

// Update tracks the cursor and fires on release
func (b *Button) Update(src input.Source) {
	b.hovered = b.Contains(src.Cursor())
	if src.JustPressed(input.Click) && b.hovered {
		b.pressed = true
	}
	if src.JustReleased(input.Click) {
		if b.pressed && b.hovered {
			b.Click()
		}
		b.pressed = false
	}
}

func (b *Button) Draw(screen *ebiten.Image) {
	bg := color.RGBA{40, 40, 60, 255}
	fg := color.RGBA{255, 255, 255, 255}
	switch {
	case b.pressed:
		bg = color.RGBA{30, 70, 110, 255}
		fg = color.RGBA{200, 240, 255, 255}
	case b.hovered:
		bg = color.RGBA{60, 100, 140, 255}
		fg = color.RGBA{200, 240, 255, 255}
	}
	drawButton(screen, b.Label, b.X, b.Y, b.Width, b.Height, bg, fg)
}
