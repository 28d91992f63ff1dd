package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Ebiten reads the keyboard and mouse. Call Update once per tick before the game
// reads it, so the axes advance at the tick rate.
type Ebiten struct {
	bindings Bindings
	axes     map[Axis]*Smoother
}

func NewEbiten(b Bindings) *Ebiten {
	return &Ebiten{
		bindings: b,
		axes: map[Axis]*Smoother{
			Horizontal: NewSmoother(),
			Vertical:   NewSmoother(),
		},
	}
}

// Update samples the axis keys
func (e *Ebiten) Update(dt float64) {
	for a, s := range e.axes {
		s.Update(e.raw(a), dt)
	}
}

func (e *Ebiten) raw(a Axis) float64 {
	keys := e.bindings.Axes[a]
	v := 0.0
	if anyPressed(keys.Positive) {
		v++
	}
	if anyPressed(keys.Negative) {
		v--
	}
	return v
}

func (e *Ebiten) Axis(a Axis) float64 {
	if s, ok := e.axes[a]; ok {
		return s.Value()
	}
	return 0
}

func (e *Ebiten) JustPressed(a Action) bool {
	if a == Click {
		return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	}
	for _, k := range e.bindings.Actions[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (e *Ebiten) JustReleased(a Action) bool {
	if a == Click {
		return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	}
	for _, k := range e.bindings.Actions[a] {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}

func (e *Ebiten) Pressed(a Action) bool {
	if a == Click {
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
	return anyPressed(e.bindings.Actions[a])
}

func (e *Ebiten) Cursor() (int, int) {
	return ebiten.CursorPosition()
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
