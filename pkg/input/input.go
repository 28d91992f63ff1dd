package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrUnknownKey is returned when a binding names a key ebiten doesn't have
var ErrUnknownKey = errors.New("unknown key")

// Action is a discrete button the game reacts to
type Action int

const (
	Interact Action = iota
	SwitchCamera
	RearView
	Horn
	QuickSave
	QuickLoad
	Click
	Confirm
	MenuUp
	MenuDown
	Back
)

var actionNames = map[Action]string{
	Interact:     "interact",
	SwitchCamera: "switch_camera",
	RearView:     "rear_view",
	Horn:         "horn",
	QuickSave:    "quicksave",
	QuickLoad:    "quickload",
	Click:        "click",
	Confirm:      "confirm",
	MenuUp:       "menu_up",
	MenuDown:     "menu_down",
	Back:         "back",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// ParseAction maps a config name such as "rear_view" to its Action
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if strings.EqualFold(n, name) {
			return a, true
		}
	}
	return 0, false
}

// Axis is an analogue control in [-1, 1]
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Source is what the game reads input from each tick
type Source interface {
	Axis(a Axis) float64
	JustPressed(a Action) bool
	JustReleased(a Action) bool
	Pressed(a Action) bool
	Cursor() (x, y int)
}

// AxisKeys are the keys that push an axis toward -1 and +1
type AxisKeys struct {
	Negative []ebiten.Key
	Positive []ebiten.Key
}

// Bindings maps actions and axes to keys
type Bindings struct {
	Actions map[Action][]ebiten.Key
	Axes    map[Axis]AxisKeys
}

// DefaultBindings are WASD/arrows to drive and walk, E to get in and out, V for the
// camera, C to look back, H for the horn and F5/F9 to save and load. Menus use
// the arrows, Enter or Space, and Escape.
func DefaultBindings() Bindings {
	return Bindings{
		Actions: map[Action][]ebiten.Key{
			Interact:     {ebiten.KeyE},
			SwitchCamera: {ebiten.KeyV},
			RearView:     {ebiten.KeyC},
			Horn:         {ebiten.KeyH},
			QuickSave:    {ebiten.KeyF5},
			QuickLoad:    {ebiten.KeyF9},
			Confirm:      {ebiten.KeyEnter, ebiten.KeySpace},
			MenuUp:       {ebiten.KeyArrowUp},
			MenuDown:     {ebiten.KeyArrowDown},
			Back:         {ebiten.KeyEscape},
		},
		Axes: map[Axis]AxisKeys{
			Horizontal: {
				Negative: []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
				Positive: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
			},
			Vertical: {
				Negative: []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
				Positive: []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
			},
		},
	}
}

// WithOverrides returns a copy of b with the named actions rebound. Keys are
// named the way ebiten prints them ("E", "ArrowUp", "F5"), case-insensitively.
func (b Bindings) WithOverrides(overrides map[string][]string) (Bindings, error) {
	out := Bindings{
		Actions: make(map[Action][]ebiten.Key, len(b.Actions)),
		Axes:    b.Axes,
	}
	for a, keys := range b.Actions {
		out.Actions[a] = keys
	}

	// Sorted so the first bad entry reported is stable.
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := ParseAction(name)
		if !ok {
			return b, fmt.Errorf("bind %q: unknown action", name)
		}
		keys := make([]ebiten.Key, 0, len(overrides[name]))
		for _, keyName := range overrides[name] {
			k, err := ParseKey(keyName)
			if err != nil {
				return b, fmt.Errorf("bind %q: %w", name, err)
			}
			keys = append(keys, k)
		}
		out.Actions[action] = keys
	}
	return out, nil
}

// ParseKey resolves a key name against ebiten's own key names
func ParseKey(name string) (ebiten.Key, error) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}
