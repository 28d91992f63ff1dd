package camera

import (
	"math"
)

// View identifies one of the cameras in the scene
type View int

const (
	ViewPlayer View = iota
	ViewThirdPerson
	ViewFirstPerson
	ViewRearView
)

func (v View) String() string {
	switch v {
	case ViewPlayer:
		return "player"
	case ViewThirdPerson:
		return "third-person"
	case ViewFirstPerson:
		return "first-person"
	case ViewRearView:
		return "rear-view"
	}
	return "unknown"
}

// Rig switches cameras on and off
type Rig interface {
	SetActive(v View, active bool)
	IsActive(v View) bool
}

// Switcher is a Rig that tracks which cameras are enabled. More than one may be
// enabled at once; Current picks the one that renders, rear view winning over the
// car cameras.
type Switcher struct {
	active map[View]bool
}

// NewSwitcher returns a rig with only the player camera enabled
func NewSwitcher() *Switcher {
	return &Switcher{active: map[View]bool{ViewPlayer: true}}
}

func (s *Switcher) SetActive(v View, active bool) {
	s.active[v] = active
}

func (s *Switcher) IsActive(v View) bool {
	return s.active[v]
}

// Current returns the view that should render this frame
func (s *Switcher) Current() View {
	for _, v := range []View{ViewRearView, ViewFirstPerson, ViewThirdPerson, ViewPlayer} {
		if s.active[v] {
			return v
		}
	}
	return ViewPlayer
}

// Frame is the screen transform a view renders with
type Frame struct {
	X, Z     float64 // world point at the screen centre
	Zoom     float64 // pixels per world unit
	Rotation float64 // radians the world is rotated on screen
}

// Target is what a view looks at
type Target struct {
	X, Z    float64
	Heading float64
}

// Follow eases a Frame toward the active view's target
type Follow struct {
	Frame     Frame
	Smoothing float64 // fraction of the remaining distance covered per update
	primed    bool
}

// NewFollow returns a follow camera easing 10% of the way per update
func NewFollow() *Follow {
	return &Follow{Smoothing: 0.1, Frame: Frame{Zoom: zoomFor(ViewPlayer)}}
}

// Update moves the frame toward the wanted framing for view. The first update
// snaps so the camera doesn't sweep in from the origin.
func (f *Follow) Update(view View, target Target) Frame {
	want := Frame{X: target.X, Z: target.Z, Zoom: zoomFor(view)}
	switch view {
	case ViewFirstPerson:
		// Look ahead of the car and turn with it.
		want.X += math.Sin(target.Heading) * 6
		want.Z += math.Cos(target.Heading) * 6
		want.Rotation = target.Heading
	case ViewRearView:
		want.X -= math.Sin(target.Heading) * 6
		want.Z -= math.Cos(target.Heading) * 6
		want.Rotation = target.Heading + math.Pi
	}

	if !f.primed {
		f.Frame = want
		f.primed = true
		return f.Frame
	}

	k := f.Smoothing
	f.Frame.X += (want.X - f.Frame.X) * k
	f.Frame.Z += (want.Z - f.Frame.Z) * k
	f.Frame.Zoom += (want.Zoom - f.Frame.Zoom) * k
	f.Frame.Rotation += wrapAngle(want.Rotation-f.Frame.Rotation) * k
	f.Frame.Rotation = wrapAngle(f.Frame.Rotation)
	return f.Frame
}

func zoomFor(v View) float64 {
	switch v {
	case ViewThirdPerson:
		return 12
	case ViewFirstPerson, ViewRearView:
		return 22
	}
	return 16
}

// wrapAngle normalises an angle to [-pi, pi)
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
