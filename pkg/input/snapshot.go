package input

// Snapshot is a Source holding fixed values, for replays and tests
type Snapshot struct {
	Axes     map[Axis]float64
	Held     map[Action]bool
	JustDown map[Action]bool
	JustUp   map[Action]bool
	X, Y     int
}

func (s Snapshot) Axis(a Axis) float64        { return s.Axes[a] }
func (s Snapshot) JustPressed(a Action) bool  { return s.JustDown[a] }
func (s Snapshot) JustReleased(a Action) bool { return s.JustUp[a] }
func (s Snapshot) Pressed(a Action) bool      { return s.Held[a] }
func (s Snapshot) Cursor() (int, int)         { return s.X, s.Y }
