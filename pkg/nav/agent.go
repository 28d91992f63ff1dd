package nav

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Agent walks a planned path. A destination set during one tick is planned on the
// agent's next Update, so PathPending is true in between.
type Agent struct {
	ID       uuid.UUID
	Position mgl64.Vec3
	Speed    float64

	planner     Planner
	destination mgl64.Vec3
	hasDest     bool
	pending     bool
	path        []mgl64.Vec3
}

// NewAgent places an agent at pos that plans with p
func NewAgent(p Planner, pos mgl64.Vec3, speed float64) *Agent {
	return &Agent{
		ID:       uuid.New(),
		Position: pos,
		Speed:    speed,
		planner:  p,
	}
}

// SetDestination drops the current path and asks for a new one
func (a *Agent) SetDestination(d mgl64.Vec3) {
	a.destination = d
	a.hasDest = true
	a.pending = true
	a.path = nil
}

func (a *Agent) Destination() (mgl64.Vec3, bool) { return a.destination, a.hasDest }

func (a *Agent) PathPending() bool { return a.pending }

// Path returns the waypoints still ahead
func (a *Agent) Path() []mgl64.Vec3 { return a.path }

// RemainingDistance is the length of the path still to walk. An agent with no
// path has nothing left to walk.
func (a *Agent) RemainingDistance() float64 {
	d := 0.0
	from := a.Position
	for _, p := range a.path {
		d += p.Sub(from).Len()
		from = p
	}
	return d
}

// Update plans a pending path, or otherwise walks Speed*dt along the current one
func (a *Agent) Update(dt float64) {
	if a.pending {
		a.pending = false
		path, ok := a.planner.FindPath(a.Position, a.destination)
		if !ok {
			path = nil
		}
		a.path = path
		return
	}

	step := a.Speed * dt
	for step > 0 && len(a.path) > 0 {
		to := a.path[0].Sub(a.Position)
		dist := to.Len()
		if dist <= step {
			a.Position = a.path[0]
			a.path = a.path[1:]
			step -= dist
			continue
		}
		a.Position = a.Position.Add(to.Mul(step / dist))
		step = 0
	}
}
