package world

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Surface is the part of the world a body rests on
type Surface interface {
	HeightAt(x, z float64) (float64, bool)
}

// Anchor is something a body can ride along with
type Anchor interface {
	Position() mgl64.Vec3
}

// Gravity settles bodies onto a Surface. It stands in for the host rigidbody: it
// only knows falling, resting and being stopped by a ledge too tall to climb.
type Gravity struct {
	Accel      float64 // downward acceleration, units per second squared
	StepHeight float64 // tallest ledge a body climbs without being blocked
	FloorY     float64 // bodies falling below this are out of the world
}

// DefaultGravity returns the settling used by the world scene
func DefaultGravity() Gravity {
	return Gravity{Accel: 9.81, StepHeight: 0.5, FloorY: -30}
}

// Motion is the outcome of one settle step
type Motion struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Blocked  bool // the move ran into a wall and was undone horizontally
	Lost     bool // the body fell out of the world
}

// Settle moves a body from prev to next (next already carries any kinematic
// displacement), integrates the residual velocity over dt, and resolves it against
// the surface.
func (g Gravity) Settle(s Surface, prev, next, velocity mgl64.Vec3, dt float64) Motion {
	pos := next.Add(velocity.Mul(dt))
	m := Motion{Position: pos, Velocity: velocity}

	h, ok := s.HeightAt(pos.X(), pos.Z())
	switch {
	case !ok || pos.Y() > h:
		m.Velocity[1] -= g.Accel * dt
	case h-prev.Y() > g.StepHeight:
		// Ledge taller than a step above where we came from: undo the horizontal move.
		m.Position = mgl64.Vec3{prev.X(), pos.Y(), prev.Z()}
		m.Velocity = mgl64.Vec3{0, velocity.Y(), 0}
		m.Blocked = true
		if ph, pok := s.HeightAt(prev.X(), prev.Z()); pok && m.Position.Y() <= ph {
			m.Position[1] = ph
			if m.Velocity[1] < 0 {
				m.Velocity[1] = 0
			}
		}
	default:
		m.Position[1] = h
		if m.Velocity[1] < 0 {
			m.Velocity[1] = 0
		}
	}

	if m.Position.Y() < g.FloorY {
		m.Lost = true
	}
	return m
}
