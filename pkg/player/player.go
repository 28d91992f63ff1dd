package player

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/world"
)

// Movement turns the two walk axes into a velocity on the ground plane
type Movement struct {
	Speed float64
}

func DefaultMovement() Movement {
	return Movement{Speed: 5}
}

// Velocity normalises (h, v) so diagonals are no faster, then scales by Speed.
// h walks along +X and v along +Z.
func (m Movement) Velocity(h, v float64) mgl64.Vec3 {
	dir := mgl64.Vec2{h, v}
	if dir.Len() == 0 {
		return mgl64.Vec3{}
	}
	dir = dir.Normalize().Mul(m.Speed)
	return mgl64.Vec3{dir.X(), 0, dir.Y()}
}

// Player is the on-foot character. It stands in for a rigidbody with a collider
// and a movement controller that can each be switched off.
type Player struct {
	Movement Movement

	position          mgl64.Vec3
	velocity          mgl64.Vec3
	collision         bool
	kinematic         bool
	controllerEnabled bool
	parent            world.Anchor
}

// New returns a player standing at pos with everything enabled
func New(pos mgl64.Vec3) *Player {
	return &Player{
		Movement:          DefaultMovement(),
		position:          pos,
		collision:         true,
		controllerEnabled: true,
	}
}

func (p *Player) Position() mgl64.Vec3 {
	if p.parent != nil {
		return p.parent.Position()
	}
	return p.position
}

func (p *Player) SetPosition(pos mgl64.Vec3) { p.position = pos }

func (p *Player) Velocity() mgl64.Vec3 { return p.velocity }

func (p *Player) SetCollisionEnabled(enabled bool) { p.collision = enabled }

func (p *Player) CollisionEnabled() bool { return p.collision }

// SetKinematic takes the body out of the simulation and clears its velocity
func (p *Player) SetKinematic(kinematic bool) {
	p.kinematic = kinematic
	if kinematic {
		p.velocity = mgl64.Vec3{}
	}
}

func (p *Player) Kinematic() bool { return p.kinematic }

func (p *Player) SetControllerEnabled(enabled bool) { p.controllerEnabled = enabled }

func (p *Player) ControllerEnabled() bool { return p.controllerEnabled }

// SetParent makes the player ride along with a, or stand on their own when nil
func (p *Player) SetParent(a world.Anchor) {
	if a == nil && p.parent != nil {
		p.position = p.parent.Position()
	}
	p.parent = a
}

func (p *Player) Parent() world.Anchor { return p.parent }

// Update walks the player from src and settles them on s. A parented or
// kinematic player doesn't move on their own.
func (p *Player) Update(src input.Source, s world.Surface, g world.Gravity, dt float64) world.Motion {
	if p.parent != nil || p.kinematic {
		return world.Motion{Position: p.Position()}
	}

	walk := mgl64.Vec3{}
	if p.controllerEnabled {
		walk = p.Movement.Velocity(src.Axis(input.Horizontal), src.Axis(input.Vertical))
	}
	v := mgl64.Vec3{walk.X(), p.velocity.Y(), walk.Z()}

	m := g.Settle(s, p.position, p.position, v, dt)
	if !p.collision {
		// Without a collider nothing stops the walk.
		m.Position = p.position.Add(v.Mul(dt))
		m.Blocked = false
	}
	p.position = m.Position
	p.velocity = m.Velocity
	return m
}
