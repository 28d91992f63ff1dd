package game

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/golangdaddy/backroads/pkg/vehicle"
	"github.com/golangdaddy/backroads/pkg/world"
)

// Car is the drivable car in the world. Only Step writes its State during play.
type Car struct {
	State    vehicle.State
	Model    *vehicle.Model
	Preset   vehicle.Preset
	Probe    world.GroundProbe
	Surface  world.Surface
	Grounded bool
	Intent   vehicle.Intent // last intent applied, for the HUD
}

// NewCar places a car built from preset on terrain
func NewCar(preset vehicle.Preset, terrain *world.Terrain, state vehicle.State) (*Car, error) {
	model, err := vehicle.NewModel(preset.Tuning)
	if err != nil {
		return nil, err
	}
	return &Car{
		State:   state,
		Model:   model,
		Preset:  preset,
		Probe:   world.GroundProbe{World: terrain, Length: preset.Tuning.MaxGroundDistance},
		Surface: terrain,
	}, nil
}

func (c *Car) Position() mgl64.Vec3 { return c.State.Position }

func (c *Car) Right() mgl64.Vec3 { return c.State.Right() }

func (c *Car) Halt() { c.State.Halt() }

// Step runs one fixed tick: probe the ground, advance the motion model, then let
// gravity and the terrain have their say. Driving into a wall stops the car.
func (c *Car) Step(in vehicle.Intent, g world.Gravity, dt float64) world.Motion {
	c.Grounded = c.Probe.Grounded(c.State.Position, c.State.Up())
	next := c.Model.Advance(c.State, in, c.Grounded, dt)

	m := g.Settle(c.Surface, c.State.Position, next.Position, next.Velocity, dt)
	next.Position = m.Position
	next.Velocity = m.Velocity
	if m.Blocked {
		next.Speed = 0
	}

	c.State = next
	c.Intent = in.Clamp()
	return m
}

// Park settles a car nobody is driving. It doesn't move under its own power;
// only its residual velocity and gravity act on it.
func (c *Car) Park(g world.Gravity, dt float64) world.Motion {
	c.Grounded = c.Probe.Grounded(c.State.Position, c.State.Up())
	m := g.Settle(c.Surface, c.State.Position, c.State.Position, c.State.Velocity, dt)
	c.State.Position = m.Position
	c.State.Velocity = m.Velocity
	c.Intent = vehicle.Intent{}
	return m
}
