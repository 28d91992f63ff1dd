package player

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/world"
)

type anchor mgl64.Vec3

func (a anchor) Position() mgl64.Vec3 { return mgl64.Vec3(a) }

func TestMovement_Velocity(t *testing.T) {
	m := DefaultMovement()

	assert.Equal(t, mgl64.Vec3{}, m.Velocity(0, 0))
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, m.Velocity(0, 1))
	assert.Equal(t, mgl64.Vec3{-5, 0, 0}, m.Velocity(-0.3, 0), "partial input still walks at full speed")

	diag := m.Velocity(1, 1)
	assert.InDelta(t, 5, diag.Len(), 1e-9)
	assert.InDelta(t, 5/math.Sqrt2, diag.X(), 1e-9)
}

func TestPlayer_Walks(t *testing.T) {
	terrain := world.NewTerrain(100, 100)
	p := New(mgl64.Vec3{})
	src := input.Snapshot{Axes: map[input.Axis]float64{input.Vertical: 1}}

	for i := 0; i < 60; i++ {
		p.Update(src, terrain, world.DefaultGravity(), 1.0/60)
	}

	assert.InDelta(t, 5, p.Position().Z(), 1e-9)
	assert.Zero(t, p.Position().Y())
}

func TestPlayer_ControllerDisabled(t *testing.T) {
	terrain := world.NewTerrain(100, 100)
	p := New(mgl64.Vec3{})
	p.SetControllerEnabled(false)
	src := input.Snapshot{Axes: map[input.Axis]float64{input.Horizontal: 1}}

	p.Update(src, terrain, world.DefaultGravity(), 0.1)

	assert.Equal(t, mgl64.Vec3{}, p.Position())
}

func TestPlayer_RidesParent(t *testing.T) {
	terrain := world.NewTerrain(100, 100)
	p := New(mgl64.Vec3{1, 0, 0})
	p.SetKinematic(true)
	p.SetParent(anchor{10, 0, 4})

	assert.Equal(t, mgl64.Vec3{10, 0, 4}, p.Position())
	src := input.Snapshot{Axes: map[input.Axis]float64{input.Horizontal: 1}}
	p.Update(src, terrain, world.DefaultGravity(), 0.1)
	assert.Equal(t, mgl64.Vec3{10, 0, 4}, p.Position())

	p.SetParent(nil)
	assert.Equal(t, mgl64.Vec3{10, 0, 4}, p.Position(), "keeps the last ridden position")
}

func TestPlayer_FallsAfterExit(t *testing.T) {
	terrain := world.NewTerrain(100, 100)
	p := New(mgl64.Vec3{0, 1.5, 0})

	m := p.Update(input.Snapshot{}, terrain, world.DefaultGravity(), 0.1)
	assert.Less(t, m.Velocity.Y(), 0.0)

	for i := 0; i < 50; i++ {
		p.Update(input.Snapshot{}, terrain, world.DefaultGravity(), 0.1)
	}
	assert.Zero(t, p.Position().Y())
	assert.Zero(t, p.Velocity().Y())
}

func TestPlayer_BlockedByWall(t *testing.T) {
	terrain := world.NewTerrain(100, 100)
	terrain.AddPlatform(world.Platform{MinX: 1, MinZ: -5, MaxX: 3, MaxZ: 5, Height: 2})
	p := New(mgl64.Vec3{})
	src := input.Snapshot{Axes: map[input.Axis]float64{input.Horizontal: 1}}

	for i := 0; i < 60; i++ {
		p.Update(src, terrain, world.DefaultGravity(), 1.0/60)
	}

	assert.Less(t, p.Position().X(), 1.0)
}
