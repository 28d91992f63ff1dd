package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/backroads/pkg/vehicle"
	"github.com/golangdaddy/backroads/pkg/world"
)

const tick = 1.0 / 50

func testCar(t *testing.T, terrain *world.Terrain) *Car {
	t.Helper()
	c, err := NewCar(vehicle.DefaultPresets()[0], terrain, vehicle.NewState(mgl64.Vec3{}, 0))
	require.NoError(t, err)
	return c
}

func TestNewCar_InvalidTuning(t *testing.T) {
	_, err := NewCar(vehicle.Preset{Name: "broken"}, world.NewTerrain(10, 10), vehicle.NewState(mgl64.Vec3{}, 0))
	assert.ErrorIs(t, err, vehicle.ErrInvalidTuning)
}

func TestCar_StepDrivesForward(t *testing.T) {
	c := testCar(t, world.NewTerrain(100, 100))
	g := world.DefaultGravity()

	for i := 0; i < 50; i++ {
		c.Step(vehicle.Intent{Throttle: 1}, g, tick)
	}

	assert.True(t, c.Grounded)
	assert.Greater(t, c.State.Speed, 0.0)
	assert.Greater(t, c.Position().Z(), 0.0)
	assert.InDelta(t, 0, c.Position().X(), 1e-9)
	assert.InDelta(t, 0, c.Position().Y(), 1e-9)
	assert.Equal(t, 1.0, c.Intent.Throttle)
}

func TestCar_StepClampsIntent(t *testing.T) {
	c := testCar(t, world.NewTerrain(100, 100))
	c.Step(vehicle.Intent{Throttle: 3, Steering: -4}, world.DefaultGravity(), tick)
	assert.Equal(t, vehicle.Intent{Throttle: 1, Steering: -1}, c.Intent)
}

func TestCar_WallStops(t *testing.T) {
	terrain := world.NewTerrain(100, 100)
	terrain.AddPlatform(world.Platform{MinX: -10, MinZ: 3, MaxX: 10, MaxZ: 5, Height: 2})
	c := testCar(t, terrain)
	g := world.DefaultGravity()

	blocked := false
	for i := 0; i < 200; i++ {
		if m := c.Step(vehicle.Intent{Throttle: 1}, g, tick); m.Blocked {
			blocked = true
			assert.Zero(t, c.State.Speed)
		}
	}

	assert.True(t, blocked)
	assert.Less(t, c.Position().Z(), 3.0)
}

func TestCar_Halt(t *testing.T) {
	c := testCar(t, world.NewTerrain(100, 100))
	for i := 0; i < 20; i++ {
		c.Step(vehicle.Intent{Throttle: 1}, world.DefaultGravity(), tick)
	}
	require.NotZero(t, c.State.Speed)

	c.Halt()

	assert.Zero(t, c.State.Speed)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, c.Right())
}

func TestCar_ParkDoesNotRoll(t *testing.T) {
	c := testCar(t, world.NewTerrain(100, 100))
	g := world.DefaultGravity()
	for i := 0; i < 50; i++ {
		c.Step(vehicle.Intent{Throttle: 1}, g, tick)
	}
	require.Greater(t, c.State.Speed, 1.0)
	parked := c.Position()

	for i := 0; i < 50; i++ {
		c.Park(g, tick)
	}

	assert.Equal(t, parked, c.Position())
	assert.Equal(t, vehicle.Intent{}, c.Intent)
}

func TestCar_ParkedCarStillFalls(t *testing.T) {
	c, err := NewCar(vehicle.DefaultPresets()[0], world.NewTerrain(100, 100), vehicle.NewState(mgl64.Vec3{1, 2, 3}, 0))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		c.Park(world.DefaultGravity(), tick)
	}

	assert.InDelta(t, 0, c.Position().Y(), 1e-9)
	assert.InDelta(t, 1, c.Position().X(), 1e-9)
	assert.InDelta(t, 3, c.Position().Z(), 1e-9)
	assert.True(t, c.Grounded)
}
