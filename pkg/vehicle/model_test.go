package vehicle

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 0.02

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(DefaultTuning())
	require.NoError(t, err)
	return m
}

func TestAdvance_ThrottleFromRest(t *testing.T) {
	m := newTestModel(t)

	next := m.Advance(NewState(mgl64.Vec3{}, 0), Intent{Throttle: 1}, true, tick)

	assert.InDelta(t, 0.15, next.Speed, 1e-9)
	assert.InDelta(t, 0.15*tick, next.Position.Z(), 1e-9)
	assert.InDelta(t, 0, next.Position.X(), 1e-9)
}

func TestAdvance_BrakingWithoutThrottle(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)
	s.Speed = 5

	next := m.Advance(s, Intent{}, true, tick)

	assert.InDelta(t, 4.9, next.Speed, 1e-9)
}

func TestAdvance_AcceleratesWithoutOvershoot(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)

	for i := 0; i < 2000; i++ {
		next := m.Advance(s, Intent{Throttle: 1}, true, tick)
		require.Greater(t, next.Speed, s.Speed, "tick %d", i)
		require.LessOrEqual(t, next.Speed, m.Tuning.MaxSpeed, "tick %d", i)
		s = next
	}
	assert.Greater(t, s.Speed, 0.9*m.Tuning.MaxSpeed)
}

func TestAdvance_CoastsToExactlyZero(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)
	s.Speed = 12

	stopped := false
	for i := 0; i < 5000; i++ {
		next := m.Advance(s, Intent{}, true, tick)
		require.LessOrEqual(t, next.Speed, s.Speed, "tick %d", i)
		require.GreaterOrEqual(t, next.Speed, 0.0, "tick %d", i)
		s = next
		if s.Speed == 0 {
			stopped = true
			break
		}
	}
	assert.True(t, stopped, "speed never reached zero")
}

func TestAdvance_ReverseFromRest(t *testing.T) {
	m := newTestModel(t)

	next := m.Advance(NewState(mgl64.Vec3{}, 0), Intent{Throttle: -1}, true, tick)

	assert.InDelta(t, -0.15, next.Speed, 1e-9)
	assert.Less(t, next.Position.Z(), 0.0)
}

func TestAdvance_InvariantsHoldForAnyInput(t *testing.T) {
	m := newTestModel(t)
	intents := []Intent{
		{Throttle: 1, Steering: 1},
		{Throttle: -1, Steering: -1},
		{Throttle: 0, Steering: 1},
		{Throttle: 3, Steering: -7},
		{Throttle: -0.5, Steering: 0.25},
	}

	s := NewState(mgl64.Vec3{}, 0)
	s.Velocity = mgl64.Vec3{4, -3, 0}
	for i := 0; i < 3000; i++ {
		in := intents[i%len(intents)]
		if i%400 < 200 {
			in.Throttle = 1
		}
		s = m.Advance(s, in, i%7 != 0, tick)
		require.LessOrEqual(t, math.Abs(s.Speed), m.Tuning.MaxSpeed)
		require.LessOrEqual(t, s.AngularVelocity.Len(), m.Tuning.MaxAngularVelocity+1e-12)
	}
}

func TestAdvance_ReverseInvertsSteering(t *testing.T) {
	m := newTestModel(t)
	forward := NewState(mgl64.Vec3{}, 0)
	forward.Speed = 10
	backward := NewState(mgl64.Vec3{}, 0)
	backward.Speed = -10

	f := m.Advance(forward, Intent{Throttle: 1, Steering: 1}, true, tick)
	b := m.Advance(backward, Intent{Throttle: -1, Steering: 1}, true, tick)

	assert.Greater(t, f.AngularVelocity.Y(), 0.0)
	assert.Less(t, b.AngularVelocity.Y(), 0.0)
	assert.Equal(t, -1.0, EffectiveSteering(Intent{Throttle: -0.2, Steering: 1}))
	assert.Equal(t, 1.0, EffectiveSteering(Intent{Throttle: 0, Steering: 1}))
}

func TestAdvance_NoTurnWhileStationary(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)

	next := m.Advance(s, Intent{Steering: 1}, true, tick)

	assert.Zero(t, next.AngularVelocity.Len())
	assert.InDelta(t, 0, next.Heading(), 1e-12)
}

func TestAdvance_TurnRateIsClamped(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)
	s.Speed = m.Tuning.MaxSpeed

	next := m.Advance(s, Intent{Throttle: 1, Steering: 1}, true, tick)

	// 25 deg * 5 = 125 deg/s exceeds the 2 rad/s ceiling.
	assert.InDelta(t, m.Tuning.MaxAngularVelocity, next.AngularVelocity.Y(), 1e-12)
	assert.InDelta(t, m.Tuning.MaxAngularVelocity*tick, next.Heading(), 1e-9)
}

func TestAdvance_FrictionDependsOnGround(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)
	s.Velocity = mgl64.Vec3{0, 0, 1}

	grounded := m.Advance(s, Intent{}, true, tick)
	airborne := m.Advance(s, Intent{}, false, tick)

	assert.InDelta(t, 1-2*tick, grounded.Velocity.Len(), 1e-9)
	assert.InDelta(t, 1-0.5*tick, airborne.Velocity.Len(), 1e-9)
}

func TestAdvance_FrictionNeverReversesVelocity(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)
	s.Velocity = mgl64.Vec3{0.01, 0, 0}

	next := m.Advance(s, Intent{}, true, tick)

	assert.Equal(t, mgl64.Vec3{}, next.Velocity)
}

func TestAdvance_RollingResistanceSnapsCreep(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{}, 0)
	s.Speed = -5e-5

	next := m.Advance(s, Intent{}, true, tick)

	assert.Zero(t, next.Speed)
}

func TestAdvance_ZeroDeltaIsNoop(t *testing.T) {
	m := newTestModel(t)
	s := NewState(mgl64.Vec3{1, 2, 3}, 0.5)
	s.Speed = 7

	assert.Equal(t, s, m.Advance(s, Intent{Throttle: 1}, true, 0))
}

func TestAdvance_ZeroValueStateIsUsable(t *testing.T) {
	m := newTestModel(t)

	next := m.Advance(State{}, Intent{Throttle: 1}, true, tick)

	assert.InDelta(t, 0.15*tick, next.Position.Z(), 1e-9)
}

func TestState_AxesFollowHeading(t *testing.T) {
	s := NewState(mgl64.Vec3{}, math.Pi/2)

	assert.InDelta(t, 1, s.Forward().X(), 1e-9)
	assert.InDelta(t, -1, s.Right().Z(), 1e-9)
	assert.InDelta(t, 1, s.Up().Y(), 1e-9)
	assert.InDelta(t, math.Pi/2, s.Heading(), 1e-9)
}

func TestState_Halt(t *testing.T) {
	s := NewState(mgl64.Vec3{3, 0, 3}, 1)
	s.Speed = 20
	s.Velocity = mgl64.Vec3{1, 1, 1}
	s.AngularVelocity = mgl64.Vec3{0, 2, 0}

	s.Halt()

	assert.Zero(t, s.Speed)
	assert.Equal(t, mgl64.Vec3{}, s.Velocity)
	assert.Equal(t, mgl64.Vec3{}, s.AngularVelocity)
	assert.Equal(t, mgl64.Vec3{3, 0, 3}, s.Position)
}

func TestTuning_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Tuning) {}, ok: true},
		{name: "zero max speed", mutate: func(t *Tuning) { t.MaxSpeed = 0 }},
		{name: "negative braking", mutate: func(t *Tuning) { t.Braking = -1 }},
		{name: "negative air friction", mutate: func(t *Tuning) { t.AirFriction = -0.1 }},
		{name: "zero angular ceiling", mutate: func(t *Tuning) { t.MaxAngularVelocity = 0 }},
		{name: "zero stop epsilon", mutate: func(t *Tuning) { t.StopEpsilon = 0 }},
		{name: "negative stop epsilon", mutate: func(t *Tuning) { t.StopEpsilon = -1e-4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			err := tuning.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTuning)
		})
	}
}
