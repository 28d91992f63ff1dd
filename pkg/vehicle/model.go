package vehicle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// rollingResistanceFactor scales GroundFriction into the creep-killing deceleration
// applied once the car has all but stopped
const rollingResistanceFactor = 2.0

// Model advances a vehicle State with an arcade, wheel-less handling model.
// Speed approaches MaxSpeed asymptotically, the body is displaced kinematically
// along its forward axis, and yaw comes from a single clamped angular velocity.
type Model struct {
	Tuning Tuning
}

// NewModel validates tuning and returns a Model for it
func NewModel(tuning Tuning) (*Model, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	return &Model{Tuning: tuning}, nil
}

// Advance runs one fixed tick of length dt and returns the new state.
// It never fails: intent is clamped and a non-positive dt leaves the state untouched.
func (m *Model) Advance(s State, in Intent, grounded bool, dt float64) State {
	if dt <= 0 {
		return s
	}
	t := m.Tuning
	in = in.Clamp()

	s.Speed = m.nextSpeed(s.Speed, in.Throttle, dt)

	// Kinematic displacement along the nose, no force integration.
	s.Position = s.Position.Add(s.Forward().Mul(s.Speed * dt))

	turnRate := EffectiveSteering(in) * t.MaxTurnAngle * clamp01(math.Abs(s.Speed)/t.MaxSpeed) * t.TurnSpeedModifier
	s.AngularVelocity = mgl64.Vec3{0, mgl64.DegToRad(turnRate), 0}

	s.Velocity = applyFriction(s.Velocity, t.friction(grounded)*dt)
	s.AngularVelocity = clampMagnitude(s.AngularVelocity, t.MaxAngularVelocity)

	yaw := mgl64.QuatRotate(s.AngularVelocity.Y()*dt, axisUp)
	s.Orientation = s.orientation().Mul(yaw).Normalize()

	if math.Abs(s.Speed) <= t.StopEpsilon {
		s.Speed = moveTowards(s.Speed, 0, t.GroundFriction*rollingResistanceFactor*dt)
	}

	return s
}

// nextSpeed applies throttle, reverse or braking and clamps the result
func (m *Model) nextSpeed(speed, throttle, dt float64) float64 {
	t := m.Tuning
	switch {
	case throttle > 0:
		taper := 1 - speed/t.MaxSpeed
		speed += t.MaxSpeed * t.Acceleration * taper * taper * dt
	case throttle < 0:
		taper := 1 - math.Abs(speed)/t.MaxSpeed
		speed -= t.MaxSpeed * t.Acceleration * taper * taper * dt
	default:
		brakeForce := t.Braking * clamp01(math.Abs(speed)/t.MaxSpeed)
		speed = moveTowards(speed, 0, brakeForce*dt)
	}
	return mgl64.Clamp(speed, -t.MaxSpeed, t.MaxSpeed)
}

func (t Tuning) friction(grounded bool) float64 {
	if grounded {
		return t.GroundFriction
	}
	return t.AirFriction
}

// applyFriction removes amount from the magnitude of v without reversing it
func applyFriction(v mgl64.Vec3, amount float64) mgl64.Vec3 {
	length := v.Len()
	if length <= amount || length == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul((length - amount) / length)
}

func clampMagnitude(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	length := v.Len()
	if length <= limit || length == 0 {
		return v
	}
	return v.Mul(limit / length)
}

func moveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

func clamp01(v float64) float64 {
	return mgl64.Clamp(v, 0, 1)
}
