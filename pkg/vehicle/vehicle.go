package vehicle

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidTuning is returned when a Tuning cannot drive the motion model
var ErrInvalidTuning = errors.New("invalid vehicle tuning")

var (
	axisForward = mgl64.Vec3{0, 0, 1}
	axisRight   = mgl64.Vec3{1, 0, 0}
	axisUp      = mgl64.Vec3{0, 1, 0}
)

// Tuning holds the arcade handling parameters of a vehicle
type Tuning struct {
	MaxSpeed           float64 `yaml:"max_speed" json:"max_speed"`                       // units per second
	Acceleration       float64 `yaml:"acceleration" json:"acceleration"`                 // fraction of MaxSpeed gained per second from rest
	Braking            float64 `yaml:"braking" json:"braking"`                           // deceleration at MaxSpeed with no throttle
	MaxTurnAngle       float64 `yaml:"max_turn_angle" json:"max_turn_angle"`             // degrees
	TurnSpeedModifier  float64 `yaml:"turn_speed_modifier" json:"turn_speed_modifier"`   // scales MaxTurnAngle into a yaw rate
	GroundFriction     float64 `yaml:"ground_friction" json:"ground_friction"`           // velocity removed per second while grounded
	AirFriction        float64 `yaml:"air_friction" json:"air_friction"`                 // velocity removed per second while airborne
	MaxGroundDistance  float64 `yaml:"max_ground_distance" json:"max_ground_distance"`   // ground probe length
	MaxAngularVelocity float64 `yaml:"max_angular_velocity" json:"max_angular_velocity"` // radians per second
	StopEpsilon        float64 `yaml:"stop_epsilon" json:"stop_epsilon"`                 // speeds below this count as stopped
}

// DefaultTuning returns the stock handling used when no preset is selected
func DefaultTuning() Tuning {
	return Tuning{
		MaxSpeed:           30,
		Acceleration:       0.25,
		Braking:            30,
		MaxTurnAngle:       25,
		TurnSpeedModifier:  5,
		GroundFriction:     2,
		AirFriction:        0.5,
		MaxGroundDistance:  0.2,
		MaxAngularVelocity: 2,
		StopEpsilon:        1e-4,
	}
}

// Validate reports whether the tuning can be used by a Model
func (t Tuning) Validate() error {
	switch {
	case t.MaxSpeed <= 0:
		return fmt.Errorf("%w: max_speed must be positive, got %v", ErrInvalidTuning, t.MaxSpeed)
	case t.Acceleration <= 0:
		return fmt.Errorf("%w: acceleration must be positive, got %v", ErrInvalidTuning, t.Acceleration)
	case t.Braking < 0:
		return fmt.Errorf("%w: braking must not be negative, got %v", ErrInvalidTuning, t.Braking)
	case t.GroundFriction < 0 || t.AirFriction < 0:
		return fmt.Errorf("%w: friction must not be negative", ErrInvalidTuning)
	case t.MaxAngularVelocity <= 0:
		return fmt.Errorf("%w: max_angular_velocity must be positive, got %v", ErrInvalidTuning, t.MaxAngularVelocity)
	case t.MaxGroundDistance <= 0:
		return fmt.Errorf("%w: max_ground_distance must be positive, got %v", ErrInvalidTuning, t.MaxGroundDistance)
	case t.StopEpsilon <= 0:
		// Braking alone only decays speed; below epsilon rolling resistance finishes it.
		return fmt.Errorf("%w: stop_epsilon must be positive, got %v", ErrInvalidTuning, t.StopEpsilon)
	}
	return nil
}

// State is the kinematic state of a vehicle. Y is up and the vehicle faces +Z when
// Orientation is the identity.
type State struct {
	Position        mgl64.Vec3 `json:"position"`
	Orientation     mgl64.Quat `json:"orientation"`
	Speed           float64    `json:"speed"`            // signed speed along Forward
	Velocity        mgl64.Vec3 `json:"velocity"`         // residual velocity not produced by Speed (falls, knocks)
	AngularVelocity mgl64.Vec3 `json:"angular_velocity"` // radians per second
}

// NewState places a stationary vehicle at position facing heading (radians about +Y)
func NewState(position mgl64.Vec3, heading float64) State {
	return State{
		Position:    position,
		Orientation: mgl64.QuatRotate(heading, axisUp),
	}
}

// Forward returns the world-space forward axis
func (s State) Forward() mgl64.Vec3 {
	return s.orientation().Rotate(axisForward)
}

// Right returns the world-space right axis
func (s State) Right() mgl64.Vec3 {
	return s.orientation().Rotate(axisRight)
}

// Up returns the world-space up axis
func (s State) Up() mgl64.Vec3 {
	return s.orientation().Rotate(axisUp)
}

// Heading returns the yaw in radians, 0 facing +Z and increasing toward +X
func (s State) Heading() float64 {
	f := s.Forward()
	return math.Atan2(f.X(), f.Z())
}

// Halt drops all motion, used when a driver climbs in
func (s *State) Halt() {
	s.Speed = 0
	s.Velocity = mgl64.Vec3{}
	s.AngularVelocity = mgl64.Vec3{}
}

// orientation tolerates the zero quaternion a zero-valued State carries
func (s State) orientation() mgl64.Quat {
	if s.Orientation.W == 0 && s.Orientation.V.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return s.Orientation
}

// Intent is the driver's control input for one tick
type Intent struct {
	Throttle float64 // -1 full reverse, 1 full throttle
	Steering float64 // -1 full left, 1 full right
}

// Clamp bounds both axes to [-1, 1]
func (i Intent) Clamp() Intent {
	return Intent{
		Throttle: mgl64.Clamp(i.Throttle, -1, 1),
		Steering: mgl64.Clamp(i.Steering, -1, 1),
	}
}

// EffectiveSteering is the steering used for the turn angle. Reversing flips it so the
// car turns the way the driver expects.
func EffectiveSteering(i Intent) float64 {
	if i.Throttle < 0 {
		return -i.Steering
	}
	return i.Steering
}
