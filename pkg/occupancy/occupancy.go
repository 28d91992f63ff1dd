package occupancy

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/golangdaddy/backroads/pkg/audio"
	"github.com/golangdaddy/backroads/pkg/camera"
	"github.com/golangdaddy/backroads/pkg/input"
	"github.com/golangdaddy/backroads/pkg/world"
)

// ErrTooFar is returned when the occupant is out of reach of the vehicle
var ErrTooFar = errors.New("too far from vehicle")

// EnterDistance is how close the occupant must stand to get in
const EnterDistance = 3.0

// State says whether the occupant is in the vehicle
type State int

const (
	Outside State = iota
	Inside
)

func (s State) String() string {
	if s == Inside {
		return "inside"
	}
	return "outside"
}

// Occupant is whoever gets in and out
type Occupant interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	SetCollisionEnabled(enabled bool)
	SetKinematic(kinematic bool)
	SetControllerEnabled(enabled bool)
	// SetParent attaches the occupant to an anchor, or detaches it when nil
	SetParent(a world.Anchor)
}

// Vehicle is what the occupant gets into
type Vehicle interface {
	world.Anchor
	Right() mgl64.Vec3
	// Halt stops the vehicle dead
	Halt()
}

// Signals are this tick's edges from the input source
type Signals struct {
	Interact     bool
	SwitchCamera bool
	RearViewDown bool
	RearViewUp   bool
	Horn         bool
}

// SignalsFrom reads the occupancy edges from src
func SignalsFrom(src input.Source) Signals {
	return Signals{
		Interact:     src.JustPressed(input.Interact),
		SwitchCamera: src.JustPressed(input.SwitchCamera),
		RearViewDown: src.JustPressed(input.RearView),
		RearViewUp:   src.JustReleased(input.RearView),
		Horn:         src.JustPressed(input.Horn),
	}
}

// Controller moves an occupant in and out of a vehicle and keeps the cameras and
// sounds in step with it.
type Controller struct {
	occupant Occupant
	vehicle  Vehicle
	rig      camera.Rig
	sink     audio.Sink
	logger   *zap.Logger
	state    State
}

// NewController starts Outside with only the player camera enabled. A nil sink
// is silent.
func NewController(o Occupant, v Vehicle, rig camera.Rig, sink audio.Sink, logger *zap.Logger) *Controller {
	if sink == nil {
		sink = audio.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{
		occupant: o,
		vehicle:  v,
		rig:      rig,
		sink:     sink,
		logger:   logger,
	}
	c.setCarCameras(false, false, false)
	return c
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Inside() bool { return c.state == Inside }

// Update reacts to one tick of signals
func (c *Controller) Update(s Signals) {
	if s.Interact {
		if c.state == Outside {
			if err := c.TryEnter(); err != nil {
				c.logger.Debug("enter rejected", zap.Error(err))
			}
		} else {
			c.Exit()
		}
	}

	// Everything below only applies once seated, including the tick we got in.
	if c.state != Inside {
		return
	}
	if s.SwitchCamera {
		c.switchCamera()
	}
	if s.RearViewDown {
		c.rig.SetActive(camera.ViewRearView, true)
	} else if s.RearViewUp {
		c.rig.SetActive(camera.ViewRearView, false)
	}
	if s.Horn {
		c.sink.PlayOneShot(audio.ClipHorn)
	}
}

// Distance is how far the occupant stands from the vehicle
func (c *Controller) Distance() float64 {
	return c.occupant.Position().Sub(c.vehicle.Position()).Len()
}

// TryEnter gets in if the occupant is within EnterDistance
func (c *Controller) TryEnter() error {
	if c.state == Inside {
		return nil
	}
	if d := c.Distance(); d >= EnterDistance {
		return ErrTooFar
	}
	c.enter(true)
	return nil
}

func (c *Controller) enter(startEngine bool) {
	c.occupant.SetCollisionEnabled(false)
	c.occupant.SetKinematic(true)
	c.occupant.SetControllerEnabled(false)
	c.vehicle.Halt()

	if startEngine {
		c.sink.PlayOneShot(audio.ClipEngineStart)
	}
	c.sink.PlayLoop(audio.ClipDriving)

	c.occupant.SetParent(c.vehicle)
	c.rig.SetActive(camera.ViewPlayer, false)
	c.setCarCameras(true, false, false)

	c.state = Inside
	c.logger.Info("entered vehicle")
}

// Exit gets out and drops the occupant beside the driver's door
func (c *Controller) Exit() {
	if c.state == Outside {
		return
	}
	c.occupant.SetCollisionEnabled(true)
	c.occupant.SetKinematic(false)
	c.occupant.SetControllerEnabled(true)
	c.sink.Stop()

	c.occupant.SetParent(nil)
	c.occupant.SetPosition(ExitPoint(c.vehicle))

	c.rig.SetActive(camera.ViewPlayer, true)
	c.setCarCameras(false, false, false)

	c.state = Outside
	c.logger.Info("exited vehicle")
}

// Restore puts the controller into s without range checks or the starter sound,
// for loading a save.
func (c *Controller) Restore(s State) {
	switch {
	case s == Inside && c.state == Outside:
		c.enter(false)
	case s == Outside && c.state == Inside:
		c.Exit()
	}
}

// ExitPoint is two units to the vehicle's left and a step and a half up
func ExitPoint(v Vehicle) mgl64.Vec3 {
	return v.Position().Sub(v.Right().Mul(2)).Add(mgl64.Vec3{0, 1.5, 0})
}

func (c *Controller) switchCamera() {
	if c.rig.IsActive(camera.ViewThirdPerson) {
		c.rig.SetActive(camera.ViewThirdPerson, false)
		c.rig.SetActive(camera.ViewFirstPerson, true)
		return
	}
	c.rig.SetActive(camera.ViewFirstPerson, false)
	c.rig.SetActive(camera.ViewThirdPerson, true)
}

func (c *Controller) setCarCameras(third, first, rear bool) {
	c.rig.SetActive(camera.ViewThirdPerson, third)
	c.rig.SetActive(camera.ViewFirstPerson, first)
	c.rig.SetActive(camera.ViewRearView, rear)
}
