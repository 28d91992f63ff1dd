package input

// Smoother eases a digital axis into an analogue one. The value moves toward the
// raw target at Sensitivity units/s, falls back to zero at Gravity units/s when
// released, and jumps to zero first when the direction flips.
type Smoother struct {
	Sensitivity float64
	Gravity     float64
	Snap        bool

	value float64
}

// NewSmoother returns a smoother with the usual keyboard feel (3/s both ways, snapping)
func NewSmoother() *Smoother {
	return &Smoother{Sensitivity: 3, Gravity: 3, Snap: true}
}

// Update advances toward raw and returns the smoothed value
func (s *Smoother) Update(raw, dt float64) float64 {
	switch {
	case raw == 0:
		s.value = towards(s.value, 0, s.Gravity*dt)
	default:
		if s.Snap && s.value*raw < 0 {
			s.value = 0
		}
		s.value = towards(s.value, raw, s.Sensitivity*dt)
	}
	return s.value
}

func (s *Smoother) Value() float64 { return s.value }

func (s *Smoother) Reset() { s.value = 0 }

func towards(cur, target, step float64) float64 {
	if cur < target {
		cur += step
		if cur > target {
			cur = target
		}
	} else if cur > target {
		cur -= step
		if cur < target {
			cur = target
		}
	}
	return cur
}
