package nav

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Wander keeps an agent roaming between random reachable points
type Wander struct {
	Agent          *Agent
	Query          Query
	Radius         float64
	ArriveDistance float64

	rng *rand.Rand
}

// NewWander roams within 10 units and re-targets inside half a unit of arrival
func NewWander(a *Agent, q Query, rng *rand.Rand) *Wander {
	return &Wander{
		Agent:          a,
		Query:          q,
		Radius:         10,
		ArriveDistance: 0.5,
		rng:            rng,
	}
}

// Start picks the first destination
func (w *Wander) Start() {
	w.retarget()
}

// Update advances the agent, then picks a new destination once it has arrived
func (w *Wander) Update(dt float64) {
	w.Agent.Update(dt)
	if !w.Agent.PathPending() && w.Agent.RemainingDistance() < w.ArriveDistance {
		w.retarget()
	}
}

// retarget samples a point near a random spot in the sphere around the agent. When
// nothing walkable is in range the old destination stands and the next tick retries.
func (w *Wander) retarget() bool {
	p := w.Agent.Position.Add(w.insideUnitSphere().Mul(w.Radius))
	hit, ok := w.Query.SamplePosition(p, w.Radius)
	if !ok {
		return false
	}
	w.Agent.SetDestination(hit)
	return true
}

func (w *Wander) insideUnitSphere() mgl64.Vec3 {
	for {
		v := mgl64.Vec3{
			w.rng.Float64()*2 - 1,
			w.rng.Float64()*2 - 1,
			w.rng.Float64()*2 - 1,
		}
		if v.Len() <= 1 {
			return v
		}
	}
}
