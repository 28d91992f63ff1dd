package nav

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/backroads/pkg/world"
)

// testGrid is a 20x20 field split by a wall at x in [2, 3] with a gap at the far
// end (z > 8), plus a kerb that stays walkable.
func testGrid() *Grid {
	t := world.NewTerrain(20, 20)
	t.AddPlatform(world.Platform{MinX: 2, MinZ: -10, MaxX: 3, MaxZ: 8, Height: 2})
	t.AddPlatform(world.Platform{MinX: -6, MinZ: -6, MaxX: -4, MaxZ: -4, Height: 0.3})
	return NewGrid(t, 1, 0.5)
}

func pathLength(from mgl64.Vec3, path []mgl64.Vec3) float64 {
	d := 0.0
	for _, p := range path {
		d += p.Sub(from).Len()
		from = p
	}
	return d
}

func TestGrid_Walkable(t *testing.T) {
	g := testGrid()
	assert.Equal(t, 20, g.Cols)
	assert.Equal(t, 20, g.Rows)

	wall, ok := g.CellAt(2.5, 0)
	require.True(t, ok)
	assert.False(t, g.Walkable(wall))

	kerb, _ := g.CellAt(-5, -5)
	assert.True(t, g.Walkable(kerb))
	assert.InDelta(t, 0.3, g.Center(kerb).Y(), 1e-9)

	_, ok = g.CellAt(50, 0)
	assert.False(t, ok)
	assert.False(t, g.Walkable(Cell{-1, 0}))
}

func TestGrid_SamplePosition(t *testing.T) {
	g := testGrid()

	p, ok := g.SamplePosition(mgl64.Vec3{2.5, 0, 0}, 2)
	require.True(t, ok)
	c, _ := g.CellAt(p.X(), p.Z())
	assert.True(t, g.Walkable(c))
	assert.LessOrEqual(t, p.Sub(mgl64.Vec3{2.5, 0, 0}).Len(), 1.2)

	p, ok = g.SamplePosition(mgl64.Vec3{0.2, 0, 0.3}, 1)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0.5}, p)

	_, ok = g.SamplePosition(mgl64.Vec3{100, 0, 0}, 2)
	assert.False(t, ok, "nothing in range")

	_, ok = g.SamplePosition(mgl64.Vec3{0, 5, 0}, 2)
	assert.False(t, ok, "distance is measured in 3D")
}

func TestGrid_FindPath(t *testing.T) {
	g := testGrid()
	from := mgl64.Vec3{0, 0, 0}

	path, ok := g.FindPath(from, mgl64.Vec3{5, 0, 0})
	require.True(t, ok)
	require.NotEmpty(t, path)
	assert.Equal(t, mgl64.Vec3{5.5, 0, 0.5}, path[len(path)-1])
	assert.Greater(t, pathLength(from, path), 15.0, "routes round the wall")
	for _, p := range path {
		c, _ := g.CellAt(p.X(), p.Z())
		assert.True(t, g.Walkable(c), "waypoint %v", p)
	}

	path, ok = g.FindPath(from, mgl64.Vec3{0.9, 0, 0.9})
	require.True(t, ok)
	assert.Equal(t, []mgl64.Vec3{{0.5, 0, 0.5}}, path)

	_, ok = g.FindPath(from, mgl64.Vec3{2.5, 0, 0})
	assert.False(t, ok, "goal inside the wall")

	_, ok = g.FindPath(from, mgl64.Vec3{40, 0, 0})
	assert.False(t, ok)
}

func TestAgent_PendsForOneTick(t *testing.T) {
	g := testGrid()
	a := NewAgent(g, mgl64.Vec3{0.5, 0, 0.5}, 2)

	a.SetDestination(mgl64.Vec3{-4.5, 0, 0.5})
	assert.True(t, a.PathPending())

	a.Update(0.1)
	assert.False(t, a.PathPending())
	assert.Equal(t, mgl64.Vec3{0.5, 0, 0.5}, a.Position, "planning tick doesn't move")
	assert.InDelta(t, 5, a.RemainingDistance(), 1e-9)

	a.Update(0.5)
	assert.InDelta(t, 4, a.RemainingDistance(), 1e-9)

	for i := 0; i < 100; i++ {
		a.Update(0.1)
	}
	assert.Zero(t, a.RemainingDistance())
	assert.Equal(t, mgl64.Vec3{-4.5, 0, 0.5}, a.Position)
	assert.Empty(t, a.Path())
}

func TestAgent_Unreachable(t *testing.T) {
	a := NewAgent(testGrid(), mgl64.Vec3{}, 2)

	a.SetDestination(mgl64.Vec3{2.5, 0, 0})
	a.Update(0.1)

	assert.False(t, a.PathPending())
	assert.Zero(t, a.RemainingDistance())
	d, ok := a.Destination()
	assert.True(t, ok)
	assert.Equal(t, mgl64.Vec3{2.5, 0, 0}, d)
}

func TestWander_Roams(t *testing.T) {
	g := testGrid()
	a := NewAgent(g, mgl64.Vec3{0.5, 0, 0.5}, 3.5)
	w := NewWander(a, g, rand.New(rand.NewSource(7)))

	w.Start()
	first, ok := a.Destination()
	require.True(t, ok)
	assert.True(t, a.PathPending())
	assert.LessOrEqual(t, first.Sub(mgl64.Vec3{0.5, 0, 0.5}).Len(), 2*w.Radius)

	retargets := 0
	last := first
	for i := 0; i < 3000; i++ {
		w.Update(1.0 / 60)
		if d, _ := a.Destination(); d != last {
			retargets++
			last = d
		}
		c, ok := g.CellAt(a.Position.X(), a.Position.Z())
		require.True(t, ok)
		require.True(t, g.Walkable(c), "agent left the navmesh at %v", a.Position)
	}
	assert.Greater(t, retargets, 1)
}

// flakyQuery answers once and then finds nothing
type flakyQuery struct {
	answer mgl64.Vec3
	calls  int
}

func (f *flakyQuery) SamplePosition(mgl64.Vec3, float64) (mgl64.Vec3, bool) {
	f.calls++
	return f.answer, f.calls == 1
}

func TestWander_FailedSampleKeepsDestination(t *testing.T) {
	g := testGrid()
	a := NewAgent(g, mgl64.Vec3{0.5, 0, 0.5}, 10)
	q := &flakyQuery{answer: mgl64.Vec3{1.5, 0, 0.5}}
	w := NewWander(a, q, rand.New(rand.NewSource(1)))

	w.Start()
	for i := 0; i < 10; i++ {
		w.Update(0.1)
	}

	d, ok := a.Destination()
	require.True(t, ok)
	assert.Equal(t, q.answer, d)
	assert.Equal(t, mgl64.Vec3{1.5, 0, 0.5}, a.Position)
	assert.Greater(t, q.calls, 2, "keeps retrying")
}

func TestWander_NothingInRange(t *testing.T) {
	a := NewAgent(testGrid(), mgl64.Vec3{}, 1)
	w := NewWander(a, &flakyQuery{calls: 1}, rand.New(rand.NewSource(1)))

	w.Start()

	_, ok := a.Destination()
	assert.False(t, ok)
	assert.False(t, a.PathPending())
}
