package nav

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/golangdaddy/backroads/pkg/world"
)

// Query finds walkable points
type Query interface {
	// SamplePosition returns the walkable point nearest p within maxDistance
	SamplePosition(p mgl64.Vec3, maxDistance float64) (mgl64.Vec3, bool)
}

// Planner finds a walkable route between two points
type Planner interface {
	FindPath(from, to mgl64.Vec3) ([]mgl64.Vec3, bool)
}

// Cell addresses one square of a Grid
type Cell struct {
	Col, Row int
}

// Grid is a walkable-cell navmesh baked from terrain. A cell is walkable when it
// has ground and that ground is no more than MaxStep above the base.
type Grid struct {
	MinX, MinZ float64
	CellSize   float64
	Cols, Rows int

	walkable []bool
	heights  []float64
}

// NewGrid bakes terrain into cells of cellSize
func NewGrid(t *world.Terrain, cellSize, maxStep float64) *Grid {
	g := &Grid{
		MinX:     t.MinX,
		MinZ:     t.MinZ,
		CellSize: cellSize,
		Cols:     int(math.Floor((t.MaxX - t.MinX) / cellSize)),
		Rows:     int(math.Floor((t.MaxZ - t.MinZ) / cellSize)),
	}
	g.walkable = make([]bool, g.Cols*g.Rows)
	g.heights = make([]float64, g.Cols*g.Rows)

	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x, z := g.centerXZ(Cell{col, row})
			h, ok := t.HeightAt(x, z)
			i := g.index(Cell{col, row})
			g.heights[i] = h
			g.walkable[i] = ok && h-t.BaseHeight <= maxStep
		}
	}
	return g
}

func (g *Grid) index(c Cell) int { return c.Row*g.Cols + c.Col }

func (g *Grid) inside(c Cell) bool {
	return c.Col >= 0 && c.Col < g.Cols && c.Row >= 0 && c.Row < g.Rows
}

func (g *Grid) centerXZ(c Cell) (float64, float64) {
	return g.MinX + (float64(c.Col)+0.5)*g.CellSize, g.MinZ + (float64(c.Row)+0.5)*g.CellSize
}

// CellAt returns the cell under (x, z)
func (g *Grid) CellAt(x, z float64) (Cell, bool) {
	c := Cell{
		Col: int(math.Floor((x - g.MinX) / g.CellSize)),
		Row: int(math.Floor((z - g.MinZ) / g.CellSize)),
	}
	return c, g.inside(c)
}

// Center is the point on the ground in the middle of c
func (g *Grid) Center(c Cell) mgl64.Vec3 {
	x, z := g.centerXZ(c)
	return mgl64.Vec3{x, g.heights[g.index(c)], z}
}

func (g *Grid) Walkable(c Cell) bool {
	return g.inside(c) && g.walkable[g.index(c)]
}

// SamplePosition returns the centre of the nearest walkable cell within maxDistance of p
func (g *Grid) SamplePosition(p mgl64.Vec3, maxDistance float64) (mgl64.Vec3, bool) {
	if maxDistance < 0 {
		return mgl64.Vec3{}, false
	}
	reach := int(math.Ceil(maxDistance/g.CellSize)) + 1
	col := int(math.Floor((p.X() - g.MinX) / g.CellSize))
	row := int(math.Floor((p.Z() - g.MinZ) / g.CellSize))

	best, bestDist, found := mgl64.Vec3{}, math.Inf(1), false
	for r := row - reach; r <= row+reach; r++ {
		for c := col - reach; c <= col+reach; c++ {
			cell := Cell{c, r}
			if !g.Walkable(cell) {
				continue
			}
			centre := g.Center(cell)
			d := centre.Sub(p).Len()
			if d <= maxDistance && d < bestDist {
				best, bestDist, found = centre, d, true
			}
		}
	}
	return best, found
}

var neighbours = []struct {
	dc, dr int
	cost   float64
}{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// FindPath runs A* over walkable cells with 8-way moves that never cut a blocked
// corner. The path starts after from's cell and ends on to's cell centre.
func (g *Grid) FindPath(from, to mgl64.Vec3) ([]mgl64.Vec3, bool) {
	start, ok := g.CellAt(from.X(), from.Z())
	if !ok {
		return nil, false
	}
	goal, ok := g.CellAt(to.X(), to.Z())
	if !ok || !g.Walkable(goal) {
		return nil, false
	}
	if start == goal {
		return []mgl64.Vec3{g.Center(goal)}, true
	}

	cameFrom := map[Cell]Cell{}
	cost := map[Cell]float64{start: 0}
	open := &openSet{}
	heap.Push(open, &node{cell: start, priority: octile(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*node)
		if cur.cell == goal {
			return g.walkBack(cameFrom, start, goal), true
		}
		if cur.cost > cost[cur.cell] {
			continue // stale
		}
		for _, n := range neighbours {
			next := Cell{cur.cell.Col + n.dc, cur.cell.Row + n.dr}
			if !g.Walkable(next) {
				continue
			}
			if n.dc != 0 && n.dr != 0 &&
				(!g.Walkable(Cell{cur.cell.Col + n.dc, cur.cell.Row}) || !g.Walkable(Cell{cur.cell.Col, cur.cell.Row + n.dr})) {
				continue
			}
			c := cost[cur.cell] + n.cost
			if old, seen := cost[next]; seen && c >= old {
				continue
			}
			cost[next] = c
			cameFrom[next] = cur.cell
			heap.Push(open, &node{cell: next, cost: c, priority: c + octile(next, goal)})
		}
	}
	return nil, false
}

func (g *Grid) walkBack(cameFrom map[Cell]Cell, start, goal Cell) []mgl64.Vec3 {
	var cells []Cell
	for c := goal; c != start; c = cameFrom[c] {
		cells = append(cells, c)
	}
	path := make([]mgl64.Vec3, len(cells))
	for i, c := range cells {
		path[len(cells)-1-i] = g.Center(c)
	}
	return path
}

func octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.Col - b.Col))
	dz := math.Abs(float64(a.Row - b.Row))
	return math.Max(dx, dz) + (math.Sqrt2-1)*math.Min(dx, dz)
}

type node struct {
	cell     Cell
	cost     float64
	priority float64
}

type openSet []*node

func (o openSet) Len() int            { return len(o) }
func (o openSet) Less(i, j int) bool  { return o[i].priority < o[j].priority }
func (o openSet) Swap(i, j int)       { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x interface{}) { *o = append(*o, x.(*node)) }
func (o *openSet) Pop() interface{} {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}
