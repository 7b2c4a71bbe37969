package physics

import "math"

// cellKey addresses one column of the unbounded XZ grid.
type cellKey struct {
	x, z int32
}

// spatialGrid is a hashed uniform grid over the XZ plane used for the broad
// phase. A body is inserted into every cell its footprint touches, so two
// bodies that overlap always share at least one cell regardless of size.
//
// Cell slices are reused between steps; cells that stay empty for a whole
// step are dropped on the next reset.
type spatialGrid struct {
	cellSize    float64
	invCellSize float64
	cells       map[cellKey][]int
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	return &spatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cells:       make(map[cellKey][]int),
	}
}

func (g *spatialGrid) reset() {
	for k, items := range g.cells {
		if len(items) == 0 {
			delete(g.cells, k)
			continue
		}
		g.cells[k] = items[:0]
	}
}

// insert adds index to every cell covered by the footprint [minX,maxX]x[minZ,maxZ].
func (g *spatialGrid) insert(minX, minZ, maxX, maxZ float64, index int) {
	c0, r0 := g.posToCell(minX, minZ)
	c1, r1 := g.posToCell(maxX, maxZ)
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			k := cellKey{c, r}
			g.cells[k] = append(g.cells[k], index)
		}
	}
}

// eachPair calls fn for every pair of indices sharing a cell. A pair that
// shares several cells is reported once per shared cell.
func (g *spatialGrid) eachPair(fn func(a, b int)) {
	for _, items := range g.cells {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				fn(items[i], items[j])
			}
		}
	}
}

func (g *spatialGrid) posToCell(x, z float64) (col, row int32) {
	return int32(math.Floor(x * g.invCellSize)), int32(math.Floor(z * g.invCellSize))
}
