package mesh

import (
	"fmt"

	"github.com/gkdas2/jax-am/utils"
)

// Mesh holds the raw geometry of a first-order hexahedral mesh: nodal
// coordinates and cell connectivity. It is constructed once by a generator or
// loader and read-only afterwards.
//
// The node order within each cell must follow the reference hexahedron
// layout (see hex.NodeSigns); the engine assumes, and cannot check, that the
// generator honored it.
type Mesh struct {
	Points utils.Matrix // (numNodes x 3) physical nodal coordinates
	Cells  [][]int      // (numCells x 8) node indices per cell
}

func New(points utils.Matrix, cells [][]int) (msh *Mesh, err error) {
	var (
		numNodes, nc = points.Dims()
	)
	if nc != 3 {
		err = fmt.Errorf("mesh points must have 3 coordinates per node, got %d", nc)
		return
	}
	for k, cell := range cells {
		if len(cell) != 8 {
			err = fmt.Errorf("cell %d has %d nodes, hex8 requires 8", k, len(cell))
			return
		}
		for _, n := range cell {
			if n < 0 || n >= numNodes {
				err = fmt.Errorf("cell %d references node %d, valid range is [0,%d)", k, n, numNodes)
				return
			}
		}
	}
	msh = &Mesh{
		Points: points,
		Cells:  cells,
	}
	return
}

func (msh *Mesh) NumNodes() int { n, _ := msh.Points.Dims(); return n }
func (msh *Mesh) NumCells() int { return len(msh.Cells) }

// Point returns the coordinates of node i.
func (msh *Mesh) Point(i int) (x utils.Vec3) {
	row := msh.Points.Row(i)
	x[0], x[1], x[2] = row[0], row[1], row[2]
	return
}
