package mesh

import (
	"fmt"

	"github.com/gkdas2/jax-am/utils"
)

// Box generates a structured hex8 mesh of the box [0,lx]x[0,ly]x[0,lz] with
// nx, ny, nz cells per direction. Cell node ordering follows the reference
// layout: the four bottom-face corners counter-clockwise, then the four top
// corners above them.
func Box(nx, ny, nz int, lx, ly, lz float64) (msh *Mesh, err error) {
	if nx < 1 || ny < 1 || nz < 1 {
		err = fmt.Errorf("box mesh needs at least one cell per direction, got %d,%d,%d", nx, ny, nz)
		return
	}
	if lx <= 0 || ly <= 0 || lz <= 0 {
		err = fmt.Errorf("box mesh needs positive extents, got %v,%v,%v", lx, ly, lz)
		return
	}
	var (
		npx, npy, npz = nx + 1, ny + 1, nz + 1
		numNodes      = npx * npy * npz
		hx, hy, hz    = lx / float64(nx), ly / float64(ny), lz / float64(nz)
		points        = utils.NewMatrix(numNodes, 3)
		cells         = make([][]int, 0, nx*ny*nz)
	)
	// node index: x fastest, then y, then z
	nid := func(i, j, k int) int { return i + npx*(j+npy*k) }
	for k := 0; k < npz; k++ {
		for j := 0; j < npy; j++ {
			for i := 0; i < npx; i++ {
				n := nid(i, j, k)
				points.Set(n, 0, float64(i)*hx)
				points.Set(n, 1, float64(j)*hy)
				points.Set(n, 2, float64(k)*hz)
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				cells = append(cells, []int{
					nid(i, j, k), nid(i+1, j, k), nid(i+1, j+1, k), nid(i, j+1, k),
					nid(i, j, k+1), nid(i+1, j, k+1), nid(i+1, j+1, k+1), nid(i, j+1, k+1),
				})
			}
		}
	}
	return New(points, cells)
}
