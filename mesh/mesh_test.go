package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gkdas2/jax-am/utils"
)

func TestBox(t *testing.T) {
	// Single-cell unit cube
	{
		msh, err := Box(1, 1, 1, 1, 1, 1)
		assert.NoError(t, err)
		assert.Equal(t, 8, msh.NumNodes())
		assert.Equal(t, 1, msh.NumCells())
		// node order matches the reference corner signs
		signs := [8][3]float64{
			{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
			{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
		}
		for n, node := range msh.Cells[0] {
			x := msh.Point(node)
			for d := 0; d < 3; d++ {
				want := 0.5 * (signs[n][d] + 1)
				assert.True(t, near(x[d], want))
			}
		}
	}
	// Multi-cell box: counts and shared nodes
	{
		msh, err := Box(2, 3, 4, 2, 3, 4)
		assert.NoError(t, err)
		assert.Equal(t, 3*4*5, msh.NumNodes())
		assert.Equal(t, 24, msh.NumCells())
		// adjacent cells in x share a face of 4 nodes
		shared := 0
		for _, n := range msh.Cells[0] {
			if utils.Index(msh.Cells[1]).Contains(n) {
				shared++
			}
		}
		assert.Equal(t, 4, shared)
	}
	// Degenerate requests are rejected
	{
		_, err := Box(0, 1, 1, 1, 1, 1)
		assert.Error(t, err)
		_, err = Box(1, 1, 1, 0, 1, 1)
		assert.Error(t, err)
	}
}

func TestNew(t *testing.T) {
	points := utils.NewMatrix(2, 3)
	_, err := New(points, [][]int{{0, 1, 0, 1, 0, 1, 0}})
	assert.Error(t, err) // 7 nodes
	_, err = New(points, [][]int{{0, 1, 0, 1, 0, 1, 0, 5}})
	assert.Error(t, err) // node out of range
	_, err = New(utils.NewMatrix(2, 2), nil)
	assert.Error(t, err) // not 3D points
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-12*(1+math.Abs(a)) {
		l = true
	}
	return
}
