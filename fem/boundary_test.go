package fem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdas2/jax-am/hex"
	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

func onPlane(d int, val float64) LocationFunc {
	return func(x utils.Vec3) bool { return math.Abs(x[d]-val) < utils.NODETOL }
}

func TestResolveDirichlet(t *testing.T) {
	msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
	require.NoError(t, err)
	// x = 0 selects the 4 corners of one cube face
	{
		spec := &DirichletSpec{
			Locations:  []LocationFunc{onPlane(0, 0)},
			Components: []int{0},
			Values:     []ValueFunc{func(x utils.Vec3) float64 { return 2 * x[2] }},
		}
		bc, err := ResolveDirichlet(msh, spec, 3)
		require.NoError(t, err)
		require.Equal(t, 1, len(bc.Nodes))
		assert.Equal(t, 4, len(bc.Nodes[0]))
		assert.Equal(t, 4, bc.NumConstraints())
		for j, n := range bc.Nodes[0] {
			x := msh.Point(n)
			assert.True(t, math.Abs(x[0]) < utils.NODETOL)
			assert.InDelta(t, 2*x[2], bc.Vals[0].AtVec(j), 1.e-14)
			assert.Equal(t, 0, bc.Comps[0][j])
		}
	}
	// a predicate matching nothing yields an empty entry, not an error
	{
		spec := &DirichletSpec{
			Locations:  []LocationFunc{onPlane(0, 7)},
			Components: []int{1},
			Values:     []ValueFunc{func(x utils.Vec3) float64 { return 1 }},
		}
		bc, err := ResolveDirichlet(msh, spec, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, len(bc.Nodes[0]))
		assert.Equal(t, 0, bc.NumConstraints())
	}
	// mismatched list lengths are a configuration error
	{
		spec := &DirichletSpec{
			Locations:  []LocationFunc{onPlane(0, 0), onPlane(0, 1)},
			Components: []int{0},
			Values:     []ValueFunc{func(x utils.Vec3) float64 { return 0 }},
		}
		_, err := ResolveDirichlet(msh, spec, 3)
		assert.Error(t, err)
	}
	// component outside [0, vec) is rejected
	{
		spec := &DirichletSpec{
			Locations:  []LocationFunc{onPlane(0, 0)},
			Components: []int{1},
			Values:     []ValueFunc{func(x utils.Vec3) float64 { return 0 }},
		}
		_, err := ResolveDirichlet(msh, spec, 1)
		assert.Error(t, err)
	}
	// nil spec resolves to no constraints
	{
		bc, err := ResolveDirichlet(msh, nil, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, bc.NumConstraints())
	}
}

func TestSelectFaces(t *testing.T) {
	re := hex.NewReferenceElement()
	// single-cell cube: x = 1 selects exactly one face of one cell
	{
		msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)
		faces := SelectFaces(msh, re, onPlane(0, 1))
		require.Equal(t, 1, faces.Len)
		assert.Equal(t, 0, faces.RI[0])
		assert.Equal(t, 1, faces.CI[0]) // local face x = +1
	}
	// 2x2x2 box: one boundary face per boundary cell
	{
		msh, err := mesh.Box(2, 2, 2, 1, 1, 1)
		require.NoError(t, err)
		faces := SelectFaces(msh, re, onPlane(0, 1))
		assert.Equal(t, 4, faces.Len)
		for f := 0; f < faces.Len; f++ {
			assert.Equal(t, 1, faces.CI[f])
		}
	}
	// a plane through the corners of no complete face selects nothing
	{
		msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)
		faces := SelectFaces(msh, re, onPlane(0, 0.5))
		assert.Equal(t, 0, faces.Len)
	}
}

func TestSampleTractions(t *testing.T) {
	var (
		re       = hex.NewReferenceElement()
		msh, err = mesh.Box(1, 1, 1, 1, 1, 1)
	)
	require.NoError(t, err)
	faces := SelectFaces(msh, re, onPlane(2, 1))
	tr, err := SampleTractions(msh, re, faces, func(x utils.Vec3) []float64 {
		return []float64{0, 0, x[0]}
	}, 3)
	require.NoError(t, err)
	require.Equal(t, hex.NumFaceQuads, len(tr))
	pts := re.PhysicalFaceQuadPoints(msh, faces)
	for i := range tr {
		assert.InDelta(t, pts[i][0], tr[i][2], 1.e-14)
	}
	// wrong component count is rejected
	_, err = SampleTractions(msh, re, faces, func(x utils.Vec3) []float64 {
		return []float64{1}
	}, 3)
	assert.Error(t, err)
}
