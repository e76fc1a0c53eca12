package hex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

func TestVolumeGeometry(t *testing.T) {
	re := NewReferenceElement()
	// JxW of a unit cube sums to its volume
	{
		msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)
		vg, err := re.ComputeVolumeGeometry(msh)
		require.NoError(t, err)
		sum := 0.
		for q := 0; q < NumQuads; q++ {
			assert.True(t, near(vg.JxW.At(0, q), 1./8.))
			sum += vg.JxW.At(0, q)
		}
		assert.True(t, near(sum, 1))
	}
	// Stretched box volume, multiple cells
	{
		msh, err := mesh.Box(2, 1, 3, 2, 0.5, 3)
		require.NoError(t, err)
		vg, err := re.ComputeVolumeGeometry(msh)
		require.NoError(t, err)
		assert.True(t, near(vg.JxW.Sum(), 2*0.5*3))
	}
	// Physical gradients reproduce the constant gradient of a linear field
	{
		msh, err := mesh.Box(1, 1, 1, 2, 1, 0.5)
		require.NoError(t, err)
		vg, err := re.ComputeVolumeGeometry(msh)
		require.NoError(t, err)
		a := utils.Vec3{1.5, -2, 0.75}
		for q := 0; q < NumQuads; q++ {
			var g utils.Vec3
			for n, node := range msh.Cells[0] {
				x := msh.Point(node)
				g = g.Add(vg.Grad(0, q, n).Scale(a.Dot(x)))
			}
			for d := 0; d < Dim; d++ {
				assert.InDelta(t, a[d], g[d], 1.e-12)
			}
		}
	}
	// An inverted cell is a fatal geometry error
	{
		msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)
		// swap two corners of the bottom face to fold the cell
		msh.Cells[0][0], msh.Cells[0][1] = msh.Cells[0][1], msh.Cells[0][0]
		_, err = re.ComputeVolumeGeometry(msh)
		assert.Error(t, err)
	}
}

func TestFaceGeometry(t *testing.T) {
	re := NewReferenceElement()
	// Nanson scale over a unit face sums to the face area
	{
		msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)
		for local := 0; local < NumFaces; local++ {
			faces, err := utils.NewIndex2D(utils.Index{0}, utils.Index{local})
			require.NoError(t, err)
			fg, err := re.ComputeFaceGeometry(msh, faces)
			require.NoError(t, err)
			area := 0.
			for fq := 0; fq < NumFaceQuads; fq++ {
				area += fg.Nanson.At(0, fq)
			}
			assert.True(t, near(area, 1))
		}
	}
	// Rectangular face area on an anisotropic box
	{
		msh, err := mesh.Box(1, 1, 1, 2, 3, 4)
		require.NoError(t, err)
		faces, _ := utils.NewIndex2D(utils.Index{0}, utils.Index{0}) // x = 0 face
		fg, err := re.ComputeFaceGeometry(msh, faces)
		require.NoError(t, err)
		area := 0.
		for fq := 0; fq < NumFaceQuads; fq++ {
			area += fg.Nanson.At(0, fq)
		}
		assert.True(t, near(area, 3*4))
	}
	// Empty selection yields empty gradients and no error
	{
		msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
		require.NoError(t, err)
		faces, _ := utils.NewIndex2D(utils.Index{}, utils.Index{})
		fg, err := re.ComputeFaceGeometry(msh, faces)
		require.NoError(t, err)
		assert.Equal(t, 0, len(fg.ShapeGrads))
	}
}

func TestPhysicalQuadPoints(t *testing.T) {
	re := NewReferenceElement()
	msh, err := mesh.Box(1, 1, 1, 1, 1, 1)
	require.NoError(t, err)
	// volume points average to the cell center
	{
		pts := re.PhysicalQuadPoints(msh)
		assert.Equal(t, NumQuads, len(pts))
		var c utils.Vec3
		for _, x := range pts {
			c = c.Add(x)
		}
		c = c.Scale(1. / NumQuads)
		for d := 0; d < Dim; d++ {
			assert.True(t, near(c[d], 0.5))
		}
	}
	// face points stay on the physical face plane
	{
		faces, _ := utils.NewIndex2D(utils.Index{0}, utils.Index{1}) // x = 1
		pts := re.PhysicalFaceQuadPoints(msh, faces)
		assert.Equal(t, NumFaceQuads, len(pts))
		for _, x := range pts {
			assert.True(t, near(x[0], 1))
		}
	}
}
