package hex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gkdas2/jax-am/utils"
)

func TestShapeFunctions(t *testing.T) {
	re := NewReferenceElement()
	// Kronecker property at the corner nodes
	{
		for n := 0; n < NumNodes; n++ {
			for m := 0; m < NumNodes; m++ {
				want := 0.
				if n == m {
					want = 1.
				}
				assert.InDelta(t, want, ShapeValue(n, NodeSigns[m]), 1.e-14)
			}
		}
	}
	// Partition of unity and zero gradient sum at every quadrature point
	{
		for q := 0; q < NumQuads; q++ {
			sum := 0.
			var gsum utils.Vec3
			for n := 0; n < NumNodes; n++ {
				sum += re.ShapeVals[q][n]
				gsum = gsum.Add(re.ShapeGradsRef[q][n])
			}
			assert.InDelta(t, 1., sum, 1.e-14)
			assert.InDelta(t, 0., gsum.Norm(), 1.e-14)
		}
	}
	// Analytic gradients match central differences
	{
		h := 1.e-6
		x := utils.Vec3{0.3, -0.6, 0.1}
		for n := 0; n < NumNodes; n++ {
			g := ShapeGrad(n, x)
			for d := 0; d < Dim; d++ {
				xp, xm := x, x
				xp[d] += h
				xm[d] -= h
				fd := (ShapeValue(n, xp) - ShapeValue(n, xm)) / (2 * h)
				assert.InDelta(t, fd, g[d], 1.e-9)
			}
		}
	}
}

func TestFaceTables(t *testing.T) {
	re := NewReferenceElement()
	// Face quadrature points sit on their face, normals are unit axis vectors
	{
		for f := 0; f < NumFaces; f++ {
			d := f / 2
			s := float64(2*(f%2) - 1)
			assert.True(t, near(re.FaceNormals[f][d], s))
			assert.True(t, near(re.FaceNormals[f].Norm(), 1))
			for fq := 0; fq < NumFaceQuads; fq++ {
				assert.True(t, near(re.FaceQuadPoints[f][fq][d], s))
			}
		}
	}
	// Face corner incidence matches the reference node layout
	{
		want := [NumFaces][4]int{
			{0, 3, 4, 7}, // x = -1
			{1, 2, 5, 6}, // x = +1
			{0, 1, 4, 5}, // y = -1
			{2, 3, 6, 7}, // y = +1
			{0, 1, 2, 3}, // z = -1
			{4, 5, 6, 7}, // z = +1
		}
		assert.Equal(t, want, re.FaceCorners)
	}
	// On a face, the off-face corner shape functions vanish and the on-face
	// ones sum to 1
	{
		for f := 0; f < NumFaces; f++ {
			onFace := utils.Index(re.FaceCorners[f][:])
			for fq := 0; fq < NumFaceQuads; fq++ {
				sum := 0.
				for n := 0; n < NumNodes; n++ {
					if onFace.Contains(n) {
						sum += re.FaceShapeVals[f][fq][n]
					} else {
						assert.InDelta(t, 0., re.FaceShapeVals[f][fq][n], 1.e-14)
					}
				}
				assert.InDelta(t, 1., sum, 1.e-14)
			}
		}
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-12*(1+math.Abs(a)) {
		l = true
	}
	return
}
