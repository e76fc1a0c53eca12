// Package hex implements the first-order (trilinear) hexahedral reference
// element and its mapping into physical mesh cells: shape function tables at
// the volume and face quadrature points, per-cell Jacobian transforms,
// integration weights and Nanson surface scaling.
package hex

import (
	"math"

	"github.com/gkdas2/jax-am/utils"
)

const (
	Dim          = 3 // spatial dimension
	NumNodes     = 8 // corner nodes per hex cell
	NumQuads     = 8 // 2x2x2 Gauss points per cell
	NumFaces     = 6 // axis-aligned faces per cell
	NumFaceQuads = 4 // 2x2 Gauss points per face
)

// NodeSigns are the reference coordinates of the 8 corner nodes in [-1,1]^3.
// The order fixes the shape function numbering and must match the mesh cell
// connectivity convention (gmsh hex8 ordering).
var NodeSigns = [NumNodes]utils.Vec3{
	{-1, -1, -1},
	{1, -1, -1},
	{1, 1, -1},
	{-1, 1, -1},
	{-1, -1, 1},
	{1, -1, 1},
	{1, 1, 1},
	{-1, 1, 1},
}

// ShapeValue evaluates shape function n at reference point x:
// N_n(x) = 1/8 (1 + s0 x0)(1 + s1 x1)(1 + s2 x2) with s = NodeSigns[n].
func ShapeValue(n int, x utils.Vec3) float64 {
	s := NodeSigns[n]
	return 0.125 * (1 + s[0]*x[0]) * (1 + s[1]*x[1]) * (1 + s[2]*x[2])
}

// ShapeGrad is the exact analytic gradient of ShapeValue with respect to the
// reference coordinates.
func ShapeGrad(n int, x utils.Vec3) (g utils.Vec3) {
	s := NodeSigns[n]
	g[0] = 0.125 * s[0] * (1 + s[1]*x[1]) * (1 + s[2]*x[2])
	g[1] = 0.125 * s[1] * (1 + s[0]*x[0]) * (1 + s[2]*x[2])
	g[2] = 0.125 * s[2] * (1 + s[0]*x[0]) * (1 + s[1]*x[1])
	return
}

// ReferenceElement caches the shape function values and reference gradients
// at every volume and face quadrature point, together with the face normals
// and face-corner incidence. All quadrature weights of the 2x2x2 (and 2x2
// face) Gauss rules equal one.
type ReferenceElement struct {
	QuadPoints     [NumQuads]utils.Vec3
	ShapeVals      [NumQuads][NumNodes]float64
	ShapeGradsRef  [NumQuads][NumNodes]utils.Vec3
	FaceQuadPoints [NumFaces][NumFaceQuads]utils.Vec3
	FaceShapeVals  [NumFaces][NumFaceQuads][NumNodes]float64
	FaceGradsRef   [NumFaces][NumFaceQuads][NumNodes]utils.Vec3
	FaceNormals    [NumFaces]utils.Vec3
	FaceCorners    [NumFaces][4]int
}

func NewReferenceElement() (re *ReferenceElement) {
	var (
		g = math.Sqrt(1. / 3.)
	)
	re = &ReferenceElement{}
	// volume quadrature: x varies fastest
	q := 0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				re.QuadPoints[q] = utils.Vec3{
					float64(2*k-1) * g,
					float64(2*j-1) * g,
					float64(2*i-1) * g,
				}
				q++
			}
		}
	}
	for q, x := range re.QuadPoints {
		for n := 0; n < NumNodes; n++ {
			re.ShapeVals[q][n] = ShapeValue(n, x)
			re.ShapeGradsRef[q][n] = ShapeGrad(n, x)
		}
	}
	// face quadrature: direction d with extreme s held fixed, the remaining
	// two coordinates run over the 2x2 rule
	f := 0
	for d := 0; d < Dim; d++ {
		for _, s := range []float64{-1, 1} {
			re.FaceNormals[f] = roll(utils.Vec3{s, 0, 0}, d)
			fq := 0
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					re.FaceQuadPoints[f][fq] = roll(utils.Vec3{
						s,
						float64(2*j-1) * g,
						float64(2*i-1) * g,
					}, d)
					fq++
				}
			}
			// corner nodes lying on this face, in ascending node order
			c := 0
			for n := 0; n < NumNodes; n++ {
				if NodeSigns[n][d] == s {
					re.FaceCorners[f][c] = n
					c++
				}
			}
			f++
		}
	}
	for f := 0; f < NumFaces; f++ {
		for fq, x := range re.FaceQuadPoints[f] {
			for n := 0; n < NumNodes; n++ {
				re.FaceShapeVals[f][fq][n] = ShapeValue(n, x)
				re.FaceGradsRef[f][fq][n] = ShapeGrad(n, x)
			}
		}
	}
	return
}

// roll shifts the coordinates of v right by d places, mapping the canonical
// face frame (normal, t1, t2) onto the face whose normal direction is d.
func roll(v utils.Vec3, d int) (r utils.Vec3) {
	for i := 0; i < Dim; i++ {
		r[(i+d)%Dim] = v[i]
	}
	return
}
