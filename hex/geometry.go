package hex

import (
	"fmt"

	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

// VolumeGeometry holds the precomputed per-cell, per-quadrature-point
// transform of the reference element into physical space: shape gradients
// with respect to physical coordinates, and the integration weight JxW
// (Jacobian determinant times the unit quadrature weight).
type VolumeGeometry struct {
	NumCells   int
	ShapeGrads []utils.Vec3 // (cell, quad, node), flattened cell-major
	JxW        utils.Matrix // (numCells x NumQuads)
}

// Grad returns the physical shape gradient of node n at quadrature point q of
// cell k.
func (vg *VolumeGeometry) Grad(k, q, n int) utils.Vec3 {
	return vg.ShapeGrads[(k*NumQuads+q)*NumNodes+n]
}

// ComputeVolumeGeometry builds the Jacobian at every quadrature point of
// every cell, inverts it and maps the reference shape gradients to physical
// ones (Hughes, The Finite Element Method, Eq. 3.9.3). A non-positive
// determinant anywhere aborts with an error: the mesh is degenerate or
// inverted and any further physics would be garbage.
func (re *ReferenceElement) ComputeVolumeGeometry(msh *mesh.Mesh) (vg *VolumeGeometry, err error) {
	var (
		numCells = msh.NumCells()
	)
	vg = &VolumeGeometry{
		NumCells:   numCells,
		ShapeGrads: make([]utils.Vec3, numCells*NumQuads*NumNodes),
		JxW:        utils.NewMatrix(numCells, NumQuads),
	}
	for k := 0; k < numCells; k++ {
		var coos [NumNodes]utils.Vec3
		for n, node := range msh.Cells[k] {
			coos[n] = msh.Point(node)
		}
		for q := 0; q < NumQuads; q++ {
			// J_ij = sum_n x_n[i] * dN_n/dxi[j]
			var jac utils.Mat3
			for n := 0; n < NumNodes; n++ {
				g := re.ShapeGradsRef[q][n]
				for i := 0; i < Dim; i++ {
					for j := 0; j < Dim; j++ {
						jac[i][j] += coos[n][i] * g[j]
					}
				}
			}
			jacInv, det, errInv := jac.Inverse()
			if errInv != nil {
				err = fmt.Errorf("cell %d, quad point %d: %v", k, q, errInv)
				return
			}
			for n := 0; n < NumNodes; n++ {
				vg.ShapeGrads[(k*NumQuads+q)*NumNodes+n] = re.ShapeGradsRef[q][n].MulMat(jacInv)
			}
			vg.JxW.Set(k, q, det) // unit quadrature weight
		}
	}
	return
}

// FaceGeometry holds the on-demand transform for a selected subset of cell
// faces: physical shape gradients at the face quadrature points and the
// Nanson area scale mapping reference face integrals to physical ones.
type FaceGeometry struct {
	Faces      utils.Index2D // RI: cell index, CI: local face index
	ShapeGrads []utils.Vec3  // (selected face, face quad, node), flattened
	Nanson     utils.Matrix  // (numSelected x NumFaceQuads)
}

func (fg *FaceGeometry) Grad(f, fq, n int) utils.Vec3 {
	return fg.ShapeGrads[(f*NumFaceQuads+fq)*NumNodes+n]
}

// ComputeFaceGeometry evaluates the volume mapping restricted to the given
// (cell, face) pairs. The Nanson scale is |n0^T J^-1| det(J) per face
// quadrature point, with n0 the reference outward normal; summed over a face
// it yields the physical face area. Not cached: Neumann face subsets are
// small and may change between steps.
func (re *ReferenceElement) ComputeFaceGeometry(msh *mesh.Mesh, faces utils.Index2D) (fg *FaceGeometry, err error) {
	fg = &FaceGeometry{
		Faces:      faces,
		ShapeGrads: make([]utils.Vec3, faces.Len*NumFaceQuads*NumNodes),
		Nanson:     utils.NewMatrix(maxInt(faces.Len, 1), NumFaceQuads),
	}
	for f := 0; f < faces.Len; f++ {
		var (
			k     = faces.RI[f]
			local = faces.CI[f]
		)
		var coos [NumNodes]utils.Vec3
		for n, node := range msh.Cells[k] {
			coos[n] = msh.Point(node)
		}
		for fq := 0; fq < NumFaceQuads; fq++ {
			var jac utils.Mat3
			for n := 0; n < NumNodes; n++ {
				g := re.FaceGradsRef[local][fq][n]
				for i := 0; i < Dim; i++ {
					for j := 0; j < Dim; j++ {
						jac[i][j] += coos[n][i] * g[j]
					}
				}
			}
			jacInv, det, errInv := jac.Inverse()
			if errInv != nil {
				err = fmt.Errorf("cell %d, face %d, quad point %d: %v", k, local, fq, errInv)
				return
			}
			for n := 0; n < NumNodes; n++ {
				fg.ShapeGrads[(f*NumFaceQuads+fq)*NumNodes+n] = re.FaceGradsRef[local][fq][n].MulMat(jacInv)
			}
			// Nanson's formula, unit face quadrature weight
			fg.Nanson.Set(f, fq, re.FaceNormals[local].MulMat(jacInv).Norm()*det)
		}
	}
	return
}

// PhysicalQuadPoints interpolates the volume quadrature points into physical
// space, (cell, quad) flattened cell-major.
func (re *ReferenceElement) PhysicalQuadPoints(msh *mesh.Mesh) (pts []utils.Vec3) {
	pts = make([]utils.Vec3, msh.NumCells()*NumQuads)
	for k := 0; k < msh.NumCells(); k++ {
		for q := 0; q < NumQuads; q++ {
			var x utils.Vec3
			for n, node := range msh.Cells[k] {
				x = x.Add(msh.Point(node).Scale(re.ShapeVals[q][n]))
			}
			pts[k*NumQuads+q] = x
		}
	}
	return
}

// PhysicalFaceQuadPoints interpolates the face quadrature points of the
// selected faces into physical space, (selected face, face quad) flattened.
func (re *ReferenceElement) PhysicalFaceQuadPoints(msh *mesh.Mesh, faces utils.Index2D) (pts []utils.Vec3) {
	pts = make([]utils.Vec3, faces.Len*NumFaceQuads)
	for f := 0; f < faces.Len; f++ {
		var (
			k     = faces.RI[f]
			local = faces.CI[f]
		)
		for fq := 0; fq < NumFaceQuads; fq++ {
			var x utils.Vec3
			for n, node := range msh.Cells[k] {
				x = x.Add(msh.Point(node).Scale(re.FaceShapeVals[local][fq][n]))
			}
			pts[f*NumFaceQuads+fq] = x
		}
	}
	return
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
