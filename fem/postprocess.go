package fem

import (
	"fmt"

	"github.com/gkdas2/jax-am/hex"
	"github.com/gkdas2/jax-am/utils"
)

// SurfaceIntegral computes int_S f(u_grad) ds over the boundary faces
// selected by loc, per solution component. Read-only: no engine or model
// state is touched. Typical use is the total force on a surface.
func (fe *Laplace) SurfaceIntegral(loc LocationFunc, surface SurfaceFunc, sol utils.Matrix) (intVal utils.Vector, err error) {
	if err = fe.checkSol(sol); err != nil {
		return
	}
	intVal = utils.NewVector(fe.Vec)
	faces := SelectFaces(fe.Msh, fe.Ref, loc)
	if faces.Len == 0 {
		return
	}
	var fg *hex.FaceGeometry
	if fg, err = fe.Ref.ComputeFaceGeometry(fe.Msh, faces); err != nil {
		return
	}
	for f := 0; f < faces.Len; f++ {
		k := faces.RI[f]
		for fq := 0; fq < hex.NumFaceQuads; fq++ {
			// gradient of the trial field at this face quadrature point
			var ug utils.Mat3
			for n, node := range fe.Msh.Cells[k] {
				var (
					u = sol.Row(node)
					g = fg.Grad(f, fq, n)
				)
				for c := 0; c < fe.Vec; c++ {
					for d := 0; d < hex.Dim; d++ {
						ug[c][d] += u[c] * g[d]
					}
				}
			}
			var (
				t  = surface(ug)
				ns = fg.Nanson.At(f, fq)
			)
			for c := 0; c < fe.Vec; c++ {
				intVal.Set(c, intVal.AtVec(c)+t[c]*ns)
			}
		}
	}
	return
}

// ComputeSurfaceArea integrates unity over the selected faces; every
// component of the result equals the physical surface area.
func (fe *Laplace) ComputeSurfaceArea(loc LocationFunc, sol utils.Matrix) (utils.Vector, error) {
	return fe.SurfaceIntegral(loc, func(uGrad utils.Mat3) (r utils.Vec3) {
		for c := 0; c < fe.Vec; c++ {
			r[c] = 1
		}
		return
	}, sol)
}

// ComputeTraction integrates sigma(u_grad) . n over the selected faces with
// the fixed normal (0,0,1). The material model must expose a pointwise
// stress.
func (fe *Laplace) ComputeTraction(loc LocationFunc, sol utils.Matrix) (intVal utils.Vector, err error) {
	sm, ok := fe.Model.(StressModel)
	if !ok {
		err = fmt.Errorf("material model %T has no pointwise stress", fe.Model)
		return
	}
	normal := utils.Vec3{0, 0, 1}
	return fe.SurfaceIntegral(loc, func(uGrad utils.Mat3) utils.Vec3 {
		return sm.Stress(uGrad).MulVec(normal)
	}, sol)
}

// ComputeAvgStress is the JxW-weighted volume average of the committed
// stress history of a history-dependent material.
func (fe *Laplace) ComputeAvgStress() (avg utils.Mat3, err error) {
	hm, ok := fe.Model.(HistoryModel)
	if !ok {
		err = fmt.Errorf("material model %T carries no stress history", fe.Model)
		return
	}
	var (
		sigmas = hm.StressHistory()
		vol    = fe.Geom.JxW.Sum()
	)
	for k := 0; k < fe.Geom.NumCells; k++ {
		for q := 0; q < hex.NumQuads; q++ {
			avg = avg.Add(sigmas[k*hex.NumQuads+q].Scale(fe.Geom.JxW.At(k, q)))
		}
	}
	avg = avg.Scale(1. / vol)
	return
}
