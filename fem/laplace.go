// Package fem assembles weak-form residual vectors for first-order
// hexahedral meshes. The weak form served is
//
//	(f(u_grad), v_grad)*dx - (traction, v)*ds - (body_force, v)*dx = 0
//
// with f supplied by a MaterialModel: identity (Poisson), nonlinear
// diffusion, linear elasticity, hyperelasticity or von Mises plasticity.
// Dirichlet data is resolved to (node, component, value) lists for the
// external driver to enforce; the residual itself never applies it.
package fem

import (
	"fmt"

	"github.com/gkdas2/jax-am/hex"
	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

// MaterialModel maps the interpolated solution gradients at every quadrature
// point to the flux/stress tensor entering the weak form. Implementations
// must not mutate uGrads or any internal state: Physics is re-evaluated
// freely during the driver's convergence iterations.
type MaterialModel interface {
	Vec() int // number of solution components (1 scalar, 3 mechanics)
	Physics(fe *Laplace, sol utils.Matrix, uGrads []utils.Mat3) []utils.Mat3
}

// StatefulModel is implemented by history-dependent materials. UpdateState
// commits internal state from a converged solution, exactly once per accepted
// load step.
type StatefulModel interface {
	MaterialModel
	UpdateState(fe *Laplace, sol utils.Matrix) error
}

// StressModel exposes the pointwise stress for post-processing tractions.
type StressModel interface {
	Stress(uGrad utils.Mat3) utils.Mat3
}

// HistoryModel exposes committed per-quadrature-point stress history for
// volume-averaged post-processing.
type HistoryModel interface {
	StressHistory() []utils.Mat3
}

// SurfaceFunc maps a solution gradient at a face quadrature point to a
// per-component integrand for SurfaceIntegral.
type SurfaceFunc func(uGrad utils.Mat3) utils.Vec3

// Laplace drives the residual assembly: it owns the precomputed reference
// element and volume geometry, the resolved boundary data and the material
// model. The mesh and geometry are immutable after construction.
type Laplace struct {
	Msh   *mesh.Mesh
	Vec   int
	Ref   *hex.ReferenceElement
	Geom  *hex.VolumeGeometry
	Model MaterialModel

	// resolved Dirichlet data, exported for the driver to enforce
	Dirichlet *DirichletBC

	// precomputed load vectors, subtracted from every residual
	bodyForce utils.Matrix // (numNodes x vec)
	neumann   utils.Matrix // (numNodes x vec)
}

// NewLaplace precomputes the reference tables, the volume geometry and the
// boundary data. dirichlet, neumann and source may be nil; their
// contributions are then zero.
func NewLaplace(msh *mesh.Mesh, model MaterialModel, dirichlet *DirichletSpec,
	neumann *NeumannSpec, source VectorFunc) (fe *Laplace, err error) {
	fe = &Laplace{
		Msh:   msh,
		Vec:   model.Vec(),
		Ref:   hex.NewReferenceElement(),
		Model: model,
	}
	if fe.Geom, err = fe.Ref.ComputeVolumeGeometry(msh); err != nil {
		return
	}
	if fe.Dirichlet, err = ResolveDirichlet(msh, dirichlet, fe.Vec); err != nil {
		return
	}
	if fe.bodyForce, err = fe.computeBodyForce(source); err != nil {
		return
	}
	if fe.neumann, err = fe.computeNeumannIntegral(neumann); err != nil {
		return
	}
	return
}

// UpdateDirichletBCs re-resolves the Dirichlet data, fully replacing the
// previous resolution. Used by time-dependent drivers between steps.
func (fe *Laplace) UpdateDirichletBCs(spec *DirichletSpec) (err error) {
	var bc *DirichletBC
	if bc, err = ResolveDirichlet(fe.Msh, spec, fe.Vec); err != nil {
		return
	}
	fe.Dirichlet = bc
	return
}

// UpdateNeumannBCs re-resolves the Neumann faces and re-assembles the
// traction load vector, fully replacing the previous one.
func (fe *Laplace) UpdateNeumannBCs(spec *NeumannSpec) (err error) {
	var integral utils.Matrix
	if integral, err = fe.computeNeumannIntegral(spec); err != nil {
		return
	}
	fe.neumann = integral
	return
}

func (fe *Laplace) checkSol(sol utils.Matrix) error {
	nr, nc := sol.Dims()
	if nr != fe.Msh.NumNodes() || nc != fe.Vec {
		return fmt.Errorf("solution shape (%d,%d) does not match mesh nodes %d and components %d",
			nr, nc, fe.Msh.NumNodes(), fe.Vec)
	}
	return nil
}

// computeUGrads gathers nodal solution values through the connectivity and
// contracts them with the physical shape gradients:
// u_grads[c][d] = sum_n sol[node_n][c] * dN_n/dx_d, per (cell, quad).
func (fe *Laplace) computeUGrads(sol utils.Matrix) (uGrads []utils.Mat3) {
	uGrads = make([]utils.Mat3, fe.Geom.NumCells*hex.NumQuads)
	for k := 0; k < fe.Geom.NumCells; k++ {
		for q := 0; q < hex.NumQuads; q++ {
			var ug utils.Mat3
			for n, node := range fe.Msh.Cells[k] {
				var (
					u = sol.Row(node)
					g = fe.Geom.Grad(k, q, n)
				)
				for c := 0; c < fe.Vec; c++ {
					for d := 0; d < hex.Dim; d++ {
						ug[c][d] += u[c] * g[d]
					}
				}
			}
			uGrads[k*hex.NumQuads+q] = ug
		}
	}
	return
}

// ComputeResidual assembles the weak-form residual for the trial solution:
// the physics flux contracted with (shape gradient x JxW) per node,
// scatter-added over the connectivity, minus the precomputed body-force and
// Neumann load vectors. Contributions of cells sharing a node accumulate.
func (fe *Laplace) ComputeResidual(sol utils.Matrix) (res utils.Matrix, err error) {
	if err = fe.checkSol(sol); err != nil {
		return
	}
	var (
		uGrads  = fe.computeUGrads(sol)
		physics = fe.Model.Physics(fe, sol, uGrads)
	)
	if len(physics) != len(uGrads) {
		err = fmt.Errorf("material model returned %d quadrature tensors, expected %d", len(physics), len(uGrads))
		return
	}
	res = utils.NewMatrix(fe.Msh.NumNodes(), fe.Vec)
	for k := 0; k < fe.Geom.NumCells; k++ {
		for q := 0; q < hex.NumQuads; q++ {
			var (
				sig = physics[k*hex.NumQuads+q]
				jxw = fe.Geom.JxW.At(k, q)
			)
			for n, node := range fe.Msh.Cells[k] {
				g := fe.Geom.Grad(k, q, n)
				for c := 0; c < fe.Vec; c++ {
					v := 0.
					for d := 0; d < hex.Dim; d++ {
						v += sig[c][d] * g[d]
					}
					res.AddAt(node, c, v*jxw)
				}
			}
		}
	}
	res.Subtract(fe.bodyForce).Subtract(fe.neumann)
	return
}

// computeBodyForce assembles (body_force, v)*dx once: source values at the
// physical quadrature points weighted by shape value x JxW, scatter-added.
func (fe *Laplace) computeBodyForce(source VectorFunc) (rhs utils.Matrix, err error) {
	rhs = utils.NewMatrix(fe.Msh.NumNodes(), fe.Vec)
	if source == nil {
		return
	}
	pts := fe.Ref.PhysicalQuadPoints(fe.Msh)
	for k := 0; k < fe.Geom.NumCells; k++ {
		for q := 0; q < hex.NumQuads; q++ {
			bf := source(pts[k*hex.NumQuads+q])
			if len(bf) != fe.Vec {
				err = fmt.Errorf("body force function returned %d components, expected %d", len(bf), fe.Vec)
				return
			}
			jxw := fe.Geom.JxW.At(k, q)
			for n, node := range fe.Msh.Cells[k] {
				v := fe.Ref.ShapeVals[q][n] * jxw
				for c := 0; c < fe.Vec; c++ {
					rhs.AddAt(node, c, v*bf[c])
				}
			}
		}
	}
	return
}

// computeNeumannIntegral assembles (traction, v)*ds once: sampled tractions
// weighted by face shape value x Nanson scale, scatter-added over the full
// 8-node connectivity of each selected face's cell (shape values vanish for
// off-face corners).
func (fe *Laplace) computeNeumannIntegral(spec *NeumannSpec) (integral utils.Matrix, err error) {
	integral = utils.NewMatrix(fe.Msh.NumNodes(), fe.Vec)
	if spec == nil {
		return
	}
	if len(spec.Locations) != len(spec.Values) {
		err = fmt.Errorf("neumann spec lengths disagree: %d locations, %d values", len(spec.Locations), len(spec.Values))
		return
	}
	for i := range spec.Locations {
		faces := SelectFaces(fe.Msh, fe.Ref, spec.Locations[i])
		if faces.Len == 0 {
			continue
		}
		var (
			tractions [][]float64
			fg        *hex.FaceGeometry
		)
		if tractions, err = SampleTractions(fe.Msh, fe.Ref, faces, spec.Values[i], fe.Vec); err != nil {
			return
		}
		if fg, err = fe.Ref.ComputeFaceGeometry(fe.Msh, faces); err != nil {
			return
		}
		for f := 0; f < faces.Len; f++ {
			var (
				k     = faces.RI[f]
				local = faces.CI[f]
			)
			for fq := 0; fq < hex.NumFaceQuads; fq++ {
				var (
					t  = tractions[f*hex.NumFaceQuads+fq]
					ns = fg.Nanson.At(f, fq)
				)
				for n, node := range fe.Msh.Cells[k] {
					v := fe.Ref.FaceShapeVals[local][fq][n] * ns
					for c := 0; c < fe.Vec; c++ {
						integral.AddAt(node, c, v*t[c])
					}
				}
			}
		}
	}
	return
}

// UpdateState commits material history from a converged solution. Stateless
// models have nothing to commit.
func (fe *Laplace) UpdateState(sol utils.Matrix) (err error) {
	if err = fe.checkSol(sol); err != nil {
		return
	}
	if sm, ok := fe.Model.(StatefulModel); ok {
		err = sm.UpdateState(fe, sol)
	}
	return
}
