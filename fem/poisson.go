package fem

import (
	"github.com/gkdas2/jax-am/hex"
	"github.com/gkdas2/jax-am/utils"
)

// LinearPoisson is the identity material: the flux equals the solution
// gradient, giving the linear diffusion weak form.
type LinearPoisson struct{}

func (LinearPoisson) Vec() int { return 1 }

func (LinearPoisson) Physics(fe *Laplace, sol utils.Matrix, uGrads []utils.Mat3) []utils.Mat3 {
	return uGrads
}

// NonlinearPoisson scales the gradient by (1 + u^2) with u interpolated at
// the same quadrature point through the shape values.
type NonlinearPoisson struct{}

func (NonlinearPoisson) Vec() int { return 1 }

func (NonlinearPoisson) Physics(fe *Laplace, sol utils.Matrix, uGrads []utils.Mat3) (out []utils.Mat3) {
	out = make([]utils.Mat3, len(uGrads))
	for k := 0; k < fe.Geom.NumCells; k++ {
		for q := 0; q < hex.NumQuads; q++ {
			u := 0.
			for n, node := range fe.Msh.Cells[k] {
				u += sol.At(node, 0) * fe.Ref.ShapeVals[q][n]
			}
			i := k*hex.NumQuads + q
			out[i] = uGrads[i].Scale(1 + u*u)
		}
	}
	return
}
