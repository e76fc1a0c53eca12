package fem

import "github.com/gkdas2/jax-am/utils"

// LinearElasticity is isotropic small-strain elasticity:
// sigma = lambda tr(eps) I + 2 mu eps with eps = (grad u + grad u^T)/2.
type LinearElasticity struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson ratio
}

func NewLinearElasticity(e, nu float64) *LinearElasticity {
	return &LinearElasticity{E: e, Nu: nu}
}

func (le *LinearElasticity) Vec() int { return 3 }

// Lame returns (lambda, mu) derived from E and nu.
func (le *LinearElasticity) Lame() (lambda, mu float64) {
	mu = le.E / (2. * (1. + le.Nu))
	lambda = le.E * le.Nu / ((1. + le.Nu) * (1. - 2.*le.Nu))
	return
}

func (le *LinearElasticity) Stress(uGrad utils.Mat3) utils.Mat3 {
	lambda, mu := le.Lame()
	eps := uGrad.Sym()
	return utils.Identity3().Scale(lambda * eps.Trace()).Add(eps.Scale(2 * mu))
}

func (le *LinearElasticity) Physics(fe *Laplace, sol utils.Matrix, uGrads []utils.Mat3) (out []utils.Mat3) {
	out = make([]utils.Mat3, len(uGrads))
	for i, g := range uGrads {
		out[i] = le.Stress(g)
	}
	return
}
