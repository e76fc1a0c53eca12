package fem

import (
	"math"

	"github.com/gkdas2/jax-am/utils"
)

// HyperElasticity is a compressible Neo-Hookean solid with strain energy
//
//	psi(F) = mu/2 (J^(-2/3) I1 - 3) + kappa/2 (J - 1)^2
//
// where F = grad u + I, J = det F and I1 = tr(F^T F). The stress returned by
// Physics is the first Piola-Kirchhoff tensor P = d psi / d F, hand-derived:
//
//	dJ/dF = J F^-T, dI1/dF = 2F, d(J^(-2/3))/dF = -2/3 J^(-2/3) F^-T
//	=> P = mu J^(-2/3) (F - I1/3 F^-T) + kappa (J - 1) J F^-T
//
// Energy is kept alongside so new laws can be validated against a numerical
// gradient of their energy.
type HyperElasticity struct {
	E  float64 // Young's modulus
	Nu float64 // Poisson ratio
}

func NewHyperElasticity(e, nu float64) *HyperElasticity {
	return &HyperElasticity{E: e, Nu: nu}
}

func (he *HyperElasticity) Vec() int { return 3 }

func (he *HyperElasticity) moduli() (mu, kappa float64) {
	mu = he.E / (2. * (1. + he.Nu))
	kappa = he.E / (3. * (1. - 2.*he.Nu))
	return
}

// Energy is the strain energy density at deformation gradient F.
func (he *HyperElasticity) Energy(f utils.Mat3) float64 {
	var (
		mu, kappa = he.moduli()
		jac       = f.Det()
		i1        = f.Transpose().Mul(f).Trace()
	)
	return 0.5*mu*(math.Pow(jac, -2./3.)*i1-3.) + 0.5*kappa*(jac-1.)*(jac-1.)
}

// Stress is the first Piola-Kirchhoff stress at displacement gradient uGrad.
func (he *HyperElasticity) Stress(uGrad utils.Mat3) utils.Mat3 {
	var (
		mu, kappa = he.moduli()
		f         = uGrad.Add(utils.Identity3())
		jac       = f.Det()
		i1        = f.Transpose().Mul(f).Trace()
		finvT     = invTranspose(f, jac)
		jm23      = math.Pow(jac, -2./3.)
	)
	dev := f.Sub(finvT.Scale(i1 / 3.)).Scale(mu * jm23)
	return dev.Add(finvT.Scale(kappa * (jac - 1.) * jac))
}

func (he *HyperElasticity) Physics(fe *Laplace, sol utils.Matrix, uGrads []utils.Mat3) (out []utils.Mat3) {
	out = make([]utils.Mat3, len(uGrads))
	for i, g := range uGrads {
		out[i] = he.Stress(g)
	}
	return
}

// invTranspose computes F^-T given det(F). No degeneracy guard: a
// non-positive J means the deformation state itself is invalid and the
// resulting non-finite stress surfaces in the driver's convergence check.
func invTranspose(a utils.Mat3, det float64) (r utils.Mat3) {
	inv := 1. / det
	r[0][0] = inv * (a[1][1]*a[2][2] - a[1][2]*a[2][1])
	r[1][0] = inv * (a[0][2]*a[2][1] - a[0][1]*a[2][2])
	r[2][0] = inv * (a[0][1]*a[1][2] - a[0][2]*a[1][1])
	r[0][1] = inv * (a[1][2]*a[2][0] - a[1][0]*a[2][2])
	r[1][1] = inv * (a[0][0]*a[2][2] - a[0][2]*a[2][0])
	r[2][1] = inv * (a[0][2]*a[1][0] - a[0][0]*a[1][2])
	r[0][2] = inv * (a[1][0]*a[2][1] - a[1][1]*a[2][0])
	r[1][2] = inv * (a[0][1]*a[2][0] - a[0][0]*a[2][1])
	r[2][2] = inv * (a[0][0]*a[1][1] - a[0][1]*a[1][0])
	return
}
