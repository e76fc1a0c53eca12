package fem

import (
	"math"

	"github.com/gkdas2/jax-am/hex"
	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

// EPS regularizes the deviatoric norm in the radial return so a zero-stress
// state stays differentiable for the driver's tangent approximations.
const EPS = 1e-10

// Plasticity is incremental von Mises (J2) plasticity with a radial-return
// mapping. Physics evaluates the return map from the stored history without
// mutating it; UpdateState commits new history from a converged solution.
// The driver must serialize UpdateState against concurrent Physics calls.
type Plasticity struct {
	E        float64 // Young's modulus
	Nu       float64 // Poisson ratio
	SigYield float64 // yield stress sigma_0

	// committed history, one entry per (cell, quad), zero at construction
	sigmasOld   []utils.Mat3
	epsilonsOld []utils.Mat3
}

func NewPlasticity(e, nu, sigYield float64, msh *mesh.Mesh) *Plasticity {
	n := msh.NumCells() * hex.NumQuads
	return &Plasticity{
		E:           e,
		Nu:          nu,
		SigYield:    sigYield,
		sigmasOld:   make([]utils.Mat3, n),
		epsilonsOld: make([]utils.Mat3, n),
	}
}

func (pl *Plasticity) Vec() int { return 3 }

// StressHistory returns the committed stresses, one per (cell, quad).
func (pl *Plasticity) StressHistory() []utils.Mat3 { return pl.sigmasOld }

// StrainHistory returns the committed strains, one per (cell, quad).
func (pl *Plasticity) StrainHistory() []utils.Mat3 { return pl.epsilonsOld }

func (pl *Plasticity) elastic(eps utils.Mat3) utils.Mat3 {
	var (
		mu     = pl.E / (2. * (1. + pl.Nu))
		lambda = pl.E * pl.Nu / ((1. + pl.Nu) * (1. - 2.*pl.Nu))
	)
	return utils.Identity3().Scale(lambda * eps.Trace()).Add(eps.Scale(2 * mu))
}

func safeSqrt(x float64) float64 {
	if x <= 0 {
		x = EPS
	}
	return math.Sqrt(x)
}

// returnMap computes the corrected stress for the trial strain at one
// quadrature point: trial stress = elastic response to the strain increment
// plus the old stress; when the von Mises measure of its deviator exceeds the
// yield stress, the excess is projected back along the deviator.
func (pl *Plasticity) returnMap(uGrad, sigOld, epsOld utils.Mat3) utils.Mat3 {
	var (
		epsCrt   = uGrad.Sym()
		epsInc   = epsCrt.Sub(epsOld)
		sigTrial = pl.elastic(epsInc).Add(sigOld)
		sDev     = sigTrial.Sub(utils.Identity3().Scale(sigTrial.Trace() / 3.))
		sNorm    = safeSqrt(3. / 2. * sDev.DDot(sDev))
		fYield   = sNorm - pl.SigYield
	)
	if fYield <= 0 { // Elastic
		return sigTrial
	}
	// Yielding: project back toward the yield surface
	return sigTrial.Sub(sDev.Scale(fYield / (sNorm + EPS)))
}

// Stress evaluates the return map against the committed history at the
// origin; used only for post-processing tractions where no per-point history
// lookup applies.
func (pl *Plasticity) Stress(uGrad utils.Mat3) utils.Mat3 {
	return pl.returnMap(uGrad, utils.Mat3{}, utils.Mat3{})
}

func (pl *Plasticity) Physics(fe *Laplace, sol utils.Matrix, uGrads []utils.Mat3) (out []utils.Mat3) {
	out = make([]utils.Mat3, len(uGrads))
	for i, g := range uGrads {
		out[i] = pl.returnMap(g, pl.sigmasOld[i], pl.epsilonsOld[i])
	}
	return
}

// UpdateState recomputes stress and strain from the converged solution and
// commits them as the new history.
func (pl *Plasticity) UpdateState(fe *Laplace, sol utils.Matrix) error {
	uGrads := fe.computeUGrads(sol)
	for i, g := range uGrads {
		pl.sigmasOld[i] = pl.returnMap(g, pl.sigmasOld[i], pl.epsilonsOld[i])
		pl.epsilonsOld[i] = g.Sym()
	}
	return nil
}
