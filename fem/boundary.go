package fem

import (
	"fmt"

	"github.com/gkdas2/jax-am/hex"
	"github.com/gkdas2/jax-am/mesh"
	"github.com/gkdas2/jax-am/utils"
)

// LocationFunc decides whether a physical point lies on a boundary of
// interest, e.g. func(x utils.Vec3) bool { return math.Abs(x[0]) < utils.NODETOL }.
type LocationFunc func(x utils.Vec3) bool

// ValueFunc returns a scalar boundary value at a physical point.
type ValueFunc func(x utils.Vec3) float64

// VectorFunc returns a vector value (traction, body force) at a physical
// point; the slice length must equal the model's component count.
type VectorFunc func(x utils.Vec3) []float64

// DirichletSpec lists parallel (location, component, value) entries. The
// three slices must have equal length; each entry is resolved independently.
type DirichletSpec struct {
	Locations  []LocationFunc
	Components []int
	Values     []ValueFunc
}

// DirichletBC holds the resolved per-entry node lists, component lists and
// sampled values. Entries are not deduplicated: if two entries claim the same
// (node, component), application order is the driver's decision.
type DirichletBC struct {
	Nodes []utils.Index
	Comps []utils.Index
	Vals  []utils.Vector
}

// ResolveDirichlet evaluates each location predicate over every mesh node and
// samples the matching value function at the selected coordinates. A
// predicate matching no node yields an empty entry, not an error.
func ResolveDirichlet(msh *mesh.Mesh, spec *DirichletSpec, vec int) (bc *DirichletBC, err error) {
	bc = &DirichletBC{}
	if spec == nil {
		return
	}
	if len(spec.Locations) != len(spec.Values) || len(spec.Values) != len(spec.Components) {
		err = fmt.Errorf("dirichlet spec lengths disagree: %d locations, %d components, %d values",
			len(spec.Locations), len(spec.Components), len(spec.Values))
		return
	}
	for i := range spec.Locations {
		if spec.Components[i] < 0 || spec.Components[i] >= vec {
			err = fmt.Errorf("dirichlet entry %d: component %d outside [0,%d)", i, spec.Components[i], vec)
			return
		}
		var nodes utils.Index
		for n := 0; n < msh.NumNodes(); n++ {
			if spec.Locations[i](msh.Point(n)) {
				nodes = append(nodes, n)
			}
		}
		var (
			comps = utils.NewIndex(len(nodes))
			vals  utils.Vector
		)
		if len(nodes) > 0 {
			vals = utils.NewVector(len(nodes))
			for j, n := range nodes {
				comps[j] = spec.Components[i]
				vals.Set(j, spec.Values[i](msh.Point(n)))
			}
		}
		bc.Nodes = append(bc.Nodes, nodes)
		bc.Comps = append(bc.Comps, comps)
		bc.Vals = append(bc.Vals, vals)
	}
	return
}

// NumConstraints is the total constraint count over all entries.
func (bc *DirichletBC) NumConstraints() (n int) {
	for _, nodes := range bc.Nodes {
		n += len(nodes)
	}
	return
}

// NeumannSpec pairs face location predicates with traction value functions.
type NeumannSpec struct {
	Locations []LocationFunc
	Values    []VectorFunc
}

// SelectFaces returns the (cell, local face) pairs whose four corner nodes
// all satisfy the predicate. A face lies on a boundary only when every one of
// its corners does.
func SelectFaces(msh *mesh.Mesh, re *hex.ReferenceElement, loc LocationFunc) (faces utils.Index2D) {
	var cellInds, faceInds utils.Index
	for k := 0; k < msh.NumCells(); k++ {
		for f := 0; f < hex.NumFaces; f++ {
			onBoundary := true
			for _, c := range re.FaceCorners[f] {
				if !loc(msh.Point(msh.Cells[k][c])) {
					onBoundary = false
					break
				}
			}
			if onBoundary {
				cellInds = append(cellInds, k)
				faceInds = append(faceInds, f)
			}
		}
	}
	faces, _ = utils.NewIndex2D(cellInds, faceInds) // equal lengths by construction
	return
}

// SampleTractions evaluates a traction function at the physical face
// quadrature points of the selected faces, (selected face, face quad)
// flattened, each of length vec.
func SampleTractions(msh *mesh.Mesh, re *hex.ReferenceElement, faces utils.Index2D, value VectorFunc, vec int) (tractions [][]float64, err error) {
	pts := re.PhysicalFaceQuadPoints(msh, faces)
	tractions = make([][]float64, len(pts))
	for i, x := range pts {
		t := value(x)
		if len(t) != vec {
			err = fmt.Errorf("traction function returned %d components, expected %d", len(t), vec)
			return
		}
		tractions[i] = t
	}
	return
}
