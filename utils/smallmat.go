package utils

import (
	"fmt"
	"math"
)

// MINDET is the minimum Jacobian determinant accepted when inverting an
// element mapping, following the usual FEM mesh-quality guard.
const MINDET = 1.0e-14

// Vec3 is a fixed-size 3-vector used for coordinates, normals and reference
// shape gradients.
type Vec3 [3]float64

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }
func (v Vec3) Scale(a float64) Vec3 {
	return Vec3{a * v[0], a * v[1], a * v[2]}
}

func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// MulMat is the row-vector product v^T A, used to push reference gradients
// and face normals through an inverse Jacobian.
func (v Vec3) MulMat(a Mat3) (r Vec3) {
	for j := 0; j < 3; j++ {
		r[j] = v[0]*a[0][j] + v[1]*a[1][j] + v[2]*a[2][j]
	}
	return
}

// Mat3 is a fixed-size 3x3 matrix: Jacobians, displacement gradients, strain
// and stress tensors. Rows index the field component, columns the spatial
// derivative direction.
type Mat3 [3][3]float64

func Identity3() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (a Mat3) Add(b Mat3) (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] + b[i][j]
		}
	}
	return
}

func (a Mat3) Sub(b Mat3) (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] - b[i][j]
		}
	}
	return
}

func (a Mat3) Scale(s float64) (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = s * a[i][j]
		}
	}
	return
}

func (a Mat3) Transpose() (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[j][i]
		}
	}
	return
}

func (a Mat3) Trace() float64 {
	return a[0][0] + a[1][1] + a[2][2]
}

// Sym returns the symmetric part (a + a^T)/2.
func (a Mat3) Sym() (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = 0.5 * (a[i][j] + a[j][i])
		}
	}
	return
}

func (a Mat3) Mul(b Mat3) (r Mat3) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}
	return
}

func (a Mat3) MulVec(v Vec3) (r Vec3) {
	for i := 0; i < 3; i++ {
		r[i] = a[i][0]*v[0] + a[i][1]*v[1] + a[i][2]*v[2]
	}
	return
}

// DDot is the double contraction sum_ij a_ij b_ij.
func (a Mat3) DDot(b Mat3) (s float64) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			s += a[i][j] * b[i][j]
		}
	}
	return
}

func (a Mat3) Det() float64 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Inverse returns the closed-form inverse and the determinant. A determinant
// at or below MINDET signals a degenerate or inverted element and is returned
// as an error rather than propagated into the geometry arrays.
func (a Mat3) Inverse() (r Mat3, det float64, err error) {
	det = a.Det()
	if det <= MINDET {
		err = fmt.Errorf("non-positive Jacobian determinant: det = %v", det)
		return
	}
	inv := 1. / det
	r[0][0] = inv * (a[1][1]*a[2][2] - a[1][2]*a[2][1])
	r[0][1] = inv * (a[0][2]*a[2][1] - a[0][1]*a[2][2])
	r[0][2] = inv * (a[0][1]*a[1][2] - a[0][2]*a[1][1])
	r[1][0] = inv * (a[1][2]*a[2][0] - a[1][0]*a[2][2])
	r[1][1] = inv * (a[0][0]*a[2][2] - a[0][2]*a[2][0])
	r[1][2] = inv * (a[0][2]*a[1][0] - a[0][0]*a[1][2])
	r[2][0] = inv * (a[1][0]*a[2][1] - a[1][1]*a[2][0])
	r[2][1] = inv * (a[0][1]*a[2][0] - a[0][0]*a[2][1])
	r[2][2] = inv * (a[0][0]*a[1][1] - a[0][1]*a[1][0])
	return
}
