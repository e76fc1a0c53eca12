package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMat3(t *testing.T) {
	// Determinant and inverse of a diagonal scaling
	{
		A := Mat3{{2, 0, 0}, {0, 4, 0}, {0, 0, 0.5}}
		assert.True(t, near(A.Det(), 4))
		R, det, err := A.Inverse()
		assert.NoError(t, err)
		assert.True(t, near(det, 4))
		assert.True(t, near(R[0][0], 0.5))
		assert.True(t, near(R[1][1], 0.25))
		assert.True(t, near(R[2][2], 2))
	}
	// Inverse of a general matrix satisfies A*Ainv = I
	{
		A := Mat3{{2, 1, 0}, {0, 3, 1}, {1, 0, 2}}
		R, _, err := A.Inverse()
		assert.NoError(t, err)
		P := A.Mul(R)
		I := Identity3()
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				assert.InDelta(t, I[i][j], P[i][j], 1.e-12)
			}
		}
	}
	// Singular and inverted matrices are rejected
	{
		A := Mat3{{1, 0, 0}, {2, 0, 0}, {0, 0, 1}}
		_, _, err := A.Inverse()
		assert.Error(t, err)

		B := Mat3{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}} // det = -1
		_, _, err = B.Inverse()
		assert.Error(t, err)
	}
	// Row-vector product v^T A matches (A^T) v
	{
		A := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
		v := Vec3{1, -1, 2}
		r := v.MulMat(A)
		w := A.Transpose().MulVec(v)
		for i := 0; i < 3; i++ {
			assert.True(t, near(r[i], w[i]))
		}
	}
	// Symmetric part and trace
	{
		A := Mat3{{1, 2, 0}, {0, 3, 4}, {0, 0, 5}}
		S := A.Sym()
		assert.True(t, near(S[0][1], 1))
		assert.True(t, near(S[1][0], 1))
		assert.True(t, near(S.Trace(), A.Trace()))
	}
}

func TestMatrix(t *testing.T) {
	// AddAt accumulates
	{
		M := NewMatrix(2, 2)
		M.AddAt(0, 1, 1.5)
		M.AddAt(0, 1, 2.5)
		assert.True(t, near(M.At(0, 1), 4))
	}
	// Subtract and Sum
	{
		M := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		A := NewMatrix(2, 2, []float64{1, 1, 1, 1})
		M.Subtract(A)
		assert.True(t, near(M.Sum(), 6))
		assert.True(t, near(M.MaxAbs(), 3))
	}
	// Copy does not alias
	{
		M := NewMatrix(1, 2, []float64{1, 2})
		C := M.Copy()
		C.Set(0, 0, 99)
		assert.True(t, near(M.At(0, 0), 1))
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-10*(1+math.Abs(a)) {
		l = true
	}
	return
}
