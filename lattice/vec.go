// SPDX-License-Identifier: MIT
// Package lattice: fixed-size vector and matrix value types.
//
// Purpose:
//   - Provide allocation-free 3-vectors and 3x3 matrices for site geometry.
//   - Keep integer (unit-cell) and real (Cartesian/fractional) variants apart.
//
// Determinism & Policy:
//   - All types are plain arrays: copies are values, no aliasing.
//   - Mat3 is row-major: m[i][j] is row i, column j.

package lattice

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// Vec3 is a real 3-vector (Cartesian or fractional, depending on context).
type Vec3 [3]float64

// IVec3 is an integer 3-vector; most often a unit-cell index.
type IVec3 [3]int

// Mat3 is a real 3x3 matrix, row-major.
type Mat3 [3][3]float64

// IMat3 is an integer 3x3 matrix, row-major.
type IMat3 [3][3]int

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Scale returns s·v.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{s * v[0], s * v[1], s * v[2]} }

// Dot returns the Euclidean inner product.
func (v Vec3) Dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

// Norm returns the Euclidean length of v.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Dist returns |v-o|.
func (v Vec3) Dist(o Vec3) float64 { return v.Sub(o).Norm() }

// Equal reports whether every component differs by at most tol.
func (v Vec3) Equal(o Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(v[i]-o[i]) > tol {
			return false
		}
	}

	return true
}

// IsFinite reports whether no component is NaN or ±Inf.
func (v Vec3) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}

	return true
}

// Round returns the nearest integer vector and the largest rounding residual.
func (v Vec3) Round() (IVec3, float64) {
	var (
		out IVec3
		res float64
	)
	for i, x := range v {
		r := math.Round(x)
		out[i] = int(r)
		res = math.Max(res, math.Abs(x-r))
	}

	return out, res
}

// Floor returns the componentwise floor after nudging each component by tol,
// so values a hair below an integer floor to that integer.
func (v Vec3) Floor(tol float64) IVec3 {
	return IVec3{int(math.Floor(v[0] + tol)), int(math.Floor(v[1] + tol)), int(math.Floor(v[2] + tol))}
}

// String formats v with five decimals.
func (v Vec3) String() string { return fmt.Sprintf("[%.5f %.5f %.5f]", v[0], v[1], v[2]) }

// Add returns v+o.
func (v IVec3) Add(o IVec3) IVec3 { return IVec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v-o.
func (v IVec3) Sub(o IVec3) IVec3 { return IVec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Neg returns -v.
func (v IVec3) Neg() IVec3 { return IVec3{-v[0], -v[1], -v[2]} }

// IsZero reports whether v is the origin cell.
func (v IVec3) IsZero() bool { return v == IVec3{} }

// Float converts v to a real vector.
func (v IVec3) Float() Vec3 { return Vec3{float64(v[0]), float64(v[1]), float64(v[2])} }

// Compare orders integer vectors lexicographically: -1, 0 or +1.
func (v IVec3) Compare(o IVec3) int {
	for i := 0; i < 3; i++ {
		if v[i] != o[i] {
			if v[i] < o[i] {
				return -1
			}

			return 1
		}
	}

	return 0
}

// MaxAbs returns the largest absolute component.
func (v IVec3) MaxAbs() int {
	return max(absInt(v[0]), absInt(v[1]), absInt(v[2]))
}

// Identity3 returns the 3x3 identity.
func Identity3() Mat3 { return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} }

// FromColumns builds a matrix whose columns are a, b, c.
func FromColumns(a, b, c Vec3) Mat3 {
	return Mat3{{a[0], b[0], c[0]}, {a[1], b[1], c[1]}, {a[2], b[2], c[2]}}
}

// Column returns column j.
func (m Mat3) Column(j int) Vec3 { return Vec3{m[0][j], m[1][j], m[2][j]} }

// Row returns row i.
func (m Mat3) Row(i int) Vec3 { return Vec3(m[i]) }

// Transpose returns mᵀ.
func (m Mat3) Transpose() Mat3 {
	var t Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[j][i] = m[i][j]
		}
	}

	return t
}

// Mul returns the product m·o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}

	return r
}

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{m.Row(0).Dot(v), m.Row(1).Dot(v), m.Row(2).Dot(v)}
}

// Equal reports entrywise equality within tol.
func (m Mat3) Equal(o Mat3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if !Vec3(m[i]).Equal(Vec3(o[i]), tol) {
			return false
		}
	}

	return true
}

// IsFinite reports whether every entry is finite.
func (m Mat3) IsFinite() bool {
	return Vec3(m[0]).IsFinite() && Vec3(m[1]).IsFinite() && Vec3(m[2]).IsFinite()
}

// dense copies m into a gonum matrix.
func (m Mat3) dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 { return mat.Det(m.dense()) }

// Inverse returns m⁻¹ or ErrSingular.
func (m Mat3) Inverse() (Mat3, error) {
	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Mat3{}, latticeErrorf(opInverse, fmt.Errorf("%w: %v", ErrSingular, err))
	}
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = inv.At(i, j)
		}
	}

	return out, nil
}

// RoundIntegral rounds m to an integer matrix, failing with ErrNotIntegral
// if any entry is further than tol from an integer.
func (m Mat3) RoundIntegral(tol float64) (IMat3, error) {
	var out IMat3
	for i := 0; i < 3; i++ {
		row, res := Vec3(m[i]).Round()
		if res > tol {
			return IMat3{}, latticeErrorf(opRoundIntegral, ErrNotIntegral)
		}
		out[i] = row
	}

	return out, nil
}

// IIdentity3 returns the integer identity.
func IIdentity3() IMat3 { return IMat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} }

// Diagonal returns diag(a, b, c).
func Diagonal(a, b, c int) IMat3 { return IMat3{{a, 0, 0}, {0, b, 0}, {0, 0, c}} }

// Column returns column j.
func (m IMat3) Column(j int) IVec3 { return IVec3{m[0][j], m[1][j], m[2][j]} }

// MulVec returns m·v.
func (m IMat3) MulVec(v IVec3) IVec3 {
	var r IVec3
	for i := 0; i < 3; i++ {
		r[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2]
	}

	return r
}

// Mul returns m·o.
func (m IMat3) Mul(o IMat3) IMat3 {
	var r IMat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j] + m[i][2]*o[2][j]
		}
	}

	return r
}

// Float converts m to a real matrix.
func (m IMat3) Float() Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		r[i] = IVec3(m[i]).Float()
	}

	return r
}

// Det returns the integer determinant.
func (m IMat3) Det() int {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// absInt returns |x| for any signed integer type.
func absInt[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}

	return x
}
