// SPDX-License-Identifier: MIT
// Package lattice: Bravais lattice of a primitive structure.
//
// Purpose:
//   - Hold the lattice vectors as matrix columns (L = [a b c]) together with
//     the cached inverse, so that frac = L⁻¹·cart and cart = L·frac.
//   - Size the integer grid needed to enclose a sphere around the origin cell.

package lattice

import (
	"math"
)

// DefaultTol is the Cartesian tolerance used when none is configured.
const DefaultTol = 1e-5

// Lattice is an immutable set of three non-coplanar lattice vectors.
type Lattice struct {
	vecs Mat3 // columns are the lattice vectors
	inv  Mat3 // cached inverse
	tol  float64
}

// New builds a lattice from the vectors a, b, c (Cartesian).
// Returns ErrNaNInf for non-finite entries and ErrDegenerate if the
// right-handed cell volume is not positive.
func New(a, b, c Vec3, tol float64) (Lattice, error) {
	if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
		return Lattice{}, latticeErrorf(opNew, ErrNaNInf)
	}
	if tol <= 0 {
		tol = DefaultTol
	}
	vecs := FromColumns(a, b, c)
	if vecs.Det() <= tol*tol*tol {
		return Lattice{}, latticeErrorf(opNew, ErrDegenerate)
	}
	inv, err := vecs.Inverse()
	if err != nil {
		return Lattice{}, latticeErrorf(opNew, err)
	}

	return Lattice{vecs: vecs, inv: inv, tol: tol}, nil
}

// FromMatrix builds a lattice from a column matrix.
func FromMatrix(m Mat3, tol float64) (Lattice, error) {
	return New(m.Column(0), m.Column(1), m.Column(2), tol)
}

// Matrix returns the column matrix L.
func (l Lattice) Matrix() Mat3 { return l.vecs }

// Inverse returns L⁻¹.
func (l Lattice) Inverse() Mat3 { return l.inv }

// Tol returns the Cartesian tolerance carried by the lattice.
func (l Lattice) Tol() float64 { return l.tol }

// Vector returns lattice vector i (0=a, 1=b, 2=c).
func (l Lattice) Vector(i int) Vec3 { return l.vecs.Column(i) }

// Volume returns the (positive) cell volume.
func (l Lattice) Volume() float64 { return l.vecs.Det() }

// Lengths returns |a|, |b|, |c|.
func (l Lattice) Lengths() Vec3 {
	return Vec3{l.Vector(0).Norm(), l.Vector(1).Norm(), l.Vector(2).Norm()}
}

// MinLength returns the shortest of the three lattice vector lengths.
func (l Lattice) MinLength() float64 {
	n := l.Lengths()

	return math.Min(n[0], math.Min(n[1], n[2]))
}

// Metric returns the metric tensor G = Lᵀ·L.
func (l Lattice) Metric() Mat3 { return l.vecs.Transpose().Mul(l.vecs) }

// FracToCart maps fractional to Cartesian coordinates.
func (l Lattice) FracToCart(f Vec3) Vec3 { return l.vecs.MulVec(f) }

// CartToFrac maps Cartesian to fractional coordinates.
func (l Lattice) CartToFrac(c Vec3) Vec3 { return l.inv.MulVec(c) }

// CellToCart returns the Cartesian translation of unit cell n.
func (l Lattice) CellToCart(n IVec3) Vec3 { return l.vecs.MulVec(n.Float()) }

// EncloseSphere returns, per lattice direction, the number of unit cells
// needed on each side of the origin cell so that the grid
// [-d0,d0]×[-d1,d1]×[-d2,d2] covers every point within radius r of any point
// of the origin cell. Uses |fᵢ| ≤ r·|row_i(L⁻¹)| plus one cell of margin for
// points inside the cell.
func (l Lattice) EncloseSphere(r float64) (IVec3, error) {
	if r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return IVec3{}, latticeErrorf(opEncloseSphere, ErrBadRadius)
	}
	var dims IVec3
	for i := 0; i < 3; i++ {
		dims[i] = int(math.Ceil(r*l.inv.Row(i).Norm()-l.tol)) + 1
	}

	return dims, nil
}
