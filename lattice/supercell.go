// SPDX-License-Identifier: MIT
// Package lattice: integer supercells S = L·T.

package lattice

import (
	"fmt"
)

// Supercell is a periodic supercell of a primitive lattice, defined by an
// integer transformation matrix T with det(T) > 0 (columns of T are the
// supercell vectors in prim fractional coordinates).
type Supercell struct {
	prim   Lattice
	transf IMat3
	inv    Mat3 // T⁻¹
	volume int
}

// NewSupercell validates T against prim.
func NewSupercell(prim Lattice, transf IMat3) (Supercell, error) {
	det := transf.Det()
	if det <= 0 {
		return Supercell{}, latticeErrorf(opSupercell, fmt.Errorf("%w: det(T)=%d", ErrBadSupercell, det))
	}
	inv, err := transf.Float().Inverse()
	if err != nil {
		return Supercell{}, latticeErrorf(opSupercell, err)
	}

	return Supercell{prim: prim, transf: transf, inv: inv, volume: det}, nil
}

// Prim returns the primitive lattice.
func (s Supercell) Prim() Lattice { return s.prim }

// Transformation returns T.
func (s Supercell) Transformation() IMat3 { return s.transf }

// Volume returns det(T), the number of primitive cells in the supercell.
func (s Supercell) Volume() int { return s.volume }

// Lattice returns the supercell lattice L·T.
func (s Supercell) Lattice() (Lattice, error) {
	return FromMatrix(s.prim.Matrix().Mul(s.transf.Float()), s.prim.Tol())
}

// Within folds the unit-cell index n into the supercell:
// n - T·floor(T⁻¹·n).
func (s Supercell) Within(n IVec3) IVec3 {
	// T⁻¹·n is rational with denominator det(T); a small absolute nudge is enough.
	shift := s.inv.MulVec(n.Float()).Floor(1e-8)

	return n.Sub(s.transf.MulVec(shift))
}

// Translation returns the supercell lattice vector that Within subtracts.
func (s Supercell) Translation(n IVec3) IVec3 {
	return n.Sub(s.Within(n))
}

// Cells enumerates the Volume() prim unit cells inside the supercell in a
// deterministic order (x-major loops over the bounding box of T's corners).
func (s Supercell) Cells() []IVec3 {
	var lo, hi IVec3
	for mask := 0; mask < 8; mask++ {
		var corner IVec3
		for j := 0; j < 3; j++ {
			if mask&(1<<j) != 0 {
				corner = corner.Add(s.transf.Column(j))
			}
		}
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], corner[i])
			hi[i] = max(hi[i], corner[i])
		}
	}
	cells := make([]IVec3, 0, s.volume)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				n := IVec3{x, y, z}
				if s.Within(n) == n {
					cells = append(cells, n)
				}
			}
		}
	}

	return cells
}
