// SPDX-License-Identifier: MIT
package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/lattice"
)

// TestSupercell_Cells verifies the cell count equals det(T) and each cell is fixed by Within.
func TestSupercell_Cells(t *testing.T) {
	l := fcc(t)
	tests := []lattice.IMat3{
		lattice.Diagonal(2, 2, 2),
		{{1, 1, 0}, {-1, 1, 0}, {0, 0, 1}},
		{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}},
	}
	for _, tr := range tests {
		s, err := lattice.NewSupercell(l, tr)
		require.NoError(t, err)
		cells := s.Cells()
		assert.Len(t, cells, s.Volume())
		seen := map[lattice.IVec3]bool{}
		for _, c := range cells {
			assert.Equal(t, c, s.Within(c))
			assert.False(t, seen[c])
			seen[c] = true
		}
	}
}

// TestSupercell_Within verifies folding removes exactly a supercell translation.
func TestSupercell_Within(t *testing.T) {
	s, err := lattice.NewSupercell(fcc(t), lattice.Diagonal(2, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, lattice.IVec3{1, 2, 0}, s.Within(lattice.IVec3{-1, -1, 5}))
	assert.Equal(t, lattice.IVec3{-2, -3, 5}, s.Translation(lattice.IVec3{-1, -1, 5}))
}

// TestSupercell_Invalid verifies det(T) <= 0 is rejected.
func TestSupercell_Invalid(t *testing.T) {
	_, err := lattice.NewSupercell(fcc(t), lattice.Diagonal(1, 1, -1))
	assert.ErrorIs(t, err, lattice.ErrBadSupercell)
}
