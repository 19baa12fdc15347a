// SPDX-License-Identifier: MIT
package crystal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
)

const tol = 1e-5

func mustLattice(t *testing.T, a, b, c lattice.Vec3) lattice.Lattice {
	t.Helper()
	l, err := lattice.New(a, b, c, tol)
	require.NoError(t, err)

	return l
}

func simpleCubic(t *testing.T) *crystal.Structure {
	t.Helper()
	l := mustLattice(t, lattice.Vec3{1, 0, 0}, lattice.Vec3{0, 1, 0}, lattice.Vec3{0, 0, 1})
	s, err := crystal.New(l, []crystal.Site{{Occupants: []string{"A", "B"}}})
	require.NoError(t, err)

	return s
}

func rocksalt(t *testing.T) *crystal.Structure {
	t.Helper()
	l := mustLattice(t, lattice.Vec3{0, 0.5, 0.5}, lattice.Vec3{0.5, 0, 0.5}, lattice.Vec3{0.5, 0.5, 0})
	s, err := crystal.New(l, []crystal.Site{
		{Frac: lattice.Vec3{0, 0, 0}, Occupants: []string{"Na", "Va"}},
		{Frac: lattice.Vec3{0.5, 0.5, 0.5}, Occupants: []string{"Cl", "Va"}},
	})
	require.NoError(t, err)

	return s
}

func hcp(t *testing.T) *crystal.Structure {
	t.Helper()
	l := mustLattice(t, lattice.Vec3{1, 0, 0}, lattice.Vec3{-0.5, math.Sqrt(3) / 2, 0}, lattice.Vec3{0, 0, 1.633})
	s, err := crystal.New(l, []crystal.Site{
		{Frac: lattice.Vec3{1.0 / 3, 2.0 / 3, 0.25}, Occupants: []string{"Zr"}},
		{Frac: lattice.Vec3{2.0 / 3, 1.0 / 3, 0.75}, Occupants: []string{"Zr"}},
	})
	require.NoError(t, err)

	return s
}
