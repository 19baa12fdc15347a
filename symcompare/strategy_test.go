// SPDX-License-Identifier: MIT
package symcompare_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/symcompare"
)

func rocksalt(t *testing.T) *crystal.Structure {
	t.Helper()
	l, err := lattice.New(lattice.Vec3{0, 0.5, 0.5}, lattice.Vec3{0.5, 0, 0.5}, lattice.Vec3{0.5, 0.5, 0}, 1e-5)
	require.NoError(t, err)
	s, err := crystal.New(l, []crystal.Site{
		{Frac: lattice.Vec3{0, 0, 0}, Occupants: []string{"Na", "Va"}},
		{Frac: lattice.Vec3{0.5, 0.5, 0.5}, Occupants: []string{"Cl", "Va"}},
	})
	require.NoError(t, err)

	return s
}

func ucc(b, x, y, z int) crystal.UnitCellCoord {
	return crystal.UnitCellCoord{Sublat: b, Cell: lattice.IVec3{x, y, z}}
}

func allStrategies(t *testing.T, s *crystal.Structure) []symcompare.Strategy {
	t.Helper()
	scel, err := lattice.NewSupercell(s.Lattice(), lattice.IMat3{{-1, 1, 1}, {1, -1, 1}, {1, 1, -1}})
	require.NoError(t, err)
	var out []symcompare.Strategy
	for _, m := range []symcompare.Mode{symcompare.Aperiodic, symcompare.PrimPeriodic, symcompare.ScelPeriodic, symcompare.WithinScel} {
		st, err := symcompare.New(m, symcompare.WithSupercell(scel), symcompare.WithPhenomenal([]crystal.UnitCellCoord{ucc(0, 0, 0, 0)}))
		require.NoError(t, err)
		out = append(out, st)
	}

	return out
}

// clusterFrom builds a cluster of up to four sites from a flat coordinate list.
func clusterFrom(s *crystal.Structure, size int, coords []int) cluster.Cluster {
	c := cluster.New(s)
	for i := 0; i < size; i++ {
		b := coords[4*i] & 1
		c.PushBack(ucc(b, coords[4*i+1], coords[4*i+2], coords[4*i+3]))
	}

	return c
}

// TestPrepare_Idempotent checks prepare(prepare(X)) == prepare(X) for every variant.
func TestPrepare_Idempotent(t *testing.T) {
	s := rocksalt(t)
	strategies := allStrategies(t, s)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("prepare is idempotent", prop.ForAll(
		func(size int, coords []int) bool {
			c := clusterFrom(s, size, coords)
			for _, st := range strategies {
				p := st.Prepare(c)
				if !st.Prepare(p).Equal(p) {
					return false
				}
				for _, r := range st.Representations(c) {
					if !st.Prepare(r).Equal(r) {
						return false
					}
				}
			}

			return true
		},
		gen.IntRange(0, 4),
		gen.SliceOfN(16, gen.IntRange(-3, 3)),
	))

	properties.Property("periodic preparation ignores translations", prop.ForAll(
		func(size int, coords []int, dx, dy, dz int) bool {
			c := clusterFrom(s, size, coords)
			st := strategies[1]

			return st.Prepare(c).Equal(st.Prepare(c.Translate(lattice.IVec3{dx, dy, dz})))
		},
		gen.IntRange(0, 4),
		gen.SliceOfN(16, gen.IntRange(-3, 3)),
		gen.IntRange(-5, 5), gen.IntRange(-5, 5), gen.IntRange(-5, 5),
	))

	properties.Property("canonical transform reproduces prepare", prop.ForAll(
		func(size int, coords []int) bool {
			c := clusterFrom(s, size, coords)
			for _, st := range strategies {
				if !symcompare.ApplyTransform(c, st.CanonicalTransform(c)).Equal(st.Prepare(c)) {
					return false
				}
			}

			return true
		},
		gen.IntRange(0, 4),
		gen.SliceOfN(16, gen.IntRange(-3, 3)),
	))

	properties.TestingRun(t)
}

// TestPrimPeriodic_Anchor verifies the anchor stays first and the rest is sorted.
func TestPrimPeriodic_Anchor(t *testing.T) {
	s := rocksalt(t)
	st, err := symcompare.New(symcompare.PrimPeriodic)
	require.NoError(t, err)
	c := cluster.New(s, ucc(1, 2, 2, 2), ucc(0, 1, 1, 1), ucc(0, 2, 2, 3))
	p := st.Prepare(c)
	assert.Equal(t, []crystal.UnitCellCoord{ucc(1, 0, 0, 0), ucc(0, -1, -1, -1), ucc(0, 0, 0, 1)}, p.Sites())

	pair := cluster.New(s, ucc(0, 0, 0, 0), ucc(0, 1, 0, 0))
	reps := st.Representations(pair)
	require.Len(t, reps, 2)
	assert.Equal(t, []crystal.UnitCellCoord{ucc(0, 0, 0, 0), ucc(0, -1, 0, 0)}, reps[1].Sites())
}

// TestWithinScel_Folds verifies every site lands in the supercell.
func TestWithinScel_Folds(t *testing.T) {
	s := rocksalt(t)
	scel, err := lattice.NewSupercell(s.Lattice(), lattice.Diagonal(2, 2, 2))
	require.NoError(t, err)
	st, err := symcompare.New(symcompare.WithinScel, symcompare.WithSupercell(scel))
	require.NoError(t, err)
	p := st.Prepare(cluster.New(s, ucc(0, 3, -1, 0), ucc(1, -2, 0, 5)))
	for _, u := range p.Sites() {
		assert.Equal(t, u.Cell, scel.Within(u.Cell))
	}
	assert.Equal(t, symcompare.WithinScel, st.Mode())
	assert.Equal(t, "within-scel", st.Mode().String())
}

// TestCanonicalTransform_WithinScelFolds verifies per-site folds are reported.
func TestCanonicalTransform_WithinScelFolds(t *testing.T) {
	s := rocksalt(t)
	scel, err := lattice.NewSupercell(s.Lattice(), lattice.Diagonal(2, 2, 2))
	require.NoError(t, err)
	c := cluster.New(s, ucc(0, 3, 1, 0), ucc(0, 1, 0, 0), ucc(0, 2, 2, 2))

	for _, m := range []symcompare.Mode{symcompare.Aperiodic, symcompare.PrimPeriodic, symcompare.ScelPeriodic, symcompare.WithinScel} {
		st, err := symcompare.New(m, symcompare.WithSupercell(scel))
		require.NoError(t, err)
		tr := st.CanonicalTransform(c)
		assert.True(t, symcompare.ApplyTransform(c, tr).Equal(st.Prepare(c)), m.String())
		if m != symcompare.WithinScel {
			assert.Nil(t, tr.Shifts, m.String())
		}
	}

	st, err := symcompare.New(symcompare.WithinScel, symcompare.WithSupercell(scel))
	require.NoError(t, err)
	tr := st.CanonicalTransform(c)
	assert.Equal(t, []int{2, 1, 0}, tr.Perm)
	assert.Equal(t, lattice.IVec3{}, tr.Translation)
	assert.Equal(t, []lattice.IVec3{{-2, -2, -2}, {}, {-2, 0, 0}}, tr.Shifts)
	assert.Equal(t, []crystal.UnitCellCoord{ucc(0, 0, 0, 0), ucc(0, 1, 0, 0), ucc(0, 1, 1, 0)}, st.Prepare(c).Sites())
}

// TestNew_NoSupercell verifies supercell variants require a supercell.
func TestNew_NoSupercell(t *testing.T) {
	_, err := symcompare.New(symcompare.ScelPeriodic)
	assert.ErrorIs(t, err, symcompare.ErrNoSupercell)
	_, err = symcompare.New(symcompare.WithinScel)
	assert.ErrorIs(t, err, symcompare.ErrNoSupercell)
}

// TestInvariants verifies ordering and phenomenal distances.
func TestInvariants(t *testing.T) {
	s := rocksalt(t)
	st, err := symcompare.New(symcompare.Aperiodic, symcompare.WithPhenomenal([]crystal.UnitCellCoord{ucc(0, 0, 0, 0)}))
	require.NoError(t, err)
	near := st.Invariants(cluster.New(s, ucc(0, 1, 0, 0)))
	far := st.Invariants(cluster.New(s, ucc(0, 2, 0, 0)))
	assert.Equal(t, -1, symcompare.CompareInvariants(near, far, 1e-5))
	assert.Equal(t, 0, symcompare.CompareInvariants(near, near, 1e-5))
	assert.InDelta(t, math.Sqrt(2), far.MaxLength(), 1e-12)
	assert.Zero(t, far.MinLength())

	pair := st.Invariants(cluster.New(s, ucc(0, 0, 0, 0), ucc(0, 1, 0, 0)))
	assert.Equal(t, 1, symcompare.CompareInvariants(pair, far, 1e-5))
}

// TestScelInvariants_MinimumImage verifies folded clusters keep their lengths.
func TestScelInvariants_MinimumImage(t *testing.T) {
	s := rocksalt(t)
	scel, err := lattice.NewSupercell(s.Lattice(), lattice.Diagonal(3, 3, 3))
	require.NoError(t, err)
	st, err := symcompare.New(symcompare.WithinScel, symcompare.WithSupercell(scel))
	require.NoError(t, err)

	pair := cluster.New(s, ucc(0, 0, 0, 0), ucc(0, -1, 0, 0))
	folded := st.Prepare(pair)
	assert.Equal(t, ucc(0, 2, 0, 0), folded.Site(1))
	assert.InDelta(t, math.Sqrt(2), folded.MaxLength(), 1e-9)
	assert.InDelta(t, math.Sqrt(0.5), st.Invariants(folded).MaxLength(), 1e-9)
	assert.Equal(t, 0, symcompare.CompareInvariants(st.Invariants(pair), st.Invariants(folded), 1e-5))

	got, ok := st.Supercell()
	require.True(t, ok)
	assert.Equal(t, 27, got.Volume())
	pp, err := symcompare.New(symcompare.PrimPeriodic)
	require.NoError(t, err)
	_, ok = pp.Supercell()
	assert.False(t, ok)
}
