// SPDX-License-Identifier: MIT
package orbitree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/orbitree"
)

func pairTree(t *testing.T, occupants ...string) *orbitree.Indexed[cluster.Cluster] {
	t.Helper()
	tree, err := orbitree.Generate(simpleCubic(t, occupants...), orbitree.Params{MaxLength: []float64{0, 0, 1}})

	return freeze(t, tree, err)
}

// TestDecorate_NonBackground verifies one decoration per site of a binary.
func TestDecorate_NonBackground(t *testing.T) {
	dec, err := orbitree.Decorate(pairTree(t), false)
	ix := freeze(t, dec, err)

	assert.Equal(t, []int{1, 1, 1}, branchSizes(ix))
	proto := ix.Orbit(2, 0).Prototype()
	assert.True(t, proto.Decorated())
	assert.Equal(t, []int{1, 1}, proto.Occupants())
	assert.True(t, ix.Orbit(0, 0).Prototype().Decorated())
}

// TestDecorate_Full verifies AB and BA pairs collapse into one orbit.
func TestDecorate_Full(t *testing.T) {
	rec := newRecorder()
	dec, err := orbitree.Decorate(pairTree(t), true, orbitree.WithObserver(rec))
	ix := freeze(t, dec, err)

	require.Equal(t, []int{1, 2, 3}, branchSizes(ix))
	assert.Equal(t, []int{6, 6, 6}, multiplicities(ix, 2))
	assert.Equal(t, 4, rec.proposed[2])
	assert.Equal(t, 1, rec.rejected[orbitree.RejectDuplicate])

	for l := ix.Index(2, 0); l < ix.Len(); l++ {
		assert.Len(t, ix.Hierarchy(l), 2)
	}
}

// TestDecorate_SingleOccupantSites verifies non-background decoration skips fixed sites.
func TestDecorate_SingleOccupantSites(t *testing.T) {
	dec, err := orbitree.Decorate(pairTree(t, "A"), false)
	require.NoError(t, err)
	assert.Empty(t, dec.Branch(1))
	assert.Empty(t, dec.Branch(2))
	assert.Len(t, dec.Branch(0), 1)
}

// TestHops verifies the single vacancy-exchange hop of a simple cubic binary.
func TestHops(t *testing.T) {
	hops, err := orbitree.Hops(pairTree(t, "A", "Va"))
	ix := freeze(t, hops, err, orbitree.WithHierarchy(orbitree.HierarchyNone))

	assert.Equal(t, []int{0, 0, 1}, branchSizes(ix))
	assert.False(t, ix.HasHierarchy())
	proto := ix.Orbit(2, 0).Prototype()
	assert.True(t, proto.IsHop())
	assert.Equal(t, []int{1, 0}, proto.Hop())
	assert.Equal(t, 1, cluster.CountSpecies(proto, "Va"))
	assert.Equal(t, 6, ix.OrbitSize(2, 0))
}

// TestHops_MobileSpecies verifies the mobile species option.
func TestHops_MobileSpecies(t *testing.T) {
	hops, err := orbitree.Hops(pairTree(t, "A", "Va"), orbitree.WithMobileSpecies("Li"))
	require.NoError(t, err)
	assert.Empty(t, hops.Branch(2))
}
