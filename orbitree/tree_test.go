// SPDX-License-Identifier: MIT
package orbitree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/orbitree"
)

// TestIndexed_Tables verifies the linear index and its row and column tables agree.
func TestIndexed_Tables(t *testing.T) {
	ix := tripletTree(t)

	l := 0
	for np := 0; np < ix.NumBranches(); np++ {
		for no := 0; no < ix.Size(np); no++ {
			assert.Equal(t, l, ix.Index(np, no))
			assert.Equal(t, np, ix.Row(l))
			assert.Equal(t, no, ix.Column(l))
			assert.Same(t, ix.Orbit(np, no), ix.OrbitAt(l))
			l++
		}
	}
	assert.Equal(t, l, ix.Len())

	assert.Equal(t, orbitree.NotFound, ix.Index(9, 0))
	assert.Equal(t, orbitree.NotFound, ix.Index(1, 3))
	assert.Equal(t, orbitree.NotFound, ix.Row(-1))
	assert.Equal(t, orbitree.NotFound, ix.Column(ix.Len()))
	assert.Zero(t, ix.Size(7))
	assert.Nil(t, ix.Branch(7))
	assert.Nil(t, ix.Hierarchy(ix.Len()))
}

// TestIndexed_FindEveryEquivalent verifies every equivalent resolves to its own orbit.
func TestIndexed_FindEveryEquivalent(t *testing.T) {
	ix := tripletTree(t)
	for l := 0; l < ix.Len(); l++ {
		for _, e := range ix.OrbitAt(l).Equivalents() {
			got, ok := ix.Find(e.Translate([3]int{2, -1, 7}))
			require.True(t, ok)
			assert.Equal(t, l, got)
		}
	}

	s := simpleCubic(t)
	_, ok := ix.Find(cluster.New(s, ucc(0, 0, 0, 0), ucc(0, 3, 0, 0)))
	assert.False(t, ok)
	_, ok = ix.Find(cluster.New(s, ucc(0, 0, 0, 0), ucc(0, 1, 0, 0), ucc(0, 0, 1, 0), ucc(0, 0, 0, 1)))
	assert.False(t, ok, "branch beyond the tree")
}

// TestTree_FreezeIsolated verifies later mutation does not leak into a frozen tree.
func TestTree_FreezeIsolated(t *testing.T) {
	s := simpleCubic(t)
	tree, err := orbitree.Generate(s, orbitree.Params{MaxLength: []float64{0, 0, 1}})
	ix := freeze(t, tree, err)

	extra, err := orbitree.Generate(s, orbitree.Params{MaxLength: []float64{0, 0, 1.5}})
	require.NoError(t, err)
	for _, o := range extra.Branch(2) {
		if !tree.Contains(o.Prototype()) {
			tree.Add(o)
		}
	}
	assert.Len(t, tree.Branch(2), 2)
	assert.Equal(t, 1, ix.Size(2))

	np, no, ok := tree.Find(cluster.New(s, ucc(0, 0, 0, 0), ucc(0, 1, 1, 0)))
	assert.True(t, ok)
	assert.Equal(t, 2, np)
	assert.GreaterOrEqual(t, no, 0)
}

// TestTree_SortOrder verifies branches sort by ascending max length.
func TestTree_SortOrder(t *testing.T) {
	tree, err := orbitree.Generate(fcc(t), orbitree.Params{MaxLength: []float64{0, 0, 1.3}})
	ix := freeze(t, tree, err)

	prev := 0.0
	for _, o := range ix.Branch(2) {
		assert.GreaterOrEqual(t, o.Invariants().MaxLength(), prev)
		prev = o.Invariants().MaxLength()
	}
	assert.Equal(t, []int{12, 6, 24}, multiplicities(ix, 2))
}
