// SPDX-License-Identifier: MIT
package orbitree_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/orbitree"
	"github.com/skk74/CASMcode/symcompare"
)

// TestMarshal_RoundTrip verifies a snapshot reloads into an identical tree.
func TestMarshal_RoundTrip(t *testing.T) {
	s := simpleCubic(t)
	ix := tripletTree(t)

	data, err := orbitree.Marshal(ix)
	require.NoError(t, err)
	back, err := orbitree.Unmarshal(data, s)
	require.NoError(t, err)

	again, err := orbitree.Marshal(back)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
	assert.Equal(t, listing(t, ix, orbitree.ListFull), listing(t, back, orbitree.ListFull))
	for l := 0; l < ix.Len(); l++ {
		assert.Equal(t, ix.Hierarchy(l), back.Hierarchy(l))
	}

	l, ok := back.Find(cluster.New(s, ucc(0, 4, 4, 4), ucc(0, 4, 5, 5)))
	require.True(t, ok)
	assert.Equal(t, back.Index(2, 1), l)
}

// TestMarshal_DecoratedLocalAndSupercell verifies snapshots of every comparison mode.
func TestMarshal_DecoratedLocalAndSupercell(t *testing.T) {
	s := simpleCubic(t, "A", "Va")

	dec, err := orbitree.Decorate(pairTree(t, "A", "Va"), true)
	decorated := freeze(t, dec, err)

	hops, err := orbitree.Hops(pairTree(t, "A", "Va"))
	hopTree := freeze(t, hops, err, orbitree.WithHierarchy(orbitree.HierarchyNone))

	local, err := orbitree.GenerateLocal(s, cluster.New(s, ucc(0, 0, 0, 0), ucc(0, 1, 0, 0)), orbitree.Params{MaxLength: []float64{0, 1.5}})
	localTree := freeze(t, local, err)

	scel, err := lattice.NewSupercell(s.Lattice(), lattice.Diagonal(2, 2, 2))
	require.NoError(t, err)
	sc, err := orbitree.GenerateInSupercell(s, scel, symcompare.WithinScel, orbitree.Params{MaxLength: []float64{0, 0, 1}})
	scelTree := freeze(t, sc, err)

	for name, ix := range map[string]*orbitree.Indexed[cluster.Cluster]{
		"decorated": decorated, "hops": hopTree, "local": localTree, "supercell": scelTree,
	} {
		data, err := orbitree.Marshal(ix)
		require.NoError(t, err, name)
		back, err := orbitree.Unmarshal(data, s)
		require.NoError(t, err, name)
		assert.Equal(t, listing(t, ix, orbitree.ListFull), listing(t, back, orbitree.ListFull), name)
		assert.Equal(t, ix.HasHierarchy(), back.HasHierarchy(), name)
	}
}

// TestSaveLoad verifies plain and snappy-compressed files.
func TestSaveLoad(t *testing.T) {
	s := simpleCubic(t)
	ix := tripletTree(t)
	dir := t.TempDir()

	for _, name := range []string{"tree.json", "tree.json.sz"} {
		path := filepath.Join(dir, name)
		require.NoError(t, orbitree.Save(path, ix))
		back, err := orbitree.Load(path, s)
		require.NoError(t, err, name)
		assert.Equal(t, listing(t, ix, orbitree.ListPrototypes), listing(t, back, orbitree.ListPrototypes), name)
	}

	plain, err := os.ReadFile(filepath.Join(dir, "tree.json"))
	require.NoError(t, err)
	packed, err := os.ReadFile(filepath.Join(dir, "tree.json.sz"))
	require.NoError(t, err)
	assert.Less(t, len(packed), len(plain))

	_, err = orbitree.Load(filepath.Join(dir, "missing.json"), s)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestUnmarshal_Errors verifies incompatible snapshots are rejected.
func TestUnmarshal_Errors(t *testing.T) {
	data, err := orbitree.Marshal(pairTree(t))
	require.NoError(t, err)
	text := string(data)

	for name, bad := range map[string]string{
		"json":    "{",
		"version": strings.Replace(text, `"version": 1`, `"version": 7`, 1),
		"mode":    strings.Replace(text, `"mode": "prim-periodic"`, `"mode": "spiral"`, 1),
		"group":   strings.Replace(text, `"group_order": 48`, `"group_order": 47`, 1),
		"index":   strings.Replace(text, `"linear_index": 2`, `"linear_index": 5`, 1),
	} {
		_, err := orbitree.Unmarshal([]byte(bad), simpleCubic(t))
		assert.ErrorIs(t, err, orbitree.ErrBadSnapshot, name)
	}

	tetragonal := structure(t, lattice.Vec3{1, 0, 0}, lattice.Vec3{0, 1, 0}, lattice.Vec3{0, 0, 1.5},
		crystal.Site{Occupants: []string{"A", "B"}})
	_, err = orbitree.Unmarshal(data, tetragonal)
	assert.ErrorIs(t, err, orbitree.ErrBadSnapshot, "tetragonal structure has a smaller group")
}

// rewrite decodes a snapshot, applies edit and encodes it again.
func rewrite(t *testing.T, data []byte, edit func(snap map[string]any)) []byte {
	t.Helper()
	var snap map[string]any
	require.NoError(t, json.Unmarshal(data, &snap))
	edit(snap)
	out, err := json.Marshal(snap)
	require.NoError(t, err)

	return out
}

// record returns orbit no of branch np in a decoded snapshot.
func record(snap map[string]any, np, no int) map[string]any {
	return snap["branches"].([]any)[np].([]any)[no].(map[string]any)
}

// TestUnmarshal_Inconsistent verifies indices and sizes are checked against the tree.
func TestUnmarshal_Inconsistent(t *testing.T) {
	data, err := orbitree.Marshal(pairTree(t))
	require.NoError(t, err)
	_, err = orbitree.Unmarshal(data, simpleCubic(t))
	require.NoError(t, err)

	for name, edit := range map[string]func(map[string]any){
		"hierarchy": func(snap map[string]any) {
			h := snap["hierarchy"].([]any)
			h[len(h)-1] = []any{0, 3}
		},
		"negative hierarchy": func(snap map[string]any) {
			snap["hierarchy"].([]any)[1] = []any{-1}
		},
		"stabilizer": func(snap map[string]any) {
			record(snap, 2, 0)["stabilizer"].([]any)[0] = 48
		},
		"equivalence op": func(snap map[string]any) {
			record(snap, 1, 0)["equivalence_ops"].([]any)[0] = -1
		},
		"prototype size": func(snap map[string]any) {
			eq := record(snap, 2, 0)["equivalents"].([]any)[0].(map[string]any)
			eq["sites"] = eq["sites"].([]any)[:1]
		},
	} {
		_, err := orbitree.Unmarshal(rewrite(t, data, edit), simpleCubic(t))
		assert.ErrorIs(t, err, orbitree.ErrBadSnapshot, name)
	}
}
