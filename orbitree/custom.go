// SPDX-License-Identifier: MIT
package orbitree

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
)

// CustomOrbit is one user-supplied prototype.
type CustomOrbit struct {
	CoordinateMode     string         `json:"coordinate_mode"`
	Prototype          []lattice.Vec3 `json:"prototype"`
	IncludeSubclusters *bool          `json:"include_subclusters,omitempty"`
}

// includeSubclusters defaults to true.
func (c CustomOrbit) includeSubclusters() bool {
	return c.IncludeSubclusters == nil || *c.IncludeSubclusters
}

// CustomClusters is the custom cluster document:
//
//	{"orbits": [{"coordinate_mode": "Direct", "prototype": [[0,0,0],[1,0,0]],
//	             "include_subclusters": true}]}
type CustomClusters struct {
	Orbits []CustomOrbit `json:"orbits"`
}

// ParseCustom decodes a custom cluster document.
func ParseCustom(r io.Reader) (CustomClusters, error) {
	var doc CustomClusters
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return CustomClusters{}, treeErrorf(opCustom, fmt.Errorf("%w: %v", ErrBadCustom, err))
	}

	return doc, nil
}

// AddCustom adds the orbit of every custom prototype not already in t and,
// unless disabled per prototype, the orbits of all of its sub-clusters,
// the empty cluster included. Call Freeze afterwards to re-sort.
// On error t is left unchanged.
func AddCustom(t *Tree[cluster.Cluster], prim *crystal.Structure, doc CustomClusters, opts ...Option) error {
	o := buildOptions(opts)
	staged := t.clone()
	for i, co := range doc.Orbits {
		mode, err := crystal.ParseCoordMode(co.CoordinateMode)
		if err != nil {
			return treeErrorf(opCustom, fmt.Errorf("%w: orbit %d: %v", ErrBadCustom, i, err))
		}
		c := cluster.New(prim)
		for _, x := range co.Prototype {
			u, err := prim.FindCoordinate(x, mode)
			if err != nil {
				return treeErrorf(opCustom, fmt.Errorf("%w: orbit %d: %v", ErrBadCustom, i, err))
			}
			c.PushBack(u)
		}
		if c.HasCoincidentSites(prim.Tol()) {
			return treeErrorf(opCustom, fmt.Errorf("%w: orbit %d repeats a site", ErrBadCustom, i))
		}
		staged.grow(c.Size())
		if err := addNew(staged, c, c.Size(), o); err != nil {
			return treeErrorf(opCustom, err)
		}
		if !co.includeSubclusters() {
			continue
		}
		for k := 0; k < c.Size(); k++ {
			for _, idx := range combinations(c.Size(), k) {
				if err := addNew(staged, c.Subset(idx), k, o); err != nil {
					return treeErrorf(opCustom, err)
				}
			}
		}
		o.logger.Debug("custom orbit added", "op", opCustom, "orbit", i, "points", c.Size())
	}
	staged.params.MaxLength = branchMaxLengths(staged)
	t.branches, t.params = staged.branches, staged.params

	return nil
}

// combinations lists the k-subsets of 0..n-1 in lexicographic order.
func combinations(n, k int) [][]int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	for {
		out = append(out, append([]int(nil), idx...))
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
