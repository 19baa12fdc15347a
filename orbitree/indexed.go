// SPDX-License-Identifier: MIT
package orbitree

import (
	"fmt"
	"slices"

	"github.com/skk74/CASMcode/orbit"
	"github.com/skk74/CASMcode/symcompare"
)

// Indexed is a frozen orbit tree. Orbits are addressed by (branch, orbit)
// or by a branch-major linear index.
type Indexed[E orbit.Element[E]] struct {
	act       orbit.Action[E]
	cmp       symcompare.Comparator[E]
	params    Params
	branches  [][]*orbit.Orbit[E]
	index     [][]int
	rows      []int
	cols      []int
	hierarchy [][]int
}

// newIndexed assigns branch-major linear indices to a copy of branches.
func newIndexed[E orbit.Element[E]](act orbit.Action[E], cmp symcompare.Comparator[E], params Params, branches [][]*orbit.Orbit[E]) *Indexed[E] {
	ix := &Indexed[E]{
		act:      act,
		cmp:      cmp,
		params:   params,
		branches: make([][]*orbit.Orbit[E], len(branches)),
		index:    make([][]int, len(branches)),
	}
	for np, b := range branches {
		ix.branches[np] = slices.Clone(b)
		ix.index[np] = make([]int, len(b))
		for no := range b {
			ix.index[np][no] = len(ix.rows)
			ix.rows = append(ix.rows, np)
			ix.cols = append(ix.cols, no)
		}
	}

	return ix
}

// Action returns the group the orbits were built under.
func (t *Indexed[E]) Action() orbit.Action[E] { return t.act }

// Comparator returns the comparator the orbits were built with.
func (t *Indexed[E]) Comparator() symcompare.Comparator[E] { return t.cmp }

// Params returns the enumeration parameters.
func (t *Indexed[E]) Params() Params { return t.params }

// NumBranches returns the number of branches, empty ones included.
func (t *Indexed[E]) NumBranches() int { return len(t.branches) }

// Size returns the number of orbits in branch np.
func (t *Indexed[E]) Size(np int) int {
	if np < 0 || np >= len(t.branches) {
		return 0
	}

	return len(t.branches[np])
}

// Branch returns the orbits of branch np.
func (t *Indexed[E]) Branch(np int) []*orbit.Orbit[E] {
	if np < 0 || np >= len(t.branches) {
		return nil
	}

	return slices.Clone(t.branches[np])
}

// Orbit returns orbit no of branch np. It panics when out of range.
func (t *Indexed[E]) Orbit(np, no int) *orbit.Orbit[E] { return t.branches[np][no] }

// OrbitSize returns the multiplicity of orbit no of branch np.
func (t *Indexed[E]) OrbitSize(np, no int) int { return t.branches[np][no].Size() }

// Len returns the total number of orbits.
func (t *Indexed[E]) Len() int { return len(t.rows) }

// OrbitAt returns the orbit with linear index l. It panics when out of range.
func (t *Indexed[E]) OrbitAt(l int) *orbit.Orbit[E] { return t.branches[t.rows[l]][t.cols[l]] }

// Index returns the linear index of orbit no of branch np, or NotFound.
func (t *Indexed[E]) Index(np, no int) int {
	if np < 0 || np >= len(t.index) || no < 0 || no >= len(t.index[np]) {
		return NotFound
	}

	return t.index[np][no]
}

// Row returns the branch of linear index l, or NotFound.
func (t *Indexed[E]) Row(l int) int {
	if l < 0 || l >= len(t.rows) {
		return NotFound
	}

	return t.rows[l]
}

// Column returns the in-branch position of linear index l, or NotFound.
func (t *Indexed[E]) Column(l int) int {
	if l < 0 || l >= len(t.cols) {
		return NotFound
	}

	return t.cols[l]
}

// Find returns the linear index of the orbit holding e.
func (t *Indexed[E]) Find(e E) (int, bool) {
	np := e.Size()
	if np >= len(t.branches) {
		return NotFound, false
	}
	no := findIn(t.branches[np], e, t.cmp)
	if no == NotFound {
		return NotFound, false
	}

	return t.index[np][no], true
}

// HasHierarchy reports whether Freeze resolved sub-clusters.
func (t *Indexed[E]) HasHierarchy() bool { return t.hierarchy != nil }

// Hierarchy returns the linear indices of the orbits of the non-empty,
// proper sub-clusters of orbit l's prototype, in subset-counter order
// (site 0 toggles fastest). It is nil without a hierarchy.
func (t *Indexed[E]) Hierarchy(l int) []int {
	if t.hierarchy == nil || l < 0 || l >= len(t.hierarchy) {
		return nil
	}

	return slices.Clone(t.hierarchy[l])
}

// buildHierarchy resolves every proper sub-cluster of every prototype.
func (t *Indexed[E]) buildHierarchy(strict bool) error {
	t.hierarchy = make([][]int, len(t.rows))
	for l := range t.rows {
		proto := t.OrbitAt(l).Prototype()
		k := proto.Size()
		subs := []int{}
		for mask := 1; mask < 1<<k-1; mask++ {
			idx := subsetIndices(mask, k)
			sub, ok := t.Find(proto.Subset(idx))
			if !ok {
				if strict {
					return fmt.Errorf("%w: orbit %d, sites %v", ErrHierarchy, l, idx)
				}
				continue
			}
			subs = append(subs, sub)
		}
		t.hierarchy[l] = subs
	}

	return nil
}

// subsetIndices lists the set bits of mask below k, ascending.
func subsetIndices(mask, k int) []int {
	idx := make([]int, 0, k)
	for i := 0; i < k; i++ {
		if mask&(1<<i) != 0 {
			idx = append(idx, i)
		}
	}

	return idx
}
