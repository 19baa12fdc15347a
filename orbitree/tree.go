// SPDX-License-Identifier: MIT
package orbitree

import (
	"slices"

	"github.com/skk74/CASMcode/orbit"
	"github.com/skk74/CASMcode/symcompare"
)

// Tree is the mutable orbit-tree builder. Branch np holds the orbits of
// np-site elements. A Tree is not safe for concurrent mutation.
type Tree[E orbit.Element[E]] struct {
	act      orbit.Action[E]
	cmp      symcompare.Comparator[E]
	params   Params
	branches [][]*orbit.Orbit[E]
}

// NewTree returns an empty tree with branches 0..params.MaxNumSites().
func NewTree[E orbit.Element[E]](act orbit.Action[E], cmp symcompare.Comparator[E], params Params) *Tree[E] {
	t := &Tree[E]{act: act, cmp: cmp, params: params}
	t.grow(params.MaxNumSites())

	return t
}

// grow makes sure branch np exists.
func (t *Tree[E]) grow(np int) {
	for len(t.branches) <= np {
		t.branches = append(t.branches, nil)
	}
}

// Action returns the group the orbits are built under.
func (t *Tree[E]) Action() orbit.Action[E] { return t.act }

// Comparator returns the comparator the orbits are built with.
func (t *Tree[E]) Comparator() symcompare.Comparator[E] { return t.cmp }

// Params returns the enumeration parameters.
func (t *Tree[E]) Params() Params { return t.params }

// NumBranches returns the number of branches, empty ones included.
func (t *Tree[E]) NumBranches() int { return len(t.branches) }

// Branch returns the orbits of branch np.
func (t *Tree[E]) Branch(np int) []*orbit.Orbit[E] {
	if np < 0 || np >= len(t.branches) {
		return nil
	}

	return slices.Clone(t.branches[np])
}

// Add appends o to the branch matching its prototype size. Callers check
// Contains first; Add does not deduplicate.
func (t *Tree[E]) Add(o *orbit.Orbit[E]) {
	np := o.Prototype().Size()
	t.grow(np)
	t.branches[np] = append(t.branches[np], o)
}

// Find returns the branch and orbit position of e.
func (t *Tree[E]) Find(e E) (np, no int, ok bool) {
	np = e.Size()
	if np >= len(t.branches) {
		return np, NotFound, false
	}
	no = findIn(t.branches[np], e, t.cmp)

	return np, no, no != NotFound
}

// Contains reports whether some orbit of the tree holds e.
func (t *Tree[E]) Contains(e E) bool {
	_, _, ok := t.Find(e)

	return ok
}

// findIn scans orbits for e, preparing e once.
func findIn[E orbit.Element[E]](orbits []*orbit.Orbit[E], e E, cmp symcompare.Comparator[E]) int {
	if len(orbits) == 0 {
		return NotFound
	}
	inv := cmp.Invariants(e)
	var reps []E
	for i, o := range orbits {
		if symcompare.CompareInvariants(inv, o.Invariants(), cmp.Tol()) != 0 {
			continue
		}
		if reps == nil {
			reps = cmp.Representations(e)
		}
		if o.Match(reps, inv) >= 0 {
			return i
		}
	}

	return NotFound
}

// Sort orders every branch by orbit.Compare.
func (t *Tree[E]) Sort() {
	for _, b := range t.branches {
		slices.SortStableFunc(b, orbit.Compare[E])
	}
}

// clone returns a tree sharing the orbits but not the branch slices.
func (t *Tree[E]) clone() *Tree[E] {
	out := &Tree[E]{act: t.act, cmp: t.cmp, params: t.params, branches: make([][]*orbit.Orbit[E], len(t.branches))}
	for np, b := range t.branches {
		out.branches[np] = slices.Clone(b)
	}
	out.params.MaxLength = slices.Clone(t.params.MaxLength)
	out.params.Counts = slices.Clone(t.params.Counts)

	return out
}

// truncate keeps the first n orbits of branch np.
func (t *Tree[E]) truncate(np, n int) {
	t.branches[np] = t.branches[np][:n]
}

// Freeze sorts the tree and returns its immutable indexed form. The tree
// may still be mutated afterwards without affecting the result.
func (t *Tree[E]) Freeze(opts ...FreezeOption) (*Indexed[E], error) {
	fo := freezeOptions{}
	for _, opt := range opts {
		opt(&fo)
	}
	t.Sort()

	ix := newIndexed(t.act, t.cmp, t.params, t.branches)
	if fo.hierarchy == HierarchyNone {
		return ix, nil
	}
	if err := ix.buildHierarchy(fo.hierarchy == HierarchyStrict); err != nil {
		return nil, treeErrorf(opFreeze, err)
	}

	return ix, nil
}
