// SPDX-License-Identifier: MIT
package orbit

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/skk74/CASMcode/symcompare"
)

var (
	// ErrEmptyGroup is returned when the acting group has no operations.
	ErrEmptyGroup = errors.New("orbit: acting group is empty")

	// ErrStabilizer reports a violated orbit-stabilizer relation.
	ErrStabilizer = errors.New("orbit: orbit-stabilizer relation violated")

	// ErrBadRestore is returned when restored orbit data is inconsistent.
	ErrBadRestore = errors.New("orbit: inconsistent restored orbit")
)

// Element is what an orbit can hold: a sized object with sub-elements.
type Element[E any] interface {
	Size() int
	Subset(idx []int) E
}

// Action is a group acting on elements, ops addressed by index.
type Action[E any] interface {
	Order() int
	Apply(g int, e E) E
}

// Orbit is an immutable equivalence class.
type Orbit[E Element[E]] struct {
	cmp         symcompare.Comparator[E]
	equivalents []E
	equivOps    []int
	stabilizer  []int
	sorted      []int // equivalent indices in Less order
	invariants  symcompare.Invariants
	groupOrder  int
}

// Make builds the orbit of seed under act.
func Make[E Element[E]](seed E, act Action[E], cmp symcompare.Comparator[E]) (*Orbit[E], error) {
	n := act.Order()
	if n == 0 {
		return nil, ErrEmptyGroup
	}

	// 1. Prototype: minimum over every representation of every image.
	var proto E
	found := false
	for g := 0; g < n; g++ {
		for _, r := range cmp.Representations(act.Apply(g, seed)) {
			if !found || cmp.Less(r, proto) {
				proto, found = r, true
			}
		}
	}

	// 2. Equivalents in group order, collecting the stabilizer on the way.
	o := &Orbit[E]{cmp: cmp, groupOrder: n, invariants: cmp.Invariants(proto)}
	for g := 0; g < n; g++ {
		img := cmp.Prepare(act.Apply(g, proto))
		if o.equal(img, proto) {
			o.stabilizer = append(o.stabilizer, g)
		}
		if o.search(img) >= 0 {
			continue
		}
		o.insert(img, g)
	}
	// 3. Prototype first.
	if k := o.search(proto); k > 0 {
		o.moveToFront(k)
	}
	// 4. Orbit-stabilizer check.
	if len(o.equivalents)*len(o.stabilizer) != n {
		return nil, fmt.Errorf("%w: %d equivalents × %d stabilizer ops ≠ %d", ErrStabilizer, len(o.equivalents), len(o.stabilizer), n)
	}

	return o, nil
}

// Restore rebuilds an orbit from stored equivalents without applying the
// group. equivalents[0] is the prototype.
func Restore[E Element[E]](equivalents []E, equivOps, stabilizer []int, groupOrder int, cmp symcompare.Comparator[E]) (*Orbit[E], error) {
	if len(equivalents) == 0 || len(equivOps) != len(equivalents) || len(equivalents)*len(stabilizer) != groupOrder {
		return nil, fmt.Errorf("%w: %d equivalents, %d ops, %d stabilizer ops, group order %d",
			ErrBadRestore, len(equivalents), len(equivOps), len(stabilizer), groupOrder)
	}
	for _, ops := range [][]int{equivOps, stabilizer} {
		for _, g := range ops {
			if g < 0 || g >= groupOrder {
				return nil, fmt.Errorf("%w: op %d outside group of order %d", ErrBadRestore, g, groupOrder)
			}
		}
	}
	o := &Orbit[E]{cmp: cmp, groupOrder: groupOrder, stabilizer: slices.Clone(stabilizer), invariants: cmp.Invariants(equivalents[0])}
	for i, e := range equivalents {
		p := cmp.Prepare(e)
		if o.search(p) >= 0 {
			return nil, fmt.Errorf("%w: duplicate equivalent %d", ErrBadRestore, i)
		}
		o.insert(p, equivOps[i])
	}

	return o, nil
}

func (o *Orbit[E]) equal(a, b E) bool { return !o.cmp.Less(a, b) && !o.cmp.Less(b, a) }

// search returns the equivalent index of prepared e, or -1.
func (o *Orbit[E]) search(e E) int {
	k := sort.Search(len(o.sorted), func(i int) bool { return !o.cmp.Less(o.equivalents[o.sorted[i]], e) })
	if k < len(o.sorted) && !o.cmp.Less(e, o.equivalents[o.sorted[k]]) {
		return o.sorted[k]
	}

	return -1
}

func (o *Orbit[E]) insert(e E, g int) {
	idx := len(o.equivalents)
	o.equivalents = append(o.equivalents, e)
	o.equivOps = append(o.equivOps, g)
	k := sort.Search(len(o.sorted), func(i int) bool { return o.cmp.Less(e, o.equivalents[o.sorted[i]]) })
	o.sorted = slices.Insert(o.sorted, k, idx)
}

// moveToFront moves equivalent k to position 0, shifting 0..k-1 up by one.
func (o *Orbit[E]) moveToFront(k int) {
	e, g := o.equivalents[k], o.equivOps[k]
	copy(o.equivalents[1:k+1], o.equivalents[:k])
	copy(o.equivOps[1:k+1], o.equivOps[:k])
	o.equivalents[0], o.equivOps[0] = e, g
	for i, idx := range o.sorted {
		switch {
		case idx == k:
			o.sorted[i] = 0
		case idx < k:
			o.sorted[i] = idx + 1
		}
	}
}

// Prototype returns the canonical representative.
func (o *Orbit[E]) Prototype() E { return o.equivalents[0] }

// Size returns the number of equivalents (the multiplicity).
func (o *Orbit[E]) Size() int { return len(o.equivalents) }

// Equivalent returns equivalent i.
func (o *Orbit[E]) Equivalent(i int) E { return o.equivalents[i] }

// Equivalents returns the equivalents in generation order.
func (o *Orbit[E]) Equivalents() []E { return slices.Clone(o.equivalents) }

// EquivalenceOps returns, per equivalent, the first op mapping the prototype onto it.
func (o *Orbit[E]) EquivalenceOps() []int { return slices.Clone(o.equivOps) }

// Stabilizer returns the indices of the ops fixing the prototype.
func (o *Orbit[E]) Stabilizer() []int { return slices.Clone(o.stabilizer) }

// GroupOrder returns the order of the acting group.
func (o *Orbit[E]) GroupOrder() int { return o.groupOrder }

// Invariants returns the prototype invariants.
func (o *Orbit[E]) Invariants() symcompare.Invariants { return o.invariants }

// Comparator returns the comparator the orbit was built with.
func (o *Orbit[E]) Comparator() symcompare.Comparator[E] { return o.cmp }

// IndexOf returns the index of the equivalent e is equivalent to, or -1.
func (o *Orbit[E]) IndexOf(e E) int {
	inv := o.cmp.Invariants(e)
	if symcompare.CompareInvariants(inv, o.invariants, o.cmp.Tol()) != 0 {
		return -1
	}

	return o.Match(o.cmp.Representations(e), inv)
}

// Match is IndexOf for callers that already hold the representations and
// invariants of a candidate, e.g. when scanning a whole branch.
func (o *Orbit[E]) Match(reps []E, inv symcompare.Invariants) int {
	if symcompare.CompareInvariants(inv, o.invariants, o.cmp.Tol()) != 0 {
		return -1
	}
	for _, r := range reps {
		if k := o.search(r); k >= 0 {
			return k
		}
	}

	return -1
}

// Contains reports whether e belongs to the orbit.
func (o *Orbit[E]) Contains(e E) bool { return o.IndexOf(e) >= 0 }

// Compare orders orbits by ascending max length (within tolerance), then by
// invariants, then by prototype.
func Compare[E Element[E]](a, b *Orbit[E]) int {
	tol := a.cmp.Tol()
	la, lb := a.invariants.MaxLength(), b.invariants.MaxLength()
	if math.Abs(la-lb) > tol {
		if la < lb {
			return -1
		}

		return 1
	}
	if c := symcompare.CompareInvariants(a.invariants, b.invariants, tol); c != 0 {
		return c
	}
	switch {
	case a.cmp.Less(a.Prototype(), b.Prototype()):
		return -1
	case a.cmp.Less(b.Prototype(), a.Prototype()):
		return 1
	}

	return 0
}
