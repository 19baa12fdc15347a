// SPDX-License-Identifier: MIT
package symcompare

import (
	"math"

	"github.com/skk74/CASMcode/lattice"
)

// Comparator is the contract orbits are built against, generic over the
// element type E.
type Comparator[E any] interface {
	// Prepare returns the canonical form of e (spatial, then representation).
	Prepare(e E) E
	// Representations returns every canonical form e may take; Prepare(e) is first.
	Representations(e E) []E
	// Less is a strict weak order on prepared elements.
	Less(a, b E) bool
	// Invariants summarizes e; unequal invariants imply inequivalence.
	Invariants(e E) Invariants
	// Tol is the tolerance used for invariant comparison.
	Tol() float64
}

// Invariants is the orbit-level summary of an element.
type Invariants struct {
	Size       int
	Lengths    []float64 // pairwise distances, descending
	Phenomenal []float64 // distances to the phenomenal sites, descending
}

// MaxLength returns the longest length, phenomenal distances included.
func (in Invariants) MaxLength() float64 {
	m := 0.0
	if len(in.Lengths) > 0 {
		m = in.Lengths[0]
	}
	if len(in.Phenomenal) > 0 {
		m = math.Max(m, in.Phenomenal[0])
	}

	return m
}

// MinLength returns the shortest pairwise length (0 below two sites).
func (in Invariants) MinLength() float64 {
	if len(in.Lengths) == 0 {
		return 0
	}

	return in.Lengths[len(in.Lengths)-1]
}

// CompareInvariants orders invariants by size, then lengths, then
// phenomenal distances, elementwise within tol: -1, 0 or +1.
func CompareInvariants(a, b Invariants, tol float64) int {
	if a.Size != b.Size {
		if a.Size < b.Size {
			return -1
		}

		return 1
	}
	if c := compareLengths(a.Lengths, b.Lengths, tol); c != 0 {
		return c
	}

	return compareLengths(a.Phenomenal, b.Phenomenal, tol)
}

func compareLengths(a, b []float64, tol float64) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]-tol:
			return -1
		case a[i] > b[i]+tol:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}

	return 0
}

// Transform is the change carried out by preparation: prepared site k is
// original site Perm[k] moved by Translation plus Shifts[k]. Translation is
// the uniform part; Shifts is set only where sites are folded one by one
// (WithinScel) and is otherwise nil.
type Transform struct {
	Perm        []int
	Translation lattice.IVec3
	Shifts      []lattice.IVec3
}
