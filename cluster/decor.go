// SPDX-License-Identifier: MIT
package cluster

import (
	"slices"
)

// DecorMaps lists the decorations of c in odometer order (last site fastest).
// With full, every site ranges over all of its occupants; otherwise over the
// non-background occupants 1..n-1, so sites with a single occupant admit none.
func DecorMaps(c Cluster, full bool) [][]int {
	lo := 1
	if full {
		lo = 0
	}
	k := c.Size()
	hi := make([]int, k)
	for i := 0; i < k; i++ {
		hi[i] = c.prim.NumOccupants(c.sites[i].Sublat)
		if hi[i] <= lo {
			return nil
		}
	}
	cur := make([]int, k)
	for i := range cur {
		cur[i] = lo
	}
	var out [][]int
	for {
		out = append(out, slices.Clone(cur))
		i := k - 1
		for ; i >= 0; i-- {
			cur[i]++
			if cur[i] < hi[i] {
				break
			}
			cur[i] = lo
		}
		if i < 0 {
			return out
		}
	}
}

// Derangements lists the permutations of 0..n-1 without fixed points, in
// lexicographic order.
func Derangements(n int) [][]int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	var out [][]int
	for {
		if fixedPointFree(perm) {
			out = append(out, slices.Clone(perm))
		}
		if !nextPermutation(perm) {
			return out
		}
	}
}

func fixedPointFree(perm []int) bool {
	for i, p := range perm {
		if i == p {
			return false
		}
	}

	return len(perm) > 0
}

// nextPermutation advances perm to its lexicographic successor.
func nextPermutation(perm []int) bool {
	i := len(perm) - 2
	for i >= 0 && perm[i] >= perm[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(perm) - 1
	for perm[j] <= perm[i] {
		j--
	}
	perm[i], perm[j] = perm[j], perm[i]
	slices.Reverse(perm[i+1:])

	return true
}

// AllowedHop reports whether every species of the decorated cluster c may
// occupy the site it moves to under perm.
func AllowedHop(c Cluster, perm []int) bool {
	if !c.Decorated() || len(perm) != c.Size() {
		return false
	}
	for i, p := range perm {
		if !slices.Contains(c.prim.Occupants(c.sites[p].Sublat), c.OccupantName(i)) {
			return false
		}
	}

	return true
}

// CountSpecies counts the sites of a decorated cluster occupied by any of names.
func CountSpecies(c Cluster, names ...string) int {
	n := 0
	for i := range c.occ {
		if slices.Contains(names, c.OccupantName(i)) {
			n++
		}
	}

	return n
}
