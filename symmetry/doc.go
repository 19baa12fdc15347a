// SPDX-License-Identifier: MIT

// Package symmetry models symmetry operations and groups of them.
//
// An Op is x ↦ R·x + τ in Cartesian coordinates, with an optional
// time-reversal flag that composes by XOR. A Group is an ordered, validated
// sequence of ops: non-empty, containing the identity and closed under
// composition. Closure is checked either exactly (cluster groups, whose ops
// carry explicit lattice translations) or modulo a lattice (factor groups).
//
// LatticePointGroup finds the point operations of a Bravais lattice by
// searching the metric-preserving integer matrices with entries in {-1,0,1},
// which is complete for reduced cells.
package symmetry
