// SPDX-License-Identifier: MIT

// Package casm enumerates the symmetrically distinct clusters of a crystal
// for cluster expansions.
//
// The work is split bottom-up:
//
//   - lattice: vectors, lattices and supercells
//   - symmetry: operations and validated groups
//   - crystal: primitive structures, factor groups and site representations
//   - cluster: cluster values, decorations and hops
//   - symcompare: the comparison strategies that decide cluster equivalence
//   - orbit: orbits with prototype, equivalents and stabilizer
//   - orbitree: enumeration, hierarchy, listings and snapshots
//   - specs: specification and structure files
//   - metrics, report: Prometheus metrics and charts of a run
//
// The orbitree command in cmd/orbitree drives all of it from files.
package casm
