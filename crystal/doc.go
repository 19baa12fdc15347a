// SPDX-License-Identifier: MIT

// Package crystal describes the primitive structure the orbit engine works
// on and how symmetry operations act on its sites.
//
// A site of the infinite crystal is addressed by a UnitCellCoord: the
// sublattice index b plus the integer unit cell n, so that its fractional
// position is basis[b] + n. A symmetry operation acts on these integer
// coordinates through a SiteMap: the point part becomes an integer matrix in
// fractional coordinates and each sublattice b is sent to a fixed target
// (b', t_b), giving (b, n) ↦ (b', S·n + t_b). Occupant indices are carried
// over by species name.
//
// The package also derives the groups the enumeration algorithms act with:
//
//   - ComputeFactorGroup : space group modulo lattice translations.
//   - ClusterGroup       : ops (with explicit translations) that fix a
//     phenomenal cluster as a set.
//   - SupercellGroup     : factor-group ops compatible with a supercell,
//     times the prim translations inside it.
package crystal
