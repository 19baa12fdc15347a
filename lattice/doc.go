// SPDX-License-Identifier: MIT

// Package lattice provides the coordinate geometry every other package of
// the orbit engine is built on: small fixed-size vectors and matrices, the
// Bravais lattice of a primitive structure and integer supercells of it.
//
// What is here?
//
//   - Vec3 / Mat3   : Cartesian and fractional 3-vectors, 3x3 real matrices.
//   - IVec3 / IMat3 : unit-cell indices and supercell transformation matrices.
//   - Lattice       : lattice vectors stored as matrix columns, frac<->cart
//     conversion, cell volume, sphere-enclosing grid sizing.
//   - Supercell     : S = L·T for an integer T, folding of unit-cell indices
//     into the supercell and enumeration of the prim cells it contains.
//
// Numeric policy:
//
//	Every comparison of real numbers goes through an explicit tolerance.
//	Lattice construction rejects NaN/Inf entries and degenerate (zero or
//	negative volume) cells. Inversion is delegated to gonum/mat.
//
// Complexity quicksheet:
//
//   - FracToCart / CartToFrac : O(1)
//   - EncloseSphere           : O(1)
//   - Supercell.Cells         : O(|det T| · box), box = bounding box of T's corners
package lattice
