// SPDX-License-Identifier: MIT

// Package symcompare defines how clusters are normalized and ordered before
// they are compared for symmetry equivalence.
//
// A strategy prepares a cluster in two steps. SpatialPrepare removes the
// translational freedom allowed by the periodicity convention and
// RepresentationPrepare puts the sites in canonical order. Prepared clusters
// are then ordered exactly by Less. Invariants give a cheap, tolerance-aware
// summary (site count, pairwise lengths) that must agree for two clusters
// to be equivalent.
//
// The variant set is closed:
//
//	Aperiodic    no translation; all sites sorted. Optional phenomenal
//	             sites add distance invariants (local clusters).
//	PrimPeriodic the anchor (first) site is moved to the origin cell; the
//	             other sites are sorted behind it.
//	ScelPeriodic as PrimPeriodic, but the anchor is folded into a supercell.
//	WithinScel   every site folded into a supercell, then all sorted.
//
// In the two anchored variants a cluster has one representation per choice
// of anchor, returned by Representations. An equivalence test must try them
// all; the other variants return a single representation.
package symcompare
