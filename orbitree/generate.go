// SPDX-License-Identifier: MIT
package orbitree

import (
	"fmt"
	"slices"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/symcompare"
)

// Generate enumerates the periodic cluster orbits of prim under its factor
// group, up to params.MaxNumSites() sites.
//
// Branch 0 holds the empty cluster and branch 1 every point cluster. For
// np >= 2 every prototype of branch np-1 is extended by each neighbor site;
// a candidate is kept when its max length is within the branch cutoff, its
// min length is at least MinLength, and no orbit of the branch holds it
// yet. Branches with Params.Counts[np] > 0 are bounded by count instead.
//
// Returns ErrBadParams, ErrEmptyBranch or ErrCountUnreachable.
func Generate(prim *crystal.Structure, params Params, opts ...Option) (*Tree[cluster.Cluster], error) {
	if err := params.Validate(); err != nil {
		return nil, treeErrorf(opGenerate, err)
	}
	tol := tolerance(prim, params)
	cmp, err := symcompare.New(symcompare.PrimPeriodic, symcompare.WithTolerance(tol))
	if err != nil {
		return nil, treeErrorf(opGenerate, err)
	}

	return newGrower(opGenerate, prim, prim.FactorGroupRep(), cmp, params, buildOptions(opts)).run()
}

// GenerateByCount is Generate in count mode: branch np >= 2 keeps the
// counts[np] shortest orbits, together with every orbit tied with the last
// one within tolerance.
func GenerateByCount(prim *crystal.Structure, counts []int, params Params, opts ...Option) (*Tree[cluster.Cluster], error) {
	params.Counts = slices.Clone(counts)

	return Generate(prim, params, opts...)
}

// GenerateLocal enumerates the clusters around phenom under its cluster
// group. Lengths include the distances to the phenomenal sites, and every
// cluster site lies within the branch cutoff of every phenomenal site.
// Branch 1 is bounded by MaxLength[1].
func GenerateLocal(prim *crystal.Structure, phenom cluster.Cluster, params Params, opts ...Option) (*Tree[cluster.Cluster], error) {
	if err := params.Validate(); err != nil {
		return nil, treeErrorf(opLocal, err)
	}
	if phenom.Size() == 0 {
		return nil, treeErrorf(opLocal, ErrNoPhenomenal)
	}
	rep, err := prim.ClusterGroup(phenom.Sites())
	if err != nil {
		return nil, treeErrorf(opLocal, err)
	}
	tol := tolerance(prim, params)
	cmp, err := symcompare.New(symcompare.Aperiodic,
		symcompare.WithTolerance(tol),
		symcompare.WithPhenomenal(phenom.Sites()),
	)
	if err != nil {
		return nil, treeErrorf(opLocal, err)
	}
	g := newGrower(opLocal, prim, rep, cmp, params, buildOptions(opts))
	g.phenom = phenom.Sites()

	return g.run()
}

// GenerateInSupercell enumerates periodic clusters of a supercell under the
// supercell group, compared with mode (ScelPeriodic or WithinScel).
// Clusters with two sites folding onto the same supercell site are
// rejected.
func GenerateInSupercell(prim *crystal.Structure, scel lattice.Supercell, mode symcompare.Mode, params Params, opts ...Option) (*Tree[cluster.Cluster], error) {
	if mode != symcompare.ScelPeriodic && mode != symcompare.WithinScel {
		return nil, treeErrorf(opSupercell, fmt.Errorf("%w: mode %v", ErrBadParams, mode))
	}
	if err := params.Validate(); err != nil {
		return nil, treeErrorf(opSupercell, err)
	}
	rep, err := prim.SupercellGroup(scel)
	if err != nil {
		return nil, treeErrorf(opSupercell, err)
	}
	tol := tolerance(prim, params)
	cmp, err := symcompare.New(mode, symcompare.WithTolerance(tol), symcompare.WithSupercell(scel))
	if err != nil {
		return nil, treeErrorf(opSupercell, err)
	}
	g := newGrower(opSupercell, prim, rep, cmp, params, buildOptions(opts))
	g.scel = &scel

	return g.run()
}
