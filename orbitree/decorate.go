// SPDX-License-Identifier: MIT
package orbitree

import (
	"time"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/orbit"
)

// Decorate expands every orbit of an undecorated tree into the orbits of
// its decorations, under the same group and comparator. With full every
// occupant is allowed; otherwise the background occupant (index 0) is
// skipped, so sites with a single occupant admit no decoration.
func Decorate(in *Indexed[cluster.Cluster], full bool, opts ...Option) (*Tree[cluster.Cluster], error) {
	o := buildOptions(opts)
	out := NewTree[cluster.Cluster](in.Action(), in.Comparator(), in.Params())
	out.grow(in.NumBranches() - 1)
	for np := 0; np < in.NumBranches(); np++ {
		start := time.Now()
		for _, orb := range in.branches[np] {
			if err := o.ctx.Err(); err != nil {
				return nil, treeErrorf(opDecorate, err)
			}
			proto := orb.Prototype()
			for _, occ := range cluster.DecorMaps(proto, full) {
				o.observer.CandidateProposed(np)
				dc, err := proto.Decorate(occ)
				if err != nil {
					return nil, treeErrorf(opDecorate, branchErrorf(np, err))
				}
				if err := addNew(out, dc, np, o); err != nil {
					return nil, treeErrorf(opDecorate, branchErrorf(np, err))
				}
			}
		}
		o.observer.BranchCompleted(np, len(out.branches[np]), time.Since(start))
		o.logger.Debug("branch complete", "op", opDecorate, "branch", np, "orbits", len(out.branches[np]), "full", full)
	}

	return out, nil
}

// Hops builds the diffusion-hop orbits of an undecorated tree. For every
// prototype of two or more sites, each full decoration with exactly one
// mobile species (WithMobileSpecies, "Va" by default) is combined with every
// derangement of its sites whose moves are all allowed. Branches 0 and 1
// stay empty, so freeze the result with HierarchyNone.
func Hops(in *Indexed[cluster.Cluster], opts ...Option) (*Tree[cluster.Cluster], error) {
	o := buildOptions(opts)
	out := NewTree[cluster.Cluster](in.Action(), in.Comparator(), in.Params())
	out.grow(in.NumBranches() - 1)
	for np := 2; np < in.NumBranches(); np++ {
		start := time.Now()
		perms := cluster.Derangements(np)
		for _, orb := range in.branches[np] {
			if err := o.ctx.Err(); err != nil {
				return nil, treeErrorf(opHops, err)
			}
			proto := orb.Prototype()
			for _, occ := range cluster.DecorMaps(proto, true) {
				dc, err := proto.Decorate(occ)
				if err != nil {
					return nil, treeErrorf(opHops, branchErrorf(np, err))
				}
				if cluster.CountSpecies(dc, o.mobile...) != 1 {
					continue
				}
				for _, perm := range perms {
					o.observer.CandidateProposed(np)
					if !cluster.AllowedHop(dc, perm) {
						o.observer.CandidateRejected(np, RejectDecoration)
						continue
					}
					hc, err := dc.WithHop(perm)
					if err != nil {
						return nil, treeErrorf(opHops, branchErrorf(np, err))
					}
					if err := addNew(out, hc, np, o); err != nil {
						return nil, treeErrorf(opHops, branchErrorf(np, err))
					}
				}
			}
		}
		o.observer.BranchCompleted(np, len(out.branches[np]), time.Since(start))
		o.logger.Debug("branch complete", "op", opHops, "branch", np, "orbits", len(out.branches[np]))
	}

	return out, nil
}

// addNew builds and adds the orbit of c unless the tree already holds c.
func addNew(t *Tree[cluster.Cluster], c cluster.Cluster, np int, o options) error {
	if t.Contains(c) {
		o.observer.CandidateRejected(np, RejectDuplicate)
		return nil
	}
	orb, err := orbit.Make(c, t.act, t.cmp)
	if err != nil {
		return err
	}
	t.Add(orb)
	o.observer.OrbitAccepted(np, orb.Size())

	return nil
}
