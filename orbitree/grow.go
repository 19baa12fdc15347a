// SPDX-License-Identifier: MIT
package orbitree

import (
	"fmt"
	"math"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/orbit"
	"github.com/skk74/CASMcode/symcompare"
)

// grower enumerates a cluster tree branch by branch. Each branch extends
// the seeds of the previous one by one neighbor site at a time.
type grower struct {
	tag    string
	prim   *crystal.Structure
	act    cluster.Action
	cmp    symcompare.Strategy
	params Params
	tol    float64
	opts   options
	tree   *Tree[cluster.Cluster]

	// seeds[np] are the accepted candidates of branch np, aligned with the
	// tree's orbits. Growth extends seeds rather than prototypes so that
	// folded prototypes never need unfolding.
	seeds [][]cluster.Cluster

	subl   []int
	phenom []crystal.UnitCellCoord // non-nil in local mode
	scel   *lattice.Supercell      // non-nil in supercell mode
	grids  map[float64][]crystal.UnitCellCoord
}

type candidate struct {
	c      cluster.Cluster
	reason RejectReason
}

func newGrower(tag string, prim *crystal.Structure, rep crystal.GroupRep, cmp symcompare.Strategy, params Params, o options) *grower {
	return &grower{
		tag:    tag,
		prim:   prim,
		act:    cluster.NewAction(rep),
		cmp:    cmp,
		params: params,
		tol:    cmp.Tol(),
		opts:   o,
		tree:   NewTree[cluster.Cluster](cluster.NewAction(rep), cmp, params),
		subl:   prim.Sublattices(params.MinNumComponents),
		grids:  make(map[float64][]crystal.UnitCellCoord),
	}
}

// tolerance resolves the length tolerance of params against prim.
func tolerance(prim *crystal.Structure, params Params) float64 {
	if params.Tol > 0 {
		return params.Tol
	}

	return prim.Tol()
}

// run enumerates branches 0..MaxNumSites.
func (g *grower) run() (*Tree[cluster.Cluster], error) {
	maxNP := g.params.MaxNumSites()
	g.seeds = make([][]cluster.Cluster, maxNP+1)
	log := g.opts.logger.With("op", g.tag)

	// 1. Branch 0 holds the empty cluster.
	empty := cluster.New(g.prim)
	o, err := orbit.Make(empty, g.act, g.cmp)
	if err != nil {
		return nil, treeErrorf(g.tag, branchErrorf(0, err))
	}
	g.tree.Add(o)
	g.seeds[0] = []cluster.Cluster{empty}
	g.opts.observer.BranchCompleted(0, 1, 0)

	// 2. Cutoffs default to the previous branch; local trees start from the
	// largest requested length.
	prev := g.params.maxLengthAt(1)
	if g.phenom != nil && prev == 0 {
		prev = slices.Max(append([]float64{0}, g.params.MaxLength...))
	}
	for np := 1; np <= maxNP; np++ {
		start := time.Now()
		cutoff := g.params.maxLengthAt(np)
		if cutoff == 0 {
			cutoff = prev
		}
		// 3. Count mode, the unbounded point branch, or a fixed cutoff.
		switch n := g.params.countAt(np); {
		case np >= 2 && n > 0:
			cutoff, err = g.countBranch(np, n, prev)
		case np == 1 && g.phenom == nil:
			err = g.branch(np, 0, math.Inf(1))
		default:
			err = g.branch(np, cutoff, cutoff)
		}
		if err != nil {
			return nil, treeErrorf(g.tag, branchErrorf(np, err))
		}
		// 4. Every requested branch must be populated.
		orbits := len(g.tree.branches[np])
		if orbits == 0 {
			return nil, treeErrorf(g.tag, fmt.Errorf("%w: branch %d of %d (cutoff %.5f)", ErrEmptyBranch, np, maxNP, cutoff))
		}
		// 5. Report.
		prev = cutoff
		elapsed := time.Since(start)
		g.opts.observer.BranchCompleted(np, orbits, elapsed)
		log.Debug("branch complete", "branch", np, "orbits", orbits, "cutoff", cutoff, "elapsed", elapsed)
	}
	log.Info("enumeration complete", "branches", maxNP+1, "mode", g.cmp.Mode().String())

	return g.tree, nil
}

// countBranch grows the search radius one lattice spacing at a time until
// branch np has at least n orbits, then trims it to the n shortest (ties
// within tolerance kept). It returns the resulting cutoff. Only the final
// shell reaches the observer; orbits trimmed from it count as cutoff
// rejections.
func (g *grower) countBranch(np, n int, prev float64) (float64, error) {
	obs := g.opts.observer
	defer func() { g.opts.observer = obs }()

	step := g.prim.Lattice().MinLength()
	r := max(prev, step)
	for shell := 0; shell < g.opts.maxShells; shell++ {
		g.tree.branches[np] = nil
		g.seeds[np] = nil
		buf := &shellEvents{}
		g.opts.observer = buf
		if err := g.branch(np, r, r); err != nil {
			return 0, err
		}
		if len(g.tree.branches[np]) >= n {
			g.sortBranch(np)
			cutoff := g.tree.branches[np][n-1].Invariants().MaxLength()
			keep := 0
			for _, o := range g.tree.branches[np] {
				if o.Invariants().MaxLength() <= cutoff+g.tol {
					keep++
				}
			}
			trimmed := len(g.tree.branches[np]) - keep
			g.tree.truncate(np, keep)
			g.seeds[np] = g.seeds[np][:keep]
			buf.replay(obs, np, g.tree.branches[np], trimmed)

			return cutoff, nil
		}
		g.opts.logger.Info("expanding count-mode radius", "op", g.tag, "branch", np,
			"found", len(g.tree.branches[np]), "want", n, "radius", r+step)
		r += step
	}

	return 0, fmt.Errorf("%w: %d orbits in branch %d after %d shells", ErrCountUnreachable, n, np, g.opts.maxShells)
}

// shellEvents buffers the candidate events of one count-mode shell.
type shellEvents struct {
	proposed int
	rejected []RejectReason
}

func (s *shellEvents) CandidateProposed(int) { s.proposed++ }

func (s *shellEvents) CandidateRejected(_ int, reason RejectReason) {
	s.rejected = append(s.rejected, reason)
}

func (*shellEvents) OrbitAccepted(int, int) {}

func (*shellEvents) BranchCompleted(int, int, time.Duration) {}

// replay forwards the buffered events of branch np to obs, followed by the
// kept orbits and the trimmed count.
func (s *shellEvents) replay(obs Observer, np int, kept []*orbit.Orbit[cluster.Cluster], trimmed int) {
	for i := 0; i < s.proposed; i++ {
		obs.CandidateProposed(np)
	}
	for _, reason := range s.rejected {
		obs.CandidateRejected(np, reason)
	}
	for i := 0; i < trimmed; i++ {
		obs.CandidateRejected(np, RejectCutoff)
	}
	for _, o := range kept {
		obs.OrbitAccepted(np, o.Size())
	}
}

// sortBranch sorts branch np and its seeds together.
func (g *grower) sortBranch(np int) {
	orbits, seeds := g.tree.branches[np], g.seeds[np]
	perm := make([]int, len(orbits))
	for i := range perm {
		perm[i] = i
	}
	slices.SortStableFunc(perm, func(a, b int) int { return orbit.Compare(orbits[a], orbits[b]) })
	so := make([]*orbit.Orbit[cluster.Cluster], len(perm))
	ss := make([]cluster.Cluster, len(perm))
	for i, p := range perm {
		so[i], ss[i] = orbits[p], seeds[p]
	}
	g.tree.branches[np], g.seeds[np] = so, ss
}

// branch builds branch np from the seeds of branch np-1 using the neighbor
// grid of the given radius and the given max-length cutoff.
func (g *grower) branch(np int, radius, cutoff float64) error {
	grid, err := g.grid(radius)
	if err != nil {
		return err
	}
	obs := g.opts.observer
	for _, seed := range g.seeds[np-1] {
		if err := g.opts.ctx.Err(); err != nil {
			return err
		}
		cands, err := g.propose(np, seed, grid, cutoff)
		if err != nil {
			return err
		}
		for _, cd := range cands {
			obs.CandidateProposed(np)
			if cd.reason != "" {
				obs.CandidateRejected(np, cd.reason)
				continue
			}
			if g.tree.Contains(cd.c) {
				obs.CandidateRejected(np, RejectDuplicate)
				continue
			}
			o, err := orbit.Make(cd.c, g.act, g.cmp)
			if err != nil {
				return err
			}
			g.tree.Add(o)
			g.seeds[np] = append(g.seeds[np], cd.c)
			obs.OrbitAccepted(np, o.Size())
		}
	}

	return nil
}

// propose evaluates seed+site for every grid site on the worker pool.
// Results keep grid order.
func (g *grower) propose(np int, seed cluster.Cluster, grid []crystal.UnitCellCoord, cutoff float64) ([]candidate, error) {
	out := make([]candidate, len(grid))
	workers := max(g.opts.workers, 1)
	if workers == 1 || len(grid) < 2*workers {
		for j, u := range grid {
			out[j] = g.evaluate(np, seed, u, cutoff)
		}

		return out, nil
	}
	eg, ctx := errgroup.WithContext(g.opts.ctx)
	eg.SetLimit(workers)
	chunk := (len(grid) + workers - 1) / workers
	for lo := 0; lo < len(grid); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(grid))
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for j := lo; j < hi; j++ {
				out[j] = g.evaluate(np, seed, grid[j], cutoff)
			}

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// evaluate builds one candidate and applies the length window.
func (g *grower) evaluate(np int, seed cluster.Cluster, u crystal.UnitCellCoord, cutoff float64) candidate {
	c := seed.Clone()
	c.PushBack(u)
	if g.phenom == nil {
		c = c.Within()
	}
	if np == 1 && g.phenom == nil {
		return candidate{c: c}
	}
	if c.HasCoincidentSites(g.tol) {
		return candidate{c: c, reason: RejectCutoff}
	}
	if g.scel != nil && selfImage(c, *g.scel) {
		return candidate{c: c, reason: RejectImage}
	}
	maxLen, minLen := c.MaxLength(), c.MinLength()
	if g.phenom != nil {
		in := g.cmp.Invariants(c)
		maxLen, minLen = in.MaxLength(), in.MinLength()
	}
	if maxLen > cutoff+g.tol {
		return candidate{c: c, reason: RejectCutoff}
	}
	if np >= 2 && minLen < g.params.MinLength-g.tol {
		return candidate{c: c, reason: RejectCutoff}
	}

	return candidate{c: c}
}

// selfImage reports whether two sites of c fold onto the same supercell site.
func selfImage(c cluster.Cluster, scel lattice.Supercell) bool {
	for i := 0; i < c.Size(); i++ {
		a := c.Site(i)
		for j := i + 1; j < c.Size(); j++ {
			b := c.Site(j)
			if a.Sublat == b.Sublat && scel.Within(a.Cell) == scel.Within(b.Cell) {
				return true
			}
		}
	}

	return false
}

// grid returns the candidate sites for the given radius, cached per radius.
func (g *grower) grid(r float64) ([]crystal.UnitCellCoord, error) {
	if sites, ok := g.grids[r]; ok {
		return sites, nil
	}
	var (
		sites []crystal.UnitCellCoord
		err   error
	)
	if g.phenom != nil {
		sites, err = localGrid(g.prim, g.subl, g.phenom, r, g.tol, g.params.ExcludePhenomenal)
	} else {
		sites, err = periodicGrid(g.prim, g.subl, r, g.tol)
	}
	if err != nil {
		return nil, err
	}
	g.grids[r] = sites
	g.opts.logger.Debug("neighbor grid", "op", g.tag, "radius", r, "sites", len(sites))

	return sites, nil
}

// periodicGrid lists the sites of sublattices subl within r of some
// origin-cell site of those sublattices.
func periodicGrid(prim *crystal.Structure, subl []int, r, tol float64) ([]crystal.UnitCellCoord, error) {
	dims, err := prim.Lattice().EncloseSphere(r)
	if err != nil {
		return nil, err
	}
	origin := make([]lattice.Vec3, len(subl))
	for i, b := range subl {
		origin[i] = prim.Cart(crystal.UnitCellCoord{Sublat: b})
	}
	var out []crystal.UnitCellCoord
	forCells(lattice.IVec3{}.Sub(dims), dims, func(n lattice.IVec3) {
		for _, b := range subl {
			u := crystal.UnitCellCoord{Sublat: b, Cell: n}
			x := prim.Cart(u)
			if slices.ContainsFunc(origin, func(o lattice.Vec3) bool { return x.Dist(o) <= r+tol }) {
				out = append(out, u)
			}
		}
	})

	return out, nil
}

// localGrid lists the sites of sublattices subl within r of every
// phenomenal site.
func localGrid(prim *crystal.Structure, subl []int, phenom []crystal.UnitCellCoord, r, tol float64, exclude bool) ([]crystal.UnitCellCoord, error) {
	dims, err := prim.Lattice().EncloseSphere(r)
	if err != nil {
		return nil, err
	}
	lo, hi := phenom[0].Cell, phenom[0].Cell
	for _, u := range phenom[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], u.Cell[k])
			hi[k] = max(hi[k], u.Cell[k])
		}
	}
	centers := make([]lattice.Vec3, len(phenom))
	for i, u := range phenom {
		centers[i] = prim.Cart(u)
	}
	var out []crystal.UnitCellCoord
	forCells(lo.Sub(dims), hi.Add(dims), func(n lattice.IVec3) {
		for _, b := range subl {
			u := crystal.UnitCellCoord{Sublat: b, Cell: n}
			if exclude && slices.Contains(phenom, u) {
				continue
			}
			x := prim.Cart(u)
			if !slices.ContainsFunc(centers, func(c lattice.Vec3) bool { return x.Dist(c) > r+tol }) {
				out = append(out, u)
			}
		}
	})

	return out, nil
}

// forCells calls f for every cell of the box [lo, hi], last axis fastest.
func forCells(lo, hi lattice.IVec3, f func(lattice.IVec3)) {
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for k := lo[2]; k <= hi[2]; k++ {
				f(lattice.IVec3{i, j, k})
			}
		}
	}
}
