// SPDX-License-Identifier: MIT
// Package crystal: action of symmetry operations on integral site coordinates.

package crystal

import (
	"fmt"
	"slices"

	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/symmetry"
)

// SiteMap is the permutation representation of one operation on the sites
// of the infinite crystal: (b, n) ↦ (target[b].Sublat, S·n + target[b].Cell).
type SiteMap struct {
	op      symmetry.Op
	frac    lattice.IMat3
	targets []UnitCellCoord
	occ     [][]int
}

// Op returns the Cartesian operation.
func (m SiteMap) Op() symmetry.Op { return m.op }

// FracMatrix returns the integer point matrix in fractional coordinates.
func (m SiteMap) FracMatrix() lattice.IMat3 { return m.frac }

// Apply maps a site.
func (m SiteMap) Apply(u UnitCellCoord) UnitCellCoord {
	t := m.targets[u.Sublat]

	return UnitCellCoord{Sublat: t.Sublat, Cell: m.frac.MulVec(u.Cell).Add(t.Cell)}
}

// Occupant maps occupant index o on sublattice b to the index of the same
// species on the image sublattice.
func (m SiteMap) Occupant(b, o int) int { return m.occ[b][o] }

// Translate returns the map of the op followed by a translation of n cells.
func (m SiteMap) Translate(n lattice.IVec3, lat lattice.Lattice) SiteMap {
	out := SiteMap{op: m.op.Translate(lat.CellToCart(n)), frac: m.frac, occ: m.occ, targets: make([]UnitCellCoord, len(m.targets))}
	for b, t := range m.targets {
		out.targets[b] = t.Translate(n)
	}

	return out
}

// SiteMap builds the site representation of op.
// Returns ErrIncompatibleOp if op does not map the structure onto itself.
func (s *Structure) SiteMap(op symmetry.Op) (SiteMap, error) {
	sf := s.lat.Inverse().Mul(op.Matrix).Mul(s.lat.Matrix())
	frac, err := sf.RoundIntegral(s.lat.Tol())
	if err != nil {
		return SiteMap{}, crystalErrorf(opSiteMap, fmt.Errorf("%w: %v", ErrIncompatibleOp, err))
	}
	tau := s.lat.CartToFrac(op.Tau)
	m := SiteMap{op: op, frac: frac, targets: make([]UnitCellCoord, len(s.basis)), occ: make([][]int, len(s.basis))}
	for b, site := range s.basis {
		img := frac.Float().MulVec(site.Frac).Add(tau)
		t, err := s.FindFrac(img)
		if err != nil {
			return SiteMap{}, crystalErrorf(opSiteMap, fmt.Errorf("%w: site %d", ErrIncompatibleOp, b))
		}
		m.targets[b] = t
		m.occ[b] = make([]int, len(site.Occupants))
		for o, name := range site.Occupants {
			k := slices.Index(s.basis[t.Sublat].Occupants, name)
			if k < 0 {
				return SiteMap{}, crystalErrorf(opSiteMap, fmt.Errorf("%w: occupant %q of site %d", ErrIncompatibleOp, name, b))
			}
			m.occ[b][o] = k
		}
	}

	return m, nil
}

// GroupRep pairs a group with the site map of each of its operations.
type GroupRep struct {
	group symmetry.Group
	maps  []SiteMap
}

// Represent builds the site representation of every op of g.
func (s *Structure) Represent(g symmetry.Group) (GroupRep, error) {
	rep := GroupRep{group: g, maps: make([]SiteMap, g.Order())}
	for i := 0; i < g.Order(); i++ {
		m, err := s.SiteMap(g.Op(i))
		if err != nil {
			return GroupRep{}, fmt.Errorf("op %d: %w", i, err)
		}
		rep.maps[i] = m
	}

	return rep, nil
}

// Group returns the represented group.
func (r GroupRep) Group() symmetry.Group { return r.group }

// Order returns the group order.
func (r GroupRep) Order() int { return len(r.maps) }

// Map returns the site map of op i.
func (r GroupRep) Map(i int) SiteMap { return r.maps[i] }
