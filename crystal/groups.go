// SPDX-License-Identifier: MIT
package crystal

import (
	"fmt"
	"slices"

	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/symmetry"
)

// ComputeFactorGroup returns the space-group operations of s modulo lattice
// translations: for every lattice point op, every translation that carries
// basis site 0 onto a compatible site and maps the whole basis onto itself.
// The identity comes first.
func ComputeFactorGroup(s *Structure) []symmetry.Op {
	var (
		ops []symmetry.Op
		tol = s.lat.Tol()
	)
	for _, r := range symmetry.LatticePointGroup(s.lat) {
		sf := s.lat.Inverse().Mul(r).Mul(s.lat.Matrix())
		anchor := sf.MulVec(s.basis[0].Frac)
		for _, target := range s.basis {
			if !sameOccupants(target.Occupants, s.basis[0].Occupants) {
				continue
			}
			tau := target.Frac.Sub(anchor)
			if !s.mapsBasis(sf, tau) {
				continue
			}
			// Reduce the translation into [0,1).
			tau = tau.Sub(tau.Floor(tol).Float())
			op := symmetry.Op{Matrix: r, Tau: s.lat.FracToCart(tau)}
			dup := slices.ContainsFunc(ops, func(x symmetry.Op) bool { return x.EqualModLattice(op, s.lat, tol) })
			if !dup {
				ops = append(ops, op)
			}
		}
	}

	return ops
}

func (s *Structure) mapsBasis(sf lattice.Mat3, tau lattice.Vec3) bool {
	for _, site := range s.basis {
		u, err := s.FindFrac(sf.MulVec(site.Frac).Add(tau))
		if err != nil || !sameOccupants(site.Occupants, s.basis[u.Sublat].Occupants) {
			return false
		}
	}

	return true
}

func sameOccupants(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}

	return true
}

// ClusterGroup returns the operations of the space group that map the site
// set onto itself, each carrying its explicit lattice translation. Ops are
// ordered by factor-group index. The resulting group is non-periodic.
func (s *Structure) ClusterGroup(sites []UnitCellCoord) (GroupRep, error) {
	fg := s.rep
	var maps []SiteMap
	for i := 0; i < fg.Order(); i++ {
		m := fg.Map(i)
		if len(sites) == 0 {
			maps = append(maps, m)
			continue
		}
		img := make([]UnitCellCoord, len(sites))
		for k, u := range sites {
			img[k] = m.Apply(u)
		}
		for _, cand := range img {
			if cand.Sublat != sites[0].Sublat {
				continue
			}
			n := sites[0].Cell.Sub(cand.Cell)
			if sameSiteSet(sites, img, n) {
				maps = append(maps, m.Translate(n, s.lat))
				break
			}
		}
	}
	ops := make([]symmetry.Op, len(maps))
	for i, m := range maps {
		ops[i] = m.op
	}
	g, err := symmetry.NewGroup(ops, symmetry.WithTolerance(s.lat.Tol()))
	if err != nil {
		return GroupRep{}, crystalErrorf(opClusterGroup, err)
	}

	return GroupRep{group: g, maps: maps}, nil
}

func sameSiteSet(sites, img []UnitCellCoord, n lattice.IVec3) bool {
	for _, u := range img {
		if !slices.Contains(sites, u.Translate(n)) {
			return false
		}
	}

	return true
}

// SupercellGroup returns the factor-group ops compatible with the supercell
// (T⁻¹·S·T integral), each combined with every prim translation inside the
// supercell. Translations are compared modulo the supercell lattice.
func (s *Structure) SupercellGroup(scel lattice.Supercell) (GroupRep, error) {
	slat, err := scel.Lattice()
	if err != nil {
		return GroupRep{}, crystalErrorf(opSupercellGroup, err)
	}
	tinv, err := scel.Transformation().Float().Inverse()
	if err != nil {
		return GroupRep{}, crystalErrorf(opSupercellGroup, err)
	}
	cells := scel.Cells()
	var maps []SiteMap
	for i := 0; i < s.rep.Order(); i++ {
		m := s.rep.Map(i)
		st := tinv.Mul(m.frac.Float()).Mul(scel.Transformation().Float())
		if _, err := st.RoundIntegral(s.lat.Tol()); err != nil {
			continue
		}
		for _, n := range cells {
			maps = append(maps, m.Translate(n, s.lat))
		}
	}
	ops := make([]symmetry.Op, len(maps))
	for i, m := range maps {
		ops[i] = m.op
	}
	g, err := symmetry.NewGroup(ops,
		symmetry.WithLattice(slat),
		symmetry.WithTolerance(s.lat.Tol()),
		symmetry.WithoutClosureCheck(),
	)
	if err != nil {
		return GroupRep{}, crystalErrorf(opSupercellGroup, fmt.Errorf("%v: %w", scel.Transformation(), err))
	}

	return GroupRep{group: g, maps: maps}, nil
}
