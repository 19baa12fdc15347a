// SPDX-License-Identifier: MIT
// Package crystal: the primitive structure.
//
// Purpose:
//   - Own the lattice, the ordered basis and the factor group.
//   - Convert between UnitCellCoord and coordinates, and back by lookup.
//
// Determinism & Policy:
//   - Basis order is the sublattice numbering; it is never reordered.
//   - The factor group is computed once at construction unless supplied.

package crystal

import (
	"fmt"
	"slices"

	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/symmetry"
)

// Site is one basis site: fractional position and allowed occupants.
// Occupant 0 is the background species.
type Site struct {
	Frac      lattice.Vec3
	Occupants []string
}

// Option configures New.
type Option func(*structureOptions)

type structureOptions struct {
	title string
	ops   []symmetry.Op
}

// WithTitle sets a descriptive title.
func WithTitle(title string) Option {
	return func(o *structureOptions) { o.title = title }
}

// WithFactorGroup supplies the factor group instead of computing it.
// The ops are validated against the structure.
func WithFactorGroup(ops []symmetry.Op) Option {
	return func(o *structureOptions) { o.ops = append([]symmetry.Op(nil), ops...) }
}

// Structure is an immutable primitive crystal structure.
type Structure struct {
	title string
	lat   lattice.Lattice
	basis []Site
	rep   GroupRep // factor group and its site representation
}

// New validates the basis, then computes (or validates) the factor group.
func New(lat lattice.Lattice, basis []Site, opts ...Option) (*Structure, error) {
	o := structureOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if len(basis) == 0 {
		return nil, crystalErrorf(opNew, ErrEmptyBasis)
	}
	s := &Structure{title: o.title, lat: lat, basis: make([]Site, len(basis))}
	for b, site := range basis {
		if !site.Frac.IsFinite() {
			return nil, crystalErrorf(opNew, fmt.Errorf("%w: site %d", ErrNaNInf, b))
		}
		if len(site.Occupants) == 0 {
			return nil, crystalErrorf(opNew, fmt.Errorf("%w: site %d", ErrNoOccupants, b))
		}
		s.basis[b] = Site{Frac: site.Frac, Occupants: slices.Clone(site.Occupants)}
	}
	for b := range s.basis {
		for c := 0; c < b; c++ {
			if _, ok := s.matchFrac(s.basis[b].Frac, c); ok {
				return nil, crystalErrorf(opNew, fmt.Errorf("%w: sites %d and %d", ErrDuplicateSite, c, b))
			}
		}
	}

	ops := o.ops
	if ops == nil {
		ops = ComputeFactorGroup(s)
	}
	group, err := symmetry.NewGroup(ops, symmetry.WithLattice(lat), symmetry.WithTolerance(lat.Tol()))
	if err != nil {
		return nil, crystalErrorf(opNew, err)
	}
	rep, err := s.Represent(group)
	if err != nil {
		return nil, crystalErrorf(opNew, err)
	}
	s.rep = rep

	return s, nil
}

// Title returns the structure title.
func (s *Structure) Title() string { return s.title }

// Lattice returns the primitive lattice.
func (s *Structure) Lattice() lattice.Lattice { return s.lat }

// Tol returns the Cartesian tolerance of the lattice.
func (s *Structure) Tol() float64 { return s.lat.Tol() }

// NumSites returns the basis size.
func (s *Structure) NumSites() int { return len(s.basis) }

// Site returns basis site b.
func (s *Structure) Site(b int) Site {
	site := s.basis[b]
	site.Occupants = slices.Clone(site.Occupants)

	return site
}

// Occupants returns the allowed occupants of sublattice b.
func (s *Structure) Occupants(b int) []string { return slices.Clone(s.basis[b].Occupants) }

// NumOccupants returns how many species sublattice b allows.
func (s *Structure) NumOccupants(b int) int { return len(s.basis[b].Occupants) }

// FactorGroup returns the factor group.
func (s *Structure) FactorGroup() symmetry.Group { return s.rep.Group() }

// FactorGroupRep returns the factor group with its site representation.
func (s *Structure) FactorGroupRep() GroupRep { return s.rep }

// Sublattices returns the sublattices allowing at least minComponents occupants.
func (s *Structure) Sublattices(minComponents int) []int {
	var out []int
	for b, site := range s.basis {
		if len(site.Occupants) >= minComponents {
			out = append(out, b)
		}
	}

	return out
}

// Frac returns the fractional coordinate of u.
func (s *Structure) Frac(u UnitCellCoord) lattice.Vec3 {
	return s.basis[u.Sublat].Frac.Add(u.Cell.Float())
}

// Cart returns the Cartesian coordinate of u.
func (s *Structure) Cart(u UnitCellCoord) lattice.Vec3 {
	return s.lat.FracToCart(s.Frac(u))
}

// Coordinate returns u in the requested mode.
func (s *Structure) Coordinate(u UnitCellCoord, mode CoordMode) lattice.Vec3 {
	if mode == Cartesian {
		return s.Cart(u)
	}

	return s.Frac(u)
}

// Dist returns the Cartesian distance between two sites.
func (s *Structure) Dist(u, v UnitCellCoord) float64 {
	return s.Cart(u).Dist(s.Cart(v))
}

// Find returns the site at Cartesian position x.
func (s *Structure) Find(x lattice.Vec3) (UnitCellCoord, error) {
	return s.FindFrac(s.lat.CartToFrac(x))
}

// FindFrac returns the site at fractional position f.
func (s *Structure) FindFrac(f lattice.Vec3) (UnitCellCoord, error) {
	for b := range s.basis {
		if n, ok := s.matchFrac(f, b); ok {
			return UnitCellCoord{Sublat: b, Cell: n}, nil
		}
	}

	return UnitCellCoord{}, crystalErrorf(opFind, fmt.Errorf("%w: %v", ErrSiteNotFound, f))
}

// FindCoordinate dispatches to Find or FindFrac by mode.
func (s *Structure) FindCoordinate(x lattice.Vec3, mode CoordMode) (UnitCellCoord, error) {
	if mode == Cartesian {
		return s.Find(x)
	}

	return s.FindFrac(x)
}

// matchFrac reports whether f is a lattice translate of basis site b.
func (s *Structure) matchFrac(f lattice.Vec3, b int) (lattice.IVec3, bool) {
	d := f.Sub(s.basis[b].Frac)
	n, _ := d.Round()

	return n, s.lat.FracToCart(d.Sub(n.Float())).Norm() <= s.lat.Tol()
}
