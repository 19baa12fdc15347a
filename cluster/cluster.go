// SPDX-License-Identifier: MIT
package cluster

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
)

// Cluster is an ordered set of sites of a primitive structure.
type Cluster struct {
	prim  *crystal.Structure
	sites []crystal.UnitCellCoord
	occ   []int // nil unless decorated
	hop   []int // nil unless a hop
}

// New returns an undecorated cluster of the given sites.
func New(prim *crystal.Structure, sites ...crystal.UnitCellCoord) Cluster {
	return Cluster{prim: prim, sites: slices.Clone(sites)}
}

// Prim returns the structure the sites refer to.
func (c Cluster) Prim() *crystal.Structure { return c.prim }

// Size returns the number of sites.
func (c Cluster) Size() int { return len(c.sites) }

// Site returns site i.
func (c Cluster) Site(i int) crystal.UnitCellCoord { return c.sites[i] }

// Sites returns a copy of the sites.
func (c Cluster) Sites() []crystal.UnitCellCoord { return slices.Clone(c.sites) }

// Decorated reports whether occupants are assigned.
func (c Cluster) Decorated() bool { return c.occ != nil }

// Occupants returns a copy of the decoration (nil if undecorated).
func (c Cluster) Occupants() []int { return slices.Clone(c.occ) }

// IsHop reports whether a hop permutation is attached.
func (c Cluster) IsHop() bool { return c.hop != nil }

// Hop returns a copy of the hop permutation (nil if none).
func (c Cluster) Hop() []int { return slices.Clone(c.hop) }

// Clone returns a deep copy.
func (c Cluster) Clone() Cluster {
	return Cluster{prim: c.prim, sites: slices.Clone(c.sites), occ: slices.Clone(c.occ), hop: slices.Clone(c.hop)}
}

// PushBack appends a site. Only valid on undecorated, non-hop clusters.
func (c *Cluster) PushBack(u crystal.UnitCellCoord) { c.sites = append(c.sites, u) }

// PopBack removes the last site.
func (c *Cluster) PopBack() { c.sites = c.sites[:len(c.sites)-1] }

// MapSites returns c with every site replaced by f(site), keeping the
// decoration and hop.
func (c Cluster) MapSites(f func(crystal.UnitCellCoord) crystal.UnitCellCoord) Cluster {
	out := c.Clone()
	for i := range out.sites {
		out.sites[i] = f(out.sites[i])
	}

	return out
}

// Translate shifts every site by n cells.
func (c Cluster) Translate(n lattice.IVec3) Cluster {
	return c.MapSites(func(u crystal.UnitCellCoord) crystal.UnitCellCoord { return u.Translate(n) })
}

// TranslateEach shifts site i by shifts[i] cells. Missing entries mean no
// shift.
func (c Cluster) TranslateEach(shifts []lattice.IVec3) Cluster {
	out := c.Clone()
	for i := range out.sites {
		if i < len(shifts) {
			out.sites[i] = out.sites[i].Translate(shifts[i])
		}
	}

	return out
}

// Within translates the cluster so that its first site lies in the origin cell.
func (c Cluster) Within() Cluster {
	if len(c.sites) == 0 {
		return c.Clone()
	}

	return c.Translate(c.sites[0].Cell.Neg())
}

// Lengths returns all pairwise Cartesian distances, descending.
func (c Cluster) Lengths() []float64 {
	pos := c.carts()
	out := make([]float64, 0, len(pos)*(len(pos)-1)/2)
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			out = append(out, pos[i].Dist(pos[j]))
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))

	return out
}

// LengthsTo returns the distances from every site to every site of other, descending.
func (c Cluster) LengthsTo(other []crystal.UnitCellCoord) []float64 {
	out := make([]float64, 0, len(c.sites)*len(other))
	for _, p := range c.carts() {
		for _, u := range other {
			out = append(out, p.Dist(c.prim.Cart(u)))
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))

	return out
}

// MaxLength returns the longest pairwise distance (0 below two sites).
func (c Cluster) MaxLength() float64 {
	l := c.Lengths()
	if len(l) == 0 {
		return 0
	}

	return l[0]
}

// MinLength returns the shortest pairwise distance (0 below two sites).
func (c Cluster) MinLength() float64 {
	l := c.Lengths()
	if len(l) == 0 {
		return 0
	}

	return l[len(l)-1]
}

// HasCoincidentSites reports whether two sites are closer than tol.
func (c Cluster) HasCoincidentSites(tol float64) bool {
	return c.Size() > 1 && c.MinLength() < tol
}

func (c Cluster) carts() []lattice.Vec3 {
	out := make([]lattice.Vec3, len(c.sites))
	for i, u := range c.sites {
		out[i] = c.prim.Cart(u)
	}

	return out
}

// Coordinates returns every site's coordinate in the given mode.
func (c Cluster) Coordinates(mode crystal.CoordMode) []lattice.Vec3 {
	out := make([]lattice.Vec3, len(c.sites))
	for i, u := range c.sites {
		out[i] = c.prim.Coordinate(u, mode)
	}

	return out
}

// Subset returns the sub-cluster at the given indices, keeping the
// decoration and dropping any hop.
func (c Cluster) Subset(idx []int) Cluster {
	out := Cluster{prim: c.prim, sites: make([]crystal.UnitCellCoord, len(idx))}
	if c.occ != nil {
		out.occ = make([]int, len(idx))
	}
	for k, i := range idx {
		out.sites[k] = c.sites[i]
		if c.occ != nil {
			out.occ[k] = c.occ[i]
		}
	}

	return out
}

// Permute reorders the sites: site k of the result is site perm[k] of c.
// Decoration and hop are relabelled consistently.
func (c Cluster) Permute(perm []int) Cluster {
	out := Cluster{prim: c.prim, sites: make([]crystal.UnitCellCoord, len(perm))}
	pos := make([]int, len(perm))
	for k, i := range perm {
		out.sites[k] = c.sites[i]
		pos[i] = k
	}
	if c.occ != nil {
		out.occ = make([]int, len(perm))
		for k, i := range perm {
			out.occ[k] = c.occ[i]
		}
	}
	if c.hop != nil {
		out.hop = make([]int, len(perm))
		for k, i := range perm {
			out.hop[k] = pos[c.hop[i]]
		}
	}

	return out
}

// Sorted stably sorts the sites from index from on, keeping the first
// from sites in place. It returns the sorted cluster and the permutation
// applied (site k of the result is site perm[k] of c).
func (c Cluster) Sorted(from int) (Cluster, []int) {
	perm := make([]int, len(c.sites))
	for i := range perm {
		perm[i] = i
	}
	if from < len(perm) {
		slices.SortStableFunc(perm[from:], func(i, j int) int {
			return c.sites[i].Compare(c.sites[j])
		})
	}

	return c.Permute(perm), perm
}

// Apply returns the image of c under a site map.
func (c Cluster) Apply(m crystal.SiteMap) Cluster {
	out := Cluster{prim: c.prim, sites: make([]crystal.UnitCellCoord, len(c.sites)), hop: slices.Clone(c.hop)}
	for i, u := range c.sites {
		out.sites[i] = m.Apply(u)
	}
	if c.occ != nil {
		out.occ = make([]int, len(c.occ))
		for i, o := range c.occ {
			out.occ[i] = m.Occupant(c.sites[i].Sublat, o)
		}
	}

	return out
}

// Compare orders clusters by size, then site-by-site, then decoration,
// then hop. It is exact: sites are integral.
func (c Cluster) Compare(o Cluster) int {
	if d := len(c.sites) - len(o.sites); d != 0 {
		return sign(d)
	}
	for i := range c.sites {
		if d := c.sites[i].Compare(o.sites[i]); d != 0 {
			return d
		}
	}
	if d := slices.Compare(c.occ, o.occ); d != 0 {
		return d
	}

	return slices.Compare(c.hop, o.hop)
}

// Equal reports Compare(o) == 0.
func (c Cluster) Equal(o Cluster) bool { return c.Compare(o) == 0 }

// Decorate assigns occupant indices, one per site.
func (c Cluster) Decorate(occ []int) (Cluster, error) {
	if len(occ) != len(c.sites) {
		return Cluster{}, fmt.Errorf("%w: %d occupants for %d sites", ErrBadDecoration, len(occ), len(c.sites))
	}
	for i, o := range occ {
		if o < 0 || o >= c.prim.NumOccupants(c.sites[i].Sublat) {
			return Cluster{}, fmt.Errorf("%w: occupant %d on site %d", ErrBadDecoration, o, i)
		}
	}
	out := c.Clone()
	out.occ = slices.Clone(occ)

	return out, nil
}

// OccupantName returns the species on site i of a decorated cluster.
func (c Cluster) OccupantName(i int) string {
	return c.prim.Occupants(c.sites[i].Sublat)[c.occ[i]]
}

// SiteLabel names what sits on site i: the chosen species and hop target
// of a decorated cluster, or every allowed occupant otherwise.
func (c Cluster) SiteLabel(i int) string {
	if c.occ == nil {
		return strings.Join(c.prim.Occupants(c.sites[i].Sublat), " ")
	}
	if c.hop != nil {
		return fmt.Sprintf("%s -> %d", c.OccupantName(i), c.hop[i])
	}

	return c.OccupantName(i)
}

// WithHop attaches a hop permutation.
func (c Cluster) WithHop(perm []int) (Cluster, error) {
	if len(perm) != len(c.sites) {
		return Cluster{}, fmt.Errorf("%w: length %d for %d sites", ErrBadHop, len(perm), len(c.sites))
	}
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return Cluster{}, fmt.Errorf("%w: %v", ErrBadHop, perm)
		}
		seen[p] = true
	}
	out := c.Clone()
	out.hop = slices.Clone(perm)

	return out, nil
}

// String renders sites, decoration and hop for diagnostics.
func (c Cluster) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, u := range c.sites {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(u.String())
		if c.occ != nil {
			fmt.Fprintf(&b, "=%d", c.occ[i])
		}
	}
	b.WriteString("}")
	if c.hop != nil {
		fmt.Fprintf(&b, "→%v", c.hop)
	}

	return b.String()
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}

	return 0
}
