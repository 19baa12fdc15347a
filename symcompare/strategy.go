// SPDX-License-Identifier: MIT
// Package symcompare: the cluster strategies.
//
// Determinism & Policy:
//   - Sorting is stable and keyed on integral coordinates only, so prepared
//     forms are exact and reproducible.
//   - Every Prepare is idempotent: Prepare(Prepare(c)) == Prepare(c).

package symcompare

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
)

// ErrNoSupercell is returned when a supercell variant is built without one.
var ErrNoSupercell = errors.New("symcompare: supercell required")

// Mode names a strategy variant.
type Mode int

const (
	// Aperiodic compares clusters as finite sets (local clusters).
	Aperiodic Mode = iota
	// PrimPeriodic compares modulo primitive lattice translations.
	PrimPeriodic
	// ScelPeriodic compares modulo supercell lattice translations.
	ScelPeriodic
	// WithinScel folds every site into the supercell before comparing.
	WithinScel
)

var modeNames = [...]string{"aperiodic", "prim-periodic", "scel-periodic", "within-scel"}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}

	return 0, fmt.Errorf("symcompare: unknown mode %q", s)
}

// Strategy is a cluster comparator together with the preparation steps.
type Strategy interface {
	Comparator[cluster.Cluster]
	Mode() Mode
	SpatialPrepare(c cluster.Cluster) (cluster.Cluster, lattice.IVec3)
	RepresentationPrepare(c cluster.Cluster) (cluster.Cluster, []int)
	CanonicalTransform(c cluster.Cluster) Transform
	// Phenomenal returns the sites distances are measured to, if any.
	Phenomenal() []crystal.UnitCellCoord
	// Supercell returns the supercell of the scel variants.
	Supercell() (lattice.Supercell, bool)
}

// Option configures New.
type Option func(*options)

type options struct {
	tol    float64
	scel   *lattice.Supercell
	phenom []crystal.UnitCellCoord
}

// WithTolerance sets the invariant tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// WithSupercell sets the supercell of ScelPeriodic and WithinScel.
func WithSupercell(s lattice.Supercell) Option {
	return func(o *options) { o.scel = &s }
}

// WithPhenomenal adds distances to the given sites to the invariants of
// an Aperiodic strategy.
func WithPhenomenal(sites []crystal.UnitCellCoord) Option {
	return func(o *options) { o.phenom = slices.Clone(sites) }
}

// New builds the strategy of the given mode.
func New(mode Mode, opts ...Option) (Strategy, error) {
	o := options{tol: lattice.DefaultTol}
	for _, opt := range opts {
		opt(&o)
	}
	b := base{tol: o.tol, phenom: o.phenom}
	switch mode {
	case Aperiodic:
		return aperiodic{b}, nil
	case PrimPeriodic:
		return primPeriodic{b}, nil
	case ScelPeriodic, WithinScel:
		if o.scel == nil {
			return nil, fmt.Errorf("%v: %w", mode, ErrNoSupercell)
		}
		if mode == ScelPeriodic {
			return scelPeriodic{base: b, scel: *o.scel}, nil
		}

		return withinScel{base: b, scel: *o.scel}, nil
	}

	return nil, fmt.Errorf("symcompare: unknown mode %v", mode)
}

// base carries what all variants share.
type base struct {
	tol    float64
	phenom []crystal.UnitCellCoord
}

func (b base) Tol() float64 { return b.tol }

func (b base) Phenomenal() []crystal.UnitCellCoord { return slices.Clone(b.phenom) }

func (b base) Supercell() (lattice.Supercell, bool) { return lattice.Supercell{}, false }

func (b base) Less(x, y cluster.Cluster) bool { return x.Compare(y) < 0 }

func (b base) Invariants(c cluster.Cluster) Invariants {
	in := Invariants{Size: c.Size(), Lengths: c.Lengths()}
	if len(b.phenom) > 0 {
		in.Phenomenal = c.LengthsTo(b.phenom)
	}

	return in
}

// sortFrom stably sorts sites [from:] and returns the permuted cluster and
// the permutation.
func sortFrom(c cluster.Cluster, from int) (cluster.Cluster, []int) {
	return c.Sorted(from)
}

// anchorFirst returns c with site i moved to the front, the rest in order.
func anchorFirst(c cluster.Cluster, i int) cluster.Cluster {
	perm := make([]int, 0, c.Size())
	perm = append(perm, i)
	for k := 0; k < c.Size(); k++ {
		if k != i {
			perm = append(perm, k)
		}
	}

	return c.Permute(perm)
}

// anchoredRepresentations prepares c once per anchor choice, dropping repeats.
func anchoredRepresentations(s Strategy, c cluster.Cluster) []cluster.Cluster {
	if c.Size() == 0 {
		return []cluster.Cluster{s.Prepare(c)}
	}
	out := make([]cluster.Cluster, 0, c.Size())
	for i := 0; i < c.Size(); i++ {
		p := s.Prepare(anchorFirst(c, i))
		if !slices.ContainsFunc(out, p.Equal) {
			out = append(out, p)
		}
	}

	return out
}

func transform(s Strategy, c cluster.Cluster) Transform {
	spatial, shift := s.SpatialPrepare(c)
	_, perm := s.RepresentationPrepare(spatial)
	t := Transform{Perm: perm, Translation: shift}
	for k, i := range perm {
		d := spatial.Site(i).Cell.Sub(c.Site(i).Cell).Sub(shift)
		if d.IsZero() {
			continue
		}
		if t.Shifts == nil {
			t.Shifts = make([]lattice.IVec3, len(perm))
		}
		t.Shifts[k] = d
	}

	return t
}

// ApplyTransform rebuilds the prepared form of c from its canonical
// transform.
func ApplyTransform(c cluster.Cluster, t Transform) cluster.Cluster {
	return c.Permute(t.Perm).Translate(t.Translation).TranslateEach(t.Shifts)
}

type aperiodic struct{ base }

func (aperiodic) Mode() Mode { return Aperiodic }

func (aperiodic) SpatialPrepare(c cluster.Cluster) (cluster.Cluster, lattice.IVec3) {
	return c.Clone(), lattice.IVec3{}
}

func (aperiodic) RepresentationPrepare(c cluster.Cluster) (cluster.Cluster, []int) {
	return sortFrom(c, 0)
}

func (a aperiodic) Prepare(c cluster.Cluster) cluster.Cluster {
	p, _ := sortFrom(c, 0)

	return p
}

func (a aperiodic) Representations(c cluster.Cluster) []cluster.Cluster {
	return []cluster.Cluster{a.Prepare(c)}
}

func (a aperiodic) CanonicalTransform(c cluster.Cluster) Transform { return transform(a, c) }

type primPeriodic struct{ base }

func (primPeriodic) Mode() Mode { return PrimPeriodic }

func (primPeriodic) SpatialPrepare(c cluster.Cluster) (cluster.Cluster, lattice.IVec3) {
	if c.Size() == 0 {
		return c.Clone(), lattice.IVec3{}
	}
	shift := c.Site(0).Cell.Neg()

	return c.Translate(shift), shift
}

func (primPeriodic) RepresentationPrepare(c cluster.Cluster) (cluster.Cluster, []int) {
	return sortFrom(c, 1)
}

func (p primPeriodic) Prepare(c cluster.Cluster) cluster.Cluster {
	s, _ := p.SpatialPrepare(c)
	out, _ := sortFrom(s, 1)

	return out
}

func (p primPeriodic) Representations(c cluster.Cluster) []cluster.Cluster {
	return anchoredRepresentations(p, c)
}

func (p primPeriodic) CanonicalTransform(c cluster.Cluster) Transform { return transform(p, c) }

type scelPeriodic struct {
	base
	scel lattice.Supercell
}

func (scelPeriodic) Mode() Mode { return ScelPeriodic }

func (s scelPeriodic) Supercell() (lattice.Supercell, bool) { return s.scel, true }

func (s scelPeriodic) Invariants(c cluster.Cluster) Invariants {
	return Invariants{Size: c.Size(), Lengths: imageLengths(c, s.scel)}
}

func (s scelPeriodic) SpatialPrepare(c cluster.Cluster) (cluster.Cluster, lattice.IVec3) {
	if c.Size() == 0 {
		return c.Clone(), lattice.IVec3{}
	}
	shift := s.scel.Translation(c.Site(0).Cell).Neg()

	return c.Translate(shift), shift
}

func (scelPeriodic) RepresentationPrepare(c cluster.Cluster) (cluster.Cluster, []int) {
	return sortFrom(c, 1)
}

func (s scelPeriodic) Prepare(c cluster.Cluster) cluster.Cluster {
	sp, _ := s.SpatialPrepare(c)
	out, _ := sortFrom(sp, 1)

	return out
}

func (s scelPeriodic) Representations(c cluster.Cluster) []cluster.Cluster {
	return anchoredRepresentations(s, c)
}

func (s scelPeriodic) CanonicalTransform(c cluster.Cluster) Transform { return transform(s, c) }

type withinScel struct {
	base
	scel lattice.Supercell
}

func (withinScel) Mode() Mode { return WithinScel }

func (w withinScel) Supercell() (lattice.Supercell, bool) { return w.scel, true }

func (w withinScel) Invariants(c cluster.Cluster) Invariants {
	return Invariants{Size: c.Size(), Lengths: imageLengths(c, w.scel)}
}

// SpatialPrepare folds each site separately; the returned shift is zero and
// CanonicalTransform reports the per-site folds in Transform.Shifts.
func (w withinScel) SpatialPrepare(c cluster.Cluster) (cluster.Cluster, lattice.IVec3) {
	out := c.MapSites(func(u crystal.UnitCellCoord) crystal.UnitCellCoord {
		return crystal.UnitCellCoord{Sublat: u.Sublat, Cell: w.scel.Within(u.Cell)}
	})

	return out, lattice.IVec3{}
}

func (withinScel) RepresentationPrepare(c cluster.Cluster) (cluster.Cluster, []int) {
	return sortFrom(c, 0)
}

func (w withinScel) Prepare(c cluster.Cluster) cluster.Cluster {
	sp, _ := w.SpatialPrepare(c)
	out, _ := sortFrom(sp, 0)

	return out
}

func (w withinScel) Representations(c cluster.Cluster) []cluster.Cluster {
	return []cluster.Cluster{w.Prepare(c)}
}

func (w withinScel) CanonicalTransform(c cluster.Cluster) Transform { return transform(w, c) }

// imageShifts are the supercell translations searched for a minimum image.
var imageShifts = func() []lattice.IVec3 {
	out := make([]lattice.IVec3, 0, 27)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				out = append(out, lattice.IVec3{i, j, k})
			}
		}
	}

	return out
}()

// imageLengths returns the pairwise minimum-image distances of c inside
// scel, descending. Folding a site into the supercell leaves them unchanged.
func imageLengths(c cluster.Cluster, scel lattice.Supercell) []float64 {
	n := c.Size()
	if n < 2 {
		return nil
	}
	prim := c.Prim()
	t := scel.Transformation()
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		xi := prim.Cart(c.Site(i))
		for j := i + 1; j < n; j++ {
			best := math.Inf(1)
			for _, m := range imageShifts {
				best = math.Min(best, xi.Dist(prim.Cart(c.Site(j).Translate(t.MulVec(m)))))
			}
			out = append(out, best)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))

	return out
}
