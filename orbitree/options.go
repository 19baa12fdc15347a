// SPDX-License-Identifier: MIT
package orbitree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"time"
)

// NotFound is the index reported for an element that belongs to no orbit.
const NotFound = -1

// Params bounds an enumeration. Slices are indexed by branch (cluster
// size); entry 0 is ignored.
type Params struct {
	// MaxLength[np] is the largest allowed site-to-site distance of clusters
	// in branch np. Branch 1 is never bounded. A zero entry beyond branch 1
	// reuses the previous branch's cutoff.
	MaxLength []float64 `json:"max_length" yaml:"max_length"`

	// Counts[np] > 0 selects count mode for branch np: the cutoff is the max
	// length of the Counts[np]-th shortest orbit, ties included.
	Counts []int `json:"num_clusts,omitempty" yaml:"num_clusts,omitempty"`

	// MinLength rejects clusters with any pair closer than it.
	MinLength float64 `json:"min_length" yaml:"min_length"`

	// MinNumComponents skips sublattices with fewer allowed occupants.
	MinNumComponents int `json:"min_num_components" yaml:"min_num_components"`

	// ExcludePhenomenal keeps the phenomenal sites out of local clusters.
	ExcludePhenomenal bool `json:"exclude_phenomenal,omitempty" yaml:"exclude_phenomenal,omitempty"`

	// Tol is the length tolerance; zero means the structure tolerance.
	Tol float64 `json:"tolerance,omitempty" yaml:"tolerance,omitempty"`
}

// MaxNumSites returns the largest branch the parameters describe.
func (p Params) MaxNumSites() int {
	return max(len(p.MaxLength), len(p.Counts)) - 1
}

// maxLengthAt returns the explicit cutoff of branch np, or 0.
func (p Params) maxLengthAt(np int) float64 {
	if np < len(p.MaxLength) {
		return p.MaxLength[np]
	}

	return 0
}

// countAt returns the requested orbit count of branch np, or 0.
func (p Params) countAt(np int) int {
	if np < len(p.Counts) {
		return p.Counts[np]
	}

	return 0
}

// Validate reports the first malformed field.
func (p Params) Validate() error {
	if p.MaxNumSites() < 0 {
		return fmt.Errorf("%w: no branch requested", ErrBadParams)
	}
	for np, l := range p.MaxLength {
		if math.IsNaN(l) || math.IsInf(l, 0) || l < 0 {
			return fmt.Errorf("%w: max length %v for branch %d", ErrBadParams, l, np)
		}
	}
	for np, n := range p.Counts {
		if n < 0 {
			return fmt.Errorf("%w: count %d for branch %d", ErrBadParams, n, np)
		}
	}
	if math.IsNaN(p.MinLength) || math.IsInf(p.MinLength, 0) || p.MinLength < 0 {
		return fmt.Errorf("%w: min length %v", ErrBadParams, p.MinLength)
	}
	if p.MinNumComponents < 0 {
		return fmt.Errorf("%w: min num components %d", ErrBadParams, p.MinNumComponents)
	}
	if math.IsNaN(p.Tol) || p.Tol < 0 {
		return fmt.Errorf("%w: tolerance %v", ErrBadParams, p.Tol)
	}

	return nil
}

// RejectReason classifies a discarded candidate cluster.
type RejectReason string

const (
	// RejectCutoff marks a candidate outside the length window.
	RejectCutoff RejectReason = "cutoff"
	// RejectDuplicate marks a candidate already in the tree.
	RejectDuplicate RejectReason = "duplicate"
	// RejectImage marks a candidate overlapping its own periodic image.
	RejectImage RejectReason = "image"
	// RejectDecoration marks a decoration or hop filtered out.
	RejectDecoration RejectReason = "decoration"
)

// Observer receives enumeration events. Calls come from a single goroutine.
type Observer interface {
	CandidateProposed(branch int)
	CandidateRejected(branch int, reason RejectReason)
	OrbitAccepted(branch int, multiplicity int)
	BranchCompleted(branch int, orbits int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) CandidateProposed(int)                   {}
func (nopObserver) CandidateRejected(int, RejectReason)     {}
func (nopObserver) OrbitAccepted(int, int)                  {}
func (nopObserver) BranchCompleted(int, int, time.Duration) {}

// Option configures an enumerator.
type Option func(*options)

type options struct {
	ctx       context.Context
	logger    *slog.Logger
	observer  Observer
	workers   int
	maxShells int
	mobile    []string
}

func defaultOptions() options {
	return options{
		ctx:       context.Background(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer:  nopObserver{},
		workers:   1,
		maxShells: 32,
		mobile:    []string{"Va"},
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithContext sets the context checked between prototypes. A nil context
// has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

// WithLogger sets the structured logger. A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver installs an enumeration observer. A nil observer has no effect.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithWorkers bounds the goroutines proposing candidates. n <= 0 selects
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMaxShells bounds the radius expansions of count mode.
func WithMaxShells(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxShells = n
		}
	}
}

// WithMobileSpecies sets the species a hop must move exactly one of.
func WithMobileSpecies(names ...string) Option {
	return func(o *options) {
		if len(names) > 0 {
			o.mobile = names
		}
	}
}

// HierarchyMode selects how Freeze resolves sub-clusters.
type HierarchyMode int

const (
	// HierarchyStrict fails when a sub-cluster is not in the tree.
	HierarchyStrict HierarchyMode = iota
	// HierarchyLenient skips sub-clusters that are not in the tree.
	HierarchyLenient
	// HierarchyNone skips the hierarchy.
	HierarchyNone
)

// FreezeOption configures Freeze.
type FreezeOption func(*freezeOptions)

type freezeOptions struct {
	hierarchy HierarchyMode
}

// WithHierarchy selects the hierarchy mode (default HierarchyStrict).
func WithHierarchy(m HierarchyMode) FreezeOption {
	return func(o *freezeOptions) { o.hierarchy = m }
}
