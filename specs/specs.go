// SPDX-License-Identifier: MIT
package specs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/orbitree"
	"github.com/skk74/CASMcode/symcompare"
)

// Enumeration modes.
const (
	ModeGlobal    = "global"
	ModeLocal     = "local"
	ModeSupercell = "supercell"
)

// Decoration choices.
const (
	DecorateNone = "none"
	DecorateOcc  = "occupation"
	DecorateFull = "full"
	DecorateHops = "hops"
)

// Branch bounds the clusters of one size: by max length or by orbit count.
type Branch struct {
	Size      int     `yaml:"size" json:"size" validate:"gte=1"`
	MaxLength float64 `yaml:"max_length,omitempty" json:"max_length,omitempty" validate:"gte=0"`
	Count     int     `yaml:"count,omitempty" json:"count,omitempty" validate:"gte=0"`
}

// Specs is an enumeration specification.
type Specs struct {
	Description       string         `yaml:"description,omitempty" json:"description,omitempty"`
	Mode              string         `yaml:"mode,omitempty" json:"mode,omitempty" validate:"omitempty,oneof=global local supercell"`
	Tolerance         float64        `yaml:"tolerance,omitempty" json:"tolerance,omitempty" validate:"gte=0"`
	MinLength         float64        `yaml:"min_length,omitempty" json:"min_length,omitempty" validate:"gte=0"`
	MinNumComponents  int            `yaml:"min_num_components,omitempty" json:"min_num_components,omitempty" validate:"gte=0"`
	Branches          []Branch       `yaml:"branches" json:"branches" validate:"required,min=1,dive"`
	Phenomenal        []lattice.Vec3 `yaml:"phenomenal,omitempty" json:"phenomenal,omitempty"`
	CoordinateMode    string         `yaml:"coordinate_mode,omitempty" json:"coordinate_mode,omitempty" validate:"omitempty,oneof=Direct Fractional Cartesian"`
	ExcludePhenomenal bool           `yaml:"exclude_phenomenal,omitempty" json:"exclude_phenomenal,omitempty"`
	Supercell         *lattice.IMat3 `yaml:"supercell,omitempty" json:"supercell,omitempty"`
	Compare           string         `yaml:"compare,omitempty" json:"compare,omitempty" validate:"omitempty,oneof=scel-periodic within-scel"`
	Decorate          string         `yaml:"decorate,omitempty" json:"decorate,omitempty" validate:"omitempty,oneof=none occupation full hops"`
	MobileSpecies     []string       `yaml:"mobile_species,omitempty" json:"mobile_species,omitempty" validate:"omitempty,dive,required"`
	CustomClusters    string         `yaml:"custom_clusters,omitempty" json:"custom_clusters,omitempty"`
	Workers           int            `yaml:"workers,omitempty" json:"workers,omitempty" validate:"gte=0"`
}

// Load reads a specification file. Files named CSPECS or LCSPECS, or with a
// .cspecs extension, use the CSPECS text format; everything else is YAML
// (JSON included).
func Load(path string) (Specs, error) {
	f, err := os.Open(path)
	if err != nil {
		return Specs{}, specsErrorf(opLoad, err)
	}
	defer f.Close()

	base := strings.ToUpper(filepath.Base(path))
	if base == "CSPECS" || base == "LCSPECS" || strings.HasSuffix(base, ".CSPECS") {
		return ParseCSPECS(f)
	}

	return Parse(f)
}

// Parse decodes and validates a YAML or JSON specification. Unknown keys
// are rejected.
func Parse(r io.Reader) (Specs, error) {
	var s Specs
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Specs{}, specsErrorf(opParse, fmt.Errorf("%w: %v", ErrBadSpecs, err))
	}
	if err := s.Validate(); err != nil {
		return Specs{}, err
	}

	return s, nil
}

// EffectiveMode returns Mode, inferring local from phenomenal sites and
// supercell from a supercell matrix when unset.
func (s Specs) EffectiveMode() string {
	switch {
	case s.Mode != "":
		return s.Mode
	case len(s.Phenomenal) > 0:
		return ModeLocal
	case s.Supercell != nil:
		return ModeSupercell
	}

	return ModeGlobal
}

// Validate checks struct tags, then the cross-field rules: strictly
// increasing branch sizes, at most one bound per branch, phenomenal sites
// exactly in local mode, and a supercell exactly in supercell mode.
func (s Specs) Validate() error {
	if err := validate.Struct(s); err != nil {
		return specsErrorf(opValidate, formatValidationError(err, ErrBadSpecs))
	}
	prev := 0
	for i, b := range s.Branches {
		if b.Size <= prev {
			return specsErrorf(opValidate, fmt.Errorf("%w: branches[%d] size %d after size %d", ErrBadSpecs, i, b.Size, prev))
		}
		if b.MaxLength > 0 && b.Count > 0 {
			return specsErrorf(opValidate, fmt.Errorf("%w: branches[%d] sets both max_length and count", ErrBadSpecs, i))
		}
		if b.Count > 0 && b.Size < 2 {
			return specsErrorf(opValidate, fmt.Errorf("%w: branches[%d] counts point clusters", ErrBadSpecs, i))
		}
		prev = b.Size
	}
	mode := s.EffectiveMode()
	if (mode == ModeLocal) != (len(s.Phenomenal) > 0) {
		return specsErrorf(opValidate, fmt.Errorf("%w: phenomenal sites go with local mode only", ErrBadSpecs))
	}
	if (mode == ModeSupercell) != (s.Supercell != nil) {
		return specsErrorf(opValidate, fmt.Errorf("%w: a supercell goes with supercell mode only", ErrBadSpecs))
	}
	if s.Decorate == DecorateHops && s.MaxNumSites() < 2 {
		return specsErrorf(opValidate, fmt.Errorf("%w: hops need pair clusters", ErrBadSpecs))
	}

	return nil
}

// MaxNumSites returns the largest branch size.
func (s Specs) MaxNumSites() int {
	if len(s.Branches) == 0 {
		return 0
	}

	return s.Branches[len(s.Branches)-1].Size
}

// Params converts the specification into enumeration parameters, indexed
// by branch. Sizes without a row stay zero and inherit the previous cutoff.
func (s Specs) Params() orbitree.Params {
	n := s.MaxNumSites() + 1
	p := orbitree.Params{
		MaxLength:         make([]float64, n),
		MinLength:         s.MinLength,
		MinNumComponents:  s.MinNumComponents,
		ExcludePhenomenal: s.ExcludePhenomenal,
		Tol:               s.Tolerance,
	}
	for _, b := range s.Branches {
		p.MaxLength[b.Size] = b.MaxLength
		if b.Count > 0 {
			if p.Counts == nil {
				p.Counts = make([]int, n)
			}
			p.Counts[b.Size] = b.Count
		}
	}

	return p
}

// PhenomenalCluster finds the phenomenal sites in prim.
func (s Specs) PhenomenalCluster(prim *crystal.Structure) (cluster.Cluster, error) {
	mode := crystal.Fractional
	if s.CoordinateMode != "" {
		var err error
		if mode, err = crystal.ParseCoordMode(s.CoordinateMode); err != nil {
			return cluster.Cluster{}, specsErrorf(opPhenomenal, err)
		}
	}
	c := cluster.New(prim)
	for i, x := range s.Phenomenal {
		u, err := prim.FindCoordinate(x, mode)
		if err != nil {
			return cluster.Cluster{}, specsErrorf(opPhenomenal, fmt.Errorf("%w: phenomenal[%d]: %w", ErrBadSpecs, i, err))
		}
		c.PushBack(u)
	}

	return c, nil
}

// SupercellOf builds the supercell of prim and its comparison mode
// (ScelPeriodic unless Compare says within-scel).
func (s Specs) SupercellOf(prim *crystal.Structure) (lattice.Supercell, symcompare.Mode, error) {
	if s.Supercell == nil {
		return lattice.Supercell{}, 0, specsErrorf(opSupercell, fmt.Errorf("%w: no supercell", ErrBadSpecs))
	}
	scel, err := lattice.NewSupercell(prim.Lattice(), *s.Supercell)
	if err != nil {
		return lattice.Supercell{}, 0, specsErrorf(opSupercell, err)
	}
	mode := symcompare.ScelPeriodic
	if s.Compare == symcompare.WithinScel.String() {
		mode = symcompare.WithinScel
	}

	return scel, mode, nil
}
