// SPDX-License-Identifier: MIT
package specs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/symmetry"
)

// PrimSite is one basis site of a PrimFile.
type PrimSite struct {
	Coordinate lattice.Vec3 `yaml:"coordinate" json:"coordinate"`
	Occupants  []string     `yaml:"occupants" json:"occupants" validate:"required,min=1,dive,required"`
}

// PrimOp is one factor group operation in Cartesian coordinates.
type PrimOp struct {
	Matrix       lattice.Mat3 `yaml:"matrix" json:"matrix"`
	Tau          lattice.Vec3 `yaml:"tau" json:"tau"`
	TimeReversal bool         `yaml:"time_reversal,omitempty" json:"time_reversal,omitempty"`
}

// PrimFile is the YAML form of a primitive structure. Lattice rows are the
// lattice vectors.
type PrimFile struct {
	Title          string       `yaml:"title,omitempty" json:"title,omitempty"`
	Lattice        lattice.Mat3 `yaml:"lattice" json:"lattice"`
	CoordinateMode string       `yaml:"coordinate_mode,omitempty" json:"coordinate_mode,omitempty" validate:"omitempty,oneof=Direct Fractional Cartesian"`
	Tolerance      float64      `yaml:"tolerance,omitempty" json:"tolerance,omitempty" validate:"gte=0"`
	Basis          []PrimSite   `yaml:"basis" json:"basis" validate:"required,min=1,dive"`
	FactorGroup    []PrimOp     `yaml:"factor_group,omitempty" json:"factor_group,omitempty"`
}

// LoadPrim reads a primitive structure. Files named PRIM use the VASP-like
// text layout read by ParsePrimText; everything else is YAML.
func LoadPrim(path string) (*crystal.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, specsErrorf(opPrim, err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Base(path), "PRIM") {
		return ParsePrimText(f)
	}

	return ParsePrim(f)
}

// ParsePrim decodes a YAML PrimFile and builds the structure.
func ParsePrim(r io.Reader) (*crystal.Structure, error) {
	var pf PrimFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil {
		return nil, specsErrorf(opPrim, fmt.Errorf("%w: %v", ErrBadPrim, err))
	}

	return pf.Structure()
}

// Structure validates the file and builds the structure. A listed factor
// group is checked against the structure instead of being recomputed.
func (pf PrimFile) Structure() (*crystal.Structure, error) {
	if err := validate.Struct(pf); err != nil {
		return nil, specsErrorf(opPrim, formatValidationError(err, ErrBadPrim))
	}
	tol := pf.Tolerance
	if tol == 0 {
		tol = lattice.DefaultTol
	}
	lat, err := lattice.New(pf.Lattice.Row(0), pf.Lattice.Row(1), pf.Lattice.Row(2), tol)
	if err != nil {
		return nil, specsErrorf(opPrim, fmt.Errorf("%w: %v", ErrBadPrim, err))
	}
	mode := crystal.Fractional
	if pf.CoordinateMode != "" {
		if mode, err = crystal.ParseCoordMode(pf.CoordinateMode); err != nil {
			return nil, specsErrorf(opPrim, err)
		}
	}
	basis := make([]crystal.Site, len(pf.Basis))
	for i, b := range pf.Basis {
		x := b.Coordinate
		if mode == crystal.Cartesian {
			x = lat.CartToFrac(x)
		}
		basis[i] = crystal.Site{Frac: x, Occupants: b.Occupants}
	}
	opts := []crystal.Option{crystal.WithTitle(pf.Title)}
	if len(pf.FactorGroup) > 0 {
		ops := make([]symmetry.Op, len(pf.FactorGroup))
		for i, op := range pf.FactorGroup {
			ops[i] = symmetry.Op{Matrix: op.Matrix, Tau: op.Tau, TimeReversal: op.TimeReversal}
		}
		opts = append(opts, crystal.WithFactorGroup(ops))
	}
	s, err := crystal.New(lat, basis, opts...)
	if err != nil {
		return nil, specsErrorf(opPrim, fmt.Errorf("%w: %v", ErrBadPrim, err))
	}

	return s, nil
}

// ParsePrimText reads the text PRIM layout:
//
//	title
//	scale
//	a1x a1y a1z
//	a2x a2y a2z
//	a3x a3y a3z
//	n1 n2 ...          (sites per block, summed)
//	Direct | Cartesian
//	x y z Occ1 Occ2 ...
//
// The lattice vectors and Cartesian coordinates are multiplied by scale.
func ParsePrimText(r io.Reader) (*crystal.Structure, error) {
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		if t := strings.TrimSpace(sc.Text()); t != "" {
			lines = append(lines, t)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, specsErrorf(opPrim, err)
	}
	bad := func(format string, args ...any) error {
		return specsErrorf(opPrim, fmt.Errorf("%w: "+format, append([]any{ErrBadPrim}, args...)...))
	}
	if len(lines) < 8 {
		return nil, bad("want at least 8 lines, got %d", len(lines))
	}
	pf := PrimFile{Title: lines[0]}
	scale, err := strconv.ParseFloat(strings.Fields(lines[1])[0], 64)
	if err != nil || scale <= 0 {
		return nil, bad("line 2: scale %q", lines[1])
	}
	for i := 0; i < 3; i++ {
		v, err := parseVec(lines[2+i])
		if err != nil {
			return nil, bad("line %d: %v", 3+i, err)
		}
		pf.Lattice[i] = v.Scale(scale)
	}
	n := 0
	for _, f := range strings.Fields(lines[5]) {
		k, err := strconv.Atoi(f)
		if err != nil || k < 0 {
			return nil, bad("line 6: site count %q", f)
		}
		n += k
	}
	pf.CoordinateMode = strings.Fields(lines[6])[0]
	if _, err := crystal.ParseCoordMode(pf.CoordinateMode); err != nil {
		return nil, bad("line 7: %v", err)
	}
	cart := strings.EqualFold(pf.CoordinateMode[:1], "C")
	pf.CoordinateMode = crystal.Fractional.String()
	if cart {
		pf.CoordinateMode = crystal.Cartesian.String()
	}
	if len(lines)-7 < n {
		return nil, bad("want %d sites, got %d", n, len(lines)-7)
	}
	for i := 0; i < n; i++ {
		fields := strings.Fields(lines[7+i])
		if len(fields) < 4 {
			return nil, bad("line %d: want coordinate and occupants", 8+i)
		}
		v, err := parseVec(lines[7+i])
		if err != nil {
			return nil, bad("line %d: %v", 8+i, err)
		}
		x := v
		if cart {
			x = x.Scale(scale)
		}
		pf.Basis = append(pf.Basis, PrimSite{Coordinate: x, Occupants: fields[3:]})
	}

	return pf.Structure()
}

func parseVec(line string) (lattice.Vec3, error) {
	var out lattice.Vec3
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return out, errors.New("want 3 numbers")
	}
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, err
		}
		out[i] = v
	}

	return out, nil
}
