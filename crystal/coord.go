// SPDX-License-Identifier: MIT
package crystal

import (
	"fmt"
	"strings"

	"github.com/skk74/CASMcode/lattice"
)

// UnitCellCoord addresses one site of the infinite crystal.
type UnitCellCoord struct {
	Sublat int           `json:"b"`
	Cell   lattice.IVec3 `json:"cell"`
}

// Translate shifts the coordinate by n unit cells.
func (u UnitCellCoord) Translate(n lattice.IVec3) UnitCellCoord {
	return UnitCellCoord{Sublat: u.Sublat, Cell: u.Cell.Add(n)}
}

// Compare orders by unit cell (lexicographic) and then by sublattice.
// Uniform translations preserve this order.
func (u UnitCellCoord) Compare(o UnitCellCoord) int {
	if c := u.Cell.Compare(o.Cell); c != 0 {
		return c
	}
	switch {
	case u.Sublat < o.Sublat:
		return -1
	case u.Sublat > o.Sublat:
		return 1
	}

	return 0
}

// String renders "b:[i j k]".
func (u UnitCellCoord) String() string {
	return fmt.Sprintf("%d:[%d %d %d]", u.Sublat, u.Cell[0], u.Cell[1], u.Cell[2])
}

// CoordMode selects how coordinates are read or written.
type CoordMode int

const (
	// Fractional coordinates relative to the lattice vectors ("Direct").
	Fractional CoordMode = iota
	// Cartesian coordinates.
	Cartesian
)

// String returns the listing keyword of the mode.
func (m CoordMode) String() string {
	if m == Cartesian {
		return "Cartesian"
	}

	return "Direct"
}

// ParseCoordMode accepts Direct, Fractional and Cartesian (case-insensitive,
// first letter suffices as in listing headers).
func ParseCoordMode(s string) (CoordMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadCoordMode)
	}
	switch strings.ToUpper(s[:1]) {
	case "D", "F":
		return Fractional, nil
	case "C":
		return Cartesian, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrBadCoordMode, s)
}
