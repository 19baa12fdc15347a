// SPDX-License-Identifier: MIT
// Package lattice: sentinel error set.
// Every message is prefixed with "lattice: ..." and callers match with errors.Is.

package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrNaNInf signals a NaN or ±Inf entry in a lattice or coordinate.
	ErrNaNInf = errors.New("lattice: NaN or Inf encountered")

	// ErrDegenerate is returned for lattices with zero or negative volume.
	ErrDegenerate = errors.New("lattice: degenerate lattice vectors")

	// ErrSingular is returned when a matrix could not be inverted.
	ErrSingular = errors.New("lattice: singular matrix")

	// ErrNotIntegral signals that a matrix expected to be integral was not
	// within tolerance (e.g. a point operation in fractional coordinates).
	ErrNotIntegral = errors.New("lattice: matrix is not integral")

	// ErrBadSupercell is returned for supercell matrices with det(T) <= 0.
	ErrBadSupercell = errors.New("lattice: invalid supercell transformation")

	// ErrBadRadius is returned when a negative or non-finite radius is requested.
	ErrBadRadius = errors.New("lattice: invalid radius")
)

// Operation tags for error wrapping.
const (
	opNew           = "New"
	opInverse       = "Inverse"
	opEncloseSphere = "EncloseSphere"
	opSupercell     = "NewSupercell"
	opRoundIntegral = "RoundIntegral"
)

// latticeErrorf wraps err with an operation tag, preserving the sentinel via %w.
func latticeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
