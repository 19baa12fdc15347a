// SPDX-License-Identifier: MIT
package symmetry

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGroup is returned when a group with no operations is requested.
	ErrEmptyGroup = errors.New("symmetry: empty group")

	// ErrNoIdentity is returned when a group lacks the identity operation.
	ErrNoIdentity = errors.New("symmetry: group does not contain the identity")

	// ErrNotClosed is returned when the product of two ops is not in the group.
	ErrNotClosed = errors.New("symmetry: group is not closed under composition")

	// ErrNaNInf signals a non-finite op entry.
	ErrNaNInf = errors.New("symmetry: NaN or Inf in operation")
)

const (
	opNewGroup          = "NewGroup"
	opLatticePointGroup = "LatticePointGroup"
)

func symErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
