// SPDX-License-Identifier: MIT
package crystal

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyBasis is returned for a structure without sites.
	ErrEmptyBasis = errors.New("crystal: structure has no basis sites")

	// ErrNoOccupants is returned when a basis site allows no occupant.
	ErrNoOccupants = errors.New("crystal: basis site has no allowed occupants")

	// ErrDuplicateSite is returned when two basis sites coincide.
	ErrDuplicateSite = errors.New("crystal: basis sites coincide")

	// ErrNaNInf signals a non-finite basis coordinate.
	ErrNaNInf = errors.New("crystal: NaN or Inf coordinate")

	// ErrIncompatibleOp is returned when an operation does not map the
	// structure onto itself.
	ErrIncompatibleOp = errors.New("crystal: operation is not a symmetry of the structure")

	// ErrSiteNotFound is returned when a coordinate matches no site.
	ErrSiteNotFound = errors.New("crystal: no site at coordinate")

	// ErrBadCoordMode is returned for an unknown coordinate mode name.
	ErrBadCoordMode = errors.New("crystal: unknown coordinate mode")
)

const (
	opNew            = "New"
	opSiteMap        = "SiteMap"
	opFactorGroup    = "ComputeFactorGroup"
	opClusterGroup   = "ClusterGroup"
	opSupercellGroup = "SupercellGroup"
	opFind           = "Find"
)

func crystalErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
