// SPDX-License-Identifier: MIT
package orbitree

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by orbitree.
var (
	// ErrBadParams is returned for malformed enumeration parameters.
	ErrBadParams = errors.New("orbitree: bad parameters")

	// ErrEmptyBranch is returned when a branch below the requested maximum
	// size ends up without orbits.
	ErrEmptyBranch = errors.New("orbitree: empty branch")

	// ErrCountUnreachable is returned when count mode exhausts its search
	// shells before finding the requested number of orbits.
	ErrCountUnreachable = errors.New("orbitree: requested orbit count unreachable")

	// ErrHierarchy is returned when a sub-cluster of some prototype does not
	// belong to any orbit of the tree.
	ErrHierarchy = errors.New("orbitree: sub-cluster not found")

	// ErrBadListing is returned for a malformed prototype listing.
	ErrBadListing = errors.New("orbitree: bad prototype listing")

	// ErrEquivalentMismatch is returned when the multiplicity declared in a
	// listing differs from the regenerated orbit.
	ErrEquivalentMismatch = errors.New("orbitree: equivalent count mismatch")

	// ErrBadCustom is returned for malformed custom cluster JSON.
	ErrBadCustom = errors.New("orbitree: bad custom clusters")

	// ErrBadSnapshot is returned for a malformed or incompatible snapshot.
	ErrBadSnapshot = errors.New("orbitree: bad snapshot")

	// ErrNoPhenomenal is returned by GenerateLocal without phenomenal sites.
	ErrNoPhenomenal = errors.New("orbitree: phenomenal cluster is empty")
)

// Operation tags used in wrapped errors.
const (
	opGenerate    = "Generate"
	opLocal       = "GenerateLocal"
	opSupercell   = "GenerateInSupercell"
	opDecorate    = "Decorate"
	opHops        = "Hops"
	opFreeze      = "Freeze"
	opRead        = "ReadPrototypes"
	opCustom      = "AddCustom"
	opUnmarshal   = "Unmarshal"
	opSave        = "Save"
	opLoad        = "Load"
	opWriteList   = "WriteListing"
	opWriteSumm   = "WriteSummary"
	opBranchLabel = "branch %d"
)

// treeErrorf wraps err with the package prefix and an operation tag.
func treeErrorf(tag string, err error) error {
	return fmt.Errorf("orbitree.%s: %w", tag, err)
}

// branchErrorf wraps err with a branch number.
func branchErrorf(np int, err error) error {
	return fmt.Errorf(opBranchLabel+": %w", np, err)
}
