// SPDX-License-Identifier: MIT
package specs

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors returned by specs.
var (
	// ErrBadSpecs is returned for an invalid enumeration specification.
	ErrBadSpecs = errors.New("specs: invalid specification")

	// ErrBadHeader is returned for a CSPECS file with an unknown mode line
	// or first cluster size.
	ErrBadHeader = errors.New("specs: bad CSPECS header")

	// ErrBadPrim is returned for an invalid primitive structure file.
	ErrBadPrim = errors.New("specs: invalid primitive structure")
)

const (
	opLoad       = "Load"
	opParse      = "Parse"
	opValidate   = "Validate"
	opCSPECS     = "ParseCSPECS"
	opPrim       = "LoadPrim"
	opPhenomenal = "Phenomenal"
	opSupercell  = "Supercell"
)

// specsErrorf wraps err with the package prefix and an operation tag.
func specsErrorf(tag string, err error) error {
	return fmt.Errorf("specs.%s: %w", tag, err)
}

// validate is the shared struct-tag validator.
var validate = validator.New(validator.WithRequiredStructEnabled())

// formatValidationError turns the first tag failure into a readable error
// wrapping sentinel.
func formatValidationError(err error, sentinel error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", sentinel, e.Namespace())
	case "min", "gte", "gt":
		return fmt.Errorf("%w: %s must be at least %s", sentinel, e.Namespace(), e.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s]", sentinel, e.Namespace(), e.Param())
	case "len":
		return fmt.Errorf("%w: %s must have %s entries", sentinel, e.Namespace(), e.Param())
	default:
		return fmt.Errorf("%w: %s failed %q", sentinel, e.Namespace(), e.Tag())
	}
}
