// SPDX-License-Identifier: MIT
// Package specs loads what an enumeration needs from files: the
// enumeration specification (YAML, JSON, or the CSPECS text format) and the
// primitive structure (YAML or the text PRIM layout).
//
// Specifications are checked in two passes: struct tags through a shared
// go-playground validator, then cross-field rules (branch order, local and
// supercell settings). Every failure wraps ErrBadSpecs, ErrBadHeader or
// ErrBadPrim.
package specs
