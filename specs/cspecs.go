// SPDX-License-Identifier: MIT
package specs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCSPECS reads the legacy CSPECS text format:
//
//	line 1   free text, ignored
//	line 2   "Radius ..." or "Number ..." (only the first letter counts)
//	radius:  one more header line, then "size radius" rows
//	number:  "size count" rows
//
// In radius mode the first size must be 1 (local cutoffs) or 2 (global
// cutoffs). Count rows for sizes below 2 are ignored since empty and point
// branches are always complete. Trailing text on a row is ignored.
func ParseCSPECS(r io.Reader) (Specs, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: empty file", ErrBadHeader))
	}
	if !sc.Scan() {
		return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: missing mode line", ErrBadHeader))
	}
	mode := strings.TrimSpace(sc.Text())
	var radius bool
	switch {
	case strings.HasPrefix(mode, "R"), strings.HasPrefix(mode, "r"):
		radius = true
		sc.Scan()
	case strings.HasPrefix(mode, "N"), strings.HasPrefix(mode, "n"):
	default:
		return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: line 2 must start with Radius or Number, got %q", ErrBadHeader, mode))
	}

	var s Specs
	line := 2
	if radius {
		line++
	}
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: line %d: want size and value", ErrBadSpecs, line))
		}
		size, err := strconv.Atoi(fields[0])
		if err != nil {
			// rows end at the first non-numeric size
			break
		}
		if radius {
			if len(s.Branches) == 0 && size != 1 && size != 2 {
				return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: first cluster size is %d, want 1 (local) or 2 (global)", ErrBadHeader, size))
			}
			v, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: line %d: %v", ErrBadSpecs, line, err))
			}
			s.Branches = append(s.Branches, Branch{Size: size, MaxLength: v})

			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return Specs{}, specsErrorf(opCSPECS, fmt.Errorf("%w: line %d: %v", ErrBadSpecs, line, err))
		}
		if size < 2 {
			continue
		}
		s.Branches = append(s.Branches, Branch{Size: size, Count: int(v)})
	}
	if err := sc.Err(); err != nil {
		return Specs{}, specsErrorf(opCSPECS, err)
	}
	if err := s.Validate(); err != nil {
		return Specs{}, err
	}

	return s, nil
}
