// SPDX-License-Identifier: MIT
package cluster

import "errors"

var (
	// ErrBadDecoration is returned for a decoration of the wrong length or
	// with an occupant index outside the site's allowed list.
	ErrBadDecoration = errors.New("cluster: invalid decoration")

	// ErrBadHop is returned for a hop that is not a permutation of the sites.
	ErrBadHop = errors.New("cluster: invalid hop permutation")
)
