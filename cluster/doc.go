// SPDX-License-Identifier: MIT

// Package cluster implements the element type the orbit engine classifies:
// an ordered list of integral sites of a primitive structure, optionally
// decorated with one occupant index per site and optionally carrying a hop
// permutation (site i moves to site Hop()[i]).
//
// Clusters are values. Every operation returns a fresh cluster except
// PushBack and PopBack, which exist for the grow-by-one-site loop.
// Geometry (lengths) is derived on demand from the structure.
package cluster
