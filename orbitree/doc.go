// SPDX-License-Identifier: MIT
// Package orbitree builds orbit trees: every orbit of clusters up to a
// maximum size, grouped into branches by cluster size.
//
// A Tree is a mutable builder. Populate it with one of the enumerators,
// then call Freeze to sort every branch and assign linear indices. The
// resulting Indexed tree is immutable and safe for concurrent readers.
//
// Enumerators:
//   - Generate: periodic clusters bounded per branch by a maximum length,
//     or by a requested orbit count (count mode, see Params.Counts).
//   - GenerateLocal: clusters around a phenomenal cluster, acted on by its
//     cluster group.
//   - GenerateInSupercell: clusters compared modulo a supercell.
//   - Decorate and Hops: expand an undecorated tree into decorated or
//     diffusion-hop orbits.
//   - ReadPrototypes and AddCustom: trees from a listing or custom JSON.
//
// Linear order is branch-major: every orbit of branch 0, then of branch 1,
// and so on. Within a branch, orbits are ordered by ascending max length,
// then by invariants, then by prototype (orbit.Compare).
//
// Determinism & Concurrency:
//   - Candidate clusters may be proposed by a bounded worker pool
//     (WithWorkers). Insertion is always sequential in proposal order, so
//     the resulting tree does not depend on the number of workers.
//   - Cancellation via WithContext is checked between prototypes.
//
// Complexity (S = seeds of branch np-1, M = grid sites within the search
// radius, B = orbits of branch np, np = cluster size, K = cost of one
// orbit.Contains; see package orbit):
//
//   - Generate, per branch: Time O(S·M·(np² + B·K)) plus one orbit.Make per
//     accepted orbit. The np² length window runs on the worker pool; the
//     duplicate scan does not.
//   - Count mode repeats a branch once per shell, at most WithMaxShells times.
//   - Freeze: Time O(N log N) to sort N orbits, plus one Find per proper
//     sub-cluster of every prototype (2^np - 2 each) for the hierarchy.
//   - Memory O(Σ E·np) over every orbit.
//
// Errors:
//   - ErrBadParams       - malformed enumeration parameters.
//   - ErrEmptyBranch     - a branch below the requested size has no orbit.
//   - ErrCountUnreachable - count mode could not reach the requested count.
//   - ErrHierarchy       - a sub-cluster has no orbit in the tree.
//   - ErrBadListing, ErrEquivalentMismatch - malformed prototype listing.
//   - ErrBadCustom       - malformed custom cluster JSON.
//   - ErrBadSnapshot     - malformed or incompatible JSON snapshot.
package orbitree
