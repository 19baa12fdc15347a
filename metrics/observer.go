// SPDX-License-Identifier: MIT
package metrics

import (
	"strconv"
	"time"

	"github.com/skk74/CASMcode/orbitree"
)

var _ orbitree.Observer = (*Registry)(nil)

// CandidateProposed counts a proposed candidate.
func (r *Registry) CandidateProposed(branch int) {
	r.CandidatesTotal.WithLabelValues(strconv.Itoa(branch)).Inc()
}

// CandidateRejected counts a discarded candidate.
func (r *Registry) CandidateRejected(branch int, reason orbitree.RejectReason) {
	r.RejectedTotal.WithLabelValues(strconv.Itoa(branch), string(reason)).Inc()
}

// OrbitAccepted counts an accepted orbit and its clusters.
func (r *Registry) OrbitAccepted(branch int, multiplicity int) {
	b := strconv.Itoa(branch)
	r.OrbitsTotal.WithLabelValues(b).Inc()
	r.ClustersTotal.WithLabelValues(b).Add(float64(multiplicity))
}

// BranchCompleted records the final size and duration of a branch.
func (r *Registry) BranchCompleted(branch int, orbits int, elapsed time.Duration) {
	b := strconv.Itoa(branch)
	r.BranchOrbits.WithLabelValues(b).Set(float64(orbits))
	r.BranchDuration.WithLabelValues(b).Observe(elapsed.Seconds())
}
