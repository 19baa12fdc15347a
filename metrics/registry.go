// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the enumeration metrics and the registry they live in.
type Registry struct {
	CandidatesTotal *prometheus.CounterVec
	RejectedTotal   *prometheus.CounterVec
	OrbitsTotal     *prometheus.CounterVec
	ClustersTotal   *prometheus.CounterVec
	BranchOrbits    *prometheus.GaugeVec
	BranchDuration  *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates a Registry backed by a fresh prometheus registry.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initEnumMetrics()

	return r
}

// Prometheus returns the underlying registry, for serving or gathering.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }

// WriteToTextfile writes all metrics in the text exposition format, for the
// node exporter textfile collector.
func (r *Registry) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func (r *Registry) initEnumMetrics() {
	r.CandidatesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitree_candidates_total",
			Help: "Candidate clusters proposed during growth",
		},
		[]string{"branch"},
	)

	r.RejectedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitree_candidates_rejected_total",
			Help: "Candidate clusters discarded, by reason",
		},
		[]string{"branch", "reason"},
	)

	r.OrbitsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitree_orbits_accepted_total",
			Help: "Orbits added to the tree",
		},
		[]string{"branch"},
	)

	r.ClustersTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitree_clusters_accepted_total",
			Help: "Equivalent clusters in accepted orbits",
		},
		[]string{"branch"},
	)

	r.BranchOrbits = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orbitree_branch_orbits",
			Help: "Orbits in a completed branch",
		},
		[]string{"branch"},
	)

	r.BranchDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orbitree_branch_duration_seconds",
			Help:    "Time spent growing one branch",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30, 120},
		},
		[]string{"branch"},
	)
}
