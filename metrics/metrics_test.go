// SPDX-License-Identifier: MIT
package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/metrics"
	"github.com/skk74/CASMcode/orbitree"
)

func simpleCubic(t *testing.T) *crystal.Structure {
	t.Helper()
	l, err := lattice.New(lattice.Vec3{1, 0, 0}, lattice.Vec3{0, 1, 0}, lattice.Vec3{0, 0, 1}, 1e-5)
	require.NoError(t, err)
	s, err := crystal.New(l, []crystal.Site{{Occupants: []string{"A", "B"}}})
	require.NoError(t, err)

	return s
}

// TestRegistry_Callbacks verifies each callback updates its metric.
func TestRegistry_Callbacks(t *testing.T) {
	r := metrics.NewRegistry()
	r.CandidateProposed(2)
	r.CandidateProposed(2)
	r.CandidateRejected(2, orbitree.RejectCutoff)
	r.OrbitAccepted(2, 6)
	r.OrbitAccepted(2, 12)
	r.BranchCompleted(2, 2, 40*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(r.CandidatesTotal.WithLabelValues("2")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.RejectedTotal.WithLabelValues("2", "cutoff")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.OrbitsTotal.WithLabelValues("2")), 0)
	assert.InDelta(t, 18, testutil.ToFloat64(r.ClustersTotal.WithLabelValues("2")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.BranchOrbits.WithLabelValues("2")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.BranchDuration))
}

// TestRegistry_ObservesGenerate verifies the registry works as a growth observer.
func TestRegistry_ObservesGenerate(t *testing.T) {
	r := metrics.NewRegistry()
	tree, err := orbitree.Generate(simpleCubic(t), orbitree.Params{MaxLength: []float64{0, 0, 1.5}}, orbitree.WithObserver(r))
	require.NoError(t, err)
	require.Len(t, tree.Branch(2), 2)

	assert.InDelta(t, 2, testutil.ToFloat64(r.OrbitsTotal.WithLabelValues("2")), 0)
	assert.InDelta(t, 18, testutil.ToFloat64(r.ClustersTotal.WithLabelValues("2")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.BranchOrbits.WithLabelValues("1")), 0)
	assert.Positive(t, testutil.ToFloat64(r.RejectedTotal.WithLabelValues("2", string(orbitree.RejectDuplicate))))
	assert.Equal(t, 3, testutil.CollectAndCount(r.BranchDuration))
}

// TestRegistry_WriteToTextfile verifies the text exposition output.
func TestRegistry_WriteToTextfile(t *testing.T) {
	r := metrics.NewRegistry()
	r.BranchCompleted(3, 7, time.Second)

	path := filepath.Join(t.TempDir(), "orbitree.prom")
	require.NoError(t, r.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `orbitree_branch_orbits{branch="3"} 7`)
	assert.Contains(t, string(data), "# TYPE orbitree_branch_duration_seconds histogram")

	n, err := testutil.GatherAndCount(r.Prometheus(), "orbitree_branch_orbits")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
