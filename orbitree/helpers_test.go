// SPDX-License-Identifier: MIT
package orbitree_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/orbitree"
)

func structure(t testing.TB, a, b, c lattice.Vec3, basis ...crystal.Site) *crystal.Structure {
	t.Helper()
	l, err := lattice.New(a, b, c, 1e-5)
	require.NoError(t, err)
	s, err := crystal.New(l, basis)
	require.NoError(t, err)

	return s
}

func simpleCubic(t testing.TB, occupants ...string) *crystal.Structure {
	if len(occupants) == 0 {
		occupants = []string{"A", "B"}
	}

	return structure(t, lattice.Vec3{1, 0, 0}, lattice.Vec3{0, 1, 0}, lattice.Vec3{0, 0, 1},
		crystal.Site{Occupants: occupants})
}

func fcc(t testing.TB) *crystal.Structure {
	return structure(t, lattice.Vec3{0, 0.5, 0.5}, lattice.Vec3{0.5, 0, 0.5}, lattice.Vec3{0.5, 0.5, 0},
		crystal.Site{Occupants: []string{"A", "B"}})
}

func ucc(b, x, y, z int) crystal.UnitCellCoord {
	return crystal.UnitCellCoord{Sublat: b, Cell: lattice.IVec3{x, y, z}}
}

// freeze generates and freezes with strict hierarchy.
func freeze(t testing.TB, tree *orbitree.Tree[cluster.Cluster], err error, opts ...orbitree.FreezeOption) *orbitree.Indexed[cluster.Cluster] {
	t.Helper()
	require.NoError(t, err)
	ix, err := tree.Freeze(opts...)
	require.NoError(t, err)

	return ix
}

// branchSizes returns the orbit count of every branch.
func branchSizes(ix *orbitree.Indexed[cluster.Cluster]) []int {
	out := make([]int, ix.NumBranches())
	for np := range out {
		out[np] = ix.Size(np)
	}

	return out
}

// multiplicities returns the orbit sizes of branch np.
func multiplicities(ix *orbitree.Indexed[cluster.Cluster], np int) []int {
	out := make([]int, ix.Size(np))
	for no := range out {
		out[no] = ix.OrbitSize(np, no)
	}

	return out
}

func listing(t testing.TB, ix *orbitree.Indexed[cluster.Cluster], kind orbitree.ListKind) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ix.WriteListing(&buf, kind, crystal.Fractional))

	return buf.String()
}

// recorder is an Observer counting events.
type recorder struct {
	proposed  map[int]int
	rejected  map[orbitree.RejectReason]int
	accepted  map[int]int
	completed []int
}

func newRecorder() *recorder {
	return &recorder{proposed: map[int]int{}, rejected: map[orbitree.RejectReason]int{}, accepted: map[int]int{}}
}

func (r *recorder) CandidateProposed(np int) { r.proposed[np]++ }

func (r *recorder) CandidateRejected(_ int, reason orbitree.RejectReason) { r.rejected[reason]++ }

func (r *recorder) OrbitAccepted(np, _ int) { r.accepted[np]++ }

func (r *recorder) BranchCompleted(np, _ int, _ time.Duration) { r.completed = append(r.completed, np) }
