// SPDX-License-Identifier: MIT
package specs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/specs"
	"github.com/skk74/CASMcode/symcompare"
)

const scPrim = `
title: simple cubic
lattice:
  - [1, 0, 0]
  - [0, 1, 0]
  - [0, 0, 1]
basis:
  - coordinate: [0, 0, 0]
    occupants: [A, B]
`

func prim(t *testing.T) *crystal.Structure {
	t.Helper()
	s, err := specs.ParsePrim(strings.NewReader(scPrim))
	require.NoError(t, err)

	return s
}

func TestParse_Global(t *testing.T) {
	s, err := specs.Parse(strings.NewReader(`
tolerance: 1e-4
branches:
  - {size: 2, max_length: 1.5}
  - {size: 3, max_length: 1.2}
decorate: full
`))
	require.NoError(t, err)
	assert.Equal(t, specs.ModeGlobal, s.EffectiveMode())
	assert.Equal(t, 3, s.MaxNumSites())

	p := s.Params()
	assert.Equal(t, []float64{0, 0, 1.5, 1.2}, p.MaxLength)
	assert.Nil(t, p.Counts)
	assert.InDelta(t, 1e-4, p.Tol, 1e-12)
	require.NoError(t, p.Validate())
}

func TestParse_Counts(t *testing.T) {
	s, err := specs.Parse(strings.NewReader(`{"branches": [{"size": 2, "count": 3}, {"size": 4, "count": 1}]}`))
	require.NoError(t, err)
	p := s.Params()
	assert.Equal(t, []int{0, 0, 3, 0, 1}, p.Counts)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, p.MaxLength)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"unknown key":        "branches: [{size: 2, max_length: 1}]\ncolour: red\n",
		"no branches":        "tolerance: 0.1\n",
		"negative cutoff":    "branches: [{size: 2, max_length: -1}]\n",
		"negative tolerance": "tolerance: -1\nbranches: [{size: 2, max_length: 1}]\n",
		"bad decorate":       "decorate: maybe\nbranches: [{size: 2, max_length: 1}]\n",
		"sizes not rising":   "branches: [{size: 3, max_length: 1}, {size: 2, max_length: 1}]\n",
		"both bounds":        "branches: [{size: 2, max_length: 1, count: 2}]\n",
		"counted points":     "branches: [{size: 1, count: 2}]\n",
		"local without site": "mode: local\nbranches: [{size: 2, max_length: 1}]\n",
		"global with site":   "mode: global\nphenomenal: [[0, 0, 0]]\nbranches: [{size: 2, max_length: 1}]\n",
		"scel without T":     "mode: supercell\nbranches: [{size: 2, max_length: 1}]\n",
		"bad compare":        "supercell: [[2,0,0],[0,2,0],[0,0,2]]\ncompare: aperiodic\nbranches: [{size: 2, max_length: 1}]\n",
		"hops without pairs": "decorate: hops\nbranches: [{size: 1, max_length: 1}]\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := specs.Parse(strings.NewReader(doc))
			require.ErrorIs(t, err, specs.ErrBadSpecs)
		})
	}
}

func TestValidate_Message(t *testing.T) {
	err := specs.Specs{Branches: []specs.Branch{{Size: 0}}}.Validate()
	require.ErrorIs(t, err, specs.ErrBadSpecs)
	assert.Contains(t, err.Error(), "Specs.Branches[0].Size must be at least 1")
}

func TestPhenomenalCluster(t *testing.T) {
	s, err := specs.Parse(strings.NewReader(`
phenomenal: [[0, 0, 0], [1, 0, 0]]
exclude_phenomenal: true
branches: [{size: 1, max_length: 1.5}, {size: 2, max_length: 1}]
`))
	require.NoError(t, err)
	require.Equal(t, specs.ModeLocal, s.EffectiveMode())
	assert.True(t, s.Params().ExcludePhenomenal)

	c, err := s.PhenomenalCluster(prim(t))
	require.NoError(t, err)
	require.Equal(t, 2, c.Size())
	assert.Equal(t, lattice.IVec3{0, 0, 0}, c.Site(0).Cell)
	assert.Equal(t, lattice.IVec3{1, 0, 0}, c.Site(1).Cell)

	s.Phenomenal = []lattice.Vec3{{0.5, 0, 0}}
	_, err = s.PhenomenalCluster(prim(t))
	require.ErrorIs(t, err, specs.ErrBadSpecs)
	require.ErrorIs(t, err, crystal.ErrSiteNotFound)
}

func TestSupercellOf(t *testing.T) {
	s, err := specs.Parse(strings.NewReader(`
supercell: [[2, 0, 0], [0, 2, 0], [0, 0, 1]]
compare: within-scel
branches: [{size: 2, max_length: 1}]
`))
	require.NoError(t, err)
	require.Equal(t, specs.ModeSupercell, s.EffectiveMode())

	scel, mode, err := s.SupercellOf(prim(t))
	require.NoError(t, err)
	assert.Equal(t, 4, scel.Volume())
	assert.Equal(t, symcompare.WithinScel, mode)

	s.Compare = ""
	_, mode, err = s.SupercellOf(prim(t))
	require.NoError(t, err)
	assert.Equal(t, symcompare.ScelPeriodic, mode)

	_, _, err = specs.Specs{}.SupercellOf(prim(t))
	require.ErrorIs(t, err, specs.ErrBadSpecs)
}

func TestLoad_DispatchesOnName(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "specs.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("branches: [{size: 2, max_length: 2}]\n"), 0o600))
	cs := filepath.Join(dir, "CSPECS")
	require.NoError(t, os.WriteFile(cs, []byte("sc\nRadius\nsize radius\n2 2.0\n"), 0o600))

	a, err := specs.Load(yml)
	require.NoError(t, err)
	b, err := specs.Load(cs)
	require.NoError(t, err)
	assert.Equal(t, a.Params(), b.Params())

	_, err = specs.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
