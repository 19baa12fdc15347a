// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primYAML = `
title: simple cubic
lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
basis:
  - {coordinate: [0, 0, 0], occupants: [A, Va]}
`

const specsYAML = `
branches:
  - {size: 2, max_length: 1.5}
  - {size: 3, max_length: 1.5}
`

// fixture writes the structure and specification into a temp dir.
func fixture(t *testing.T) (dir, prim, sp string) {
	t.Helper()
	dir = t.TempDir()
	prim = filepath.Join(dir, "prim.yaml")
	sp = filepath.Join(dir, "specs.yaml")
	require.NoError(t, os.WriteFile(prim, []byte(primYAML), 0o600))
	require.NoError(t, os.WriteFile(sp, []byte(specsYAML), 0o600))

	return dir, prim, sp
}

// run executes the CLI and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()

	return out.String(), err
}

// TestEnum_SnapshotAndListing verifies enum writes a snapshot, a listing and metrics.
func TestEnum_SnapshotAndListing(t *testing.T) {
	dir, prim, sp := fixture(t)
	snap := filepath.Join(dir, "tree.json.sz")
	prom := filepath.Join(dir, "enum.prom")

	out, err := run(t, "--metrics-file", prom, "enum", "--prim", prim, "--specs", sp, "--out", snap, "--listing", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "COORD_MODE = Direct")
	assert.Contains(t, out, "** Branch 3 **")

	_, err = os.Stat(snap)
	require.NoError(t, err)
	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), `orbitree_branch_orbits{branch="2"} 2`)

	summary, err := run(t, "print", snap, "--prim", prim, "--kind", "summary")
	require.NoError(t, err)
	assert.Contains(t, summary, "MaxLength")

	listing, err := run(t, "print", snap, "--prim", prim)
	require.NoError(t, err)
	assert.Equal(t, out, listing)

	png := filepath.Join(dir, "spectrum.png")
	_, err = run(t, "plot", snap, "--prim", prim, "--out", png, "--title", "sc")
	require.NoError(t, err)
	_, err = os.Stat(png)
	require.NoError(t, err)
}

// TestEnum_ProtoRoundTrip verifies a listing rebuilds the same tree.
func TestEnum_ProtoRoundTrip(t *testing.T) {
	dir, prim, sp := fixture(t)
	list := filepath.Join(dir, "clust.txt")
	_, err := run(t, "enum", "--prim", prim, "--specs", sp, "--listing", list)
	require.NoError(t, err)
	want, err := os.ReadFile(list)
	require.NoError(t, err)

	got, err := run(t, "enum", "--prim", prim, "--proto", list, "--listing", "-")
	require.NoError(t, err)
	assert.Equal(t, string(want), got)
}

// TestEnum_Hops verifies the decoration setting of the specification.
func TestEnum_Hops(t *testing.T) {
	dir, prim, _ := fixture(t)
	sp := filepath.Join(dir, "hops.yaml")
	require.NoError(t, os.WriteFile(sp, []byte("decorate: hops\nbranches: [{size: 2, max_length: 1}]\n"), 0o600))

	out, err := run(t, "enum", "--prim", prim, "--specs", sp, "--listing", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Mult: 6")
	assert.Contains(t, out, "-> 1")
}

// TestCLI_Errors verifies flag and input errors are reported.
func TestCLI_Errors(t *testing.T) {
	dir, prim, sp := fixture(t)
	cases := map[string][]string{
		"no prim":        {"enum", "--specs", sp},
		"no input":       {"enum", "--prim", prim},
		"both inputs":    {"enum", "--prim", prim, "--specs", sp, "--proto", sp},
		"missing specs":  {"enum", "--prim", prim, "--specs", filepath.Join(dir, "nope.yaml")},
		"bad log level":  {"--log-level", "loud", "enum", "--prim", prim, "--specs", sp},
		"print args":     {"print", "--prim", prim},
		"print kind":     {"print", filepath.Join(dir, "x.json"), "--prim", prim, "--kind", "table"},
		"plot snapshot":  {"plot", filepath.Join(dir, "x.json"), "--prim", prim},
		"unknown subcmd": {"grow"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			require.Error(t, err)
		})
	}
}
