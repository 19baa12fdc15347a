// SPDX-License-Identifier: MIT
package orbitree

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/orbit"
	"github.com/skk74/CASMcode/symcompare"
)

// ReadPrototypes rebuilds a periodic tree from a listing written by
// WriteListing (either kind). Each orbit is regenerated from its prototype
// under the factor group of prim, and the regenerated multiplicity must
// match the listed one (ErrEquivalentMismatch). Repeated prototypes are
// skipped. Params.MaxLength of the result records the longest orbit of each
// branch.
func ReadPrototypes(r io.Reader, prim *crystal.Structure, opts ...Option) (*Tree[cluster.Cluster], error) {
	o := buildOptions(opts)
	tol := prim.Tol()
	cmp, err := symcompare.New(symcompare.PrimPeriodic, symcompare.WithTolerance(tol))
	if err != nil {
		return nil, treeErrorf(opRead, err)
	}
	act := cluster.NewAction(prim.FactorGroupRep())
	tree := NewTree[cluster.Cluster](act, cmp, Params{Tol: tol})

	lr := &lineReader{sc: bufio.NewScanner(r)}
	lr.sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	mode, err := readCoordMode(lr)
	if err != nil {
		return nil, treeErrorf(opRead, err)
	}

	read := map[int]int{}
	for lr.next() {
		fields := strings.Fields(lr.text)
		k := slices.Index(fields, "Points:")
		if k < 0 {
			continue
		}
		if k+1 >= len(fields) {
			return nil, treeErrorf(opRead, lr.errorf("missing point count"))
		}
		np, err := strconv.Atoi(fields[k+1])
		if err != nil || np < 0 {
			return nil, treeErrorf(opRead, lr.errorf("bad point count %q", fields[k+1]))
		}
		if !lr.next() {
			return nil, treeErrorf(opRead, lr.errorf("unexpected end of listing"))
		}
		hdr := strings.Fields(lr.text)
		if len(hdr) < 3 {
			return nil, treeErrorf(opRead, lr.errorf("missing equivalent count"))
		}
		mult, err := strconv.Atoi(hdr[2])
		if err != nil {
			return nil, treeErrorf(opRead, lr.errorf("bad equivalent count %q", hdr[2]))
		}
		c := cluster.New(prim)
		for i := 0; i < np; i++ {
			if !lr.next() {
				return nil, treeErrorf(opRead, lr.errorf("unexpected end of listing"))
			}
			x, err := parseCoordinate(strings.Fields(lr.text))
			if err != nil {
				return nil, treeErrorf(opRead, lr.errorf("%v", err))
			}
			u, err := prim.FindCoordinate(x, mode)
			if err != nil {
				return nil, treeErrorf(opRead, fmt.Errorf("line %d: %w", lr.line, err))
			}
			c.PushBack(u)
		}

		no := read[np]
		read[np]++
		orb, err := orbit.Make(c, act, cmp)
		if err != nil {
			return nil, treeErrorf(opRead, branchErrorf(np, err))
		}
		if orb.Size() != mult {
			return nil, treeErrorf(opRead, fmt.Errorf("%w: branch %d orbit %d lists %d equivalents, generated %d",
				ErrEquivalentMismatch, np, no, mult, orb.Size()))
		}
		if tree.Contains(c) {
			o.logger.Warn("repeated prototype skipped", "op", opRead, "branch", np, "orbit", no)
			continue
		}
		tree.Add(orb)
		o.observer.OrbitAccepted(np, orb.Size())
	}
	if err := lr.sc.Err(); err != nil {
		return nil, treeErrorf(opRead, err)
	}
	tree.params.MaxLength = branchMaxLengths(tree)
	o.logger.Info("prototypes read", "op", opRead, "branches", tree.NumBranches())

	return tree, nil
}

// branchMaxLengths returns the longest orbit max length of every branch.
func branchMaxLengths[E orbit.Element[E]](t *Tree[E]) []float64 {
	out := make([]float64, len(t.branches))
	for np, b := range t.branches {
		for _, o := range b {
			out[np] = max(out[np], o.Invariants().MaxLength())
		}
	}

	return out
}

type lineReader struct {
	sc   *bufio.Scanner
	text string
	line int
}

func (lr *lineReader) next() bool {
	if !lr.sc.Scan() {
		return false
	}
	lr.text = lr.sc.Text()
	lr.line++

	return true
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrBadListing, lr.line, fmt.Sprintf(format, args...))
}

// readCoordMode expects the first non-blank line to be "COORD_MODE = mode".
func readCoordMode(lr *lineReader) (crystal.CoordMode, error) {
	for lr.next() {
		s := strings.TrimSpace(lr.text)
		if s == "" {
			continue
		}
		key, val, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(key) != "COORD_MODE" {
			return 0, lr.errorf("expected COORD_MODE header, got %q", s)
		}
		mode, err := crystal.ParseCoordMode(val)
		if err != nil {
			return 0, lr.errorf("%v", err)
		}

		return mode, nil
	}

	return 0, fmt.Errorf("%w: empty listing", ErrBadListing)
}

func parseCoordinate(fields []string) (lattice.Vec3, error) {
	var x lattice.Vec3
	if len(fields) < 3 {
		return x, fmt.Errorf("expected 3 coordinates, got %d fields", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return x, fmt.Errorf("bad coordinate %q", fields[i])
		}
		x[i] = v
	}

	return x, nil
}
