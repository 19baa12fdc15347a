// SPDX-License-Identifier: MIT
package orbitree

import (
	"bufio"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
)

// ListKind selects what WriteListing prints per orbit.
type ListKind int

const (
	// ListPrototypes prints the prototype of each orbit.
	ListPrototypes ListKind = iota
	// ListFull prints every equivalent of each orbit.
	ListFull
)

// Listable is an element WriteListing can print: one coordinate and one
// label per site.
type Listable interface {
	Coordinates(mode crystal.CoordMode) []lattice.Vec3
	SiteLabel(i int) string
}

// WriteListing prints the tree in the text listing format read back by
// ReadPrototypes. Lengths use five decimals and coordinates eight.
func (t *Indexed[E]) WriteListing(w io.Writer, kind ListKind, mode crystal.CoordMode) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "COORD_MODE = %s\n", mode)
	for np, branch := range t.branches {
		fmt.Fprintf(bw, "\n** Branch %d **\n", np)
		for no, o := range branch {
			l := t.index[np][no]
			inv := o.Invariants()
			fmt.Fprintf(bw, "      ** %d of %d Orbits **  Orbit: %d %d  Points: %d  Mult: %d  MinLength: %.5f  MaxLength: %.5f\n",
				l, t.Len(), np, no, o.Prototype().Size(), o.Size(), inv.MinLength(), inv.MaxLength())
			if kind == ListPrototypes {
				fmt.Fprintf(bw, "            Prototype of %d Equivalent Clusters in Orbit %d\n", o.Size(), l)
				if err := writeSites(bw, o.Prototype(), mode); err != nil {
					return treeErrorf(opWriteList, err)
				}
				continue
			}
			for k := 0; k < o.Size(); k++ {
				fmt.Fprintf(bw, "            %d of %d Equivalent Clusters in Orbit %d\n", k, o.Size(), l)
				if err := writeSites(bw, o.Equivalent(k), mode); err != nil {
					return treeErrorf(opWriteList, err)
				}
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return treeErrorf(opWriteList, err)
	}

	return nil
}

func writeSites(w io.Writer, e any, mode crystal.CoordMode) error {
	le, ok := e.(Listable)
	if !ok {
		return fmt.Errorf("element %T cannot be listed", e)
	}
	for i, x := range le.Coordinates(mode) {
		fmt.Fprintf(w, "            %14.8f%14.8f%14.8f  %s\n", x[0], x[1], x[2], le.SiteLabel(i))
	}

	return nil
}

// WriteSummary prints one aligned row per orbit: linear index, branch,
// in-branch position, multiplicity and length range.
func (t *Indexed[E]) WriteSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Index\tBranch\tOrbit\tPoints\tMult\tMinLength\tMaxLength\t")
	for l := range t.rows {
		o := t.OrbitAt(l)
		inv := o.Invariants()
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%.5f\t%.5f\t\n",
			l, t.rows[l], t.cols[l], o.Prototype().Size(), o.Size(), inv.MinLength(), inv.MaxLength())
	}
	if err := tw.Flush(); err != nil {
		return treeErrorf(opWriteSumm, err)
	}

	return nil
}
