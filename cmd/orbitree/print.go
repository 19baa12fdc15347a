// SPDX-License-Identifier: MIT
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/orbitree"
	"github.com/skk74/CASMcode/specs"
)

func newPrintCmd(a *app) *cobra.Command {
	var (
		prim string
		kind string
		cart bool
	)
	cmd := &cobra.Command{
		Use:   "print SNAPSHOT",
		Short: "Print a saved tree as a prototype listing, a full listing or a summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := specs.LoadPrim(prim)
			if err != nil {
				return err
			}
			ix, err := orbitree.Load(args[0], s)
			if err != nil {
				return err
			}
			a.logger.Debug("snapshot loaded", "path", args[0], "orbits", ix.Len())

			switch kind {
			case "summary":
				return ix.WriteSummary(cmd.OutOrStdout())
			case "proto", "full":
				lk := orbitree.ListPrototypes
				if kind == "full" {
					lk = orbitree.ListFull
				}

				mode := crystal.Fractional
				if cart {
					mode = crystal.Cartesian
				}

				return ix.WriteListing(cmd.OutOrStdout(), lk, mode)
			}

			return fmt.Errorf("--kind %q: want proto, full or summary", kind)
		},
	}
	cmd.Flags().StringVar(&prim, "prim", "", "primitive structure the snapshot was built on")
	cmd.Flags().StringVar(&kind, "kind", "proto", "proto, full or summary")
	cmd.Flags().BoolVar(&cart, "cartesian", false, "list Cartesian coordinates")
	_ = cmd.MarkFlagRequired("prim")

	return cmd
}
