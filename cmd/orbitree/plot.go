// SPDX-License-Identifier: MIT
package main

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/skk74/CASMcode/orbitree"
	"github.com/skk74/CASMcode/report"
	"github.com/skk74/CASMcode/specs"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		prim, out, title string
		width, height    float64
	)
	cmd := &cobra.Command{
		Use:   "plot SNAPSHOT",
		Short: "Chart multiplicity against max length for a saved tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := specs.LoadPrim(prim)
			if err != nil {
				return err
			}
			ix, err := orbitree.Load(args[0], s)
			if err != nil {
				return err
			}
			opts := []report.Option{report.WithSize(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch)}
			if title != "" {
				opts = append(opts, report.WithTitle(title))
			}
			if err := report.LengthSpectrum(ix, out, opts...); err != nil {
				return err
			}
			a.logger.Info("chart written", "path", out)

			return nil
		},
	}
	cmd.Flags().StringVar(&prim, "prim", "", "primitive structure the snapshot was built on")
	cmd.Flags().StringVarP(&out, "out", "o", "spectrum.png", "chart file; the extension picks the format")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().Float64Var(&width, "width", 6, "width in inches")
	cmd.Flags().Float64Var(&height, "height", 4, "height in inches")
	_ = cmd.MarkFlagRequired("prim")

	return cmd
}
