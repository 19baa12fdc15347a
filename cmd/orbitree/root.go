// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/skk74/CASMcode/metrics"
)

// app carries what the persistent flags configure.
type app struct {
	logLevel    string
	metricsFile string

	logger  *slog.Logger
	metrics *metrics.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "orbitree",
		Short:         "Enumerate symmetrically distinct cluster orbits of a crystal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			a.metrics = metrics.NewRegistry()

			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if a.metricsFile == "" {
				return nil
			}
			if err := a.metrics.WriteToTextfile(a.metricsFile); err != nil {
				return fmt.Errorf("--metrics-file: %w", err)
			}
			a.logger.Debug("metrics written", "path", a.metricsFile)

			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the run")

	root.AddCommand(newEnumCmd(a), newPrintCmd(a), newPlotCmd(a))

	return root
}

// openOut returns the command output for "-" and a created file otherwise.
func openOut(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}
