// SPDX-License-Identifier: MIT

// Package report draws charts of enumerated orbit trees.
package report

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/skk74/CASMcode/orbit"
	"github.com/skk74/CASMcode/orbitree"
)

// ErrNothingToPlot is returned for a tree without clusters of two or more
// sites.
var ErrNothingToPlot = errors.New("report: no multi-site orbits")

// Option configures a chart.
type Option func(*options)

type options struct {
	title         string
	width, height vg.Length
}

// WithTitle sets the chart title.
func WithTitle(title string) Option { return func(o *options) { o.title = title } }

// WithSize sets the chart size.
func WithSize(width, height vg.Length) Option {
	return func(o *options) { o.width, o.height = width, height }
}

func newOptions(opts []Option) options {
	o := options{title: "Orbit length spectrum", width: 6 * vg.Inch, height: 4 * vg.Inch}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Spectrum returns, per branch, the (max length, multiplicity) point of
// every orbit. Branches 0 and 1 are empty.
func Spectrum[E orbit.Element[E]](ix *orbitree.Indexed[E]) []plotter.XYs {
	out := make([]plotter.XYs, ix.NumBranches())
	for np := 2; np < ix.NumBranches(); np++ {
		for _, o := range ix.Branch(np) {
			out[np] = append(out[np], plotter.XY{X: o.Invariants().MaxLength(), Y: float64(o.Size())})
		}
	}

	return out
}

// NewLengthSpectrum builds a scatter plot of multiplicity against max
// length, one series per branch.
func NewLengthSpectrum[E orbit.Element[E]](ix *orbitree.Indexed[E], opts ...Option) (*plot.Plot, error) {
	o := newOptions(opts)
	p := plot.New()
	p.Title.Text = o.title
	p.X.Label.Text = "max length"
	p.Y.Label.Text = "multiplicity"
	p.Add(plotter.NewGrid())

	series := 0
	for np, pts := range Spectrum(ix) {
		if len(pts) == 0 {
			continue
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("report: branch %d: %w", np, err)
		}
		s.GlyphStyle.Color = plotutil.Color(series)
		s.GlyphStyle.Shape = plotutil.Shape(series)
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%d-site", np), s)
		series++
	}
	if series == 0 {
		return nil, ErrNothingToPlot
	}

	return p, nil
}

// LengthSpectrum saves the spectrum chart to path. The extension picks the
// format (png, svg, pdf, eps, jpg, tif).
func LengthSpectrum[E orbit.Element[E]](ix *orbitree.Indexed[E], path string, opts ...Option) error {
	p, err := NewLengthSpectrum(ix, opts...)
	if err != nil {
		return err
	}
	o := newOptions(opts)
	if err := p.Save(o.width, o.height, path); err != nil {
		return fmt.Errorf("report: save %s: %w", filepath.Base(path), err)
	}

	return nil
}

// WriteLengthSpectrum renders the chart in format to w.
func WriteLengthSpectrum[E orbit.Element[E]](w io.Writer, ix *orbitree.Indexed[E], format string, opts ...Option) error {
	p, err := NewLengthSpectrum(ix, opts...)
	if err != nil {
		return err
	}
	o := newOptions(opts)
	wt, err := p.WriterTo(o.width, o.height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	_, err = wt.WriteTo(w)

	return err
}
