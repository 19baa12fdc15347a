// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/orbitree"
	"github.com/skk74/CASMcode/specs"
)

type enumFlags struct {
	prim    string
	specs   string
	proto   string
	custom  string
	out     string
	listing string
	full    bool
	cart    bool
	workers int
	mobile  []string
}

func newEnumCmd(a *app) *cobra.Command {
	f := &enumFlags{}
	cmd := &cobra.Command{
		Use:   "enum",
		Short: "Enumerate an orbit tree from a specification or a prototype listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEnum(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.prim, "prim", "", "primitive structure (YAML or PRIM text)")
	cmd.Flags().StringVar(&f.specs, "specs", "", "enumeration specification (YAML, JSON or CSPECS)")
	cmd.Flags().StringVar(&f.proto, "proto", "", "rebuild the tree from a prototype listing instead of --specs")
	cmd.Flags().StringVar(&f.custom, "custom", "", "custom clusters JSON, overriding the specification")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "snapshot file (.json, or .sz for snappy)")
	cmd.Flags().StringVar(&f.listing, "listing", "", "write a prototype listing here (- for stdout)")
	cmd.Flags().BoolVar(&f.full, "full", false, "list every equivalent cluster")
	cmd.Flags().BoolVar(&f.cart, "cartesian", false, "list Cartesian coordinates")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "growth workers (0: specification value or GOMAXPROCS)")
	cmd.Flags().StringSliceVar(&f.mobile, "mobile", nil, "mobile species for hops (default Va)")
	_ = cmd.MarkFlagRequired("prim")
	cmd.MarkFlagsMutuallyExclusive("specs", "proto")
	cmd.MarkFlagsOneRequired("specs", "proto")

	return cmd
}

func (a *app) runEnum(cmd *cobra.Command, f *enumFlags) error {
	prim, err := specs.LoadPrim(f.prim)
	if err != nil {
		return err
	}
	opts := []orbitree.Option{
		orbitree.WithContext(cmd.Context()),
		orbitree.WithLogger(a.logger),
		orbitree.WithObserver(a.metrics),
	}
	if len(f.mobile) > 0 {
		opts = append(opts, orbitree.WithMobileSpecies(f.mobile...))
	}

	var (
		tree      *orbitree.Tree[cluster.Cluster]
		sp        specs.Specs
		hierarchy = orbitree.HierarchyStrict
	)
	if f.proto != "" {
		if tree, err = readProto(f.proto, prim, opts); err != nil {
			return err
		}
	} else {
		if sp, err = specs.Load(f.specs); err != nil {
			return err
		}
		workers := f.workers
		if workers == 0 {
			workers = sp.Workers
		}
		opts = append(opts, orbitree.WithWorkers(workers))
		if len(f.mobile) == 0 && len(sp.MobileSpecies) > 0 {
			opts = append(opts, orbitree.WithMobileSpecies(sp.MobileSpecies...))
		}
		if tree, err = generate(prim, sp, opts); err != nil {
			return err
		}
		if sp.EffectiveMode() == specs.ModeLocal {
			hierarchy = orbitree.HierarchyLenient
		}
	}

	custom := f.custom
	if custom == "" {
		custom = sp.CustomClusters
	}
	if custom != "" {
		if err := addCustom(tree, prim, custom, opts); err != nil {
			return err
		}
	}

	ix, err := tree.Freeze(orbitree.WithHierarchy(hierarchy))
	if err != nil {
		return err
	}
	if ix, err = decorate(ix, sp.Decorate, hierarchy, opts); err != nil {
		return err
	}
	a.logger.Info("tree frozen", "orbits", ix.Len(), "branches", ix.NumBranches())

	if f.out != "" {
		if err := orbitree.Save(f.out, ix); err != nil {
			return err
		}
	}
	if f.listing != "" {
		return writeListing(cmd, ix, f.listing, f.full, f.cart)
	}

	return nil
}

// generate dispatches on the enumeration mode of sp.
func generate(prim *crystal.Structure, sp specs.Specs, opts []orbitree.Option) (*orbitree.Tree[cluster.Cluster], error) {
	params := sp.Params()
	switch sp.EffectiveMode() {
	case specs.ModeLocal:
		phenom, err := sp.PhenomenalCluster(prim)
		if err != nil {
			return nil, err
		}

		return orbitree.GenerateLocal(prim, phenom, params, opts...)
	case specs.ModeSupercell:
		scel, mode, err := sp.SupercellOf(prim)
		if err != nil {
			return nil, err
		}

		return orbitree.GenerateInSupercell(prim, scel, mode, params, opts...)
	}

	return orbitree.Generate(prim, params, opts...)
}

// decorate applies the decoration choice to a frozen tree. Hop trees have
// no hierarchy.
func decorate(ix *orbitree.Indexed[cluster.Cluster], how string, hierarchy orbitree.HierarchyMode, opts []orbitree.Option) (*orbitree.Indexed[cluster.Cluster], error) {
	var (
		tree *orbitree.Tree[cluster.Cluster]
		err  error
	)
	switch how {
	case "", specs.DecorateNone:
		return ix, nil
	case specs.DecorateOcc, specs.DecorateFull:
		tree, err = orbitree.Decorate(ix, how == specs.DecorateFull, opts...)
	case specs.DecorateHops:
		tree, err = orbitree.Hops(ix, opts...)
		hierarchy = orbitree.HierarchyNone
	default:
		return nil, fmt.Errorf("%w: decorate %q", specs.ErrBadSpecs, how)
	}
	if err != nil {
		return nil, err
	}

	return tree.Freeze(orbitree.WithHierarchy(hierarchy))
}

func readProto(path string, prim *crystal.Structure, opts []orbitree.Option) (*orbitree.Tree[cluster.Cluster], error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return orbitree.ReadPrototypes(r, prim, opts...)
}

func addCustom(tree *orbitree.Tree[cluster.Cluster], prim *crystal.Structure, path string, opts []orbitree.Option) error {
	r, err := os.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	doc, err := orbitree.ParseCustom(r)
	if err != nil {
		return err
	}

	return orbitree.AddCustom(tree, prim, doc, opts...)
}

func writeListing(cmd *cobra.Command, ix *orbitree.Indexed[cluster.Cluster], path string, full, cart bool) (err error) {
	w, closeFn, err := openOut(cmd, path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeFn()) }()

	kind := orbitree.ListPrototypes
	if full {
		kind = orbitree.ListFull
	}
	mode := crystal.Fractional
	if cart {
		mode = crystal.Cartesian
	}

	return ix.WriteListing(w, kind, mode)
}
