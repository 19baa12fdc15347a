// SPDX-License-Identifier: MIT
package orbitree

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/skk74/CASMcode/cluster"
	"github.com/skk74/CASMcode/crystal"
	"github.com/skk74/CASMcode/lattice"
	"github.com/skk74/CASMcode/orbit"
	"github.com/skk74/CASMcode/symcompare"
)

const snapshotVersion = 1

// snapshot is the JSON form of an indexed cluster tree.
type snapshot struct {
	Version    int                     `json:"version"`
	Title      string                  `json:"title,omitempty"`
	Mode       string                  `json:"mode"`
	Supercell  *lattice.IMat3          `json:"supercell,omitempty"`
	Phenomenal []crystal.UnitCellCoord `json:"phenomenal,omitempty"`
	GroupOrder int                     `json:"group_order"`
	Params     Params                  `json:"params"`
	Branches   [][]orbitRecord         `json:"branches"`
	Hierarchy  [][]int                 `json:"hierarchy,omitempty"`
}

type orbitRecord struct {
	Index          int             `json:"linear_index"`
	Multiplicity   int             `json:"multiplicity"`
	MinLength      float64         `json:"min_length"`
	MaxLength      float64         `json:"max_length"`
	Equivalents    []clusterRecord `json:"equivalents"`
	EquivalenceOps []int           `json:"equivalence_ops"`
	Stabilizer     []int           `json:"stabilizer"`
}

type clusterRecord struct {
	Sites     []crystal.UnitCellCoord `json:"sites"`
	Decorated bool                    `json:"decorated,omitempty"`
	Occupants []int                   `json:"occupants,omitempty"`
	Hop       []int                   `json:"hop,omitempty"`
}

func recordOf(c cluster.Cluster) clusterRecord {
	sites := c.Sites()
	if sites == nil {
		sites = []crystal.UnitCellCoord{}
	}

	return clusterRecord{Sites: sites, Decorated: c.Decorated(), Occupants: c.Occupants(), Hop: c.Hop()}
}

func (r clusterRecord) cluster(prim *crystal.Structure) (cluster.Cluster, error) {
	for _, u := range r.Sites {
		if u.Sublat < 0 || u.Sublat >= prim.NumSites() {
			return cluster.Cluster{}, fmt.Errorf("sublattice %d out of range", u.Sublat)
		}
	}
	c := cluster.New(prim, r.Sites...)
	var err error
	if r.Decorated {
		occ := r.Occupants
		if occ == nil {
			occ = []int{}
		}
		if c, err = c.Decorate(occ); err != nil {
			return cluster.Cluster{}, err
		}
	}
	if r.Hop != nil {
		if c, err = c.WithHop(r.Hop); err != nil {
			return cluster.Cluster{}, err
		}
	}

	return c, nil
}

// Marshal encodes t as JSON: parameters, comparison mode, every orbit with
// its equivalents, equivalence ops and stabilizer, and the hierarchy.
// The encoding is deterministic.
func Marshal(t *Indexed[cluster.Cluster]) ([]byte, error) {
	st, ok := t.Comparator().(symcompare.Strategy)
	if !ok {
		return nil, fmt.Errorf("%w: comparator %T has no mode", ErrBadSnapshot, t.Comparator())
	}
	snap := snapshot{
		Version:    snapshotVersion,
		Mode:       st.Mode().String(),
		Phenomenal: st.Phenomenal(),
		GroupOrder: t.Action().Order(),
		Params:     t.Params(),
		Branches:   make([][]orbitRecord, t.NumBranches()),
		Hierarchy:  t.hierarchy,
	}
	if scel, ok := st.Supercell(); ok {
		m := scel.Transformation()
		snap.Supercell = &m
	}
	for np, branch := range t.branches {
		snap.Branches[np] = make([]orbitRecord, len(branch))
		for no, o := range branch {
			rec := orbitRecord{
				Index:          t.index[np][no],
				Multiplicity:   o.Size(),
				MinLength:      o.Invariants().MinLength(),
				MaxLength:      o.Invariants().MaxLength(),
				Equivalents:    make([]clusterRecord, o.Size()),
				EquivalenceOps: o.EquivalenceOps(),
				Stabilizer:     o.Stabilizer(),
			}
			for k := 0; k < o.Size(); k++ {
				rec.Equivalents[k] = recordOf(o.Equivalent(k))
			}
			snap.Branches[np][no] = rec
		}
	}

	return json.MarshalIndent(snap, "", "  ")
}

// Unmarshal rebuilds a tree written by Marshal against prim. The acting
// group is recomputed from prim and must have the recorded order; orbits
// are restored from their stored equivalents without applying the group.
// Op indices must lie within the group, equivalents of branch np must have
// np sites and hierarchy entries must name orbits of the tree.
func Unmarshal(data []byte, prim *crystal.Structure) (*Indexed[cluster.Cluster], error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: %v", ErrBadSnapshot, err))
	}
	if snap.Version != snapshotVersion {
		return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: version %d", ErrBadSnapshot, snap.Version))
	}
	mode, err := symcompare.ParseMode(snap.Mode)
	if err != nil {
		return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: %v", ErrBadSnapshot, err))
	}
	rep, cmp, err := snapshotGroup(prim, mode, snap)
	if err != nil {
		return nil, treeErrorf(opUnmarshal, err)
	}
	if rep.Order() != snap.GroupOrder {
		return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: group order %d, structure gives %d",
			ErrBadSnapshot, snap.GroupOrder, rep.Order()))
	}

	branches := make([][]*orbit.Orbit[cluster.Cluster], len(snap.Branches))
	next := 0
	for np, recs := range snap.Branches {
		for no, rec := range recs {
			if rec.Index != next {
				return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: orbit %d %d has index %d, want %d",
					ErrBadSnapshot, np, no, rec.Index, next))
			}
			next++
			eqs := make([]cluster.Cluster, len(rec.Equivalents))
			for k, cr := range rec.Equivalents {
				if eqs[k], err = cr.cluster(prim); err != nil {
					return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: orbit %d %d: %v", ErrBadSnapshot, np, no, err))
				}
				if eqs[k].Size() != np {
					return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: orbit %d %d: equivalent %d has %d sites",
						ErrBadSnapshot, np, no, k, eqs[k].Size()))
				}
			}
			o, err := orbit.Restore(eqs, rec.EquivalenceOps, rec.Stabilizer, snap.GroupOrder, cmp)
			if err != nil {
				return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: orbit %d %d: %v", ErrBadSnapshot, np, no, err))
			}
			branches[np] = append(branches[np], o)
		}
	}
	ix := newIndexed[cluster.Cluster](cluster.NewAction(rep), cmp, snap.Params, branches)
	if snap.Hierarchy != nil {
		if len(snap.Hierarchy) != ix.Len() {
			return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: hierarchy of %d orbits for %d",
				ErrBadSnapshot, len(snap.Hierarchy), ix.Len()))
		}
		for l, subs := range snap.Hierarchy {
			for _, sub := range subs {
				if sub < 0 || sub >= ix.Len() {
					return nil, treeErrorf(opUnmarshal, fmt.Errorf("%w: hierarchy of orbit %d names orbit %d of %d",
						ErrBadSnapshot, l, sub, ix.Len()))
				}
			}
		}
		ix.hierarchy = snap.Hierarchy
	}

	return ix, nil
}

// snapshotGroup recomputes the acting group and comparator of a snapshot.
func snapshotGroup(prim *crystal.Structure, mode symcompare.Mode, snap snapshot) (crystal.GroupRep, symcompare.Strategy, error) {
	opts := []symcompare.Option{symcompare.WithTolerance(tolerance(prim, snap.Params))}
	var (
		rep crystal.GroupRep
		err error
	)
	switch mode {
	case symcompare.Aperiodic:
		rep, err = prim.ClusterGroup(snap.Phenomenal)
		opts = append(opts, symcompare.WithPhenomenal(snap.Phenomenal))
	case symcompare.PrimPeriodic:
		rep = prim.FactorGroupRep()
	default:
		if snap.Supercell == nil {
			return rep, nil, fmt.Errorf("%w: %v without supercell", ErrBadSnapshot, mode)
		}
		var scel lattice.Supercell
		if scel, err = lattice.NewSupercell(prim.Lattice(), *snap.Supercell); err != nil {
			return rep, nil, err
		}
		rep, err = prim.SupercellGroup(scel)
		opts = append(opts, symcompare.WithSupercell(scel))
	}
	if err != nil {
		return rep, nil, err
	}
	cmp, err := symcompare.New(mode, opts...)

	return rep, cmp, err
}

// Save writes the snapshot of t to path, snappy-compressed when the path
// ends in ".sz".
func Save(path string, t *Indexed[cluster.Cluster]) error {
	data, err := Marshal(t)
	if err != nil {
		return treeErrorf(opSave, err)
	}
	if strings.HasSuffix(path, ".sz") {
		data = snappy.Encode(nil, data)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return treeErrorf(opSave, err)
	}

	return nil
}

// Load reads a snapshot written by Save.
func Load(path string, prim *crystal.Structure) (*Indexed[cluster.Cluster], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, treeErrorf(opLoad, err)
	}
	if strings.HasSuffix(path, ".sz") {
		if data, err = snappy.Decode(nil, data); err != nil {
			return nil, treeErrorf(opLoad, fmt.Errorf("%w: %v", ErrBadSnapshot, err))
		}
	}

	return Unmarshal(data, prim)
}
