// SPDX-License-Identifier: MIT
package cluster

import "github.com/skk74/CASMcode/crystal"

// Action is the action of a represented group on clusters.
type Action struct {
	rep crystal.GroupRep
}

// NewAction wraps a group representation.
func NewAction(rep crystal.GroupRep) Action { return Action{rep: rep} }

// Order returns the group order.
func (a Action) Order() int { return a.rep.Order() }

// Apply returns the image of c under op g.
func (a Action) Apply(g int, c Cluster) Cluster { return c.Apply(a.rep.Map(g)) }

// Rep returns the underlying representation.
func (a Action) Rep() crystal.GroupRep { return a.rep }
