// SPDX-License-Identifier: MIT
package symmetry

import (
	"fmt"

	"github.com/skk74/CASMcode/lattice"
)

// Op is a symmetry operation x ↦ Matrix·x + Tau (Cartesian).
type Op struct {
	Matrix       lattice.Mat3
	Tau          lattice.Vec3
	TimeReversal bool
}

// Identity returns the identity operation.
func Identity() Op { return Op{Matrix: lattice.Identity3()} }

// Apply maps a Cartesian point.
func (o Op) Apply(x lattice.Vec3) lattice.Vec3 { return o.Matrix.MulVec(x).Add(o.Tau) }

// Compose returns o∘p, the op that applies p first and then o.
func (o Op) Compose(p Op) Op {
	return Op{
		Matrix:       o.Matrix.Mul(p.Matrix),
		Tau:          o.Matrix.MulVec(p.Tau).Add(o.Tau),
		TimeReversal: o.TimeReversal != p.TimeReversal,
	}
}

// Inverse returns o⁻¹. Point operations are orthogonal, so Rᵀ is used.
func (o Op) Inverse() Op {
	rt := o.Matrix.Transpose()

	return Op{Matrix: rt, Tau: rt.MulVec(o.Tau).Scale(-1), TimeReversal: o.TimeReversal}
}

// Translate returns the op followed by a Cartesian translation t.
func (o Op) Translate(t lattice.Vec3) Op {
	return Op{Matrix: o.Matrix, Tau: o.Tau.Add(t), TimeReversal: o.TimeReversal}
}

// Equal compares matrix, translation and time reversal within tol.
func (o Op) Equal(p Op, tol float64) bool {
	return o.TimeReversal == p.TimeReversal && o.Matrix.Equal(p.Matrix, tol) && o.Tau.Equal(p.Tau, tol)
}

// EqualModLattice is Equal with translations compared modulo lattice vectors.
func (o Op) EqualModLattice(p Op, lat lattice.Lattice, tol float64) bool {
	if o.TimeReversal != p.TimeReversal || !o.Matrix.Equal(p.Matrix, tol) {
		return false
	}
	d := lat.CartToFrac(o.Tau.Sub(p.Tau))
	n, _ := d.Round()

	return lat.FracToCart(d.Sub(n.Float())).Norm() <= tol
}

// IsIdentity reports whether o is the identity within tol (exactly, not modulo a lattice).
func (o Op) IsIdentity(tol float64) bool { return o.Equal(Identity(), tol) }

// IsFinite reports whether all entries are finite.
func (o Op) IsFinite() bool { return o.Matrix.IsFinite() && o.Tau.IsFinite() }

// String renders the op compactly for diagnostics.
func (o Op) String() string {
	tr := ""
	if o.TimeReversal {
		tr = "'"
	}

	return fmt.Sprintf("{%v %v %v | %v}%s", lattice.Vec3(o.Matrix[0]), lattice.Vec3(o.Matrix[1]), lattice.Vec3(o.Matrix[2]), o.Tau, tr)
}
