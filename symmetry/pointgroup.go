// SPDX-License-Identifier: MIT
package symmetry

import (
	"math"

	"github.com/skk74/CASMcode/lattice"
)

// LatticePointGroup returns the Cartesian point operations that map the
// lattice onto itself, identity first, the rest in enumeration order.
//
// Implementation:
//   - Stage 1: enumerate S ∈ {-1,0,1}^{3x3} with |det S| = 1.
//   - Stage 2: keep S with Sᵀ·G·S = G (G = metric), tolerance scaled by max|G|.
//   - Stage 3: R = L·S·L⁻¹.
//
// Complexity: 3⁹ candidate matrices, O(1) each.
func LatticePointGroup(lat lattice.Lattice) []lattice.Mat3 {
	metric := lat.Metric()
	scale := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			scale = math.Max(scale, math.Abs(metric[i][j]))
		}
	}
	tol := lat.Tol() * math.Max(scale, 1)

	var (
		out   []lattice.Mat3
		s     lattice.IMat3
		total = 19683 // 3^9
	)
	for code := 0; code < total; code++ {
		c := code
		for k := 0; k < 9; k++ {
			s[k/3][k%3] = c%3 - 1
			c /= 3
		}
		if d := s.Det(); d != 1 && d != -1 {
			continue
		}
		sf := s.Float()
		if !sf.Transpose().Mul(metric).Mul(sf).Equal(metric, tol) {
			continue
		}
		r := lat.Matrix().Mul(sf).Mul(lat.Inverse())
		if s == lattice.IIdentity3() {
			out = append([]lattice.Mat3{r}, out...)
			continue
		}
		out = append(out, r)
	}

	return out
}
