// SPDX-License-Identifier: MIT
package orbitree_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/skk74/CASMcode/orbitree"
)

// BenchmarkGenerate_FCC measures periodic enumeration of FCC up to quadruplets
// on one worker and on GOMAXPROCS workers.
func BenchmarkGenerate_FCC(b *testing.B) {
	s := fcc(b)
	params := orbitree.Params{MaxLength: []float64{0, 0, 1.1, 0.8, 0.8}}

	for _, workers := range []int{1, runtime.GOMAXPROCS(0)} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_, _ = orbitree.Generate(s, params, orbitree.WithWorkers(workers))
			}
		})
	}
}

// BenchmarkFreeze measures linear indexing with the strict hierarchy.
func BenchmarkFreeze(b *testing.B) {
	tree, err := orbitree.Generate(fcc(b), orbitree.Params{MaxLength: []float64{0, 0, 1.1, 0.8, 0.8}})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = tree.Freeze()
	}
}
