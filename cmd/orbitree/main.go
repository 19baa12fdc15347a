// SPDX-License-Identifier: MIT

// Command orbitree enumerates cluster orbits of a crystal structure, prints
// the resulting trees and charts their length spectrum.
//
//	orbitree enum --prim prim.yaml --specs specs.yaml --out tree.json.sz
//	orbitree print tree.json.sz --prim prim.yaml --kind summary
//	orbitree plot tree.json.sz --prim prim.yaml --out spectrum.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "orbitree:", err)
		os.Exit(1)
	}
}
