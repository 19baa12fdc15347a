// SPDX-License-Identifier: MIT
// Package metrics exposes enumeration progress as Prometheus metrics.
// A *Registry is an orbitree.Observer; pass it with orbitree.WithObserver.
package metrics
