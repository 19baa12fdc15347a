// SPDX-License-Identifier: MIT

// Package orbit builds the equivalence class of an element under a group
// action, generic over the element type.
//
// Make(seed, action, comparator):
//
//  1. The prototype is the comparator-minimum over every representation of
//     every image of the seed, so it does not depend on which member of the
//     class the seed was.
//  2. Equivalents are the prepared images of the prototype in group order,
//     repeats dropped, first encountered kept; the prototype is equivalent 0
//     and EquivalenceOps()[i] is the first op producing equivalent i.
//  3. The stabilizer is the set of ops mapping the prototype onto itself.
//  4. |equivalents| · |stabilizer| must equal the group order; a violation
//     is returned as ErrStabilizer.
//
// Contains rejects on invariants first and then binary-searches every
// representation of the candidate among the sorted equivalents.
//
// Complexity (G = group order, R = representations per element,
// E = equivalents, C = cost of one comparison, linear in cluster size):
//
//   - Make:     Time O(G·R·C + G·(log E·C + E)), Memory O(E)
//   - Restore:  Time O(E·(log E·C + E)), Memory O(E)
//   - Contains: Time O(R·log E·C) after an O(1) invariant reject
//   - IndexOf:  Time O(log E·C)
package orbit
