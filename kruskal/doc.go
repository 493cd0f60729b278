// Package kruskal provides the spanning-tree primitives the threshold search leans on:
// a disjoint-set (union-find) forest, connected components of an edge subset, the
// unconstrained minimum spanning tree of an instance and a degree-capped greedy tree.
//
// What & Why
//
//   - The minimum spanning tree minimises the largest edge among all spanning trees,
//     so its bottleneck is a lower bound for every degree-bounded tree and for every
//     Hamiltonian cycle (a cycle minus one edge is a spanning path).
//   - The greedy tree (Kruskal that skips edges whose endpoints already have degree d)
//     is a feasible degree-bounded tree when it completes, which makes its bottleneck an
//     upper bound. The search uses it as a warm start.
//   - Components and PrefixConnected answer "is this edge subset connected?" for the
//     separation loop and for the threshold pre-check.
//
// Algorithms Provided
//
//   - MST(inst, opts...) ([]geometry.Edge, error)
//     Kruskal over the sorted candidate list (default) or dense Prim (WithMethod(MethodPrim)).
//     Kruskal: O(n² α(n)) once edges are sorted. Prim: O(n²) with no heap.
//
//   - Greedy(inst, d) ([]geometry.Edge, error)
//     Degree-capped Kruskal. May fail with ErrDisconnected even though a degree-d tree
//     exists; it is a heuristic.
//
//   - Components(n, edges) [][]int, PrefixConnected(n, edges) bool
//     Union-find over node indices 0..n-1. Components are sorted by their smallest node.
//
// Error Conditions
//
//   - ErrDegreeTooSmall : Greedy with d < 2 (a path needs degree two).
//   - ErrDisconnected   : the edge set cannot span all nodes.
//   - ErrUnknownMethod  : MST with a method other than MethodKruskal or MethodPrim.
//
// Determinism: ties keep the stable order of geometry.Instance.SortedEdges, so repeated
// runs select identical edges.
package kruskal
