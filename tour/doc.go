// Package tour builds Hamiltonian cycles over a geometry.Instance for use as warm starts
// of the bottleneck TSP search.
//
// A tour is a closed index sequence T with len(T) == n+1, T[0] == T[n] == start and every
// node 0..n-1 appearing once in T[0..n-1]. Its key is the pair (bottleneck rank, total
// cost), compared lexicographically: a tour is better when its largest edge has a lower
// rank, and among equal bottlenecks when it is shorter.
//
// Provided helpers:
//   - NearestNeighbor: greedy construction from a start node, O(n²).
//   - Christofides: MST + greedy odd matching + Eulerian shortcut, O(n²).
//   - TwoOpt: deterministic first-improvement 2-opt on the lexicographic key.
//   - Best: TwoOpt over the Christofides tour and several NearestNeighbor tours,
//     keeping the best key.
//   - Edges, Evaluate, ValidateTour: conversion and checking.
//
// All functions are deterministic and allocate O(n).
package tour
