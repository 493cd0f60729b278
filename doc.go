// Package bottleneck finds spanning structures over points in the plane whose longest
// edge is as short as possible.
//
// Two problems share one machinery:
//
//	tree  - a spanning tree in which every node has degree at most d (d >= 2)
//	cycle - a Hamiltonian cycle (the bottleneck travelling salesman tour)
//
// Candidate edges are sorted by squared Euclidean length; a threshold t admits the t+1
// shortest ones. A SAT oracle decides each threshold, connectivity is either encoded up
// front (depths from a root) or enforced lazily with component cuts, and the search
// (binary, ascending or descending) looks for the smallest feasible threshold.
//
// Packages:
//
//	geometry/   - points, squared costs, the ranked edge list, random instances
//	kruskal/    - MST (Kruskal, Prim), greedy degree-bounded tree, components
//	tour/       - nearest-neighbour and 2-opt tours for the cycle warm start
//	model/      - variables and constraints of one instance, solution decoding
//	oracle/     - CNF lowering; cdcl (gini) and pbsat (gophersat) backends
//	separation/ - the lazy connectivity loop
//	search/     - threshold search strategies and the Solve entry point
//	bench/      - sweeps over growing random instances
//	metrics/    - Prometheus recorder
//	cmd/btsearch - command line: solve, bench, random
//
// Quick example of the unit square with d = 2:
//
//	    1───3
//	    │   │
//	    0   2      bottleneck 1, a path over three sides
//
//	go get github.com/katalvlaran/bottleneck
package bottleneck
