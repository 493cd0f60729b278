// Package search finds the smallest bottleneck threshold at which a degree-bounded
// spanning tree (or a Hamiltonian cycle) exists, using a feasibility oracle per probe.
//
// Thresholds are ranks in the sorted candidate edge list: probing t allows only the
// t+1 cheapest edges. Feasibility is monotone in t, so the optimum is the lowest
// feasible rank. Every strategy shares one probe pipeline:
//
//	precheck   the prefix [0..t] must connect all nodes as a plain graph
//	resolve    oracle + separation loop at t
//	evaluate   feasible: tighten ub to the solution's real max rank; infeasible: raise lb
//
// Bounds: lb is the highest threshold proven infeasible. It starts at requiredEdges-2
// (a solution needs requiredEdges distinct ranks) and is raised to the MST bottleneck
// rank minus one. ub is the lowest threshold proven feasible: a greedy warm start when
// one exists, otherwise a verification probe at the top of the universe.
//
// Strategies:
//
//	Binary            probe (lb+ub)/2 until ub == lb+1
//	LinearAscending   probe lb+1, lb+2, ... and stop at the first feasible threshold
//	LinearDescending  probe ub-1, ub-2, ... and stop at the first infeasible threshold
//
// All three return the same optimal bottleneck. With a time limit the best solution so
// far is returned with Optimal=false; without one, ErrTimeout.
//
// WithMinSum adds a second stage to Solve: over the edges up to the optimal rank, a
// gophersat minimiser with the same separation loop finds the structure of least total
// Euclidean length. Result.MinSum reports whether that stage finished.
package search
