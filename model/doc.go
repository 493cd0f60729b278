// Package model builds immutable, solver-agnostic feasibility models for degree-bounded
// spanning structures over a geometry.Instance.
//
// A Model is a list of variables (booleans for edge selection, bounded integers for node
// depths and the bottleneck) plus a list of constraints drawn from a small tagged union:
//
//	Clause       at least one literal is true
//	Cardinality  Min <= number of true literals <= Max
//	Step         Guard => To == From + 1
//	Fix          Var == Value
//	Dominates    Guard => Bound >= Value
//
// The objective is always "minimise the bottleneck variable". The bottleneck is measured
// in rank units (positions in the sorted candidate list), so probing threshold t amounts
// to assuming bottleneck <= t. CostOf maps a rank back to its squared cost.
//
// Two variants are supported: Tree (degree-bounded spanning tree) and Cycle (Hamiltonian
// cycle, the bottleneck TSP). Each comes in two encodings:
//
//   - Depth: directed arcs with a depth variable per node. Depth(root) = 0 and every
//     selected arc into a non-root node increments depth, which rules out sub-cycles.
//     The model is complete on its own.
//   - Lazy: undirected edges with degree and edge-count constraints only. Disconnected
//     candidates are removed later with component-separation cuts built from Crossing.
//
// The Builder validates its input and never drops a constraint: a node left without
// candidate edges (for instance by WithEdgeLimit) keeps an empty degree constraint, which
// makes the model infeasible once lowered.
package model
