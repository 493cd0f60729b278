// Package oracle defines the feasibility oracle contract used by the threshold search
// and the solver-agnostic lowering shared by every backend.
//
// An Oracle owns one solver session for one model. Decide(ctx, t) asks the solver, exactly
// once, whether the model has a solution with bottleneck <= t. AddClause appends a lazy
// constraint that persists for the rest of the session; the model is never rebuilt
// between probes, so learnt clauses survive. Close releases the session.
//
// Lower translates a model.Model into a Formula: DIMACS-numbered boolean variables,
// clauses and cardinality constraints. Integer variables use the order encoding: a
// literal [v >= k] for every k in (lo, hi], chained by [v >= k+1] => [v >= k]. Steps,
// fixes and dominations become clauses over those literals, and a threshold probe is the
// single assumption not [bottleneck >= t+1].
//
// Backends live in subpackages (cdcl, pbsat) and are selected through oracle/backend.
package oracle
