// Package pbsat is a feasibility oracle on the gophersat pseudo-boolean solver.
//
// Cardinality constraints are passed natively as AtLeast/AtMost constraints. Lazy
// clauses are appended to the live solver and threshold probes are assumptions, so the
// problem is parsed once per session. gophersat cannot be interrupted mid-solve; the
// context is only checked before each call.
//
// MinSum uses the same encoding with a linear cost over the arc literals. Its
// optimisation loop does watch a stop channel, which is closed when the context ends.
package pbsat

import (
	"context"

	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"

	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
)

// Oracle owns one gophersat solver loaded with a lowered formula.
type Oracle struct {
	f      *oracle.Formula
	s      *solver.Solver
	nbVars int
}

// New parses f into a fresh gophersat solver.
func New(f *oracle.Formula) (*Oracle, error) {
	constrs := make([]solver.PBConstr, 0, len(f.Clauses)+2*len(f.Cards))
	for _, cl := range f.Clauses {
		constrs = append(constrs, solver.PropClause(append([]int(nil), cl...)...))
	}
	for _, card := range f.Cards {
		// AtLeast and AtMost take ownership of the slice and AtMost negates it in place.
		if card.Min > 0 {
			constrs = append(constrs, solver.AtLeast(append([]int(nil), card.Lits...), card.Min))
		}
		if card.Max < len(card.Lits) {
			constrs = append(constrs, solver.AtMost(append([]int(nil), card.Lits...), card.Max))
		}
	}

	pb := solver.ParsePBConstrs(constrs)
	if pb == nil {
		return nil, errors.New("pbsat: could not parse constraints")
	}

	return &Oracle{f: f, s: solver.New(pb), nbVars: pb.NbVars}, nil
}

func toLit(x int) solver.Lit {
	if x < 0 {
		return solver.Var(-x - 1).Lit().Negation()
	}

	return solver.Var(x - 1).Lit()
}

// Decide assumes bottleneck <= threshold and solves once.
func (o *Oracle) Decide(ctx context.Context, threshold int) (oracle.Status, model.Assignment, error) {
	if o.s == nil {
		return oracle.Error, nil, oracle.ErrClosed
	}
	if ctx.Err() != nil {
		return oracle.Timeout, nil, nil
	}

	var assume []solver.Lit
	// A threshold variable the parser never saw is unconstrained, so there is nothing to assume.
	if x := o.f.Threshold(threshold); abs(x) <= o.nbVars {
		assume = append(assume, toLit(x))
	}
	o.s.Assume(assume)

	switch o.s.Solve() {
	case solver.Sat:
		m := o.s.Model()
		return oracle.Feasible, o.f.Assignment(func(x int) bool { return x-1 < len(m) && m[x-1] }), nil
	case solver.Unsat:
		return oracle.Infeasible, nil, nil
	default:
		return oracle.Unknown, nil, nil
	}
}

// AddClause appends a permanent clause over model literals.
func (o *Oracle) AddClause(lits []model.Lit) error {
	if o.s == nil {
		return oracle.ErrClosed
	}
	cl := make([]int, len(lits))
	for i, l := range lits {
		cl[i] = o.f.Lit(l)
	}
	out, sat := o.f.Simplify(cl)
	if sat {
		return nil
	}
	o.s.AppendClause(solver.PropClause(out...).Clause())

	return nil
}

// Close drops the solver. It is safe to call more than once.
func (o *Oracle) Close() error {
	o.s = nil

	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
