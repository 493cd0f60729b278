package pbsat

import (
	"context"
	"math"

	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"

	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
)

// LengthScale is the number of weight units per unit of Euclidean length.
const LengthScale = 1024

// ErrWeightRange indicates edge lengths whose scaled sum does not fit in an int.
var ErrWeightRange = errors.New("pbsat: edge weights overflow")

// Cost attaches a squared edge cost to a DIMACS literal.
type Cost struct {
	Lit  int
	Cost int64
}

// MinSum is an oracle whose Decide returns an assignment of minimum total Euclidean
// length under bottleneck <= threshold, rather than the first one found.
//
// gophersat keeps the improving bound of an optimisation inside the solver, so every
// Decide parses a fresh problem from the formula plus the clauses added so far.
type MinSum struct {
	f       *oracle.Formula
	lits    []solver.Lit
	weights []int
	extra   [][]int
	closed  bool
}

// NewMinSum prepares f with the objective sum(round(LengthScale * sqrt(cost))) over costs.
// Zero-length literals are left out of the objective.
func NewMinSum(f *oracle.Formula, costs []Cost) (*MinSum, error) {
	o := &MinSum{f: f}
	var sum int64
	for _, c := range costs {
		w := int64(math.Round(math.Sqrt(float64(c.Cost)) * LengthScale))
		if w == 0 {
			continue
		}
		if w > math.MaxInt-sum {
			return nil, ErrWeightRange
		}
		sum += w
		o.lits = append(o.lits, toLit(c.Lit))
		o.weights = append(o.weights, int(w))
	}

	return o, nil
}

// Decide minimises the objective with bottleneck <= threshold. A context that ends
// mid-optimisation yields the best model so far with status Feasible.
func (o *MinSum) Decide(ctx context.Context, threshold int) (oracle.Status, model.Assignment, error) {
	if o.closed {
		return oracle.Error, nil, oracle.ErrClosed
	}
	if ctx.Err() != nil {
		return oracle.Timeout, nil, nil
	}

	constrs := make([]solver.PBConstr, 0, len(o.f.Clauses)+len(o.extra)+2*len(o.f.Cards)+1)
	for _, cl := range o.f.Clauses {
		constrs = append(constrs, solver.PropClause(append([]int(nil), cl...)...))
	}
	for _, cl := range o.extra {
		constrs = append(constrs, solver.PropClause(append([]int(nil), cl...)...))
	}
	for _, card := range o.f.Cards {
		if card.Min > 0 {
			constrs = append(constrs, solver.AtLeast(append([]int(nil), card.Lits...), card.Min))
		}
		if card.Max < len(card.Lits) {
			constrs = append(constrs, solver.AtMost(append([]int(nil), card.Lits...), card.Max))
		}
	}
	constrs = append(constrs, solver.PropClause(o.f.Threshold(threshold)))

	pb := solver.ParsePBConstrs(constrs)
	if pb == nil {
		return oracle.Error, nil, errors.New("pbsat: could not parse constraints")
	}
	if len(o.lits) == 0 {
		return decideOnce(solver.New(pb), o.f)
	}
	pb.SetCostFunc(o.lits, o.weights)
	s := solver.New(pb)

	stop := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			close(stop)
		case <-done:
		}
	}()
	res := s.Optimal(nil, stop)

	switch {
	case res.Status == solver.Unsat:
		return oracle.Infeasible, nil, nil
	case res.Status == solver.Sat && res.Model != nil:
		m := res.Model
		a := o.f.Assignment(func(x int) bool { return x-1 < len(m) && m[x-1] })
		if ctx.Err() != nil {
			return oracle.Feasible, a, nil
		}
		return oracle.Optimal, a, nil
	case ctx.Err() != nil:
		return oracle.Timeout, nil, nil
	default:
		return oracle.Unknown, nil, nil
	}
}

// decideOnce solves a problem without an objective, where any model is optimal.
func decideOnce(s *solver.Solver, f *oracle.Formula) (oracle.Status, model.Assignment, error) {
	switch s.Solve() {
	case solver.Sat:
		m := s.Model()
		return oracle.Optimal, f.Assignment(func(x int) bool { return x-1 < len(m) && m[x-1] }), nil
	case solver.Unsat:
		return oracle.Infeasible, nil, nil
	default:
		return oracle.Unknown, nil, nil
	}
}

// AddClause records a permanent clause for every later Decide.
func (o *MinSum) AddClause(lits []model.Lit) error {
	if o.closed {
		return oracle.ErrClosed
	}
	cl := make([]int, len(lits))
	for i, l := range lits {
		cl[i] = o.f.Lit(l)
	}
	if out, sat := o.f.Simplify(cl); !sat {
		o.extra = append(o.extra, out)
	}

	return nil
}

// Close marks the oracle closed. It is safe to call more than once.
func (o *MinSum) Close() error {
	o.closed = true

	return nil
}
