// Package cdcl is a feasibility oracle on the gini CDCL solver.
//
// Cardinality constraints are compiled into sorting networks with logic.C.CardSort and
// forced through the network's Geq/Leq outputs. Threshold probes are single assumptions,
// so learnt clauses carry over between probes. A cancellable context runs the solve in
// the background with GoSolve and stops it when the context is done.
package cdcl

import (
	"context"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Options configures the oracle.
type Options struct {
	// Poll is how often a background solve checks for cancellation.
	Poll time.Duration
}

// Option mutates Options.
type Option func(*Options)

// WithPoll sets the cancellation polling interval.
func WithPoll(d time.Duration) Option {
	return func(o *Options) { o.Poll = d }
}

// DefaultOptions polls every 5ms.
func DefaultOptions() Options {
	return Options{Poll: 5 * time.Millisecond}
}

// Oracle owns one gini instance loaded with a lowered formula.
type Oracle struct {
	f    *oracle.Formula
	g    *gini.Gini
	lits []z.Lit // DIMACS variable -> gini literal; index 0 unused
	opts Options
}

// New loads f into a fresh gini solver.
func New(f *oracle.Formula, opts ...Option) (*Oracle, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := logic.NewCCap(f.NumVars)
	lits := make([]z.Lit, f.NumVars+1)
	for x := 1; x <= f.NumVars; x++ {
		lits[x] = c.Lit()
	}
	o := &Oracle{f: f, g: gini.NewV(f.NumVars), lits: lits, opts: cfg}

	// Sorting networks first: ToCnf must see every gate before the outputs are forced.
	var units []z.Lit
	for _, card := range f.Cards {
		ms := make([]z.Lit, len(card.Lits))
		for i, x := range card.Lits {
			ms[i] = o.lit(x)
		}
		cs := c.CardSort(ms)
		if card.Min > 0 {
			units = append(units, cs.Geq(card.Min))
		}
		if card.Max < len(ms) {
			units = append(units, cs.Leq(card.Max))
		}
	}
	c.ToCnf(o.g)

	for _, m := range units {
		o.g.Add(m)
		o.g.Add(z.LitNull)
	}
	for _, cl := range f.Clauses {
		o.add(cl)
	}

	return o, nil
}

func (o *Oracle) lit(x int) z.Lit {
	if x < 0 {
		return o.lits[-x].Not()
	}

	return o.lits[x]
}

func (o *Oracle) add(cl []int) {
	for _, x := range cl {
		o.g.Add(o.lit(x))
	}
	o.g.Add(z.LitNull)
}

// Decide assumes bottleneck <= threshold and solves once.
func (o *Oracle) Decide(ctx context.Context, threshold int) (oracle.Status, model.Assignment, error) {
	if o.g == nil {
		return oracle.Error, nil, oracle.ErrClosed
	}
	if ctx.Err() != nil {
		return oracle.Timeout, nil, nil
	}

	o.g.Assume(o.lit(o.f.Threshold(threshold)))
	switch o.solve(ctx) {
	case satisfiable:
		return oracle.Feasible, o.f.Assignment(func(x int) bool { return o.g.Value(o.lits[x]) }), nil
	case unsatisfiable:
		return oracle.Infeasible, nil, nil
	default:
		return oracle.Timeout, nil, nil
	}
}

// solve blocks on Solve when ctx can never be cancelled, otherwise polls a background
// solve and stops it once ctx is done.
func (o *Oracle) solve(ctx context.Context) int {
	if ctx.Done() == nil {
		return o.g.Solve()
	}

	s := o.g.GoSolve()
	tick := time.NewTicker(o.opts.Poll)
	defer tick.Stop()
	for {
		if res, done := s.Test(); done {
			return res
		}
		select {
		case <-ctx.Done():
			return s.Stop()
		case <-tick.C:
		}
	}
}

// AddClause adds a permanent clause over model literals.
func (o *Oracle) AddClause(lits []model.Lit) error {
	if o.g == nil {
		return oracle.ErrClosed
	}
	cl := make([]int, len(lits))
	for i, l := range lits {
		cl[i] = o.f.Lit(l)
	}
	if out, sat := o.f.Simplify(cl); !sat {
		o.add(out)
	}

	return nil
}

// Close drops the solver. It is safe to call more than once.
func (o *Oracle) Close() error {
	o.g = nil
	o.lits = nil

	return nil
}
