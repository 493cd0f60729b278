package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bottleneck/kruskal"
	"github.com/katalvlaran/bottleneck/metrics"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
	"github.com/katalvlaran/bottleneck/separation"
	"github.com/katalvlaran/bottleneck/tour"
)

var (
	// ErrNoSolution means the instance is infeasible even at the top threshold.
	ErrNoSolution = errors.New("search: no solution under the given bounds")
	// ErrTimeout means a budget ran out before any solution was found.
	ErrTimeout = errors.New("search: budget exhausted before a solution was found")
	// ErrUnexpectedStatus is the separation error for an oracle status that is neither
	// a solution nor a proof of infeasibility.
	ErrUnexpectedStatus = separation.ErrUnexpectedStatus
)

// outcome of one probe.
type outcome uint8

const (
	feasible outcome = iota
	infeasible
	disconnected
	timedOut
)

func (o outcome) String() string {
	switch o {
	case feasible:
		return metrics.OutcomeFeasible
	case infeasible:
		return metrics.OutcomeInfeasible
	case disconnected:
		return metrics.OutcomeDisconnected
	default:
		return metrics.OutcomeTimeout
	}
}

// Searcher runs one strategy over one model and its oracle. It does not own the oracle.
type Searcher struct {
	m    *model.Model
	loop *separation.Loop
	opts Options
	log  logrus.FieldLogger

	lb, ub int
	best   *model.Solution
	stats  Stats
}

// New prepares a search over m answered by o. Model-shaping options (variant, degree,
// edge limit) are read from m, not from opts.
func New(m *model.Model, o oracle.Oracle, opts ...Option) *Searcher {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Recorder == nil {
		cfg.Recorder = metrics.NewNil()
	}
	log := cfg.Logger.WithFields(logrus.Fields{
		"strategy": cfg.Strategy.String(),
		"variant":  m.Variant().String(),
		"nodes":    m.NumNodes(),
	})

	return &Searcher{
		m: m,
		loop: separation.New(o, m,
			separation.WithLogger(log),
			separation.WithRecorder(cfg.Recorder),
			separation.WithMaxRounds(cfg.MaxRounds),
		),
		opts: cfg,
		log:  log,
	}
}

// Run executes the configured strategy.
//
// Error Conditions:
//   - ErrNoSolution      : infeasible at the top threshold.
//   - ErrTimeout         : a budget ran out with no solution found.
//   - ErrUnexpectedStatus: the oracle failed; the message names the threshold.
//   - any oracle error, unmodified apart from threshold context.
func (s *Searcher) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	if s.opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.TimeLimit)
		defer cancel()
	}

	top := s.m.MaxThreshold()
	s.initBounds()
	if s.lb >= top {
		return nil, ErrNoSolution
	}

	var err error
	switch s.opts.Strategy {
	case LinearAscending:
		err = s.ascending(ctx)
	case LinearDescending:
		err = s.descending(ctx)
	default:
		err = s.binary(ctx)
	}

	optimal := true
	switch {
	case errors.Is(err, errBudget):
		if s.best == nil {
			return nil, ErrTimeout
		}
		optimal = false
		s.log.WithField("bottleneck_rank", s.best.MaxRank()).Warn("budget exhausted, returning best solution so far")
	case err != nil:
		return nil, err
	case s.best == nil:
		return nil, ErrNoSolution
	}

	s.stats.LowerBound, s.stats.UpperBound = s.lb, s.ub
	loop := s.loop.Stats()
	s.stats.OracleCalls, s.stats.Rounds, s.stats.Cuts = loop.OracleCalls, loop.Rounds, loop.Cuts

	res := s.result(optimal, time.Since(start))
	s.log.WithFields(logrus.Fields{
		"bottleneck": res.Bottleneck,
		"rank":       res.Rank,
		"optimal":    res.Optimal,
		"probes":     s.stats.Probes,
		"elapsed":    res.Elapsed,
	}).Info("search finished")

	return res, nil
}

// errBudget marks a probe stopped by the time limit or the round budget.
var errBudget = errors.New("search: budget")

// initBounds sets lb from the edge count and the MST, and ub from the warm start.
func (s *Searcher) initBounds() {
	inst := s.m.Instance()
	n := inst.Len()
	top := s.m.MaxThreshold()

	s.lb = s.m.Variant().RequiredEdges(n) - 2
	if s.opts.MSTBound {
		// MST never fails on a complete instance.
		mst, _ := kruskal.MST(inst)
		if r := kruskal.MaxRank(mst) - 1; r > s.lb {
			s.lb = r
		}
	}

	// top+1 stands for "no feasible threshold known yet".
	s.ub = top + 1
	s.stats.WarmStart = -1
	if !s.opts.WarmStart {
		return
	}
	if warm := s.warmStart(); warm != nil && warm.MaxRank() <= top {
		s.best = warm
		s.ub = warm.MaxRank()
		s.stats.WarmStart = s.ub
		s.opts.Recorder.ObserveBest(warm.Bottleneck())
		s.log.WithField("rank", s.ub).Debug("warm start")
	}
}

// warmStart returns a feasible structure built without the oracle, or nil.
func (s *Searcher) warmStart() *model.Solution {
	inst := s.m.Instance()
	switch s.m.Variant() {
	case model.Cycle:
		t, _, err := tour.Best(inst)
		if err != nil {
			return nil
		}
		edges, err := tour.Edges(inst, t)
		if err != nil {
			return nil
		}
		return model.FromEdges(edges)
	default:
		tree, err := kruskal.Greedy(inst, s.m.Options().Degree)
		if err != nil {
			return nil
		}
		return model.FromEdges(tree)
	}
}

// probe runs precheck and resolve at t and updates best on success.
func (s *Searcher) probe(ctx context.Context, t int) (outcome, error) {
	s.stats.Probes++
	log := s.log.WithField("threshold", t)

	if !kruskal.PrefixConnected(s.m.NumNodes(), s.m.Universe()[:t+1]) {
		s.stats.Disconnected++
		s.observe(disconnected)
		log.Debug("prefix disconnected")
		return disconnected, nil
	}
	if ctx.Err() != nil {
		s.observe(timedOut)
		return timedOut, errBudget
	}

	sol, err := s.loop.Resolve(ctx, t)
	switch {
	case err == nil:
	case errors.Is(err, separation.ErrInfeasible):
		s.observe(infeasible)
		log.Debug("bottleneck infeasible")
		return infeasible, nil
	case errors.Is(err, separation.ErrTimeout), errors.Is(err, separation.ErrRoundBudget):
		s.observe(timedOut)
		log.WithError(err).Debug("probe stopped by budget")
		return timedOut, errBudget
	default:
		s.opts.Recorder.ObserveProbe(s.opts.Strategy.String(), metrics.OutcomeError)
		return 0, err
	}

	s.observe(feasible)
	if s.best == nil || sol.MaxRank() < s.best.MaxRank() {
		s.best = sol
		s.opts.Recorder.ObserveBest(sol.Bottleneck())
		log.WithField("rank", sol.MaxRank()).Debug("new best bottleneck")
	}

	return feasible, nil
}

func (s *Searcher) observe(o outcome) {
	s.opts.Recorder.ObserveProbe(s.opts.Strategy.String(), o.String())
}

// verifyTop establishes ub by probing the top threshold when no warm start exists.
func (s *Searcher) verifyTop(ctx context.Context) error {
	top := s.m.MaxThreshold()
	if s.ub <= top {
		return nil
	}
	out, err := s.probe(ctx, top)
	if err != nil {
		return err
	}
	if out != feasible {
		s.lb = top
		return ErrNoSolution
	}
	s.ub = s.best.MaxRank()

	return nil
}

func (s *Searcher) binary(ctx context.Context) error {
	if err := s.verifyTop(ctx); err != nil {
		return err
	}
	for s.lb < s.ub-1 {
		mid := (s.lb + s.ub) / 2
		out, err := s.probe(ctx, mid)
		if err != nil {
			return err
		}
		if out == feasible {
			// Tighten to the real bottleneck, which may be below mid.
			s.ub = s.best.MaxRank()
		} else {
			s.lb = mid
		}
	}

	return nil
}

func (s *Searcher) ascending(ctx context.Context) error {
	for t := s.lb + 1; t < s.ub; t++ {
		out, err := s.probe(ctx, t)
		if err != nil {
			return err
		}
		if out == feasible {
			s.ub = s.best.MaxRank()
			return nil
		}
		s.lb = t
	}

	return nil
}

func (s *Searcher) descending(ctx context.Context) error {
	if err := s.verifyTop(ctx); err != nil {
		return err
	}
	for s.ub-1 > s.lb {
		t := s.ub - 1
		out, err := s.probe(ctx, t)
		if err != nil {
			return err
		}
		if out != feasible {
			s.lb = t
			return nil
		}
		s.ub = s.best.MaxRank()
	}

	return nil
}

func (s *Searcher) result(optimal bool, elapsed time.Duration) *Result {
	res := &Result{
		Optimal:  optimal,
		Strategy: s.opts.Strategy,
		Elapsed:  elapsed,
		Stats:    s.stats,
	}
	res.setEdges(s.m.Instance(), s.best.Edges)

	return res
}
