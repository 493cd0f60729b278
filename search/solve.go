package search

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle/backend"
	"github.com/katalvlaran/bottleneck/separation"
)

// Solve builds the model for inst, opens one oracle session and runs the search.
// With WithMinSum it then runs minSum, sharing the time limit with the search.
//
// Error Conditions:
//   - model.ErrDegreeTooSmall, model.ErrTooFewNodes, ...: invalid options.
//   - ErrNoSolution, ErrTimeout, ErrUnexpectedStatus: see Searcher.Run.
//   - any oracle error of the second stage, wrapped.
func Solve(ctx context.Context, inst *geometry.Instance, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.TimeLimit)
		defer cancel()
	}

	m, err := model.Build(inst, cfg.modelOptions()...)
	if err != nil {
		return nil, err
	}
	o, err := backend.Open(cfg.Backend, m, backend.WithRecorder(cfg.Recorder))
	if err != nil {
		return nil, err
	}
	defer o.Close()

	start := time.Now()
	res, err := New(m, o, opts...).Run(ctx)
	if err != nil || !cfg.MinSum {
		return res, err
	}
	if err := minSum(ctx, inst, cfg, res); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)

	return res, nil
}

// minSum replaces res by the shortest structure whose edges all rank at most res.Rank.
// A budget that runs out leaves res unchanged with MinSum false, and a budget that
// runs out mid-optimisation keeps the best connected structure found so far.
func minSum(ctx context.Context, inst *geometry.Instance, cfg Options, res *Result) error {
	log := cfg.Logger.WithFields(logrus.Fields{
		"variant": cfg.Variant.String(),
		"rank":    res.Rank,
	})

	m, err := model.Build(inst, append(cfg.modelOptions(), model.WithEdgeLimit(res.Rank+1))...)
	if err != nil {
		return errors.Wrap(err, "search: building min-sum model")
	}
	o, err := backend.OpenMinSum(m, backend.WithRecorder(cfg.Recorder))
	if err != nil {
		return err
	}
	defer o.Close()

	loop := separation.New(o, m,
		separation.WithLogger(log),
		separation.WithRecorder(cfg.Recorder),
		separation.WithMaxRounds(cfg.MaxRounds),
	)
	sol, err := loop.Resolve(ctx, res.Rank)
	stats := loop.Stats()
	res.Stats.OracleCalls += stats.OracleCalls
	res.Stats.Rounds += stats.Rounds
	res.Stats.Cuts += stats.Cuts
	switch {
	case errors.Is(err, separation.ErrTimeout), errors.Is(err, separation.ErrRoundBudget):
		log.WithError(err).Warn("min-sum stage stopped early, keeping the bottleneck structure")
		return nil
	case err != nil:
		return errors.Wrapf(err, "search: min-sum at rank %d", res.Rank)
	}

	var next Result
	next.setEdges(inst, sol.Edges)
	proven := ctx.Err() == nil
	log.WithFields(logrus.Fields{
		"before": res.Length,
		"length": next.Length,
		"proven": proven,
	}).Info("min-sum stage done")
	if proven || next.Length < res.Length {
		res.setEdges(inst, sol.Edges)
		res.MinSum = proven
	}

	return nil
}

// SolvePoints is Solve over a fresh instance of pts.
func SolvePoints(ctx context.Context, pts []geometry.Point, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	var gopts []geometry.Option
	if cfg.AllowCoincident {
		gopts = append(gopts, geometry.WithCoincidentPoints())
	}
	inst, err := geometry.NewInstance(pts, gopts...)
	if err != nil {
		return nil, errors.Wrap(err, "search: building instance")
	}

	return Solve(ctx, inst, opts...)
}
