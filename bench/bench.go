// Package bench measures how large an instance the search solves within a time limit.
//
// Sweep starts at Start points and grows by Step. Every size runs Repeats random
// instances with different seeds concurrently, each with its own oracle session. The
// sweep stops at the first size where an instance misses the time limit, or at Max.
package bench

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/search"
)

// ErrBadConfig indicates a sweep that cannot make progress.
var ErrBadConfig = errors.New("bench: invalid sweep configuration")

// Config describes one sweep.
type Config struct {
	Start, Step, Max int
	// Repeats is the number of seeds per size.
	Repeats int
	// Parallel bounds concurrent solves; 0 means Repeats.
	Parallel int
	// Width and Height bound the random coordinates.
	Width, Height int64
	// Seed of the first instance; the i-th repeat uses Seed+i.
	Seed int64
	// TimeLimit per instance.
	TimeLimit time.Duration
	// Search options applied to every instance, before the time limit.
	Search []search.Option
	Logger logrus.FieldLogger
}

// DefaultConfig mirrors a short CI-sized sweep.
func DefaultConfig() Config {
	return Config{
		Start:     10,
		Step:      5,
		Max:       60,
		Repeats:   3,
		Width:     1000,
		Height:    1000,
		Seed:      1,
		TimeLimit: 10 * time.Second,
		Logger:    logrus.StandardLogger(),
	}
}

// Row is one solved (or timed out) instance.
type Row struct {
	N          int           `json:"n"`
	Seed       int64         `json:"seed"`
	Elapsed    time.Duration `json:"elapsed"`
	Bottleneck int64         `json:"bottleneck"`
	Rank       int           `json:"rank"`
	Optimal    bool          `json:"optimal"`
	Probes     int           `json:"probes"`
	Cuts       int           `json:"cuts"`
	TimedOut   bool          `json:"timedOut"`
}

// Report aggregates a sweep.
type Report struct {
	Rows []Row `json:"rows"`
	// Largest is the biggest size whose every repeat finished optimally; 0 if none.
	Largest int `json:"largest"`
	// FailedAt is the first size with a miss; 0 if the sweep reached Max.
	FailedAt int `json:"failedAt"`
}

// Sweep runs the configured benchmark. Errors other than timeouts abort it.
func Sweep(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Start < 2 || cfg.Step < 1 || cfg.Max < cfg.Start || cfg.Repeats < 1 {
		return nil, errors.Wrapf(ErrBadConfig, "start=%d step=%d max=%d repeats=%d", cfg.Start, cfg.Step, cfg.Max, cfg.Repeats)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Parallel <= 0 {
		cfg.Parallel = cfg.Repeats
	}

	rep := &Report{}
	for n := cfg.Start; n <= cfg.Max; n += cfg.Step {
		rows, err := runSize(ctx, cfg, n)
		if err != nil {
			return rep, err
		}
		rep.Rows = append(rep.Rows, rows...)

		missed := false
		for _, r := range rows {
			missed = missed || !r.Optimal
		}
		log := cfg.Logger.WithField("n", n)
		if missed {
			rep.FailedAt = n
			log.Info("time limit missed, stopping sweep")
			break
		}
		rep.Largest = n
		log.Info("all repeats solved")
	}

	return rep, nil
}

// runSize solves the repeats of one size concurrently.
func runSize(ctx context.Context, cfg Config, n int) ([]Row, error) {
	rows := make([]Row, cfg.Repeats)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallel)
	for i := 0; i < cfg.Repeats; i++ {
		i := i
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			row, err := solveOne(gctx, cfg, n, seed)
			if err != nil {
				return errors.Wrapf(err, "n=%d seed=%d", n, seed)
			}
			rows[i] = row

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

func solveOne(ctx context.Context, cfg Config, n int, seed int64) (Row, error) {
	row := Row{N: n, Seed: seed}
	pts, err := geometry.RandomPoints(n, cfg.Width, cfg.Height, seed)
	if err != nil {
		return row, err
	}

	opts := append(append([]search.Option(nil), cfg.Search...),
		search.WithTimeLimit(cfg.TimeLimit),
		search.WithLogger(cfg.Logger.WithFields(logrus.Fields{"n": n, "seed": seed})),
	)
	start := time.Now()
	res, err := search.SolvePoints(ctx, pts, opts...)
	row.Elapsed = time.Since(start)
	switch {
	case errors.Is(err, search.ErrTimeout):
		row.TimedOut = true
		return row, nil
	case err != nil:
		return row, err
	}

	row.Bottleneck = res.Bottleneck
	row.Rank = res.Rank
	row.Optimal = res.Optimal
	row.TimedOut = !res.Optimal
	row.Probes = res.Stats.Probes
	row.Cuts = res.Stats.Cuts

	return row, nil
}
