package search

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bottleneck/metrics"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle/backend"
)

// ErrUnknownStrategy indicates a strategy name that cannot be parsed.
var ErrUnknownStrategy = errors.New("search: unknown strategy")

// Strategy selects the order of threshold probes.
type Strategy uint8

const (
	// Binary halves [lb, ub] on every probe.
	Binary Strategy = iota
	// LinearAscending probes lb+1, lb+2, ... and stops at the first feasible threshold.
	LinearAscending
	// LinearDescending probes downward from ub-1 and stops at the first infeasible one.
	LinearDescending
)

// String returns the flag form of s.
func (s Strategy) String() string {
	switch s {
	case Binary:
		return "binary"
	case LinearAscending:
		return "linear-ascending"
	case LinearDescending:
		return "linear-descending"
	default:
		return "unknown"
	}
}

// Strategies lists every strategy.
func Strategies() []Strategy { return []Strategy{Binary, LinearAscending, LinearDescending} }

// ParseStrategy accepts the String forms plus "asc" and "desc".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "binary", "bin":
		return Binary, nil
	case "linear-ascending", "ascending", "asc":
		return LinearAscending, nil
	case "linear-descending", "descending", "desc":
		return LinearDescending, nil
	default:
		return 0, errors.Wrapf(ErrUnknownStrategy, "%q", s)
	}
}

// Options configures Solve and Searcher.
type Options struct {
	Strategy Strategy
	Backend  backend.Kind

	Variant   model.Variant
	Encoding  model.Encoding
	Degree    int
	EdgeLimit int
	Root      int

	// AllowCoincident accepts coincident points in SolvePoints.
	AllowCoincident bool
	// WarmStart seeds ub from the greedy tree or the 2-opt tour.
	WarmStart bool
	// MSTBound raises lb to the MST bottleneck.
	MSTBound bool
	// TimeLimit bounds the whole search; 0 disables it.
	TimeLimit time.Duration
	// MaxRounds bounds separation rounds per probe; 0 disables it.
	MaxRounds int
	// MinSum re-solves over edges up to the optimal bottleneck for the shortest structure.
	MinSum bool

	Logger   logrus.FieldLogger
	Recorder metrics.Recorder
}

// Option mutates Options.
type Option func(*Options)

// WithStrategy selects the probe order.
func WithStrategy(s Strategy) Option {
	return func(o *Options) { o.Strategy = s }
}

// WithBackend selects the SAT backend answering the probes.
func WithBackend(k backend.Kind) Option {
	return func(o *Options) { o.Backend = k }
}

// WithVariant selects a degree-bounded tree or a Hamiltonian cycle.
func WithVariant(v model.Variant) Option {
	return func(o *Options) { o.Variant = v }
}

// WithEncoding selects the depth or the lazy connectivity encoding.
func WithEncoding(e model.Encoding) Option {
	return func(o *Options) { o.Encoding = e }
}

// WithDegree sets the tree degree bound d (d >= 2). Ignored by the cycle variant.
func WithDegree(d int) Option {
	return func(o *Options) { o.Degree = d }
}

// WithEdgeLimit keeps only the k cheapest candidate edges; 0 keeps all.
func WithEdgeLimit(k int) Option {
	return func(o *Options) { o.EdgeLimit = k }
}

// WithRoot sets the root node of the depth encoding.
func WithRoot(r int) Option {
	return func(o *Options) { o.Root = r }
}

// WithCoincidentPoints lets SolvePoints accept coincident points.
func WithCoincidentPoints() Option {
	return func(o *Options) { o.AllowCoincident = true }
}

// WithWarmStart toggles the greedy tree / 2-opt tour upper bound.
func WithWarmStart(on bool) Option {
	return func(o *Options) { o.WarmStart = on }
}

// WithMSTBound toggles raising lb to the MST bottleneck.
func WithMSTBound(on bool) Option {
	return func(o *Options) { o.MSTBound = on }
}

// WithTimeLimit bounds the whole search; 0 disables it.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithMaxRounds bounds separation rounds per probe; 0 disables it.
func WithMaxRounds(n int) Option {
	return func(o *Options) { o.MaxRounds = n }
}

// WithMinSum toggles the second stage: once the bottleneck rank is known, Solve
// minimises the total Euclidean length over edges no costlier than it. Only Solve and
// SolvePoints run the second stage; Searcher.Run ignores it.
func WithMinSum(on bool) Option {
	return func(o *Options) { o.MinSum = on }
}

// WithLogger sets the logger; nil falls back to logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRecorder reports probes, cuts, oracle latency and the best bottleneck.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Options) { o.Recorder = r }
}

// DefaultOptions: binary search on the gini backend, degree-2 tree, depth encoding,
// warm start and MST bound on, no limits.
func DefaultOptions() Options {
	return Options{
		Strategy:  Binary,
		Backend:   backend.CDCL,
		Variant:   model.Tree,
		Encoding:  model.Depth,
		Degree:    2,
		WarmStart: true,
		MSTBound:  true,
		Logger:    logrus.StandardLogger(),
		Recorder:  metrics.NewNil(),
	}
}

func (o Options) modelOptions() []model.Option {
	return []model.Option{
		model.WithVariant(o.Variant),
		model.WithEncoding(o.Encoding),
		model.WithDegree(o.Degree),
		model.WithEdgeLimit(o.EdgeLimit),
		model.WithRoot(o.Root),
	}
}
