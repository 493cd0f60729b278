// Package backend selects and opens a feasibility oracle implementation.
package backend

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/katalvlaran/bottleneck/metrics"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
	"github.com/katalvlaran/bottleneck/oracle/cdcl"
	"github.com/katalvlaran/bottleneck/oracle/pbsat"
)

// ErrUnknownKind indicates a backend name or value that is not registered.
var ErrUnknownKind = errors.New("backend: unknown oracle kind")

// Kind names an oracle implementation.
type Kind uint8

const (
	// CDCL is the gini clause-learning solver with sorting-network cardinalities.
	CDCL Kind = iota
	// PBSAT is the gophersat solver with native cardinality constraints.
	PBSAT
)

// String returns the flag form of k.
func (k Kind) String() string {
	switch k {
	case CDCL:
		return "cdcl"
	case PBSAT:
		return "pbsat"
	default:
		return "unknown"
	}
}

// Kinds lists every available backend.
func Kinds() []Kind { return []Kind{CDCL, PBSAT} }

// ParseKind maps "cdcl"/"gini" and "pbsat"/"gophersat" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "cdcl", "gini":
		return CDCL, nil
	case "pbsat", "gophersat":
		return PBSAT, nil
	default:
		return 0, errors.Wrapf(ErrUnknownKind, "%q", s)
	}
}

// Options configures Open.
type Options struct {
	// Recorder receives per-call latency; nil disables instrumentation.
	Recorder metrics.Recorder
	// Poll is the cancellation polling interval of backends that support it.
	Poll time.Duration
}

// Option mutates Options.
type Option func(*Options)

// WithRecorder instruments the oracle.
func WithRecorder(r metrics.Recorder) Option {
	return func(o *Options) { o.Recorder = r }
}

// WithPoll sets the cancellation polling interval.
func WithPoll(d time.Duration) Option {
	return func(o *Options) { o.Poll = d }
}

// Open lowers m once and loads it into a new session of the selected backend.
// The caller owns the returned oracle and must Close it.
func Open(kind Kind, m *model.Model, opts ...Option) (oracle.Oracle, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := oracle.Lower(m)
	if err != nil {
		return nil, err
	}

	var o oracle.Oracle
	switch kind {
	case CDCL:
		var copts []cdcl.Option
		if cfg.Poll > 0 {
			copts = append(copts, cdcl.WithPoll(cfg.Poll))
		}
		o, err = cdcl.New(f, copts...)
	case PBSAT:
		o, err = pbsat.New(f)
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "kind %d", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s oracle", kind)
	}

	return oracle.Instrument(o, kind.String(), cfg.Recorder), nil
}

// OpenMinSum lowers m into a gophersat session whose Decide minimises the total
// Euclidean length of the selected arcs instead of returning any feasible assignment.
// The caller owns the returned oracle and must Close it.
func OpenMinSum(m *model.Model, opts ...Option) (oracle.Oracle, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := oracle.Lower(m)
	if err != nil {
		return nil, err
	}
	costs := make([]pbsat.Cost, 0, len(m.Arcs()))
	for _, arc := range m.Arcs() {
		costs = append(costs, pbsat.Cost{Lit: f.Lit(arc.Var.Lit()), Cost: arc.Edge.Cost})
	}
	o, err := pbsat.NewMinSum(f, costs)
	if err != nil {
		return nil, errors.Wrap(err, "opening pbsat-minsum oracle")
	}

	return oracle.Instrument(o, "pbsat-minsum", cfg.Recorder), nil
}
