package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/katalvlaran/bottleneck/metrics"
	"github.com/katalvlaran/bottleneck/model"
)

// ErrClosed is returned by calls on a closed oracle.
var ErrClosed = errors.New("oracle: closed")

// Status is the outcome of one Decide call.
type Status uint8

const (
	// Unknown means the solver gave up without an answer.
	Unknown Status = iota
	// Optimal means a solution with a proven optimal objective.
	Optimal
	// Feasible means a solution, optimality not proven.
	Feasible
	// Infeasible means the solver proved there is no solution.
	Infeasible
	// Timeout means the context ended before an answer.
	Timeout
	// Error means the solver failed.
	Error
)

// String returns the lower-case status name used in logs and metric labels.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Feasible:
		return "feasible"
	case Infeasible:
		return "infeasible"
	case Timeout:
		return "timeout"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Solved reports whether s carries an assignment.
func (s Status) Solved() bool { return s == Optimal || s == Feasible }

// Oracle decides threshold probes over one model.
type Oracle interface {
	// Decide assumes bottleneck <= threshold and calls the solver once. The assignment
	// is non-nil only when the status is Solved.
	Decide(ctx context.Context, threshold int) (Status, model.Assignment, error)
	// AddClause adds a lazy constraint over model literals for the oracle's lifetime.
	AddClause(lits []model.Lit) error
	// Close releases the solver session. Further calls fail with ErrClosed.
	Close() error
}

// instrumented reports every Decide to a metrics.Recorder.
type instrumented struct {
	Oracle
	backend string
	rec     metrics.Recorder
}

// Instrument wraps o so that each Decide records its latency and status under backend.
func Instrument(o Oracle, backend string, rec metrics.Recorder) Oracle {
	if rec == nil {
		return o
	}

	return &instrumented{Oracle: o, backend: backend, rec: rec}
}

func (o *instrumented) Decide(ctx context.Context, threshold int) (Status, model.Assignment, error) {
	start := time.Now()
	st, a, err := o.Oracle.Decide(ctx, threshold)
	o.rec.ObserveOracle(o.backend, st.String(), time.Since(start))

	return st, a, err
}
