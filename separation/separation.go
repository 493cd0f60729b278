// Package separation turns oracle candidates into connected solutions by adding
// component-separation cuts.
//
// Resolve runs a two-state loop. In Checking it decides the threshold, decodes the
// candidate and computes its connected components over all nodes. One component means
// Done. Otherwise every component gets a clause requiring at least one selected edge
// with exactly one endpoint inside it, and the same threshold is decided again. Cuts are
// kept by the oracle for the rest of the session, so later probes start from them.
package separation

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/bottleneck/kruskal"
	"github.com/katalvlaran/bottleneck/metrics"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
)

var (
	// ErrInfeasible means no connected solution exists at the threshold.
	ErrInfeasible = errors.New("separation: infeasible at threshold")
	// ErrTimeout means the oracle ran out of time.
	ErrTimeout = errors.New("separation: oracle timed out")
	// ErrUnexpectedStatus means the oracle returned neither a solution nor a proof of infeasibility.
	ErrUnexpectedStatus = errors.New("separation: unexpected oracle status")
	// ErrRoundBudget means the configured number of rounds ran out.
	ErrRoundBudget = errors.New("separation: round budget exhausted")
)

// State is the loop state.
type State uint8

const (
	// Checking means the last candidate was disconnected, or no round ran yet.
	Checking State = iota
	// Done means the last candidate spanned all nodes.
	Done
)

// String returns "checking" or "done".
func (s State) String() string {
	if s == Done {
		return "done"
	}

	return "checking"
}

// Stats accumulates over every Resolve of one Loop.
type Stats struct {
	Rounds      int
	Cuts        int
	OracleCalls int
}

// Loop drives one oracle. It is not safe for concurrent use.
type Loop struct {
	o   oracle.Oracle
	m   *model.Model
	log logrus.FieldLogger
	rec metrics.Recorder

	maxRounds int
	state     State
	seen      map[string]struct{}
	stats     Stats
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the logger; the default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Loop) { l.log = log }
}

// WithRecorder reports added cuts.
func WithRecorder(r metrics.Recorder) Option {
	return func(l *Loop) { l.rec = r }
}

// WithMaxRounds bounds the rounds of a single Resolve; 0 means unbounded.
func WithMaxRounds(n int) Option {
	return func(l *Loop) { l.maxRounds = n }
}

// New returns a loop over o, which must have been opened for m.
func New(o oracle.Oracle, m *model.Model, opts ...Option) *Loop {
	l := &Loop{
		o:     o,
		m:     m,
		log:   logrus.StandardLogger(),
		rec:   metrics.NewNil(),
		state: Checking,
		seen:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// State returns the state after the last round.
func (l *Loop) State() State { return l.state }

// Stats returns the accumulated counters.
func (l *Loop) Stats() Stats { return l.stats }

// Resolve returns a connected solution with bottleneck <= threshold.
//
// Error Conditions:
//   - ErrInfeasible      : the oracle proved infeasibility, in any round.
//   - ErrTimeout         : the oracle reported a timeout.
//   - ErrUnexpectedStatus: any other non-solution status; wraps threshold and round.
//   - ErrRoundBudget     : WithMaxRounds was exceeded.
func (l *Loop) Resolve(ctx context.Context, threshold int) (*model.Solution, error) {
	n := l.m.NumNodes()
	l.state = Checking
	for round := 1; ; round++ {
		if l.maxRounds > 0 && round > l.maxRounds {
			return nil, errors.Wrapf(ErrRoundBudget, "threshold %d after %d rounds", threshold, l.maxRounds)
		}

		l.stats.Rounds++
		l.stats.OracleCalls++
		st, a, err := l.o.Decide(ctx, threshold)
		if err != nil {
			return nil, errors.Wrapf(err, "deciding threshold %d (round %d)", threshold, round)
		}
		switch {
		case st.Solved():
		case st == oracle.Infeasible:
			return nil, ErrInfeasible
		case st == oracle.Timeout:
			return nil, ErrTimeout
		default:
			return nil, errors.Wrapf(ErrUnexpectedStatus, "status %s at threshold %d (round %d)", st, threshold, round)
		}

		sol := l.m.Decode(a)
		comps := kruskal.Components(n, sol.Edges)
		if len(comps) == 1 {
			l.state = Done
			return sol, nil
		}

		added, err := l.cut(comps)
		if err != nil {
			return nil, errors.Wrapf(err, "adding cuts at threshold %d (round %d)", threshold, round)
		}
		// Every cut of this candidate was sent before, so the oracle ignored them.
		if added == 0 {
			return nil, errors.Errorf("separation: candidate at threshold %d violates earlier cuts (round %d)", threshold, round)
		}
		l.stats.Cuts += added
		l.rec.ObserveCuts(added)
		l.log.WithFields(logrus.Fields{
			"threshold":  threshold,
			"round":      round,
			"components": len(comps),
			"cuts":       added,
		}).Debug("candidate disconnected, added separation cuts")
	}
}

// cut adds one crossing clause per component, skipping clauses already sent.
func (l *Loop) cut(comps [][]int) (int, error) {
	n := l.m.NumNodes()
	added := 0
	inside := make([]bool, n)
	for _, comp := range comps {
		for i := range inside {
			inside[i] = false
		}
		for _, v := range comp {
			inside[v] = true
		}
		lits := l.m.Crossing(inside)
		key := cutKey(lits)
		if _, dup := l.seen[key]; dup {
			continue
		}
		l.seen[key] = struct{}{}
		if err := l.o.AddClause(lits); err != nil {
			return added, err
		}
		added++
	}

	return added, nil
}

func cutKey(lits []model.Lit) string {
	var b strings.Builder
	for _, x := range lits {
		b.WriteString(strconv.Itoa(int(x)))
		b.WriteByte(',')
	}

	return b.String()
}
