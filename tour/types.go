package tour

import (
	"errors"
	"time"
)

// ErrTooFewNodes indicates an instance with fewer than three points; no simple cycle exists.
var ErrTooFewNodes = errors.New("tour: a cycle needs at least three nodes")

// ErrStartOutOfRange indicates a start node outside 0..n-1.
var ErrStartOutOfRange = errors.New("tour: start node out of range")

// ErrInvalidTour indicates a sequence that is not a closed Hamiltonian cycle.
var ErrInvalidTour = errors.New("tour: not a closed Hamiltonian cycle")

// Key is the lexicographic quality of a tour. Lower is better.
type Key struct {
	// Bottleneck is the largest edge rank on the tour.
	Bottleneck int
	// Total is the sum of squared edge costs.
	Total int64
}

// Less reports whether k is strictly better than o.
func (k Key) Less(o Key) bool {
	if k.Bottleneck != o.Bottleneck {
		return k.Bottleneck < o.Bottleneck
	}

	return k.Total < o.Total
}

// Options configures TwoOpt and Best.
type Options struct {
	// MaxIters caps accepted 2-opt moves; 0 means run to a local optimum.
	MaxIters int
	// TimeLimit is a soft budget checked between scans; 0 disables it.
	TimeLimit time.Duration
	// Starts is the number of start nodes Best tries (0..Starts-1); 0 means every node.
	Starts int
}

// Option mutates Options.
type Option func(*Options)

// WithMaxIters caps the number of accepted 2-opt moves.
func WithMaxIters(k int) Option {
	return func(o *Options) { o.MaxIters = k }
}

// WithTimeLimit sets a soft wall-clock budget.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithStarts limits the number of starting nodes tried by Best.
func WithStarts(k int) Option {
	return func(o *Options) { o.Starts = k }
}

// DefaultOptions runs to a local optimum with no time budget, trying up to 8 starts.
func DefaultOptions() Options {
	return Options{MaxIters: 0, TimeLimit: 0, Starts: 8}
}
