package main

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle/backend"
	"github.com/katalvlaran/bottleneck/search"
)

// searchFlags are shared by solve and bench.
type searchFlags struct {
	strategy  string
	backend   string
	variant   string
	encoding  string
	degree    int
	edgeLimit int
	root      int
	coincide  bool
	noWarm    bool
	noMST     bool
	timeLimit time.Duration
	maxRounds int
	minSum    bool
}

func (f *searchFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.strategy, "strategy", "s", "binary", "probe order: binary, asc or desc")
	fs.StringVarP(&f.backend, "backend", "b", "cdcl", "SAT backend: cdcl (gini) or pbsat (gophersat)")
	fs.StringVar(&f.variant, "variant", "tree", "tree (degree-bounded spanning tree) or cycle (tour)")
	fs.StringVar(&f.encoding, "encoding", "depth", "connectivity encoding: depth or lazy")
	fs.IntVarP(&f.degree, "degree", "d", 2, "maximum tree degree, at least 2")
	fs.IntVar(&f.edgeLimit, "edge-limit", 0, "keep only the k cheapest edges; 0 keeps all")
	fs.IntVar(&f.root, "root", 0, "root node of the depth encoding")
	fs.BoolVar(&f.coincide, "allow-coincident", false, "accept coincident points")
	fs.BoolVar(&f.noWarm, "no-warm-start", false, "skip the greedy tree / 2-opt tour upper bound")
	fs.BoolVar(&f.noMST, "no-mst-bound", false, "skip the MST lower bound")
	fs.DurationVarP(&f.timeLimit, "time-limit", "t", 0, "time limit of one search; 0 disables it")
	fs.IntVar(&f.maxRounds, "max-rounds", 0, "separation rounds per threshold; 0 is unbounded")
	fs.BoolVar(&f.minSum, "min-sum", false, "then minimise total length under the optimal bottleneck")
}

// options parses the string flags into search options.
func (f *searchFlags) options() ([]search.Option, error) {
	strategy, err := search.ParseStrategy(f.strategy)
	if err != nil {
		return nil, err
	}
	kind, err := backend.ParseKind(f.backend)
	if err != nil {
		return nil, err
	}
	variant, err := model.ParseVariant(f.variant)
	if err != nil {
		return nil, err
	}
	enc, err := model.ParseEncoding(f.encoding)
	if err != nil {
		return nil, err
	}

	opts := []search.Option{
		search.WithStrategy(strategy),
		search.WithBackend(kind),
		search.WithVariant(variant),
		search.WithEncoding(enc),
		search.WithDegree(f.degree),
		search.WithEdgeLimit(f.edgeLimit),
		search.WithRoot(f.root),
		search.WithWarmStart(!f.noWarm),
		search.WithMSTBound(!f.noMST),
		search.WithTimeLimit(f.timeLimit),
		search.WithMaxRounds(f.maxRounds),
		search.WithMinSum(f.minSum),
	}
	if f.coincide {
		opts = append(opts, search.WithCoincidentPoints())
	}

	return opts, nil
}
