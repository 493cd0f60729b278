package search

import (
	"math"
	"time"

	"github.com/katalvlaran/bottleneck/geometry"
)

// Stats describes one search run.
type Stats struct {
	Probes       int `json:"probes"`       // thresholds probed, including prechecked ones
	Disconnected int `json:"disconnected"` // probes rejected by the precheck without an oracle call
	OracleCalls  int `json:"oracleCalls"`
	Rounds       int `json:"rounds"`     // separation rounds over all probes
	Cuts         int `json:"cuts"`       // separation clauses added
	LowerBound   int `json:"lowerBound"` // final lb, the highest threshold proven infeasible
	UpperBound   int `json:"upperBound"` // final ub, the lowest threshold proven feasible
	WarmStart    int `json:"warmStart"`  // max rank of the warm start, -1 if none
}

// Result is the best structure found.
type Result struct {
	Edges    []geometry.Edge
	Segments []geometry.Segment
	// Bottleneck is the largest squared cost in Edges.
	Bottleneck int64
	// Rank is the largest rank in Edges.
	Rank int
	// Total is the sum of the squared costs in Edges.
	Total int64
	// Length is the sum of the Euclidean edge lengths.
	Length float64
	// MinSum reports that Length is minimal among structures with this bottleneck,
	// up to the rounding of lengths to 1/1024.
	MinSum bool
	// Optimal is false when a budget stopped the search early.
	Optimal  bool
	Strategy Strategy
	Elapsed  time.Duration
	Stats    Stats
}

// setEdges replaces the structure and recomputes every value derived from it.
func (r *Result) setEdges(inst *geometry.Instance, edges []geometry.Edge) {
	r.Edges = append(edges[:0:0], edges...)
	r.Segments = make([]geometry.Segment, len(r.Edges))
	r.Bottleneck, r.Rank, r.Total, r.Length = 0, -1, 0, 0
	for i, e := range r.Edges {
		r.Segments[i] = inst.Segment(e)
		r.Total += e.Cost
		r.Length += math.Sqrt(float64(e.Cost))
		if e.Cost > r.Bottleneck {
			r.Bottleneck = e.Cost
		}
		if e.Rank > r.Rank {
			r.Rank = e.Rank
		}
	}
}
