package geometry

import "sort"

// Instance holds the points, the pairwise cost function and the sorted candidate edges.
// An Instance is immutable after NewInstance and safe for concurrent reads.
type Instance struct {
	points []Point
	edges  []Edge // ascending by Cost, stable over (I, J) generation order
	rank   []int  // rank[i*n+j] for i != j; -1 on the diagonal
	minD   int64
	maxD   int64
}

// NewInstance validates points and precomputes all pairwise costs and the sorted edge list.
//
// Contracts:
//   - len(points) >= 2, otherwise ErrTooFewPoints.
//   - points are pairwise distinct unless WithCoincidentPoints is given (ErrDuplicatePoint).
//   - every coordinate lies in [-MaxCoordinate, MaxCoordinate] (ErrCoordinateRange).
//
// Complexity: O(n² log n) time for the sort, O(n²) space.
func NewInstance(points []Point, opts ...Option) (*Instance, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(points)
	if n < 2 {
		return nil, ErrTooFewPoints
	}
	for _, p := range points {
		if !p.InRange() {
			return nil, ErrCoordinateRange
		}
	}
	if !cfg.AllowCoincident {
		seen := make(map[Point]struct{}, n)
		for _, p := range points {
			if _, dup := seen[p]; dup {
				return nil, ErrDuplicatePoint
			}
			seen[p] = struct{}{}
		}
	}

	inst := &Instance{
		points: append([]Point(nil), points...),
		edges:  make([]Edge, 0, n*(n-1)/2),
		rank:   make([]int, n*n),
	}

	// Generate pairs in lexicographic (i, j) order; the stable sort below keeps that
	// order among equal costs.
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			inst.edges = append(inst.edges, Edge{I: i, J: j, Cost: SquaredDistance(points[i], points[j])})
		}
	}
	sort.SliceStable(inst.edges, func(a, b int) bool {
		return inst.edges[a].Cost < inst.edges[b].Cost
	})

	for i = range inst.rank {
		inst.rank[i] = -1
	}
	for r := range inst.edges {
		e := &inst.edges[r]
		e.Rank = r
		inst.rank[e.I*n+e.J] = r
		inst.rank[e.J*n+e.I] = r
	}
	inst.minD = inst.edges[0].Cost
	inst.maxD = inst.edges[len(inst.edges)-1].Cost

	return inst, nil
}

// Len returns the number of points n.
func (in *Instance) Len() int { return len(in.points) }

// Points returns a copy of the instance points.
func (in *Instance) Points() []Point {
	return append([]Point(nil), in.points...)
}

// Point returns the point with index i.
func (in *Instance) Point(i int) (Point, error) {
	if i < 0 || i >= len(in.points) {
		return Point{}, ErrIndexOutOfRange
	}

	return in.points[i], nil
}

// Distance returns the squared Euclidean distance between points i and j.
// Distance(i, j) == Distance(j, i); Distance(i, i) is 0 and never used as a candidate.
func (in *Instance) Distance(i, j int) (int64, error) {
	n := len(in.points)
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, ErrIndexOutOfRange
	}

	return SquaredDistance(in.points[i], in.points[j]), nil
}

// SortedEdges returns the candidate edges ascending by cost. The slice is shared;
// callers must not modify it.
func (in *Instance) SortedEdges() []Edge { return in.edges }

// NumEdges returns n(n-1)/2.
func (in *Instance) NumEdges() int { return len(in.edges) }

// EdgeAt returns the edge with the given rank.
func (in *Instance) EdgeAt(rank int) (Edge, error) {
	if rank < 0 || rank >= len(in.edges) {
		return Edge{}, ErrIndexOutOfRange
	}

	return in.edges[rank], nil
}

// CostAt returns the cost of the edge with the given rank.
func (in *Instance) CostAt(rank int) (int64, error) {
	e, err := in.EdgeAt(rank)
	if err != nil {
		return 0, err
	}

	return e.Cost, nil
}

// RankOf returns the rank of the unordered pair {i, j}.
func (in *Instance) RankOf(i, j int) (int, error) {
	n := len(in.points)
	if i < 0 || i >= n || j < 0 || j >= n || i == j {
		return -1, ErrIndexOutOfRange
	}

	return in.rank[i*n+j], nil
}

// MinDistance returns the smallest pairwise cost.
func (in *Instance) MinDistance() int64 { return in.minD }

// MaxDistance returns the largest pairwise cost. It bounds auxiliary cost variables.
func (in *Instance) MaxDistance() int64 { return in.maxD }

// Segment returns the coordinate endpoints of e.
func (in *Instance) Segment(e Edge) Segment {
	return Segment{in.points[e.I], in.points[e.J]}
}
