package kruskal

import "github.com/katalvlaran/bottleneck/geometry"

// MST computes the minimum spanning tree of the complete geometric graph of inst.
// The result is ordered by selection; its last edge (Kruskal) or its max-rank edge (Prim)
// is the bottleneck lower bound.
//
// Error Conditions:
//   - ErrUnknownMethod: opts select neither MethodKruskal nor MethodPrim.
//
// Complexity: O(n² α(n)) for Kruskal on pre-sorted edges, O(n²) for Prim.
func MST(inst *geometry.Instance, opts ...Option) ([]geometry.Edge, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch cfg.Method {
	case MethodKruskal:
		return kruskalMST(inst), nil
	case MethodPrim:
		return primMST(inst), nil
	default:
		return nil, ErrUnknownMethod
	}
}

// kruskalMST scans the sorted candidate list and keeps every edge joining two sets.
// The complete graph is always connected, so it never fails.
func kruskalMST(inst *geometry.Instance) []geometry.Edge {
	n := inst.Len()
	dsu := NewDSU(n)
	mst := make([]geometry.Edge, 0, n-1)
	for _, e := range inst.SortedEdges() {
		if dsu.Union(e.I, e.J) {
			mst = append(mst, e)
			if len(mst) == n-1 {
				break
			}
		}
	}

	return mst
}

// primMST grows a tree from node 0 keeping, for every outside node, the cheapest
// connection into the tree. Ties between connections resolve to the lower rank.
func primMST(inst *geometry.Instance) []geometry.Edge {
	n := inst.Len()
	edges := inst.SortedEdges()
	inTree := make([]bool, n)
	best := make([]int, n) // rank of the cheapest edge into the tree, -1 if none yet
	for i := range best {
		best[i] = -1
	}

	mst := make([]geometry.Edge, 0, n-1)
	u := 0
	var v, r, next int
	for step := 0; step < n-1; step++ {
		inTree[u] = true
		// Relax connections through u.
		for v = 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			r, _ = inst.RankOf(u, v)
			if best[v] < 0 || r < best[v] {
				best[v] = r
			}
		}
		// Pick the outside node with the lowest-rank connection.
		next = -1
		for v = 0; v < n; v++ {
			if !inTree[v] && (next < 0 || best[v] < best[next]) {
				next = v
			}
		}
		mst = append(mst, edges[best[next]])
		u = next
	}

	return mst
}

// Greedy builds a spanning tree with Kruskal while refusing any edge whose endpoint
// already has degree d. It stops at n-1 edges.
//
// Error Conditions:
//   - ErrDegreeTooSmall: d < 2.
//   - ErrDisconnected  : the cap blocked every remaining merge.
//
// Complexity: O(n² α(n)).
func Greedy(inst *geometry.Instance, d int) ([]geometry.Edge, error) {
	if d < 2 {
		return nil, ErrDegreeTooSmall
	}

	n := inst.Len()
	dsu := NewDSU(n)
	deg := make([]int, n)
	tree := make([]geometry.Edge, 0, n-1)
	for _, e := range inst.SortedEdges() {
		if deg[e.I] >= d || deg[e.J] >= d {
			continue
		}
		if !dsu.Union(e.I, e.J) {
			continue
		}
		deg[e.I]++
		deg[e.J]++
		tree = append(tree, e)
		if len(tree) == n-1 {
			return tree, nil
		}
	}

	return nil, ErrDisconnected
}

// Components returns the connected components of the graph (0..n-1, edges).
// Each component is sorted ascending and components are ordered by their smallest node,
// so isolated nodes appear as singletons.
func Components(n int, edges []geometry.Edge) [][]int {
	dsu := NewDSU(n)
	for _, e := range edges {
		dsu.Union(e.I, e.J)
	}

	index := make(map[int]int, dsu.Sets())
	comps := make([][]int, 0, dsu.Sets())
	for v := 0; v < n; v++ {
		root := dsu.Find(v)
		k, ok := index[root]
		if !ok {
			k = len(comps)
			index[root] = k
			comps = append(comps, nil)
		}
		comps[k] = append(comps[k], v)
	}
	return comps
}

// PrefixConnected reports whether edges connect all n nodes.
func PrefixConnected(n int, edges []geometry.Edge) bool {
	if n <= 1 {
		return true
	}
	dsu := NewDSU(n)
	for _, e := range edges {
		if dsu.Union(e.I, e.J) && dsu.Sets() == 1 {
			return true
		}
	}

	return dsu.Sets() == 1
}

// MaxRank returns the largest rank in edges, or -1 for an empty set.
func MaxRank(edges []geometry.Edge) int {
	m := -1
	for _, e := range edges {
		if e.Rank > m {
			m = e.Rank
		}
	}

	return m
}
