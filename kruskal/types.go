package kruskal

import "errors"

// ErrDisconnected indicates that an edge set cannot span all nodes.
var ErrDisconnected = errors.New("kruskal: edge set does not span all nodes")

// ErrDegreeTooSmall indicates a degree cap below two.
var ErrDegreeTooSmall = errors.New("kruskal: degree bound must be at least 2")

// ErrUnknownMethod indicates an MST method name that is neither kruskal nor prim.
var ErrUnknownMethod = errors.New("kruskal: unknown MST method")

// MethodKruskal selects Kruskal's algorithm over the pre-sorted candidate edges.
const MethodKruskal = "kruskal"

// MethodPrim selects dense Prim, growing the tree from node 0.
const MethodPrim = "prim"

// Options configures MST.
type Options struct {
	// Method is MethodKruskal or MethodPrim.
	Method string
}

// Option mutates Options.
type Option func(*Options)

// WithMethod selects the MST algorithm.
func WithMethod(m string) Option {
	return func(o *Options) { o.Method = m }
}

// DefaultOptions selects Kruskal.
func DefaultOptions() Options {
	return Options{Method: MethodKruskal}
}

// DSU is a disjoint-set forest over 0..n-1 with path compression and union by rank.
// The zero value is unusable; construct with NewDSU.
type DSU struct {
	parent []int
	rank   []int
	sets   int
}

// NewDSU returns n singleton sets.
func NewDSU(n int) *DSU {
	d := &DSU{parent: make([]int, n), rank: make([]int, n), sets: n}
	for i := range d.parent {
		d.parent[i] = i
	}

	return d
}

// Find returns the representative of u's set.
func (d *DSU) Find(u int) int {
	// Iterative halving keeps recursion depth flat.
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}

	return u
}

// Union merges the sets of u and v and reports whether they were disjoint.
func (d *DSU) Union(u, v int) bool {
	ru, rv := d.Find(u), d.Find(v)
	if ru == rv {
		return false
	}
	// Attach the shallower tree under the deeper one.
	if d.rank[ru] < d.rank[rv] {
		ru, rv = rv, ru
	}
	d.parent[rv] = ru
	if d.rank[ru] == d.rank[rv] {
		d.rank[ru]++
	}
	d.sets--

	return true
}

// Sets returns the current number of disjoint sets.
func (d *DSU) Sets() int { return d.sets }
