package model

import "github.com/katalvlaran/bottleneck/geometry"

// Solution is one decoded candidate: the selected edges, plus their orientation and the
// node depths in the depth encoding.
type Solution struct {
	// Edges are the selected undirected edges in arc order.
	Edges []geometry.Edge
	// Arcs keep the orientation of each selected edge.
	Arcs []Arc
	// Depths holds depth(v) for the depth encoding and is nil otherwise.
	Depths []int
	// Bound is the value of the bottleneck variable, which may exceed MaxRank.
	Bound int
}

// MaxRank returns the largest rank among the selected edges, or -1 if none.
func (s *Solution) MaxRank() int {
	m := -1
	for _, e := range s.Edges {
		if e.Rank > m {
			m = e.Rank
		}
	}

	return m
}

// Bottleneck returns the largest squared cost among the selected edges, or 0 if none.
func (s *Solution) Bottleneck() int64 {
	var c int64
	for _, e := range s.Edges {
		if e.Cost > c {
			c = e.Cost
		}
	}

	return c
}

// Degrees returns the undirected degree of every node 0..n-1.
func (s *Solution) Degrees(n int) []int {
	deg := make([]int, n)
	for _, e := range s.Edges {
		deg[e.I]++
		deg[e.J]++
	}

	return deg
}

// FromEdges wraps an externally built edge set, such as a warm start, as a Solution.
func FromEdges(edges []geometry.Edge) *Solution {
	s := &Solution{Edges: append([]geometry.Edge(nil), edges...)}
	s.Bound = s.MaxRank()

	return s
}
