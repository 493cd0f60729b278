package tour

import (
	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/kruskal"
)

// Christofides builds a tour from start with the Christofides pipeline:
//
//  1. Minimum spanning tree of the instance.
//  2. Greedy matching on the odd-degree nodes of the tree.
//  3. Eulerian circuit of the tree plus matching (Hierholzer).
//  4. Shortcut of repeated nodes to a Hamiltonian cycle.
//
// The matching is greedy, so the 1.5 approximation factor of a minimum-weight perfect
// matching is not guaranteed; the tour is always valid.
//
// Complexity: O(n²).
func Christofides(inst *geometry.Instance, start int) ([]int, error) {
	n := inst.Len()
	if n < 3 {
		return nil, ErrTooFewNodes
	}
	if start < 0 || start >= n {
		return nil, ErrStartOutOfRange
	}

	mst, err := kruskal.MST(inst, kruskal.WithMethod(kruskal.MethodPrim))
	if err != nil {
		return nil, err
	}
	adj := make([][]int, n)
	for _, e := range mst {
		adj[e.I] = append(adj[e.I], e.J)
		adj[e.J] = append(adj[e.J], e.I)
	}

	odd := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if len(adj[v])&1 == 1 {
			odd = append(odd, v)
		}
	}
	greedyMatch(inst, odd, adj)

	t := shortcut(eulerCircuit(adj, start), n)
	if err = ValidateTour(t, n); err != nil {
		return nil, err
	}

	return t, nil
}

// greedyMatch pairs each remaining odd node with its nearest remaining partner and
// adds the pair to adj as a parallel edge.
func greedyMatch(inst *geometry.Instance, odd []int, adj [][]int) {
	remaining := append([]int(nil), odd...)
	for len(remaining) > 1 {
		u := remaining[0]
		remaining = remaining[1:]

		best := 0
		bestD, _ := inst.Distance(u, remaining[0])
		for i := 1; i < len(remaining); i++ {
			if d, _ := inst.Distance(u, remaining[i]); d < bestD {
				best, bestD = i, d
			}
		}
		v := remaining[best]
		adj[u] = append(adj[u], v)
		adj[v] = append(adj[v], u)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
}

// eulerCircuit returns a closed walk over every edge of the connected even-degree
// multigraph adj, starting and ending at start.
func eulerCircuit(adj [][]int, start int) []int {
	local := make([][]int, len(adj))
	for u := range adj {
		local[u] = append([]int(nil), adj[u]...)
	}

	var circuit []int
	stack := []int{start}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		if len(local[u]) == 0 {
			circuit = append(circuit, u)
			stack = stack[:len(stack)-1]
			continue
		}
		v := local[u][len(local[u])-1]
		local[u] = local[u][:len(local[u])-1]
		for i, x := range local[v] {
			if x == u {
				local[v] = append(local[v][:i], local[v][i+1:]...)
				break
			}
		}
		stack = append(stack, v)
	}

	return circuit
}

// shortcut keeps the first visit of every node and closes the cycle.
func shortcut(walk []int, n int) []int {
	seen := make([]bool, n)
	t := make([]int, 0, n+1)
	for _, v := range walk {
		if !seen[v] {
			seen[v] = true
			t = append(t, v)
		}
	}

	return append(t, t[0])
}
