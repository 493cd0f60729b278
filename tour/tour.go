package tour

import "github.com/katalvlaran/bottleneck/geometry"

// ValidateTour enforces the closed-cycle invariants: len(t) == n+1, t[0] == t[n] and
// each node 0..n-1 appears exactly once in t[0..n-1].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(t []int, n int) error {
	if n < 3 || len(t) != n+1 || t[0] != t[n] {
		return ErrInvalidTour
	}

	seen := make([]bool, n)
	var i, v int
	for i = 0; i < n; i++ {
		v = t[i]
		if v < 0 || v >= n || seen[v] {
			return ErrInvalidTour
		}
		seen[v] = true
	}

	return nil
}

// NearestNeighbor builds a closed tour from start by repeatedly moving to the closest
// unvisited node. Ties go to the lower-rank edge, which keeps the result deterministic.
//
// Complexity: O(n²).
func NearestNeighbor(inst *geometry.Instance, start int) ([]int, error) {
	n := inst.Len()
	if n < 3 {
		return nil, ErrTooFewNodes
	}
	if start < 0 || start >= n {
		return nil, ErrStartOutOfRange
	}

	visited := make([]bool, n)
	t := make([]int, 0, n+1)
	cur := start
	visited[cur] = true
	t = append(t, cur)

	var v, r, next, bestRank int
	for len(t) < n {
		next, bestRank = -1, -1
		for v = 0; v < n; v++ {
			if visited[v] {
				continue
			}
			r, _ = inst.RankOf(cur, v)
			if next < 0 || r < bestRank {
				next, bestRank = v, r
			}
		}
		visited[next] = true
		t = append(t, next)
		cur = next
	}
	t = append(t, start)

	return t, nil
}

// Edges converts a closed tour into its n candidate edges, in tour order.
func Edges(inst *geometry.Instance, t []int) ([]geometry.Edge, error) {
	if err := ValidateTour(t, inst.Len()); err != nil {
		return nil, err
	}

	out := make([]geometry.Edge, 0, len(t)-1)
	for p := 0; p+1 < len(t); p++ {
		r, err := inst.RankOf(t[p], t[p+1])
		if err != nil {
			return nil, err
		}
		e, _ := inst.EdgeAt(r)
		out = append(out, e)
	}

	return out, nil
}

// Evaluate returns the key of a closed tour.
func Evaluate(inst *geometry.Instance, t []int) (Key, error) {
	edges, err := Edges(inst, t)
	if err != nil {
		return Key{}, err
	}

	return keyOf(edges), nil
}

func keyOf(edges []geometry.Edge) Key {
	k := Key{Bottleneck: -1}
	for _, e := range edges {
		if e.Rank > k.Bottleneck {
			k.Bottleneck = e.Rank
		}
		k.Total += e.Cost
	}

	return k
}

// reverseInPlace reverses t[i..k].
func reverseInPlace(t []int, i, k int) {
	for i < k {
		t[i], t[k] = t[k], t[i]
		i++
		k--
	}
}
