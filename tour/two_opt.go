package tour

import (
	"time"

	"github.com/katalvlaran/bottleneck/geometry"
)

// TwoOpt runs deterministic first-improvement 2-opt on a closed tour and returns the
// improved tour with its key. A move reversing t[i..k] replaces the arcs (a,b), (c,d)
// with (a,c), (b,d) where a=t[i-1], b=t[i], c=t[k], d=t[k+1]; it is accepted only when it
// lowers the (bottleneck, total) key.
//
// The input tour is not modified. When the time budget runs out the best tour found so
// far is returned; it is always a valid tour.
//
// Complexity: O(n²) candidate checks per scan, O(n) per accepted move.
func TwoOpt(inst *geometry.Instance, t []int, opts ...Option) ([]int, Key, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := inst.Len()
	if err := ValidateTour(t, n); err != nil {
		return nil, Key{}, err
	}

	cur := append([]int(nil), t...)
	rk := make([]int, n) // rk[p] = rank of arc (cur[p], cur[p+1])
	var key Key
	refresh := func() {
		key = Key{Bottleneck: -1}
		for p := 0; p < n; p++ {
			rk[p], _ = inst.RankOf(cur[p], cur[p+1])
			c, _ := inst.CostAt(rk[p])
			key.Total += c
			if rk[p] > key.Bottleneck {
				key.Bottleneck = rk[p]
			}
		}
	}
	refresh()

	var deadline time.Time
	if cfg.TimeLimit > 0 {
		deadline = time.Now().Add(cfg.TimeLimit)
	}

	accepted := 0
	for {
		top := topPositions(rk)
		improved := false

		var (
			a, b, c, d     int
			i, k           int
			rac, rbd       int
			cab, ccd       int64
			cac, cbd       int64
			kept, newBound int
			cand           Key
		)
		for i = 1; i <= n-2 && !improved; i++ {
			for k = i + 1; k <= n-1; k++ {
				a, b, c, d = cur[i-1], cur[i], cur[k], cur[k+1]
				rac, _ = inst.RankOf(a, c)
				rbd, _ = inst.RankOf(b, d)

				// Largest surviving arc: the first of the top three not removed by the move.
				kept = -1
				for _, p := range top {
					if p >= 0 && p != i-1 && p != k {
						kept = rk[p]
						break
					}
				}
				newBound = max(kept, rac, rbd)
				if newBound > key.Bottleneck {
					continue
				}

				cab, _ = inst.CostAt(rk[i-1])
				ccd, _ = inst.CostAt(rk[k])
				cac, _ = inst.CostAt(rac)
				cbd, _ = inst.CostAt(rbd)
				cand = Key{Bottleneck: newBound, Total: key.Total + cac + cbd - cab - ccd}
				if !cand.Less(key) {
					continue
				}

				reverseInPlace(cur, i, k)
				refresh()
				accepted++
				improved = true
				break
			}
		}

		if !improved {
			break
		}
		if cfg.MaxIters > 0 && accepted >= cfg.MaxIters {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}

	return cur, key, nil
}

// topPositions returns the positions of the three highest ranks in rk, -1 padded.
// Ranks on a tour are distinct because every edge appears once.
func topPositions(rk []int) [3]int {
	top := [3]int{-1, -1, -1}
	for p, r := range rk {
		switch {
		case top[0] < 0 || r > rk[top[0]]:
			top[0], top[1], top[2] = p, top[0], top[1]
		case top[1] < 0 || r > rk[top[1]]:
			top[1], top[2] = p, top[1]
		case top[2] < 0 || r > rk[top[2]]:
			top[2] = p
		}
	}

	return top
}

// Best improves a Christofides tour and NearestNeighbor tours from the first cfg.Starts
// nodes with TwoOpt and returns the tour with the lowest key.
func Best(inst *geometry.Instance, opts ...Option) ([]int, Key, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := inst.Len()
	if n < 3 {
		return nil, Key{}, ErrTooFewNodes
	}
	starts := cfg.Starts
	if starts <= 0 || starts > n {
		starts = n
	}

	seeds := make([][]int, 0, starts+1)
	ct, err := Christofides(inst, 0)
	if err != nil {
		return nil, Key{}, err
	}
	seeds = append(seeds, ct)
	for s := 0; s < starts; s++ {
		nn, err := NearestNeighbor(inst, s)
		if err != nil {
			return nil, Key{}, err
		}
		seeds = append(seeds, nn)
	}

	var (
		best    []int
		bestKey Key
	)
	for _, seed := range seeds {
		t, k, err := TwoOpt(inst, seed, opts...)
		if err != nil {
			return nil, Key{}, err
		}
		if best == nil || k.Less(bestKey) {
			best, bestKey = t, k
		}
	}

	return best, bestKey, nil
}
