package geometry

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// RandomPoints draws n pairwise distinct integer points uniformly from the closed
// rectangle [0, width] × [0, height]. The same seed always yields the same points.
//
// Contracts:
//   - n >= 0, width >= 0, height >= 0.
//   - (width+1)·(height+1) >= n, so that n distinct points exist.
//   - width, height <= MaxCoordinate (ErrCoordinateRange).
//
// Complexity: expected O(n) draws while n is small relative to the rectangle.
func RandomPoints(n int, width, height int64, seed int64) ([]Point, error) {
	if n < 0 || width < 0 || height < 0 {
		return nil, ErrBadRectangle
	}
	if width > MaxCoordinate || height > MaxCoordinate {
		return nil, ErrCoordinateRange
	}
	if (width+1)*(height+1) < int64(n) {
		return nil, ErrBadRectangle
	}

	r := rngFromSeed(seed)
	seen := make(map[Point]struct{}, n)
	out := make([]Point, 0, n)
	for len(out) < n {
		p := Point{X: r.Int63n(width + 1), Y: r.Int63n(height + 1)}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out, nil
}
