// Package geometry is the instance model of the bottleneck search: a finite set of
// integer points in the plane, the squared Euclidean cost between every pair, and the
// sorted candidate edge list that threshold probes index into.
//
// Costs are squared distances so that every comparison stays in exact integer
// arithmetic. The candidate list is sorted ascending by cost with a stable sort over
// the lexicographic (I, J) generation order, which makes every threshold index, and
// therefore every search run, reproducible.
//
// A threshold index t (an edge's Rank) restricts the usable edge set to the t+1
// cheapest edges:
//
//	rank:  0    1    2    3    4    5
//	cost:  1    1    1    1    2    2      (unit square: four sides, two diagonals)
//
// Errors:
//
//	ErrTooFewPoints    - fewer than two points.
//	ErrDuplicatePoint  - two points share a coordinate (unless WithCoincidentPoints).
//	ErrIndexOutOfRange - a point or rank index outside the instance.
//	ErrCoordinateRange - a coordinate beyond MaxCoordinate, where costs could overflow.
package geometry
