package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bottleneck/geometry"
)

// unitSquare returns the four corners of the unit square.
func unitSquare() []geometry.Point {
	return []geometry.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}}
}

func TestNewInstance_RejectsInvalidInput(t *testing.T) {
	_, err := geometry.NewInstance(nil)
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)

	_, err = geometry.NewInstance([]geometry.Point{{X: 3, Y: 4}})
	assert.ErrorIs(t, err, geometry.ErrTooFewPoints)

	_, err = geometry.NewInstance([]geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, geometry.ErrDuplicatePoint)
}

func TestNewInstance_CoincidentPointsOptIn(t *testing.T) {
	pts := make([]geometry.Point, 5)
	for i := range pts {
		pts[i] = geometry.Point{X: 7, Y: 7}
	}
	inst, err := geometry.NewInstance(pts, geometry.WithCoincidentPoints())
	require.NoError(t, err)
	assert.Equal(t, 10, inst.NumEdges())
	assert.Zero(t, inst.MinDistance())
	assert.Zero(t, inst.MaxDistance())
}

func TestDistance_SymmetricSquared(t *testing.T) {
	inst, err := geometry.NewInstance([]geometry.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: -1, Y: 2}})
	require.NoError(t, err)

	d01, err := inst.Distance(0, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 25, d01)

	for i := 0; i < inst.Len(); i++ {
		for j := 0; j < inst.Len(); j++ {
			a, errA := inst.Distance(i, j)
			b, errB := inst.Distance(j, i)
			require.NoError(t, errA)
			require.NoError(t, errB)
			assert.Equal(t, a, b, "distance(%d,%d)", i, j)
		}
	}

	_, err = inst.Distance(0, 3)
	assert.ErrorIs(t, err, geometry.ErrIndexOutOfRange)
	_, err = inst.Distance(-1, 0)
	assert.ErrorIs(t, err, geometry.ErrIndexOutOfRange)
}

func TestSortedEdges_AscendingAndStable(t *testing.T) {
	inst, err := geometry.NewInstance(unitSquare())
	require.NoError(t, err)

	edges := inst.SortedEdges()
	require.Len(t, edges, 6)
	for r, e := range edges {
		assert.Equal(t, r, e.Rank)
		assert.Less(t, e.I, e.J)
		if r > 0 {
			assert.LessOrEqual(t, edges[r-1].Cost, e.Cost)
		}
	}

	// Unit sides first, in lexicographic generation order, then the two diagonals.
	want := [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {0, 3}, {1, 2}}
	for r, w := range want {
		assert.Equal(t, w, [2]int{edges[r].I, edges[r].J}, "rank %d", r)
	}
	assert.EqualValues(t, 1, inst.MinDistance())
	assert.EqualValues(t, 2, inst.MaxDistance())

	again, err := geometry.NewInstance(unitSquare())
	require.NoError(t, err)
	assert.Equal(t, edges, again.SortedEdges())
}

func TestRankOf_MatchesEdgeAt(t *testing.T) {
	inst, err := geometry.NewInstance(unitSquare())
	require.NoError(t, err)

	for _, e := range inst.SortedEdges() {
		r1, err := inst.RankOf(e.I, e.J)
		require.NoError(t, err)
		r2, err := inst.RankOf(e.J, e.I)
		require.NoError(t, err)
		assert.Equal(t, e.Rank, r1)
		assert.Equal(t, e.Rank, r2)

		got, err := inst.EdgeAt(e.Rank)
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err = inst.RankOf(1, 1)
	assert.ErrorIs(t, err, geometry.ErrIndexOutOfRange)
	_, err = inst.EdgeAt(6)
	assert.ErrorIs(t, err, geometry.ErrIndexOutOfRange)
}

func TestEdgeOtherAndSegment(t *testing.T) {
	inst, err := geometry.NewInstance(unitSquare())
	require.NoError(t, err)

	e, err := inst.EdgeAt(0)
	require.NoError(t, err)
	assert.Equal(t, e.J, e.Other(e.I))
	assert.Equal(t, e.I, e.Other(e.J))
	assert.Equal(t, -1, e.Other(3))
	assert.Equal(t, geometry.Segment{{X: 0, Y: 0}, {X: 0, Y: 1}}, inst.Segment(e))
}

func TestRandomPoints_DistinctAndDeterministic(t *testing.T) {
	a, err := geometry.RandomPoints(50, 100, 100, 42)
	require.NoError(t, err)
	b, err := geometry.RandomPoints(50, 100, 100, 42)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	seen := make(map[geometry.Point]bool, len(a))
	for _, p := range a {
		assert.False(t, seen[p], "duplicate %v", p)
		seen[p] = true
		assert.True(t, p.X >= 0 && p.X <= 100 && p.Y >= 0 && p.Y <= 100)
	}

	// A 2x2 grid holds exactly four distinct points.
	full, err := geometry.RandomPoints(4, 1, 1, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, unitSquare(), full)

	_, err = geometry.RandomPoints(5, 1, 1, 0)
	assert.ErrorIs(t, err, geometry.ErrBadRectangle)
}

func TestNewInstance_CoordinateRange(t *testing.T) {
	// Without the bound, (4e9)² + 0 wraps negative and the longest edge sorts first.
	_, err := geometry.NewInstance([]geometry.Point{{X: 0, Y: 0}, {X: 4_000_000_000, Y: 0}, {X: 1, Y: 0}})
	assert.ErrorIs(t, err, geometry.ErrCoordinateRange)

	_, err = geometry.NewInstance([]geometry.Point{{X: 0, Y: 0}, {X: 0, Y: -geometry.MaxCoordinate - 1}})
	assert.ErrorIs(t, err, geometry.ErrCoordinateRange)

	m := geometry.MaxCoordinate
	inst, err := geometry.NewInstance([]geometry.Point{{X: -m, Y: -m}, {X: m, Y: m}, {X: 0, Y: 1}, {X: 0, Y: 0}})
	require.NoError(t, err)
	for _, e := range inst.SortedEdges() {
		assert.Positive(t, e.Cost, "edge %d-%d", e.I, e.J)
	}
	last, err := inst.EdgeAt(inst.NumEdges() - 1)
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 1}, [2]int{last.I, last.J})
	assert.Equal(t, 2*(2*m)*(2*m), last.Cost)
	first, err := inst.EdgeAt(0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Cost)

	_, err = geometry.RandomPoints(3, geometry.MaxCoordinate+1, 10, 1)
	assert.ErrorIs(t, err, geometry.ErrCoordinateRange)
}
