package backend_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/metrics"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
	"github.com/katalvlaran/bottleneck/oracle/backend"
	"github.com/katalvlaran/bottleneck/separation"
)

func square(t *testing.T) *geometry.Instance {
	t.Helper()
	inst, err := geometry.NewInstance([]geometry.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}})
	require.NoError(t, err)

	return inst
}

func TestParseKind(t *testing.T) {
	k, err := backend.ParseKind("gini")
	require.NoError(t, err)
	assert.Equal(t, backend.CDCL, k)
	k, err = backend.ParseKind("PBSAT")
	require.NoError(t, err)
	assert.Equal(t, backend.PBSAT, k)
	_, err = backend.ParseKind("cplex")
	assert.ErrorIs(t, err, backend.ErrUnknownKind)
	assert.Len(t, backend.Kinds(), 2)
}

// On the unit square the four sides have ranks 0..3 and the diagonals 4 and 5. A degree-2
// tree (a Hamiltonian path) first exists at threshold 2, a Hamiltonian cycle at 3.
func TestDecide_UnitSquareThresholds(t *testing.T) {
	cases := []struct {
		name     string
		opts     []model.Option
		firstSat int
	}{
		{"depth tree", nil, 2},
		{"depth cycle", []model.Option{model.WithVariant(model.Cycle)}, 3},
	}
	for _, kind := range backend.Kinds() {
		for _, tc := range cases {
			t.Run(kind.String()+"/"+tc.name, func(t *testing.T) {
				m, err := model.Build(square(t), tc.opts...)
				require.NoError(t, err)
				o, err := backend.Open(kind, m)
				require.NoError(t, err)
				defer o.Close()

				// Probe in a non-monotone order: assumptions must not leak between calls.
				for _, th := range []int{5, 0, 4, 1, 3, 2, -1} {
					st, a, err := o.Decide(context.Background(), th)
					require.NoError(t, err)
					if th < tc.firstSat {
						assert.Equal(t, oracle.Infeasible, st, "threshold %d", th)
						assert.Nil(t, a)
						continue
					}
					require.True(t, st.Solved(), "threshold %d: %s", th, st)
					require.NoError(t, m.Check(a))
					sol := m.Decode(a)
					assert.LessOrEqual(t, sol.MaxRank(), th)
					assert.Len(t, sol.Edges, m.Variant().RequiredEdges(4))
				}
			})
		}
	}
}

func TestAddClause_Persists(t *testing.T) {
	for _, kind := range backend.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			m, err := model.Build(square(t), model.WithEncoding(model.Lazy))
			require.NoError(t, err)
			o, err := backend.Open(kind, m)
			require.NoError(t, err)
			defer o.Close()

			st, _, err := o.Decide(context.Background(), 2)
			require.NoError(t, err)
			require.True(t, st.Solved())

			// Forbid the rank-0 side: only two sides are left within rank 2.
			var forbid model.Lit
			for _, a := range m.Arcs() {
				if a.Edge.Rank == 0 {
					forbid = a.Var.Lit().Not()
				}
			}
			require.NoError(t, o.AddClause([]model.Lit{forbid}))

			for i := 0; i < 2; i++ {
				st, _, err = o.Decide(context.Background(), 2)
				require.NoError(t, err)
				assert.Equal(t, oracle.Infeasible, st)
			}
			st, a, err := o.Decide(context.Background(), 3)
			require.NoError(t, err)
			require.True(t, st.Solved())
			assert.False(t, a.Bool(forbid.Var()))

			// An empty cut can never be met.
			require.NoError(t, o.AddClause(nil))
			st, _, err = o.Decide(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, oracle.Infeasible, st)
		})
	}
}

func TestDecide_CancelledContextTimesOut(t *testing.T) {
	for _, kind := range backend.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			m, err := model.Build(square(t))
			require.NoError(t, err)
			o, err := backend.Open(kind, m, backend.WithPoll(time.Millisecond))
			require.NoError(t, err)
			defer o.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			st, a, err := o.Decide(ctx, 5)
			require.NoError(t, err)
			assert.Equal(t, oracle.Timeout, st)
			assert.Nil(t, a)
		})
	}
}

func TestClose_RejectsFurtherCalls(t *testing.T) {
	for _, kind := range backend.Kinds() {
		m, err := model.Build(square(t))
		require.NoError(t, err)
		o, err := backend.Open(kind, m)
		require.NoError(t, err)

		require.NoError(t, o.Close())
		require.NoError(t, o.Close())
		_, _, err = o.Decide(context.Background(), 3)
		assert.ErrorIs(t, err, oracle.ErrClosed, kind.String())
		assert.ErrorIs(t, o.AddClause(nil), oracle.ErrClosed, kind.String())
	}
}

func TestOpen_RecordsLatency(t *testing.T) {
	rec, err := metrics.NewPrometheus(nil)
	require.NoError(t, err)
	m, err := model.Build(square(t))
	require.NoError(t, err)
	o, err := backend.Open(backend.CDCL, m, backend.WithRecorder(rec))
	require.NoError(t, err)
	defer o.Close()

	_, _, err = o.Decide(context.Background(), 1)
	require.NoError(t, err)
	_, _, err = o.Decide(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(rec.Latency()))

	_, err = backend.Open(backend.Kind(9), m)
	assert.ErrorIs(t, err, backend.ErrUnknownKind)
}

func totalCost(sol *model.Solution) int64 {
	var sum int64
	for _, e := range sol.Edges {
		sum += e.Cost
	}

	return sum
}

// Every threshold admits the diagonals, but the shortest degree-2 tree of the unit square
// is a path of three sides.
func TestOpenMinSum_UnitSquare(t *testing.T) {
	for _, enc := range []model.Encoding{model.Depth, model.Lazy} {
		t.Run(enc.String(), func(t *testing.T) {
			m, err := model.Build(square(t), model.WithEncoding(enc))
			require.NoError(t, err)
			o, err := backend.OpenMinSum(m)
			require.NoError(t, err)
			defer o.Close()

			loop := separation.New(o, m)
			sol, err := loop.Resolve(context.Background(), 5)
			require.NoError(t, err)
			assert.Len(t, sol.Edges, 3)
			assert.Equal(t, int64(3), totalCost(sol))
			assert.LessOrEqual(t, sol.MaxRank(), 3)

			_, err = loop.Resolve(context.Background(), 1)
			assert.ErrorIs(t, err, separation.ErrInfeasible)
		})
	}
}

func TestOpenMinSum_StatusAndClose(t *testing.T) {
	m, err := model.Build(square(t))
	require.NoError(t, err)
	o, err := backend.OpenMinSum(m)
	require.NoError(t, err)

	st, a, err := o.Decide(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, oracle.Optimal, st)
	require.NotNil(t, a)
	require.NoError(t, m.Check(a))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, _, err = o.Decide(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, oracle.Timeout, st)

	require.NoError(t, o.Close())
	require.NoError(t, o.Close())
	_, _, err = o.Decide(context.Background(), 5)
	assert.ErrorIs(t, err, oracle.ErrClosed)
}
