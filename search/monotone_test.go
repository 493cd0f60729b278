package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle/backend"
	"github.com/katalvlaran/bottleneck/search"
	"github.com/katalvlaran/bottleneck/separation"
)

// feasibleAt resolves t on a fresh oracle, so no cut from another threshold is present.
func feasibleAt(t *testing.T, m *model.Model, th int) bool {
	t.Helper()
	o, err := backend.Open(backend.CDCL, m)
	require.NoError(t, err)
	defer o.Close()

	_, err = separation.New(o, m).Resolve(context.Background(), th)
	if err == nil {
		return true
	}
	require.ErrorIs(t, err, separation.ErrInfeasible, "threshold %d", th)

	return false
}

// Feasibility is upward closed in the threshold, and the search returns its first
// feasible threshold.
func TestFeasibility_UpwardClosed(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		pts, err := geometry.RandomPoints(7, 25, 25, seed)
		require.NoError(t, err)
		inst, err := geometry.NewInstance(pts)
		require.NoError(t, err)

		for _, variant := range []model.Variant{model.Tree, model.Cycle} {
			for _, enc := range []model.Encoding{model.Depth, model.Lazy} {
				m, err := model.Build(inst, model.WithVariant(variant), model.WithEncoding(enc))
				require.NoError(t, err)

				first := -1
				for th := 0; th <= m.MaxThreshold(); th++ {
					ok := feasibleAt(t, m, th)
					if first >= 0 {
						assert.True(t, ok, "seed %d %s/%s: infeasible at %d above feasible %d", seed, variant, enc, th, first)
					} else if ok {
						first = th
					}
				}
				require.GreaterOrEqual(t, first, 0, "seed %d %s/%s", seed, variant, enc)

				res, err := search.Solve(context.Background(), inst,
					search.WithVariant(variant),
					search.WithEncoding(enc),
					search.WithLogger(quiet()),
				)
				require.NoError(t, err)
				assert.Equal(t, first, res.Rank, "seed %d %s/%s", seed, variant, enc)
			}
		}
	}
}
