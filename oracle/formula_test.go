package oracle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle"
)

type assignment struct {
	b []bool
	i []int
}

func (a assignment) Bool(v model.Var) bool { return a.b[v] }
func (a assignment) Int(v model.Var) int   { return a.i[v] }

// modelFeasible enumerates every assignment of m and reports whether one satisfies all
// constraints with bottleneck <= t.
func modelFeasible(m *model.Model, t int) bool {
	vars := m.Vars()
	a := assignment{b: make([]bool, len(vars)), i: make([]int, len(vars))}
	var rec func(v int) bool
	rec = func(v int) bool {
		if v == len(vars) {
			return a.Int(m.Bottleneck()) <= t && m.Check(a) == nil
		}
		info := vars[v]
		if info.Kind == model.BoolVar {
			for _, x := range []bool{false, true} {
				a.b[v] = x
				if rec(v + 1) {
					return true
				}
			}
			return false
		}
		for x := info.Lo; x <= info.Hi; x++ {
			a.i[v] = x
			if rec(v + 1) {
				return true
			}
		}
		return false
	}

	return rec(0)
}

// formulaModels returns every satisfying assignment of f under the assumptions.
func formulaModels(f *oracle.Formula, assumptions ...int) [][]bool {
	var out [][]bool
	vals := make([]bool, f.NumVars+1)
	for mask := 0; mask < 1<<f.NumVars; mask++ {
		for x := 1; x <= f.NumVars; x++ {
			vals[x] = mask&(1<<(x-1)) != 0
		}
		if f.Satisfies(vals, assumptions...) {
			out = append(out, append([]bool(nil), vals...))
		}
	}

	return out
}

func triangle(t *testing.T) *geometry.Instance {
	t.Helper()
	inst, err := geometry.NewInstance([]geometry.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 3}})
	require.NoError(t, err)

	return inst
}

func TestLower_AgreesWithModelSemantics(t *testing.T) {
	cases := []struct {
		name string
		opts []model.Option
	}{
		{"lazy tree", []model.Option{model.WithEncoding(model.Lazy)}},
		{"depth tree", []model.Option{model.WithEncoding(model.Depth)}},
		{"depth tree rooted at 2", []model.Option{model.WithRoot(2)}},
		{"depth cycle", []model.Option{model.WithVariant(model.Cycle)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := model.Build(triangle(t), tc.opts...)
			require.NoError(t, err)
			f, err := oracle.Lower(m)
			require.NoError(t, err)
			require.LessOrEqual(t, f.NumVars, 16, "brute force budget")

			for th := -1; th <= m.MaxThreshold(); th++ {
				models := formulaModels(f, f.Threshold(th))
				assert.Equal(t, modelFeasible(m, th), len(models) > 0, "threshold %d", th)
				for _, vals := range models {
					a := f.Assignment(func(x int) bool { return vals[x] })
					require.NoError(t, m.Check(a), "threshold %d", th)
					assert.LessOrEqual(t, a.Int(m.Bottleneck()), th)
				}
			}
		})
	}
}

func TestLower_EmptyDegreeIsContradiction(t *testing.T) {
	inst, err := geometry.NewInstance([]geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 5}})
	require.NoError(t, err)
	// Only the cheapest edge survives; node 2 cannot be covered.
	m, err := model.Build(inst, model.WithEncoding(model.Lazy), model.WithEdgeLimit(1))
	require.NoError(t, err)
	f, err := oracle.Lower(m)
	require.NoError(t, err)

	assert.Contains(t, f.Clauses, []int{-f.True})
	assert.Empty(t, formulaModels(f))
}

func TestFormula_GeClampsAndSimplify(t *testing.T) {
	m, err := model.Build(triangle(t), model.WithEncoding(model.Lazy))
	require.NoError(t, err)
	f, err := oracle.Lower(m)
	require.NoError(t, err)

	b := m.Bottleneck()
	assert.Equal(t, f.True, f.Ge(b, 0))
	assert.Equal(t, f.True, f.Ge(b, -3))
	assert.Equal(t, -f.True, f.Ge(b, 3))
	assert.NotEqual(t, f.True, f.Ge(b, 1))
	assert.Equal(t, -f.Ge(b, 2), f.Threshold(1))
	assert.Equal(t, f.True, f.Threshold(2))

	out, sat := f.Simplify([]int{5, f.True})
	assert.True(t, sat)
	assert.Nil(t, out)
	out, sat = f.Simplify([]int{-f.True, 4})
	assert.False(t, sat)
	assert.Equal(t, []int{4}, out)
	out, _ = f.Simplify([]int{-f.True})
	assert.Equal(t, []int{-f.True}, out)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "feasible", oracle.Feasible.String())
	assert.Equal(t, "unknown", oracle.Unknown.String())
	assert.True(t, oracle.Optimal.Solved())
	assert.False(t, oracle.Timeout.Solved())
}
