package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bottleneck/bench"
	"github.com/katalvlaran/bottleneck/geometry"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()

	return out.String(), err
}

func TestDecodeInstance_YAMLAndJSON(t *testing.T) {
	y, err := decodeInstance([]byte("name: square\npoints:\n  - {x: 0, y: 0}\n  - {x: 0, y: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, "square", y.Name)
	assert.Equal(t, []geometry.Point{{X: 0, Y: 0}, {X: 0, Y: 1}}, y.Points)

	j, err := decodeInstance([]byte(`{"points":[{"x":0,"y":0},{"x":0,"y":1}]}`))
	require.NoError(t, err)
	assert.Equal(t, y.Points, j.Points)

	_, err = decodeInstance([]byte("name: empty\n"))
	assert.Error(t, err)
	_, err = decodeInstance([]byte("points: [1, 2"))
	assert.Error(t, err)
}

func TestRandomThenSolve(t *testing.T) {
	out, err := run(t, "", "random", "-n", "6", "--width", "20", "--height", "20", "--seed", "4")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "pts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o600))
	inst, err := readInstance(path, nil)
	require.NoError(t, err)
	assert.Len(t, inst.Points, 6)
	assert.EqualValues(t, 4, inst.Seed)

	out, err = run(t, "", "solve", path, "--variant", "cycle", "--strategy", "desc", "--backend", "pbsat", "--segments")
	require.NoError(t, err)
	var got solveOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.True(t, got.Optimal)
	assert.Equal(t, "linear-descending", got.Strategy)
	assert.Len(t, got.Edges, 6)
	assert.Len(t, got.Segments, 6)
}

func TestSolve_FromStdin(t *testing.T) {
	square := `{"points":[{"x":0,"y":0},{"x":0,"y":1},{"x":1,"y":0},{"x":1,"y":1}]}`
	out, err := run(t, square, "solve", "-", "--encoding", "lazy")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 1, got.Bottleneck)
	assert.Equal(t, 2, got.Rank)
	assert.Equal(t, 4, got.Points)
	assert.Empty(t, got.Segments)
}

func TestSolve_MinSum(t *testing.T) {
	plus := "points:\n  - {x: 0, y: 0}\n  - {x: 1, y: 0}\n  - {x: -1, y: 0}\n  - {x: 0, y: 1}\n  - {x: 0, y: -1}\n"
	out, err := run(t, plus, "solve", "-", "--min-sum")
	require.NoError(t, err)

	var got solveOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.True(t, got.MinSum)
	assert.EqualValues(t, 2, got.Bottleneck)
	assert.EqualValues(t, 6, got.Total)
	assert.InDelta(t, 2+2*1.4142135, got.Length, 1e-6)
}

func TestSolve_BadFlags(t *testing.T) {
	square := `{"points":[{"x":0,"y":0},{"x":0,"y":1}]}`
	_, err := run(t, square, "solve", "-", "--strategy", "sideways")
	assert.Error(t, err)
	_, err = run(t, square, "solve", "-", "--backend", "cplex")
	assert.Error(t, err)
	_, err = run(t, square, "solve", "-", "--degree", "1")
	assert.Error(t, err)
	_, err = run(t, square, "solve")
	assert.Error(t, err)
}

func TestBench_Report(t *testing.T) {
	out, err := run(t, "", "bench", "--start", "4", "--step", "1", "--max", "5", "--repeats", "2", "--width", "30", "--height", "30")
	require.NoError(t, err)

	var rep bench.Report
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 5, rep.Largest)
	assert.Len(t, rep.Rows, 4)
}
