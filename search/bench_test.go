package search_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/model"
	"github.com/katalvlaran/bottleneck/oracle/backend"
	"github.com/katalvlaran/bottleneck/search"
)

// benchSolve measures one full search on a fixed random instance of n points.
func benchSolve(b *testing.B, n int, opts ...search.Option) {
	pts, err := geometry.RandomPoints(n, 100, 100, 7)
	if err != nil {
		b.Fatal(err)
	}
	inst, err := geometry.NewInstance(pts)
	if err != nil {
		b.Fatal(err)
	}
	opts = append(opts, search.WithLogger(quiet()))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = search.Solve(context.Background(), inst, opts...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTree_Depth_CDCL_n10(b *testing.B) { benchSolve(b, 10) }

func BenchmarkTree_Lazy_CDCL_n10(b *testing.B) {
	benchSolve(b, 10, search.WithEncoding(model.Lazy))
}

func BenchmarkTree_Depth_PBSAT_n10(b *testing.B) {
	benchSolve(b, 10, search.WithBackend(backend.PBSAT))
}

func BenchmarkCycle_Lazy_CDCL_n10(b *testing.B) {
	benchSolve(b, 10, search.WithVariant(model.Cycle), search.WithEncoding(model.Lazy))
}

func BenchmarkTree_Ascending_n10(b *testing.B) {
	benchSolve(b, 10, search.WithStrategy(search.LinearAscending), search.WithWarmStart(false))
}
