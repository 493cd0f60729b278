package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bottleneck/bench"
	"github.com/katalvlaran/bottleneck/search"
)

func newBenchCmd(g *globals) *cobra.Command {
	var sf searchFlags
	cfg := bench.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Grow random instances until one misses the time limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sf.options()
			if err != nil {
				return err
			}
			if sf.timeLimit > 0 {
				cfg.TimeLimit = sf.timeLimit
			}
			cfg.Search = append(opts, search.WithRecorder(g.rec))

			rep, err := bench.Sweep(cmd.Context(), cfg)
			if rep != nil {
				if werr := writeYAML(cmd.OutOrStdout(), rep); werr != nil && err == nil {
					err = werr
				}
			}

			return err
		},
	}
	fs := cmd.Flags()
	sf.register(fs)
	fs.IntVar(&cfg.Start, "start", cfg.Start, "first number of points")
	fs.IntVar(&cfg.Step, "step", cfg.Step, "growth per size")
	fs.IntVar(&cfg.Max, "max", cfg.Max, "largest number of points")
	fs.IntVar(&cfg.Repeats, "repeats", cfg.Repeats, "random instances per size")
	fs.IntVarP(&cfg.Parallel, "parallel", "p", cfg.Parallel, "concurrent solves; 0 means one per repeat")
	fs.Int64Var(&cfg.Width, "width", cfg.Width, "largest x coordinate")
	fs.Int64Var(&cfg.Height, "height", cfg.Height, "largest y coordinate")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first repeat")

	return cmd
}
