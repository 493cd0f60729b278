package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bottleneck/geometry"
)

func newRandomCmd() *cobra.Command {
	var (
		n             int
		width, height int64
		seed          int64
	)
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Write a random instance of distinct integer points as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := geometry.RandomPoints(n, width, height, seed)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), instanceFile{Seed: seed, Points: pts})
		},
	}
	cmd.Flags().IntVarP(&n, "points", "n", 20, "number of points")
	cmd.Flags().Int64Var(&width, "width", 1000, "largest x coordinate")
	cmd.Flags().Int64Var(&height, "height", 1000, "largest y coordinate")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	return cmd
}
