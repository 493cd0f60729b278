package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bottleneck/geometry"
	"github.com/katalvlaran/bottleneck/search"
)

// solveOutput is the YAML document printed by solve.
type solveOutput struct {
	Name       string             `json:"name,omitempty"`
	Points     int                `json:"points"`
	Strategy   string             `json:"strategy"`
	Bottleneck int64              `json:"bottleneck"`
	Rank       int                `json:"rank"`
	Total      int64              `json:"total"`
	Length     float64            `json:"length"`
	MinSum     bool               `json:"minSum,omitempty"`
	Optimal    bool               `json:"optimal"`
	Elapsed    string             `json:"elapsed"`
	Edges      []geometry.Edge    `json:"edges"`
	Segments   []geometry.Segment `json:"segments,omitempty"`
	Stats      search.Stats       `json:"stats"`
}

func newSolveCmd(g *globals) *cobra.Command {
	var (
		sf       searchFlags
		segments bool
	)
	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve one instance file (YAML or JSON, - for stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := sf.options()
			if err != nil {
				return err
			}
			inst, err := readInstance(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			opts = append(opts, search.WithRecorder(g.rec))
			res, err := search.SolvePoints(cmd.Context(), inst.Points, opts...)
			if err != nil {
				return err
			}

			out := solveOutput{
				Name:       inst.Name,
				Points:     len(inst.Points),
				Strategy:   res.Strategy.String(),
				Bottleneck: res.Bottleneck,
				Rank:       res.Rank,
				Total:      res.Total,
				Length:     res.Length,
				MinSum:     res.MinSum,
				Optimal:    res.Optimal,
				Elapsed:    res.Elapsed.String(),
				Edges:      res.Edges,
				Stats:      res.Stats,
			}
			if segments {
				out.Segments = res.Segments
			}

			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
	sf.register(cmd.Flags())
	cmd.Flags().BoolVar(&segments, "segments", false, "print edge coordinates too")

	return cmd
}
