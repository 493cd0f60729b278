package main

import (
	"net"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/bottleneck/metrics"
)

// globals holds the persistent flags of the root command.
type globals struct {
	debug       bool
	metricsAddr string
	rec         metrics.Recorder
}

func newRootCmd() *cobra.Command {
	g := &globals{rec: metrics.NewNil()}
	rootCmd := &cobra.Command{
		Use:   "btsearch",
		Short: "Bottleneck spanning tree and tour search",
		Long: `btsearch finds a spanning tree with bounded degree, or a Hamiltonian cycle,
whose longest edge is as short as possible. Thresholds over the sorted edge
list are decided by a SAT oracle with lazy connectivity cuts.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if g.debug {
				log.SetLevel(log.DebugLevel)
			}
			if g.metricsAddr == "" {
				return nil
			}

			return g.serveMetrics()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&g.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")

	rootCmd.AddCommand(newSolveCmd(g), newBenchCmd(g), newRandomCmd())

	return rootCmd
}

// serveMetrics registers the recorder on a fresh registry and serves it in the background.
func (g *globals) serveMetrics() error {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewPrometheus(reg)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", g.metricsAddr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", g.metricsAddr)
	}
	g.rec = rec

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	go func() {
		if err := http.Serve(ln, mux); err != nil {
			log.Errorf("metrics server: %v", err)
		}
	}()
	log.Infof("serving metrics on %s/metrics", ln.Addr())

	return nil
}
