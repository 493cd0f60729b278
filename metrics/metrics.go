// Package metrics exposes search counters and oracle latencies to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Label names of the probe counter and the latency histogram.
const (
	StrategyLabel = "strategy"
	OutcomeLabel  = "outcome"
	BackendLabel  = "backend"
	StatusLabel   = "status"
)

// Probe outcomes, the values of OutcomeLabel.
const (
	OutcomeFeasible     = "feasible"
	OutcomeInfeasible   = "infeasible"
	OutcomeDisconnected = "disconnected"
	OutcomeTimeout      = "timeout"
	OutcomeError        = "error"
)

// Recorder receives search events. Implementations must be safe for concurrent use.
type Recorder interface {
	// ObserveProbe counts one threshold probe and how it ended.
	ObserveProbe(strategy, outcome string)
	// ObserveCuts counts separation clauses added in one round.
	ObserveCuts(n int)
	// ObserveOracle records one oracle call.
	ObserveOracle(backend, status string, d time.Duration)
	// ObserveBest records the bottleneck cost of a new best solution.
	ObserveBest(cost int64)
}

// Prometheus is a Recorder backed by client_golang collectors.
type Prometheus struct {
	probes  *prometheus.CounterVec
	cuts    prometheus.Counter
	latency *prometheus.HistogramVec
	best    prometheus.Gauge
}

// NewPrometheus creates the collectors and registers them with reg.
// A nil reg skips registration, which tests use with testutil.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	p := &Prometheus{
		probes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bottleneck_probes_total",
				Help: "Threshold probes by search strategy and outcome",
			},
			[]string{StrategyLabel, OutcomeLabel},
		),
		cuts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bottleneck_separation_cuts_total",
				Help: "Component-separation clauses added to oracles",
			},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bottleneck_oracle_duration_seconds",
				Help:    "Wall time of single oracle calls",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
			},
			[]string{BackendLabel, StatusLabel},
		),
		best: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "bottleneck_best_cost",
				Help: "Squared bottleneck cost of the most recent best solution",
			},
		),
	}
	if reg == nil {
		return p, nil
	}
	for _, c := range []prometheus.Collector{p.probes, p.cuts, p.latency, p.best} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// ObserveProbe increments the probe counter.
func (p *Prometheus) ObserveProbe(strategy, outcome string) {
	p.probes.WithLabelValues(strategy, outcome).Inc()
}

// ObserveCuts adds n to the cut counter.
func (p *Prometheus) ObserveCuts(n int) {
	p.cuts.Add(float64(n))
}

// ObserveOracle records d in seconds under backend and status.
func (p *Prometheus) ObserveOracle(backend, status string, d time.Duration) {
	p.latency.WithLabelValues(backend, status).Observe(d.Seconds())
}

// ObserveBest sets the best-cost gauge.
func (p *Prometheus) ObserveBest(cost int64) {
	p.best.Set(float64(cost))
}

// Probes exposes the probe counter for assertions.
func (p *Prometheus) Probes() *prometheus.CounterVec { return p.probes }

// Cuts exposes the cut counter for assertions.
func (p *Prometheus) Cuts() prometheus.Counter { return p.cuts }

// Best exposes the best-cost gauge for assertions.
func (p *Prometheus) Best() prometheus.Gauge { return p.best }

// Latency exposes the oracle histogram for assertions.
func (p *Prometheus) Latency() *prometheus.HistogramVec { return p.latency }

// Nil discards every observation.
type Nil struct{}

// NewNil returns a Recorder that does nothing.
func NewNil() Recorder { return Nil{} }

func (Nil) ObserveProbe(string, string)                 {}
func (Nil) ObserveCuts(int)                             {}
func (Nil) ObserveOracle(string, string, time.Duration) {}
func (Nil) ObserveBest(int64)                           {}
