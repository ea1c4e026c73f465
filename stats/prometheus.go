package stats

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exports the observations of checks as Prometheus metrics.
//
// Unlike the Builder it aggregates over every check it observes and is safe for concurrent use,
// as long as each check is observed by its own Prometheus value created with Fork.
type Prometheus struct {
	checks      prometheus.Counter
	phases      *prometheus.HistogramVec
	coverage    *prometheus.CounterVec
	refinements prometheus.Counter
	uncoverings prometheus.Counter

	algorithmStart time.Time
	closingStart   time.Time
	expandingStart time.Time
}

// Create the metrics and register them with the registerer
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	factory := promauto.With(reg)
	return &Prometheus{
		checks: factory.NewCounter(prometheus.CounterOpts{
			Name: "lazymc_checks_total",
			Help: "Total number of completed reachability checks",
		}),
		phases: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lazymc_phase_duration_seconds",
			Help:    "Duration of the phases of a reachability check",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{"phase"}),
		coverage: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lazymc_coverage_total",
			Help: "Coverage checks by outcome",
		}, []string{"outcome"}),
		refinements: factory.NewCounter(prometheus.CounterOpts{
			Name: "lazymc_refinements_total",
			Help: "Total number of refinements triggered by infeasible successors",
		}),
		uncoverings: factory.NewCounter(prometheus.CounterOpts{
			Name: "lazymc_uncoverings_total",
			Help: "Total number of coverings dropped by refinement",
		}),
	}
}

// Returns a recorder sharing the metrics but with its own phase timers
func (p *Prometheus) Fork() *Prometheus {
	return &Prometheus{
		checks:      p.checks,
		phases:      p.phases,
		coverage:    p.coverage,
		refinements: p.refinements,
		uncoverings: p.uncoverings,
	}
}

func (p *Prometheus) StartAlgorithm() { p.algorithmStart = time.Now() }

func (p *Prometheus) StopAlgorithm() {
	p.phases.WithLabelValues("algorithm").Observe(time.Since(p.algorithmStart).Seconds())
	p.checks.Inc()
}

func (p *Prometheus) StartClosing() { p.closingStart = time.Now() }

func (p *Prometheus) StopClosing() {
	p.phases.WithLabelValues("closing").Observe(time.Since(p.closingStart).Seconds())
}

func (p *Prometheus) StartExpanding() { p.expandingStart = time.Now() }

func (p *Prometheus) StopExpanding() {
	p.phases.WithLabelValues("expanding").Observe(time.Since(p.expandingStart).Seconds())
}

func (p *Prometheus) CheckCoverage()      { p.coverage.WithLabelValues("checked").Inc() }
func (p *Prometheus) AttemptCoverage()    { p.coverage.WithLabelValues("attempted").Inc() }
func (p *Prometheus) SuccessfulCoverage() { p.coverage.WithLabelValues("succeeded").Inc() }
func (p *Prometheus) Refine()             { p.refinements.Inc() }
func (p *Prometheus) Uncover(n int)       { p.uncoverings.Add(float64(n)) }
