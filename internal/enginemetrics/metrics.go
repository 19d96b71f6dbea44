// Package enginemetrics exposes Prometheus instrumentation for the
// solver driver: attempt/placement/backtrack counters, an
// objective-score gauge, an attempt-duration histogram, and a
// first-feasible-time gauge.
package enginemetrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder collects solver-run metrics. A nil *Recorder is safe to call
// every method on; callers that disable metrics simply pass nil.
type Recorder struct {
	registry *prometheus.Registry
	handler  http.Handler

	attemptsTotal    prometheus.Counter
	placementsTotal  prometheus.Counter
	backtracksTotal  prometheus.Counter
	deadEndsTotal    prometheus.Counter
	attemptDuration  prometheus.Histogram
	objectiveScore   prometheus.Gauge
	firstFeasibleSec prometheus.Gauge
}

// New registers a fresh set of collectors against a private registry.
func New() *Recorder {
	registry := prometheus.NewRegistry()

	attemptsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_solver_attempts_total",
		Help: "Total number of restart attempts made by the solver driver",
	})
	placementsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_solver_placements_total",
		Help: "Total number of successful unit placements",
	})
	backtracksTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_solver_backtracks_total",
		Help: "Total number of ruin-and-rebuild removals performed during repair",
	})
	deadEndsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_solver_mrv_dead_ends_total",
		Help: "Total number of units that had zero valid candidates when selected",
	})
	attemptDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_solver_attempt_duration_seconds",
		Help:    "Wall-clock duration of a single restart attempt",
		Buckets: prometheus.DefBuckets,
	})
	objectiveScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_solver_best_objective",
		Help: "Objective score of the best schedule found so far",
	})
	firstFeasibleSec := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "timetable_solver_first_feasible_seconds",
		Help: "Seconds elapsed before the first fully feasible schedule was found",
	})

	registry.MustRegister(attemptsTotal, placementsTotal, backtracksTotal, deadEndsTotal,
		attemptDuration, objectiveScore, firstFeasibleSec)

	return &Recorder{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		attemptsTotal:    attemptsTotal,
		placementsTotal:  placementsTotal,
		backtracksTotal:  backtracksTotal,
		deadEndsTotal:    deadEndsTotal,
		attemptDuration:  attemptDuration,
		objectiveScore:   objectiveScore,
		firstFeasibleSec: firstFeasibleSec,
	}
}

// Handler exposes the Prometheus scrape handler.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

func (r *Recorder) Attempt(duration time.Duration) {
	if r == nil {
		return
	}
	r.attemptsTotal.Inc()
	r.attemptDuration.Observe(duration.Seconds())
}

func (r *Recorder) Placements(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.placementsTotal.Add(float64(n))
}

func (r *Recorder) Backtracks(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.backtracksTotal.Add(float64(n))
}

func (r *Recorder) DeadEnds(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.deadEndsTotal.Add(float64(n))
}

func (r *Recorder) BestObjective(v float64) {
	if r == nil {
		return
	}
	r.objectiveScore.Set(v)
}

func (r *Recorder) FirstFeasible(d time.Duration) {
	if r == nil {
		return
	}
	r.firstFeasibleSec.Set(d.Seconds())
}
