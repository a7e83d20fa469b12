package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "compilekit"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	taskDuration    *prom.HistogramVec
	taskResults     *prom.CounterVec
	compileDuration prom.Histogram
	compileOutcome  *prom.CounterVec
	diagnostics     *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.taskDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "task_duration_seconds",
		Help:      "Duration of individual task runs",
		Buckets:   prom.DefBuckets,
	}, []string{"task"})
	pr.taskResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "task_results_total",
		Help:      "Task run counts by result",
	}, []string{"task", "result"})
	pr.compileDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "compile_duration_seconds",
		Help:      "Total compilation duration",
		Buckets:   prom.DefBuckets,
	})
	pr.compileOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "compile_outcomes_total",
		Help:      "Compilation outcomes by final status",
	}, []string{"outcome"})
	pr.diagnostics = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "diagnostics_total",
		Help:      "Diagnostics reported by kind",
	}, []string{"kind"})
	reg.MustRegister(pr.taskDuration, pr.taskResults, pr.compileDuration, pr.compileOutcome, pr.diagnostics)
	return pr
}

// Registry returns the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveTaskDuration(task string, d time.Duration) {
	if p == nil || p.taskDuration == nil {
		return
	}
	p.taskDuration.WithLabelValues(task).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTaskResult(task string, result ResultLabel) {
	if p == nil || p.taskResults == nil {
		return
	}
	p.taskResults.WithLabelValues(task, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveCompileDuration(d time.Duration) {
	if p == nil || p.compileDuration == nil {
		return
	}
	p.compileDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncCompileOutcome(outcome OutcomeLabel) {
	if p == nil || p.compileOutcome == nil {
		return
	}
	p.compileOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddDiagnostics(kind string, n int) {
	if p == nil || p.diagnostics == nil || n <= 0 {
		return
	}
	p.diagnostics.WithLabelValues(kind).Add(float64(n))
}

// WriteTextfile writes every metric on the recorder's registry to path in the
// text exposition format.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	return prom.WriteToTextfile(path, p.reg)
}
