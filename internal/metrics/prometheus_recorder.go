package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsgen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once        sync.Once
	directives  *prom.CounterVec
	documents   *prom.CounterVec
	exports     *prom.CounterVec
	runDuration *prom.HistogramVec
	runOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.directives = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "directives_total",
			Help:      "Directive resolutions by language and outcome",
		}, []string{"language", "outcome"})
		pr.documents = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_total",
			Help:      "Generated documents by language and write result",
		}, []string{"language", "result"})
		pr.exports = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "llms_exports_total",
			Help:      "LLM export files written by language and kind",
		}, []string{"language", "kind"})
		pr.runDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of generation runs",
			Buckets:   prom.DefBuckets,
		}, []string{"command"})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by command and final status",
		}, []string{"command", "result"})
		reg.MustRegister(pr.directives, pr.documents, pr.exports, pr.runDuration, pr.runOutcome)
	})
	return pr
}

func (p *PrometheusRecorder) IncDirective(language, outcome string) {
	if p == nil || p.directives == nil {
		return
	}
	p.directives.WithLabelValues(language, outcome).Inc()
}

func (p *PrometheusRecorder) IncDocument(language string, result WriteLabel) {
	if p == nil || p.documents == nil {
		return
	}
	p.documents.WithLabelValues(language, string(result)).Inc()
}

func (p *PrometheusRecorder) IncExport(language, kind string) {
	if p == nil || p.exports == nil {
		return
	}
	p.exports.WithLabelValues(language, kind).Inc()
}

func (p *PrometheusRecorder) ObserveRunDuration(command string, d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.WithLabelValues(command).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(command string, result ResultLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(command, string(result)).Inc()
}
