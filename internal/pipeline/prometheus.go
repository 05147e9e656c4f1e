package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements MetricsCollector on a prometheus registry.
type PrometheusCollector struct {
	scoringDuration    prometheus.Histogram
	assessments        *prometheus.CounterVec
	validationFailures prometheus.Counter
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	auditErrors        prometheus.Counter
}

// NewPrometheusCollector creates and registers the pipeline metrics.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		scoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fraudwatch_scoring_duration_seconds",
			Help:    "Time spent scoring a single transaction.",
			Buckets: prometheus.DefBuckets,
		}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fraudwatch_assessments_total",
			Help: "Completed assessments by risk level.",
		}, []string{"level"}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraudwatch_validation_failures_total",
			Help: "Transactions rejected before scoring.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraudwatch_assessment_cache_hits_total",
			Help: "Assessments served from the cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraudwatch_assessment_cache_misses_total",
			Help: "Assessments not found in the cache.",
		}),
		auditErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fraudwatch_audit_errors_total",
			Help: "Failures persisting high-risk assessments.",
		}),
	}
	reg.MustRegister(c.scoringDuration, c.assessments, c.validationFailures,
		c.cacheHits, c.cacheMisses, c.auditErrors)
	return c
}

func (c *PrometheusCollector) RecordScoringDuration(d time.Duration) {
	c.scoringDuration.Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordAssessment(level string) {
	c.assessments.WithLabelValues(level).Inc()
}

func (c *PrometheusCollector) RecordValidationFailure() { c.validationFailures.Inc() }
func (c *PrometheusCollector) RecordCacheHit()          { c.cacheHits.Inc() }
func (c *PrometheusCollector) RecordCacheMiss()         { c.cacheMisses.Inc() }
func (c *PrometheusCollector) RecordAuditError()        { c.auditErrors.Inc() }
