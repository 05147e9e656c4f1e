package pipeline

import "time"

// MetricsCollector defines the interface for collecting pipeline metrics.
type MetricsCollector interface {
	RecordScoringDuration(duration time.Duration)
	RecordAssessment(level string)
	RecordValidationFailure()
	RecordCacheHit()
	RecordCacheMiss()
	RecordAuditError()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordScoringDuration(time.Duration) {}
func (n *NoopMetricsCollector) RecordAssessment(string)             {}
func (n *NoopMetricsCollector) RecordValidationFailure()            {}
func (n *NoopMetricsCollector) RecordCacheHit()                     {}
func (n *NoopMetricsCollector) RecordCacheMiss()                    {}
func (n *NoopMetricsCollector) RecordAuditError()                   {}
