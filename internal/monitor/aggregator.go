// Package monitor maintains the live monitoring state derived from every
// scored transaction: running counters, capped recent-alert and high-risk
// lists, and a rolling processing rate.
//
// Aggregators are plain injectable values rather than process globals, so
// tests can run several independent instances side by side. All state sits
// behind one mutex: concurrent Record calls never lose updates and Snapshot
// never observes a half-applied one.
package monitor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"fraudwatch/internal/models"
)

// Defaults for aggregator configuration
const (
	DefaultAlertListCap    = 100
	DefaultHighRiskListCap = 100
	DefaultRateWindow      = 60 * time.Second
)

// Config holds aggregator tuning knobs.
type Config struct {
	AlertListCap    int
	HighRiskListCap int
	RateWindow      time.Duration
}

// Aggregator accumulates monitoring state from assessments.
type Aggregator struct {
	mu sync.RWMutex

	total          uint64
	distribution   models.RiskDistribution
	pendingReviews uint64
	alertsTotal    uint64

	recentAlerts   []models.Alert
	recentHighRisk []models.HighRiskTransaction
	lastAlert      *time.Time

	// processed holds recent completion times for the rolling rate; pruned
	// lazily on Snapshot so the Record path stays cheap.
	processed []time.Time

	alerting  bool
	startedAt time.Time
	config    Config
	now       func() time.Time
}

// NewAggregator creates an aggregator, filling zero config values with
// defaults.
func NewAggregator(cfg Config) *Aggregator {
	if cfg.AlertListCap <= 0 {
		cfg.AlertListCap = DefaultAlertListCap
	}
	if cfg.HighRiskListCap <= 0 {
		cfg.HighRiskListCap = DefaultHighRiskListCap
	}
	if cfg.RateWindow <= 0 {
		cfg.RateWindow = DefaultRateWindow
	}
	return &Aggregator{
		alerting:  true,
		startedAt: time.Now(),
		config:    cfg,
		now:       time.Now,
	}
}

// Record folds one completed assessment into the aggregate state.
func (a *Aggregator) Record(assessment models.Assessment) {
	ts := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.total++
	switch assessment.RiskLevel {
	case models.RiskHigh:
		a.distribution.High++
	case models.RiskMedium:
		a.distribution.Medium++
	case models.RiskLow:
		a.distribution.Low++
	default:
		a.distribution.Minimal++
	}

	if assessment.RequiresReview {
		a.pendingReviews++
	}

	a.processed = append(a.processed, ts)

	if assessment.RiskLevel == models.RiskHigh {
		a.recentHighRisk = prepend(a.recentHighRisk, models.HighRiskTransaction{
			TransactionID: assessment.TransactionID,
			RiskScore:     assessment.RiskScore,
			RiskLevel:     assessment.RiskLevel,
			Amount:        assessment.Amount,
			SenderID:      assessment.SenderID,
			ReceiverID:    assessment.ReceiverID,
			Timestamp:     ts,
		}, a.config.HighRiskListCap)

		if a.alerting {
			a.recentAlerts = prepend(a.recentAlerts, models.Alert{
				ID:            uuid.NewString(),
				Type:          models.AlertTypeHighRiskTransaction,
				Severity:      models.AlertSeverityHigh,
				Message:       "High risk transaction detected: " + assessment.TransactionID,
				TransactionID: assessment.TransactionID,
				RiskScore:     assessment.RiskScore,
				Amount:        assessment.Amount,
				Sender:        assessment.SenderID,
				Receiver:      assessment.ReceiverID,
				Timestamp:     ts,
			}, a.config.AlertListCap)
			a.alertsTotal++
			a.lastAlert = &ts
		}
	}
}

// Snapshot returns a consistent point-in-time copy of the aggregate state.
func (a *Aggregator) Snapshot() models.MonitoringSnapshot {
	now := a.now()

	a.mu.Lock()
	defer a.mu.Unlock()

	a.pruneLocked(now)

	snap := models.MonitoringSnapshot{
		TotalTransactions: a.total,
		RiskDistribution:  a.distribution,
		PendingReviews:    a.pendingReviews,
		AlertsGenerated:   a.alertsTotal,
		ProcessingRate:    float64(len(a.processed)) / a.config.RateWindow.Seconds(),
		UptimeSeconds:     now.Sub(a.startedAt).Seconds(),
		RecentAlerts:      append([]models.Alert(nil), a.recentAlerts...),
		RecentHighRisk:    append([]models.HighRiskTransaction(nil), a.recentHighRisk...),
	}
	if a.lastAlert != nil {
		t := *a.lastAlert
		snap.LastAlertTime = &t
	}
	return snap
}

// AlertsSince returns copies of the retained alerts newer than the given age,
// newest first.
func (a *Aggregator) AlertsSince(age time.Duration) []models.Alert {
	cutoff := a.now().Add(-age)

	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]models.Alert, 0, len(a.recentAlerts))
	for _, alert := range a.recentAlerts {
		if alert.Timestamp.After(cutoff) {
			out = append(out, alert)
		}
	}
	return out
}

// HighRisk returns up to limit of the retained high-risk transactions,
// newest first.
func (a *Aggregator) HighRisk(limit int) []models.HighRiskTransaction {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if limit <= 0 || limit > len(a.recentHighRisk) {
		limit = len(a.recentHighRisk)
	}
	return append([]models.HighRiskTransaction(nil), a.recentHighRisk[:limit]...)
}

// SetAlerting enables or disables generation of new alert entries. Counters
// and high-risk retention keep running either way.
func (a *Aggregator) SetAlerting(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.alerting = enabled
}

// pruneLocked drops processed timestamps that fell out of the rate window.
// Callers must hold the write lock.
func (a *Aggregator) pruneLocked(now time.Time) {
	cutoff := now.Add(-a.config.RateWindow)
	keep := 0
	for keep < len(a.processed) && !a.processed[keep].After(cutoff) {
		keep++
	}
	if keep > 0 {
		a.processed = append([]time.Time(nil), a.processed[keep:]...)
	}
}

// prepend inserts the newest entry at the front, evicting the oldest when the
// cap is exceeded.
func prepend[T any](list []T, entry T, max int) []T {
	list = append(list, entry)
	copy(list[1:], list)
	list[0] = entry
	if len(list) > max {
		list = list[:max]
	}
	return list
}
