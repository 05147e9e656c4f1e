package models

import "time"

// Alert types and severities
const (
	AlertTypeHighRiskTransaction = "HIGH_RISK_TRANSACTION"
	AlertSeverityHigh            = "HIGH"
)

// Alert is an entry in the monitoring aggregator's recent-alerts list.
type Alert struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Severity      string    `json:"severity"`
	Message       string    `json:"message"`
	TransactionID string    `json:"transaction_id"`
	RiskScore     float64   `json:"risk_score"`
	Amount        float64   `json:"amount"`
	Sender        string    `json:"sender"`
	Receiver      string    `json:"receiver"`
	Timestamp     time.Time `json:"timestamp"`
}

// HighRiskTransaction is an entry in the recent high-risk list.
type HighRiskTransaction struct {
	TransactionID string    `json:"transaction_id"`
	RiskScore     float64   `json:"risk_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
	Amount        float64   `json:"amount"`
	SenderID      string    `json:"sender_id"`
	ReceiverID    string    `json:"receiver_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// RiskDistribution maps each risk level to its running count.
type RiskDistribution struct {
	High    uint64 `json:"high"`
	Medium  uint64 `json:"medium"`
	Low     uint64 `json:"low"`
	Minimal uint64 `json:"minimal"`
}

// Sum returns the total across all levels.
func (d RiskDistribution) Sum() uint64 {
	return d.High + d.Medium + d.Low + d.Minimal
}

// MonitoringSnapshot is a consistent point-in-time copy of the aggregator's
// state. Readers never observe a partially updated view: TotalTransactions
// always equals RiskDistribution.Sum().
type MonitoringSnapshot struct {
	TotalTransactions uint64                `json:"total_transactions"`
	RiskDistribution  RiskDistribution      `json:"risk_distribution"`
	PendingReviews    uint64                `json:"pending_reviews"`
	AlertsGenerated   uint64                `json:"alerts_generated"`
	ProcessingRate    float64               `json:"processing_rate"`
	UptimeSeconds     float64               `json:"uptime_seconds"`
	RecentAlerts      []Alert               `json:"recent_alerts"`
	RecentHighRisk    []HighRiskTransaction `json:"recent_high_risk"`
	LastAlertTime     *time.Time            `json:"last_alert_time"`
}
