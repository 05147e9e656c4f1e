package models

import "time"

// FeatureVector is the fixed-width numeric encoding of a transaction consumed
// by the classifier. Its length and slot order are part of the trained model's
// input contract; see the features package for the slot layout.
type FeatureVector []float64

// RiskLevel is the discrete ordinal classification of a risk score.
type RiskLevel string

const (
	RiskMinimal RiskLevel = "MINIMAL"
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
)

// Rank returns the ordinal position of the level (MINIMAL < LOW < MEDIUM < HIGH).
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	default:
		return 0
	}
}

// Compliance statuses attached to assessments
const (
	ComplianceApproved = "APPROVED"
	CompliancePending  = "PENDING"
)

// Flagged feature names
const (
	FlagLargeAmount       = "large_amount"
	FlagHighRiskScore     = "high_risk_score"
	FlagSuspiciousPattern = "suspicious_pattern"
)

// Assessment is the result of scoring one transaction. Created once,
// immutable, owned by the caller; the monitoring aggregator keeps its own copy.
type Assessment struct {
	TransactionID    string    `json:"transaction_id"`
	RiskScore        float64   `json:"risk_score"`
	RiskLevel        RiskLevel `json:"risk_level"`
	ComplianceStatus string    `json:"compliance_status"`
	RequiresReview   bool      `json:"requires_review"`
	FlaggedFeatures  []string  `json:"flagged_features"`
	Confidence       float64   `json:"confidence"`
	Amount           float64   `json:"-"`
	SenderID         string    `json:"-"`
	ReceiverID       string    `json:"-"`
	ProcessedAt      time.Time `json:"processed_at"`
}
