package models

import "time"

// AssessmentRecord is the persisted form of a high-risk assessment, kept for
// the compliance review workflow.
type AssessmentRecord struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	TransactionID   string    `gorm:"index;not null" json:"transaction_id"`
	RiskScore       float64   `gorm:"not null" json:"risk_score"`
	RiskLevel       string    `gorm:"not null" json:"risk_level"`
	Amount          float64   `gorm:"not null" json:"amount"`
	SenderID        string    `json:"sender_id"`
	ReceiverID      string    `json:"receiver_id"`
	ReviewStatus    string    `gorm:"not null;default:'pending'" json:"review_status"`
	FlaggedFeatures string    `json:"flagged_features"`
	ProcessedAt     time.Time `json:"processed_at"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
