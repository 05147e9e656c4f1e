package pipeline

import "fraudwatch/internal/models"

// Config holds the flagged-feature cut points. Zero values are replaced with
// the defaults the model was tuned against.
type Config struct {
	// LargeAmount flags any transaction above this amount.
	LargeAmount float64
	// SuspiciousAmount and SuspiciousScore together flag the
	// suspicious_pattern combination.
	SuspiciousAmount float64
	SuspiciousScore  float64
	// HighScore flags the high_risk_score feature.
	HighScore float64
}

// Default flagged-feature cut points
const (
	DefaultLargeAmount      = 100000
	DefaultSuspiciousAmount = 50000
	DefaultSuspiciousScore  = 0.6
	DefaultHighScore        = 0.8
)

// BulkResult is one element of a bulk scoring response. Exactly one of
// Assessment and Err is set.
type BulkResult struct {
	TransactionID string
	Assessment    *models.Assessment
	Err           error
}
