package pipeline

import (
	"context"

	"fraudwatch/internal/models"
)

// Service is the pipeline entry point the request layer invokes.
type Service interface {
	Process(ctx context.Context, tx models.Transaction) (*models.Assessment, error)
	ProcessBulk(ctx context.Context, txs []models.Transaction) []BulkResult
}

// Transformer converts a transaction into the model's feature vector.
type Transformer interface {
	Transform(tx models.Transaction) (models.FeatureVector, error)
}

// RiskScorer maps a feature vector to a probability and discrete risk level.
type RiskScorer interface {
	Score(v models.FeatureVector) (float64, models.RiskLevel, error)
	ReviewThreshold() float64
}

// Recorder receives every completed assessment.
type Recorder interface {
	Record(assessment models.Assessment)
}

// AssessmentCache short-circuits re-scoring of an already-seen transaction id.
type AssessmentCache interface {
	Get(ctx context.Context, transactionID string) (*models.Assessment, bool, error)
	Set(ctx context.Context, assessment *models.Assessment) error
}

// AuditStore persists high-risk assessments for the review workflow.
type AuditStore interface {
	SaveHighRisk(ctx context.Context, record *models.AssessmentRecord) error
}
