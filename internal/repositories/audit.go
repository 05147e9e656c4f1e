package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fraudwatch/internal/models"
)

// ErrRecordNotFound means no audit record matched the query.
var ErrRecordNotFound = errors.New("assessment record not found")

// Review statuses for persisted high-risk assessments
const (
	ReviewStatusPending  = "pending"
	ReviewStatusCleared  = "cleared"
	ReviewStatusEscalate = "escalated"
)

// AuditRepository persists high-risk assessments for the review workflow.
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates an audit repository over the given database.
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// SaveHighRisk stores one high-risk assessment with a pending review status.
func (r *AuditRepository) SaveHighRisk(ctx context.Context, record *models.AssessmentRecord) error {
	record.ReviewStatus = ReviewStatusPending
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save assessment record: %w", err)
	}
	return nil
}

// ListPending returns persisted assessments awaiting review, newest first.
func (r *AuditRepository) ListPending(ctx context.Context, limit, offset int) ([]models.AssessmentRecord, error) {
	var records []models.AssessmentRecord
	err := r.db.WithContext(ctx).
		Where("review_status = ?", ReviewStatusPending).
		Order("processed_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}
	return records, nil
}

// UpdateReviewStatus resolves one record's review.
func (r *AuditRepository) UpdateReviewStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.AssessmentRecord{}).
		Where("id = ?", id).
		Update("review_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update review status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
