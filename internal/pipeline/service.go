package pipeline

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"fraudwatch/internal/features"
	"fraudwatch/internal/models"
)

type service struct {
	engineer Transformer
	scorer   RiskScorer
	monitor  Recorder
	cache    AssessmentCache
	audit    AuditStore
	config   Config
	metrics  MetricsCollector
	now      func() time.Time
}

// NewService creates the scoring pipeline. Engineer, scorer and monitor are
// required; cache and audit may be nil to disable those collaborators.
func NewService(
	engineer Transformer,
	scorer RiskScorer,
	monitor Recorder,
	cache AssessmentCache,
	audit AuditStore,
	config Config,
	metrics MetricsCollector,
) Service {
	if engineer == nil {
		panic("engineer is required")
	}
	if scorer == nil {
		panic("scorer is required")
	}
	if monitor == nil {
		panic("monitor is required")
	}

	if config.LargeAmount == 0 {
		config.LargeAmount = DefaultLargeAmount
	}
	if config.SuspiciousAmount == 0 {
		config.SuspiciousAmount = DefaultSuspiciousAmount
	}
	if config.SuspiciousScore == 0 {
		config.SuspiciousScore = DefaultSuspiciousScore
	}
	if config.HighScore == 0 {
		config.HighScore = DefaultHighScore
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		engineer: engineer,
		scorer:   scorer,
		monitor:  monitor,
		cache:    cache,
		audit:    audit,
		config:   config,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (s *service) Process(ctx context.Context, tx models.Transaction) (*models.Assessment, error) {
	start := s.now()

	if s.cache != nil && tx.TransactionID != "" {
		if cached, found, err := s.cache.Get(ctx, tx.TransactionID); err == nil && found {
			s.metrics.RecordCacheHit()
			return cached, nil
		}
		s.metrics.RecordCacheMiss()
	}

	vector, err := s.engineer.Transform(tx)
	if err != nil {
		var verr *features.ValidationError
		if errors.As(err, &verr) {
			s.metrics.RecordValidationFailure()
		}
		return nil, err
	}

	score, level, err := s.scorer.Score(vector)
	if err != nil {
		return nil, err
	}

	assessment := s.buildAssessment(tx, score, level)
	s.monitor.Record(*assessment)
	s.metrics.RecordAssessment(string(level))
	s.metrics.RecordScoringDuration(s.now().Sub(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, assessment); err != nil {
			log.Printf("failed to cache assessment %s: %v", assessment.TransactionID, err)
		}
	}

	if s.audit != nil && level == models.RiskHigh {
		record := &models.AssessmentRecord{
			TransactionID:   assessment.TransactionID,
			RiskScore:       assessment.RiskScore,
			RiskLevel:       string(assessment.RiskLevel),
			Amount:          tx.Amount,
			SenderID:        tx.SenderID,
			ReceiverID:      tx.ReceiverID,
			FlaggedFeatures: strings.Join(assessment.FlaggedFeatures, ","),
			ProcessedAt:     assessment.ProcessedAt,
		}
		if err := s.audit.SaveHighRisk(ctx, record); err != nil {
			s.metrics.RecordAuditError()
			log.Printf("failed to persist high-risk assessment %s: %v", assessment.TransactionID, err)
		}
	}

	return assessment, nil
}

func (s *service) ProcessBulk(ctx context.Context, txs []models.Transaction) []BulkResult {
	results := make([]BulkResult, 0, len(txs))
	for _, tx := range txs {
		assessment, err := s.Process(ctx, tx)
		results = append(results, BulkResult{
			TransactionID: tx.TransactionID,
			Assessment:    assessment,
			Err:           err,
		})
	}
	return results
}

func (s *service) buildAssessment(tx models.Transaction, score float64, level models.RiskLevel) *models.Assessment {
	requiresReview := score >= s.scorer.ReviewThreshold()

	status := models.ComplianceApproved
	if requiresReview {
		status = models.CompliancePending
	}

	var flagged []string
	if tx.Amount > s.config.LargeAmount {
		flagged = append(flagged, models.FlagLargeAmount)
	}
	if score > s.config.HighScore {
		flagged = append(flagged, models.FlagHighRiskScore)
	}
	if tx.Amount > s.config.SuspiciousAmount && score > s.config.SuspiciousScore {
		flagged = append(flagged, models.FlagSuspiciousPattern)
	}

	return &models.Assessment{
		TransactionID:    tx.TransactionID,
		RiskScore:        score,
		RiskLevel:        level,
		ComplianceStatus: status,
		RequiresReview:   requiresReview,
		FlaggedFeatures:  flagged,
		Confidence:       math.Abs(score-0.5) * 2,
		Amount:           tx.Amount,
		SenderID:         tx.SenderID,
		ReceiverID:       tx.ReceiverID,
		ProcessedAt:      s.now().UTC(),
	}
}
