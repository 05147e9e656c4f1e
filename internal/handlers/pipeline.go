// Package handlers contains the fiber HTTP handlers. They stay thin:
// decode the request, call the pipeline, encode the result. All scoring
// semantics live in the internal packages they delegate to.
package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"fraudwatch/internal/features"
	"fraudwatch/internal/models"
	"fraudwatch/internal/pipeline"
	"fraudwatch/internal/scorer"
)

const maxBulkTransactions = 1000

// PipelineHandler exposes the scoring pipeline over HTTP.
type PipelineHandler struct {
	svc pipeline.Service
}

func NewPipelineHandler(svc pipeline.Service) *PipelineHandler {
	return &PipelineHandler{svc: svc}
}

// ProcessTransaction scores a single transaction.
func (h *PipelineHandler) ProcessTransaction(c *fiber.Ctx) error {
	var tx models.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	assessment, err := h.svc.Process(c.UserContext(), tx)
	if err != nil {
		return writeScoringError(c, err)
	}
	return c.JSON(assessment)
}

// BulkProcess scores a batch of transactions, one result per element.
func (h *PipelineHandler) BulkProcess(c *fiber.Ctx) error {
	var input struct {
		Transactions []models.Transaction `json:"transactions"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(input.Transactions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No transactions provided",
		})
	}
	if len(input.Transactions) > maxBulkTransactions {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Too many transactions in one batch",
		})
	}

	results := h.svc.ProcessBulk(c.UserContext(), input.Transactions)

	out := make([]fiber.Map, 0, len(results))
	successful := 0
	for _, r := range results {
		if r.Err != nil {
			out = append(out, fiber.Map{
				"transaction_id": r.TransactionID,
				"error":          r.Err.Error(),
			})
			continue
		}
		successful++
		out = append(out, fiber.Map{
			"transaction_id":    r.Assessment.TransactionID,
			"risk_score":        r.Assessment.RiskScore,
			"risk_level":        r.Assessment.RiskLevel,
			"compliance_status": r.Assessment.ComplianceStatus,
			"requires_review":   r.Assessment.RequiresReview,
			"flagged_features":  r.Assessment.FlaggedFeatures,
			"confidence":        r.Assessment.Confidence,
			"processed_at":      r.Assessment.ProcessedAt,
		})
	}

	return c.JSON(fiber.Map{
		"results":         out,
		"total_processed": len(results),
		"successful":      successful,
	})
}

func writeScoringError(c *fiber.Ctx, err error) error {
	var verr *features.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": verr.Error(),
			"field": verr.Field,
		})
	}
	if errors.Is(err, scorer.ErrModelUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "model unavailable",
		})
	}
	var serr *scorer.FeatureShapeError
	if errors.As(err, &serr) {
		log.Printf("feature shape mismatch: %v", serr)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to process transaction",
	})
}
