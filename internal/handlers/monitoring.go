package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"fraudwatch/internal/monitor"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/scorer"
)

const maxReviewLimit = 100

// MonitoringHandler exposes the live aggregate state and, when a database is
// configured, the persisted review queue.
type MonitoringHandler struct {
	agg    *monitor.Aggregator
	scorer *scorer.Service
	audit  *repositories.AuditRepository // nil when persistence is disabled
}

func NewMonitoringHandler(agg *monitor.Aggregator, sc *scorer.Service, audit *repositories.AuditRepository) *MonitoringHandler {
	return &MonitoringHandler{agg: agg, scorer: sc, audit: audit}
}

// Stats returns the monitoring snapshot plus model identification.
func (h *MonitoringHandler) Stats(c *fiber.Ctx) error {
	snap := h.agg.Snapshot()
	artifact := h.scorer.Artifact()

	return c.JSON(fiber.Map{
		"total_transactions": snap.TotalTransactions,
		"risk_distribution":  snap.RiskDistribution,
		"pending_reviews":    snap.PendingReviews,
		"alerts_generated":   snap.AlertsGenerated,
		"processing_rate":    snap.ProcessingRate,
		"uptime_seconds":     snap.UptimeSeconds,
		"last_alert_time":    snap.LastAlertTime,
		"model_info": fiber.Map{
			"model_name": artifact.ModelName,
			"threshold":  artifact.ReviewThreshold,
		},
	})
}

// Alerts returns retained alerts from the last N hours (default 24).
func (h *MonitoringHandler) Alerts(c *fiber.Ctx) error {
	hours, _ := strconv.Atoi(c.Query("hours", "24"))
	if hours < 1 {
		hours = 24
	}

	alerts := h.agg.AlertsSince(time.Duration(hours) * time.Hour)
	return c.JSON(fiber.Map{
		"alerts": alerts,
		"count":  len(alerts),
		"hours":  hours,
	})
}

// HighRisk returns up to limit retained high-risk transactions.
func (h *MonitoringHandler) HighRisk(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "100"))

	transactions := h.agg.HighRisk(limit)
	return c.JSON(fiber.Map{
		"transactions": transactions,
		"count":        len(transactions),
		"limit":        limit,
	})
}

// Start enables alert generation.
func (h *MonitoringHandler) Start(c *fiber.Ctx) error {
	h.agg.SetAlerting(true)
	return c.JSON(fiber.Map{"message": "Real-time monitoring started"})
}

// Stop disables alert generation.
func (h *MonitoringHandler) Stop(c *fiber.Ctx) error {
	h.agg.SetAlerting(false)
	return c.JSON(fiber.Map{"message": "Real-time monitoring stopped"})
}

// PendingReviews lists persisted high-risk assessments awaiting review.
func (h *MonitoringHandler) PendingReviews(c *fiber.Ctx) error {
	if h.audit == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "audit persistence is not configured",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit > maxReviewLimit {
		limit = maxReviewLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, err := h.audit.ListPending(c.UserContext(), limit, offset)
	if err != nil {
		log.Printf("pending reviews error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list pending reviews",
		})
	}
	return c.JSON(fiber.Map{
		"reviews": records,
		"count":   len(records),
	})
}

// ResolveReview marks one persisted assessment as cleared or escalated.
func (h *MonitoringHandler) ResolveReview(c *fiber.Ctx) error {
	if h.audit == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"error": "audit persistence is not configured",
		})
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid review id"})
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if input.Status != repositories.ReviewStatusCleared && input.Status != repositories.ReviewStatusEscalate {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be cleared or escalated"})
	}

	if err := h.audit.UpdateReviewStatus(c.UserContext(), uint(id), input.Status); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "review not found"})
		}
		log.Printf("resolve review error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review",
		})
	}
	return c.JSON(fiber.Map{"message": "review updated"})
}
