package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"fraudwatch/internal/scorer"
)

// HealthHandler reports service liveness and model identification.
type HealthHandler struct {
	scorer *scorer.Service
}

func NewHealthHandler(sc *scorer.Service) *HealthHandler {
	return &HealthHandler{scorer: sc}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	artifact := h.scorer.Artifact()
	return c.JSON(fiber.Map{
		"status":       "healthy",
		"timestamp":    time.Now().UTC(),
		"version":      artifact.Version,
		"model_loaded": true,
		"model_name":   artifact.ModelName,
	})
}
