package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fraudwatch/internal/scorer"
)

// ModelHandler exposes the loaded model's metadata.
type ModelHandler struct {
	scorer *scorer.Service
}

func NewModelHandler(sc *scorer.Service) *ModelHandler {
	return &ModelHandler{scorer: sc}
}

// Info returns the artifact metadata: name, version, thresholds, the feature
// order the model expects, and its training metrics.
func (h *ModelHandler) Info(c *fiber.Ctx) error {
	artifact := h.scorer.Artifact()
	return c.JSON(fiber.Map{
		"model_name":      artifact.ModelName,
		"version":         artifact.Version,
		"threshold":       artifact.ReviewThreshold,
		"risk_thresholds": artifact.RiskThresholds,
		"features_used":   artifact.FeaturesUsed,
		"hash_buckets":    artifact.HashBuckets,
		"metrics":         artifact.Metrics,
	})
}
