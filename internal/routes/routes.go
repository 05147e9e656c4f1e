// Package routes defines the API routing configuration. It wires the scoring
// pipeline, monitoring aggregator and model surfaces to their HTTP endpoints
// and applies the middleware stack.
package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fraudwatch/internal/handlers"
	"fraudwatch/internal/middleware"
	"fraudwatch/internal/monitor"
	"fraudwatch/internal/pipeline"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/scorer"
)

// Dependencies carries everything the routes need. Audit may be nil when
// persistence is disabled; AuthSecret empty disables the bearer-token guard.
type Dependencies struct {
	Pipeline   pipeline.Service
	Aggregator *monitor.Aggregator
	Scorer     *scorer.Service
	Audit      *repositories.AuditRepository
	AuthSecret string
	Registry   *prometheus.Registry
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Dependencies) {
	pipelineHandler := handlers.NewPipelineHandler(deps.Pipeline)
	monitoringHandler := handlers.NewMonitoringHandler(deps.Aggregator, deps.Scorer, deps.Audit)
	modelHandler := handlers.NewModelHandler(deps.Scorer)
	healthHandler := handlers.NewHealthHandler(deps.Scorer)

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)
	api.Get("/model/info", modelHandler.Info)

	// Ingestion endpoints, optionally guarded by the service-token middleware
	ingest := api.Group("")
	if deps.AuthSecret != "" {
		auth := middleware.NewAuthMiddleware(deps.AuthSecret)
		ingest.Use(auth.Handler)
	}
	ingest.Post("/process_transaction", pipelineHandler.ProcessTransaction)
	ingest.Post("/bulk_process", pipelineHandler.BulkProcess)

	monitoring := api.Group("/monitoring")
	monitoring.Get("/stats", monitoringHandler.Stats)
	monitoring.Get("/alerts", monitoringHandler.Alerts)
	monitoring.Get("/high-risk", monitoringHandler.HighRisk)
	monitoring.Post("/start", monitoringHandler.Start)
	monitoring.Post("/stop", monitoringHandler.Stop)
	monitoring.Get("/reviews", monitoringHandler.PendingReviews)
	monitoring.Post("/reviews/:id", monitoringHandler.ResolveReview)

	if deps.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}
}
