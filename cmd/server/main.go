// Package main is the entry point for the risk scoring service.
// It loads the trained model (fatal on failure), wires the pipeline and its
// collaborators, and serves the HTTP API.
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"fraudwatch/internal/config"
	"fraudwatch/internal/features"
	"fraudwatch/internal/monitor"
	"fraudwatch/internal/pipeline"
	"fraudwatch/internal/repositories"
	"fraudwatch/internal/repositories/cache"
	"fraudwatch/internal/routes"
	"fraudwatch/internal/scorer"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Load the trained model. The service cannot serve its purpose without
	// it, so a load failure aborts startup.
	modelPath := config.GetEnv("MODEL_PATH", "model/risk_model.json")
	scorerService, err := scorer.Load(modelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	artifact := scorerService.Artifact()
	log.Printf("Model loaded successfully: %s v%s", artifact.ModelName, artifact.Version)
	log.Printf("Model review threshold: %.4f", artifact.ReviewThreshold)

	// Optional Postgres audit store for the review workflow
	var auditRepo *repositories.AuditRepository
	if config.GetBoolEnv("AUDIT_DB_ENABLED", false) {
		if err := repositories.InitDB(); err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		auditRepo = repositories.NewAuditRepository(repositories.DB)
		log.Println("Audit persistence enabled")
	}

	// Optional Redis assessment cache for idempotent re-scoring
	var assessmentCache *cache.AssessmentCache
	if config.GetBoolEnv("CACHE_ENABLED", false) {
		redisClient := cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		assessmentCache = cache.NewAssessmentCache(redisClient,
			config.GetDurationEnv("CACHE_TTL", 24*time.Hour))
		defer func() {
			if err := assessmentCache.Close(); err != nil {
				log.Printf("Failed to close Redis connection: %v", err)
			}
		}()
		log.Println("Assessment cache enabled")
	}

	// Monitoring aggregator
	aggregator := monitor.NewAggregator(monitor.Config{
		AlertListCap:    config.GetIntEnv("ALERT_LIST_CAP", monitor.DefaultAlertListCap),
		HighRiskListCap: config.GetIntEnv("HIGH_RISK_LIST_CAP", monitor.DefaultHighRiskListCap),
		RateWindow:      config.GetDurationEnv("RATE_WINDOW", monitor.DefaultRateWindow),
	})

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := pipeline.NewPrometheusCollector(registry)

	// The pipeline interfaces take nil for disabled collaborators; typed nil
	// pointers inside non-nil interface values would defeat the nil checks.
	var cacheDep pipeline.AssessmentCache
	if assessmentCache != nil {
		cacheDep = assessmentCache
	}
	var auditDep pipeline.AuditStore
	if auditRepo != nil {
		auditDep = auditRepo
	}

	pipelineService := pipeline.NewService(
		features.NewEngineer(),
		scorerService,
		aggregator,
		cacheDep,
		auditDep,
		pipeline.Config{},
		metrics,
	)

	// Create Fiber app
	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "*"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Use("/api/process_transaction", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT_PER_MINUTE", 600),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	// Routes
	routes.SetupRoutes(app, routes.Dependencies{
		Pipeline:   pipelineService,
		Aggregator: aggregator,
		Scorer:     scorerService,
		Audit:      auditRepo,
		AuthSecret: config.GetEnv("AUTH_SECRET", ""),
		Registry:   registry,
	})

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "5000")))
}
