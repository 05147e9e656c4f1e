// Package cache provides the Redis-backed assessment cache used for
// idempotent re-scoring: a transaction id seen before returns its original
// assessment instead of running the pipeline again.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fraudwatch/internal/models"
)

// AssessmentCache stores assessments keyed by transaction id.
type AssessmentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAssessmentCache creates a cache with the given default TTL.
func NewAssessmentCache(client *redis.Client, ttl time.Duration) *AssessmentCache {
	return &AssessmentCache{client: client, ttl: ttl}
}

func assessmentKey(transactionID string) string {
	return fmt.Sprintf("assessment:%s", transactionID)
}

// Get returns the cached assessment for a transaction id. The second return
// reports whether the id was present.
func (c *AssessmentCache) Get(ctx context.Context, transactionID string) (*models.Assessment, bool, error) {
	data, err := c.client.Get(ctx, assessmentKey(transactionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached assessment: %w", err)
	}

	var assessment models.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached assessment: %w", err)
	}
	return &assessment, true, nil
}

// Set stores one assessment under its transaction id.
func (c *AssessmentCache) Set(ctx context.Context, assessment *models.Assessment) error {
	if assessment == nil {
		return errors.New("cannot cache nil assessment")
	}
	data, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to marshal assessment: %w", err)
	}
	return c.client.Set(ctx, assessmentKey(assessment.TransactionID), data, c.ttl).Err()
}

// Close releases the underlying client.
func (c *AssessmentCache) Close() error {
	return c.client.Close()
}
