package monitor

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudwatch/internal/models"
)

func assessment(id string, level models.RiskLevel, score float64) models.Assessment {
	return models.Assessment{
		TransactionID:  id,
		RiskScore:      score,
		RiskLevel:      level,
		RequiresReview: score >= 0.5,
		Amount:         1000,
		SenderID:       "s",
		ReceiverID:     "r",
	}
}

func TestAggregator_RecordAndSnapshot(t *testing.T) {
	agg := NewAggregator(Config{})

	agg.Record(assessment("a", models.RiskMinimal, 0.1))
	agg.Record(assessment("b", models.RiskLow, 0.3))
	agg.Record(assessment("c", models.RiskMedium, 0.6))
	agg.Record(assessment("d", models.RiskHigh, 0.9))
	agg.Record(assessment("e", models.RiskHigh, 0.95))

	snap := agg.Snapshot()
	assert.Equal(t, uint64(5), snap.TotalTransactions)
	assert.Equal(t, uint64(2), snap.RiskDistribution.High)
	assert.Equal(t, uint64(1), snap.RiskDistribution.Medium)
	assert.Equal(t, uint64(1), snap.RiskDistribution.Low)
	assert.Equal(t, uint64(1), snap.RiskDistribution.Minimal)
	assert.Equal(t, snap.TotalTransactions, snap.RiskDistribution.Sum())
	assert.Equal(t, uint64(3), snap.PendingReviews)
	assert.Equal(t, uint64(2), snap.AlertsGenerated)
	require.NotNil(t, snap.LastAlertTime)
	assert.Len(t, snap.RecentAlerts, 2)
	assert.Len(t, snap.RecentHighRisk, 2)

	// Newest first
	assert.Equal(t, "e", snap.RecentAlerts[0].TransactionID)
	assert.Equal(t, "d", snap.RecentAlerts[1].TransactionID)
}

func TestAggregator_ConcurrentRecords(t *testing.T) {
	agg := NewAggregator(Config{})

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				level := models.RiskLow
				if i%2 == 0 {
					level = models.RiskMedium
				}
				agg.Record(assessment(fmt.Sprintf("tx-%d-%d", w, i), level, 0.4))
			}
		}(w)
	}
	wg.Wait()

	snap := agg.Snapshot()
	assert.Equal(t, uint64(workers*perWorker), snap.TotalTransactions)
	assert.Equal(t, snap.TotalTransactions, snap.RiskDistribution.Sum())
}

func TestAggregator_BoundedLists(t *testing.T) {
	agg := NewAggregator(Config{AlertListCap: 100, HighRiskListCap: 100})

	for i := 0; i < 150; i++ {
		agg.Record(assessment(fmt.Sprintf("tx-%03d", i), models.RiskHigh, 0.9))
	}

	snap := agg.Snapshot()
	assert.Len(t, snap.RecentAlerts, 100)
	assert.Len(t, snap.RecentHighRisk, 100)
	// Only the most recent entries survive, newest first.
	assert.Equal(t, "tx-149", snap.RecentAlerts[0].TransactionID)
	assert.Equal(t, "tx-050", snap.RecentAlerts[99].TransactionID)
	// Counters keep the full history.
	assert.Equal(t, uint64(150), snap.AlertsGenerated)
	assert.Equal(t, uint64(150), snap.TotalTransactions)
}

func TestAggregator_AlertsSince(t *testing.T) {
	agg := NewAggregator(Config{})

	current := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return current }

	agg.Record(assessment("old", models.RiskHigh, 0.9))
	current = current.Add(30 * time.Hour)
	agg.Record(assessment("recent", models.RiskHigh, 0.9))

	alerts := agg.AlertsSince(24 * time.Hour)
	require.Len(t, alerts, 1)
	assert.Equal(t, "recent", alerts[0].TransactionID)
}

func TestAggregator_HighRiskLimit(t *testing.T) {
	agg := NewAggregator(Config{})
	for i := 0; i < 10; i++ {
		agg.Record(assessment(fmt.Sprintf("tx-%d", i), models.RiskHigh, 0.9))
	}

	assert.Len(t, agg.HighRisk(3), 3)
	assert.Len(t, agg.HighRisk(0), 10)
	assert.Len(t, agg.HighRisk(50), 10)
	assert.Equal(t, "tx-9", agg.HighRisk(1)[0].TransactionID)
}

func TestAggregator_AlertingToggle(t *testing.T) {
	agg := NewAggregator(Config{})

	agg.SetAlerting(false)
	agg.Record(assessment("muted", models.RiskHigh, 0.9))

	snap := agg.Snapshot()
	assert.Empty(t, snap.RecentAlerts)
	assert.Equal(t, uint64(0), snap.AlertsGenerated)
	// High-risk retention and counters are unaffected by the toggle.
	assert.Len(t, snap.RecentHighRisk, 1)
	assert.Equal(t, uint64(1), snap.RiskDistribution.High)

	agg.SetAlerting(true)
	agg.Record(assessment("audible", models.RiskHigh, 0.9))
	assert.Len(t, agg.Snapshot().RecentAlerts, 1)
}

func TestAggregator_ProcessingRate(t *testing.T) {
	agg := NewAggregator(Config{RateWindow: 60 * time.Second})

	current := time.Date(2025, 1, 13, 12, 0, 0, 0, time.UTC)
	agg.now = func() time.Time { return current }

	for i := 0; i < 30; i++ {
		agg.Record(assessment(fmt.Sprintf("tx-%d", i), models.RiskLow, 0.3))
	}

	snap := agg.Snapshot()
	assert.InDelta(t, 0.5, snap.ProcessingRate, 1e-9) // 30 in 60s

	// Everything falls out of the window once time moves on.
	current = current.Add(2 * time.Minute)
	snap = agg.Snapshot()
	assert.Zero(t, snap.ProcessingRate)
	assert.Equal(t, uint64(30), snap.TotalTransactions)
}
