package scorer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudwatch/internal/features"
	"fraudwatch/internal/models"
)

func validArtifact() *Artifact {
	coefficients := make([]float64, features.VectorWidth)
	for i := range coefficients {
		coefficients[i] = 0.05
	}
	return &Artifact{
		ModelName:       "logistic_regression",
		Version:         "test",
		FeaturesUsed:    append([]string(nil), features.SlotNames...),
		Coefficients:    coefficients,
		Intercept:       -1.5,
		RiskThresholds:  []float64{0.2, 0.5, 0.8},
		ReviewThreshold: 0.5,
		HashBuckets: HashBuckets{
			Account:  features.AccountBuckets,
			Category: features.CategoryBuckets,
		},
	}
}

func writeArtifact(t *testing.T, a *Artifact) string {
	t.Helper()
	data, err := json.Marshal(a)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadArtifact(t *testing.T) {
	t.Run("valid artifact loads", func(t *testing.T) {
		a, err := LoadArtifact(writeArtifact(t, validArtifact()))
		require.NoError(t, err)
		assert.Equal(t, "logistic_regression", a.ModelName)
	})

	t.Run("missing file is a model-unavailable error", func(t *testing.T) {
		_, err := LoadArtifact(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})

	t.Run("corrupt file is a model-unavailable error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
		_, err := LoadArtifact(path)
		assert.ErrorIs(t, err, ErrModelUnavailable)
	})
}

func TestArtifact_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Artifact)
	}{
		{name: "wrong feature count", mutate: func(a *Artifact) { a.FeaturesUsed = a.FeaturesUsed[:10] }},
		{name: "coefficient mismatch", mutate: func(a *Artifact) { a.Coefficients = a.Coefficients[:3] }},
		{name: "reordered features", mutate: func(a *Artifact) {
			a.FeaturesUsed[0], a.FeaturesUsed[1] = a.FeaturesUsed[1], a.FeaturesUsed[0]
		}},
		{name: "wrong bucket sizes", mutate: func(a *Artifact) { a.HashBuckets.Category = 9999 }},
		{name: "two thresholds", mutate: func(a *Artifact) { a.RiskThresholds = []float64{0.2, 0.5} }},
		{name: "non-increasing thresholds", mutate: func(a *Artifact) { a.RiskThresholds = []float64{0.5, 0.5, 0.8} }},
		{name: "threshold above one", mutate: func(a *Artifact) { a.RiskThresholds = []float64{0.2, 0.5, 1.0} }},
		{name: "review threshold out of range", mutate: func(a *Artifact) { a.ReviewThreshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validArtifact()
			tt.mutate(a)
			_, err := LoadArtifact(writeArtifact(t, a))
			assert.ErrorIs(t, err, ErrModelUnavailable)
		})
	}
}

func TestService_Level(t *testing.T) {
	svc := NewService(NewLogisticModel(validArtifact()), validArtifact())

	tests := []struct {
		p    float64
		want models.RiskLevel
	}{
		{0, models.RiskMinimal},
		{0.1999, models.RiskMinimal},
		{0.2, models.RiskLow}, // boundary maps to the higher bucket
		{0.49, models.RiskLow},
		{0.5, models.RiskMedium},
		{0.79, models.RiskMedium},
		{0.8, models.RiskHigh},
		{1, models.RiskHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.Level(tt.p), "p=%v", tt.p)
	}
}

func TestService_Level_Monotonic(t *testing.T) {
	svc := NewService(NewLogisticModel(validArtifact()), validArtifact())

	prev := models.RiskMinimal
	for p := 0.0; p <= 1.0; p += 0.001 {
		level := svc.Level(p)
		assert.GreaterOrEqual(t, level.Rank(), prev.Rank(), "level decreased at p=%v", p)
		prev = level
	}
}

func TestService_Score(t *testing.T) {
	artifact := validArtifact()
	svc := NewService(NewLogisticModel(artifact), artifact)

	t.Run("probability in range and deterministic", func(t *testing.T) {
		v := make(models.FeatureVector, features.VectorWidth)
		for i := range v {
			v[i] = float64(i)
		}

		p1, level1, err := svc.Score(v)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p1, 0.0)
		assert.LessOrEqual(t, p1, 1.0)

		p2, level2, err := svc.Score(v)
		require.NoError(t, err)
		assert.Equal(t, p1, p2)
		assert.Equal(t, level1, level2)
	})

	t.Run("wrong width is a feature shape error", func(t *testing.T) {
		_, _, err := svc.Score(make(models.FeatureVector, 5))
		var serr *FeatureShapeError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 5, serr.Got)
		assert.Equal(t, features.VectorWidth, serr.Want)
	})
}

func TestLogisticModel_Standardization(t *testing.T) {
	a := validArtifact()
	a.FeatureMeans = make([]float64, features.VectorWidth)
	a.FeatureStds = make([]float64, features.VectorWidth)
	for i := range a.FeatureStds {
		a.FeatureMeans[i] = 10
		a.FeatureStds[i] = 2
	}
	model := NewLogisticModel(a)

	// A vector equal to the means standardizes to zero, so the probability
	// collapses to sigmoid(intercept).
	v := make(models.FeatureVector, features.VectorWidth)
	for i := range v {
		v[i] = 10
	}
	p, err := model.PredictProbability(v)
	require.NoError(t, err)
	assert.InDelta(t, 0.18242552, p, 1e-6) // sigmoid(-1.5)
}
