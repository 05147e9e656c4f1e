package scorer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"fraudwatch/internal/features"
	"fraudwatch/internal/models"
)

// Classifier is the opaque trained-model capability the scorer wraps. Any
// model family can sit behind it as long as it maps a feature vector to a
// probability in [0,1].
type Classifier interface {
	PredictProbability(v models.FeatureVector) (float64, error)
	InputWidth() int
}

// HashBuckets records the categorical bucket sizes an artifact was trained
// against.
type HashBuckets struct {
	Account  uint64 `json:"account"`
	Category uint64 `json:"category"`
}

// Artifact is the on-disk trained model document. It replaces retraining-side
// serialization with a flat, versioned format the service can load at start.
type Artifact struct {
	ModelName       string             `json:"model_name"`
	Version         string             `json:"version"`
	FeaturesUsed    []string           `json:"features_used"`
	Coefficients    []float64          `json:"coefficients"`
	Intercept       float64            `json:"intercept"`
	FeatureMeans    []float64          `json:"feature_means"`
	FeatureStds     []float64          `json:"feature_stds"`
	RiskThresholds  []float64          `json:"risk_thresholds"`
	ReviewThreshold float64            `json:"review_threshold"`
	HashBuckets     HashBuckets        `json:"hash_buckets"`
	Metrics         map[string]float64 `json:"metrics"`
}

// LoadArtifact reads and validates a model artifact. Every failure wraps
// ErrModelUnavailable so callers can treat load problems uniformly.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrModelUnavailable, path, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrModelUnavailable, path, err)
	}

	if err := a.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return &a, nil
}

func (a *Artifact) validate() error {
	width := len(a.FeaturesUsed)
	if width == 0 {
		return fmt.Errorf("artifact lists no features")
	}
	if width != features.VectorWidth {
		return fmt.Errorf("artifact expects %d features, encoder produces %d", width, features.VectorWidth)
	}
	if len(a.Coefficients) != width {
		return fmt.Errorf("got %d coefficients for %d features", len(a.Coefficients), width)
	}
	if len(a.FeatureMeans) != 0 && len(a.FeatureMeans) != width {
		return fmt.Errorf("got %d feature means for %d features", len(a.FeatureMeans), width)
	}
	if len(a.FeatureStds) != 0 && len(a.FeatureStds) != width {
		return fmt.Errorf("got %d feature stds for %d features", len(a.FeatureStds), width)
	}
	for i, name := range a.FeaturesUsed {
		if name != features.SlotNames[i] {
			return fmt.Errorf("feature slot %d is %q, encoder produces %q", i, name, features.SlotNames[i])
		}
	}
	if a.HashBuckets.Account != features.AccountBuckets || a.HashBuckets.Category != features.CategoryBuckets {
		return fmt.Errorf("artifact hash buckets (%d, %d) disagree with encoder (%d, %d)",
			a.HashBuckets.Account, a.HashBuckets.Category, features.AccountBuckets, features.CategoryBuckets)
	}
	if len(a.RiskThresholds) != 3 {
		return fmt.Errorf("got %d risk thresholds, want 3", len(a.RiskThresholds))
	}
	prev := 0.0
	for i, t := range a.RiskThresholds {
		if t <= prev || t >= 1 {
			return fmt.Errorf("risk thresholds must be strictly increasing within (0,1), got %v", a.RiskThresholds)
		}
		prev = a.RiskThresholds[i]
	}
	if a.ReviewThreshold <= 0 || a.ReviewThreshold >= 1 {
		return fmt.Errorf("review threshold %v outside (0,1)", a.ReviewThreshold)
	}
	return nil
}

// LogisticModel is a logistic-regression classifier over standardized
// features. It is stateless after construction and safe for concurrent use.
type LogisticModel struct {
	coefficients []float64
	intercept    float64
	means        []float64
	stds         []float64
}

// NewLogisticModel builds the classifier from an artifact's parameters.
func NewLogisticModel(a *Artifact) *LogisticModel {
	return &LogisticModel{
		coefficients: a.Coefficients,
		intercept:    a.Intercept,
		means:        a.FeatureMeans,
		stds:         a.FeatureStds,
	}
}

// InputWidth returns the feature vector width the model expects.
func (m *LogisticModel) InputWidth() int {
	return len(m.coefficients)
}

// PredictProbability computes sigmoid(intercept + coef · standardize(v)).
func (m *LogisticModel) PredictProbability(v models.FeatureVector) (float64, error) {
	if len(v) != len(m.coefficients) {
		return 0, &FeatureShapeError{Got: len(v), Want: len(m.coefficients)}
	}

	z := m.intercept
	for i, x := range v {
		if len(m.means) > 0 {
			x -= m.means[i]
		}
		if len(m.stds) > 0 && m.stds[i] != 0 {
			x /= m.stds[i]
		}
		z += m.coefficients[i] * x
	}
	return 1 / (1 + math.Exp(-z)), nil
}
