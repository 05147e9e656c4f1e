// Package scorer wraps the trained risk classifier and maps its probability
// output onto discrete risk levels via fixed ascending thresholds.
package scorer

import (
	"fraudwatch/internal/models"
)

// Service scores feature vectors against the loaded model. The threshold
// mapping is a pure function of the probability, so identical inputs always
// produce identical assessments.
type Service struct {
	model    Classifier
	artifact *Artifact
}

// NewService creates a scorer over an already-validated artifact.
func NewService(model Classifier, artifact *Artifact) *Service {
	return &Service{model: model, artifact: artifact}
}

// Load reads the artifact at path and returns a ready scorer. A failure here
// means the process cannot serve its purpose; callers treat it as fatal.
func Load(path string) (*Service, error) {
	artifact, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return NewService(NewLogisticModel(artifact), artifact), nil
}

// Score returns the risk probability and its discrete level for one feature
// vector.
func (s *Service) Score(v models.FeatureVector) (float64, models.RiskLevel, error) {
	if s.model == nil {
		return 0, "", ErrModelUnavailable
	}
	if len(v) != s.model.InputWidth() {
		return 0, "", &FeatureShapeError{Got: len(v), Want: s.model.InputWidth()}
	}

	p, err := s.model.PredictProbability(v)
	if err != nil {
		return 0, "", err
	}
	return p, s.Level(p), nil
}

// Level maps a probability onto a risk level. Boundary values map to the
// higher bucket.
func (s *Service) Level(p float64) models.RiskLevel {
	t := s.artifact.RiskThresholds
	switch {
	case p >= t[2]:
		return models.RiskHigh
	case p >= t[1]:
		return models.RiskMedium
	case p >= t[0]:
		return models.RiskLow
	default:
		return models.RiskMinimal
	}
}

// ReviewThreshold is the score at or above which a transaction needs manual
// review.
func (s *Service) ReviewThreshold() float64 {
	return s.artifact.ReviewThreshold
}

// Artifact exposes the loaded model metadata (name, version, thresholds,
// training metrics) for the model-info surface.
func (s *Service) Artifact() *Artifact {
	return s.artifact
}
