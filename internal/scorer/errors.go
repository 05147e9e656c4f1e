package scorer

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable means the classifier failed to load. Scoring cannot be
// served without a model, so startup treats this as fatal.
var ErrModelUnavailable = errors.New("model unavailable")

// FeatureShapeError reports a feature vector whose width does not match the
// model's expected input. It signals integration drift between the feature
// engineer and the trained artifact, not a user error.
type FeatureShapeError struct {
	Got  int
	Want int
}

func (e *FeatureShapeError) Error() string {
	return fmt.Sprintf("feature vector width %d does not match model input width %d", e.Got, e.Want)
}
