package inference

import (
	"context"
	"math"

	"hirepulse-backend/internal/features"
)

// fallbackWeights are the fixed per-feature weights of the degraded-mode
// linear model, indexed in artifact feature order. They approximate the
// trained classifier's feature importances and must only change alongside
// a documented re-fit.
var fallbackWeights = [features.Dim]float64{
	0.9,  // skill_count
	1.1,  // proficiency_mean
	0.8,  // advanced_ratio
	0.3,  // intermediate_ratio
	-0.4, // beginner_ratio
	1.2,  // experience_months
	0.5,  // job_months_share
	0.2,  // internship_flag
	0.4,  // experience_count
	0.7,  // education_level
	0.2,  // education_count
	0.6,  // project_count
	0.7,  // project_complexity
	0.5,  // tech_breadth
}

const fallbackBias = -2.4

// LinearFallback is the degraded-mode classifier: a fixed linear model with
// a sigmoid squash. Deterministic and dependency-free, it keeps predictions
// flowing when the artifact is not deployed; every result it produces is
// flagged usingFallback so it can never masquerade as the real model.
type LinearFallback struct{}

// PredictStrength scores a feature vector with the fixed linear weights.
func (LinearFallback) PredictStrength(_ context.Context, vec features.Vector) (float64, error) {
	sum := fallbackBias
	for i, w := range fallbackWeights {
		sum += w * vec[i]
	}
	return 1 / (1 + math.Exp(-sum)), nil
}

// Fallback reports true: predictions must be flagged.
func (LinearFallback) Fallback() bool { return true }

var _ Classifier = LinearFallback{}
