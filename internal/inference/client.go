package inference

import (
	"context"
	"errors"

	"hirepulse-backend/internal/features"
)

// ErrUnavailable indicates the classifier artifact cannot be reached or is
// not loaded. In strict mode it surfaces to callers as a 503; it is never
// converted into a plausible-looking score.
var ErrUnavailable = errors.New("classifier unavailable")

// Modes the service can run in. Exactly one is selected at startup; the two
// are never blended within a deployment.
const (
	ModeStrict   = "strict"
	ModeDegraded = "degraded"
)

// Classifier scores a feature vector with a pre-trained model artifact.
// Implementations exist for an out-of-process model service and for the
// documented deterministic fallback; the pipeline is agnostic to which is
// wired in.
type Classifier interface {
	// PredictStrength returns the candidate strength in [0,1].
	PredictStrength(ctx context.Context, vec features.Vector) (float64, error)
	// Fallback reports whether this classifier is the degraded-mode
	// fallback; its predictions must be flagged to callers.
	Fallback() bool
}
