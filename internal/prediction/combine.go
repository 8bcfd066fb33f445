package prediction

import "math"

// Combination weights and clamp bounds. The final probability is a weighted
// sum, not a product: multiplying the signals degenerates toward zero when
// either one is weak, which destroys the feedback the score exists to give.
// The clamp keeps every prediction inside (0,1) so it always carries signal.
const (
	strengthWeight   = 0.4
	matchWeight      = 0.6
	probabilityFloor = 0.05
	probabilityCeil  = 0.95
)

// Combine merges candidate strength and job match score (both in [0,1])
// into the clamped shortlist probability. Pure function.
func Combine(strength, matchScore float64) float64 {
	raw := strengthWeight*strength + matchWeight*matchScore
	if raw < probabilityFloor {
		return probabilityFloor
	}
	if raw > probabilityCeil {
		return probabilityCeil
	}
	return raw
}

// ToScale converts a [0,1] score to the public 0-100 integer scale.
func ToScale(v float64) int {
	return int(math.Round(v * 100))
}
