package whatif

import (
	"errors"
	"time"
)

// ErrNotFound indicates no stored simulation for the requested key.
var ErrNotFound = errors.New("simulation not found")

// ScoreSet bundles the three public scores of one computation, on the
// 0-100 scale. It doubles as the delta type, where values may be negative.
type ScoreSet struct {
	ShortlistProbability int `json:"shortlistProbability"`
	CandidateStrength    int `json:"candidateStrength"`
	JobMatchScore        int `json:"jobMatchScore"`
}

// Sub returns the per-score difference s - other.
func (s ScoreSet) Sub(other ScoreSet) ScoreSet {
	return ScoreSet{
		ShortlistProbability: s.ShortlistProbability - other.ShortlistProbability,
		CandidateStrength:    s.CandidateStrength - other.CandidateStrength,
		JobMatchScore:        s.JobMatchScore - other.JobMatchScore,
	}
}

// Result is one completed simulation: the scenario, the scores before and
// after, and their deltas. Results are append-only history.
type Result struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	JobID     string    `json:"jobId"`
	Scenario  Scenario  `json:"scenario"`
	Baseline  ScoreSet  `json:"baseline"`
	Projected ScoreSet  `json:"projected"`
	Deltas    ScoreSet  `json:"deltas"`
	CreatedAt time.Time `json:"createdAt"`
}

// OptimalPlan is the outcome of an optimal-skill-set search.
type OptimalPlan struct {
	TargetProbability    int      `json:"targetProbability"`
	AchievedProbability  int      `json:"achievedProbability"`
	SkillsToLearn        []string `json:"skillsToLearn"`
	SkillsToUpgrade      []string `json:"skillsToUpgrade"`
	EstimatedTimeMonths  int      `json:"estimatedTimeMonths"`
	Reachable            bool     `json:"reachable"`
	BaselineProbability  int      `json:"baselineProbability"`
}
