package prediction

import "time"

// ShortlistPrediction is the persisted outcome of a predict call. Scores
// are on the 0-100 scale; ShortlistProbability is clamped to [5,95] so a
// prediction never reads as a literal 0% or 100%.
type ShortlistPrediction struct {
	UserID               string    `json:"userId"`
	JobID                string    `json:"jobId"`
	ShortlistProbability int       `json:"shortlistProbability"`
	CandidateStrength    int       `json:"candidateStrength"`
	JobMatchScore        int       `json:"jobMatchScore"`
	MatchedSkills        []string  `json:"matchedSkills"`
	MissingSkills        []string  `json:"missingSkills"`
	WeakSkills           []string  `json:"weakSkills"`
	Improvements         []string  `json:"improvements"`
	UsingFallback        bool      `json:"usingFallback"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Analytics aggregates a user's stored predictions.
type Analytics struct {
	Count          int     `json:"count"`
	AvgProbability float64 `json:"avgProbability"`
	MinProbability int     `json:"minProbability"`
	MaxProbability int     `json:"maxProbability"`
	AvgStrength    float64 `json:"avgStrength"`
	AvgMatchScore  float64 `json:"avgMatchScore"`
}

// Recommendations is the skill-gap guidance for a user/job pair.
type Recommendations struct {
	TopSkillsToLearn []string `json:"topSkillsToLearn"`
	SkillsToImprove  []string `json:"skillsToImprove"`
	// EstimatedImpact is the match-score points the listed skills are
	// estimated to add in total.
	EstimatedImpact int `json:"estimatedImpact"`
}
