package prediction

import (
	"fmt"
	"sort"

	"hirepulse-backend/internal/embedding"
	"hirepulse-backend/internal/profile"
)

// maxImprovements caps the guidance list so the response stays scannable.
const maxImprovements = 7

type rankedSkill struct {
	skill string
	gain  float64
}

// improvements turns the skill partition into ordered guidance strings.
// Missing skills are ranked by how much adding each one alone would raise
// the embedding match score; weak skills follow in name order.
func (s *Service) improvements(p profile.CandidateProfile, part embedding.SkillPartition, jobVec []float64, baseMatch float64) []string {
	out := make([]string, 0, maxImprovements)
	for _, r := range s.rankByImpact(p, part.Missing, jobVec, baseMatch) {
		if len(out) == maxImprovements {
			return out
		}
		out = append(out, fmt.Sprintf("Learn %s", r.skill))
	}
	for _, w := range part.Weak {
		if len(out) == maxImprovements {
			return out
		}
		out = append(out, fmt.Sprintf("Advance %s from Beginner", w))
	}
	return out
}

// rankByImpact scores each missing skill by the match-score gain from adding
// it alone to the candidate's current set, descending. Ties and non-positive
// gains fall back to name order so the output stays deterministic.
func (s *Service) rankByImpact(p profile.CandidateProfile, missing []string, jobVec []float64, baseMatch float64) []rankedSkill {
	base := p.SkillNames()
	ranked := make([]rankedSkill, 0, len(missing))
	for _, m := range missing {
		withSkill := append(append([]string{}, base...), m)
		gain := embedding.CosineSimilarity(s.Embeddings.SkillEmbedding(withSkill), jobVec) - baseMatch
		ranked = append(ranked, rankedSkill{skill: m, gain: gain})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].gain != ranked[j].gain {
			return ranked[i].gain > ranked[j].gain
		}
		return ranked[i].skill < ranked[j].skill
	})
	return ranked
}
