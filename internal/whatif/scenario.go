package whatif

import (
	"strings"

	"hirepulse-backend/internal/profile"
)

// SkillChange names a skill and the proficiency tier it is set to.
type SkillChange struct {
	Name        string       `json:"name"`
	Proficiency profile.Tier `json:"proficiencyTier"`
}

// Scenario is a hypothetical edit to a candidate profile. Operations apply
// in a fixed order: removals, then additions, then modifications.
type Scenario struct {
	AddSkills    []SkillChange `json:"addSkills,omitempty"`
	RemoveSkills []string      `json:"removeSkills,omitempty"`
	ModifySkills []SkillChange `json:"modifySkills,omitempty"`
}

// Empty reports whether the scenario contains no operations.
func (s Scenario) Empty() bool {
	return len(s.AddSkills) == 0 && len(s.RemoveSkills) == 0 && len(s.ModifySkills) == 0
}

// Apply returns a new profile with the scenario applied. The input profile
// is never mutated; simulations depend on the original staying intact.
// Skill names match case-insensitively. Modifying a skill the candidate
// does not have adds it at the given tier.
func (s Scenario) Apply(p profile.CandidateProfile) profile.CandidateProfile {
	out := p.Clone()

	for _, name := range s.RemoveSkills {
		key := normalizeSkill(name)
		if key == "" {
			continue
		}
		kept := out.Skills[:0]
		for _, sk := range out.Skills {
			if normalizeSkill(sk.Name) != key {
				kept = append(kept, sk)
			}
		}
		out.Skills = kept
	}

	for _, change := range s.AddSkills {
		upsertSkill(&out, change)
	}
	for _, change := range s.ModifySkills {
		upsertSkill(&out, change)
	}
	return out
}

func upsertSkill(p *profile.CandidateProfile, change SkillChange) {
	key := normalizeSkill(change.Name)
	if key == "" {
		return
	}
	tier := profile.ParseTier(string(change.Proficiency))
	for i, sk := range p.Skills {
		if normalizeSkill(sk.Name) == key {
			p.Skills[i].Proficiency = tier
			return
		}
	}
	p.Skills = append(p.Skills, profile.Skill{Name: key, Proficiency: tier})
}

func normalizeSkill(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
