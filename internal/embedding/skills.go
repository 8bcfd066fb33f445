package embedding

import (
	"sort"
	"strings"

	"hirepulse-backend/internal/profile"
)

// SkillPartition classifies a job's required skills against a candidate's
// skill set. Invariants: Matched and Missing are disjoint; Weak is a subset
// of Matched.
type SkillPartition struct {
	Matched []string `json:"matchedSkills"`
	Missing []string `json:"missingSkills"`
	Weak    []string `json:"weakSkills"`
}

// PartitionSkills compares required skills against candidate skills,
// case-insensitively. Matched holds required skills the candidate has at
// any tier, Missing the rest, Weak the matched skills held only at
// Beginner. Output slices are lowercase, deduplicated and sorted.
func PartitionSkills(candidate []profile.Skill, required []string) SkillPartition {
	tierByName := make(map[string]profile.Tier, len(candidate))
	for _, s := range candidate {
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key == "" {
			continue
		}
		// Duplicate names are treated as a set; keep the strongest tier.
		if existing, ok := tierByName[key]; !ok || tierRank(s.Proficiency) > tierRank(existing) {
			tierByName[key] = s.Proficiency
		}
	}

	part := SkillPartition{
		Matched: []string{},
		Missing: []string{},
		Weak:    []string{},
	}
	seen := make(map[string]bool, len(required))
	for _, r := range required {
		key := strings.ToLower(strings.TrimSpace(r))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		tier, ok := tierByName[key]
		if !ok {
			part.Missing = append(part.Missing, key)
			continue
		}
		part.Matched = append(part.Matched, key)
		if tier == profile.TierBeginner {
			part.Weak = append(part.Weak, key)
		}
	}
	sort.Strings(part.Matched)
	sort.Strings(part.Missing)
	sort.Strings(part.Weak)
	return part
}

func tierRank(t profile.Tier) int {
	switch t {
	case profile.TierAdvanced:
		return 3
	case profile.TierIntermediate:
		return 2
	default:
		return 1
	}
}
