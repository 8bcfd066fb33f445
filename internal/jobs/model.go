package jobs

import (
	"sort"
	"strings"
)

// JobPosting is a job a candidate can be matched against.
type JobPosting struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"requiredSkills"`
	ExperienceLevel string   `json:"experienceLevel"`
}

// Text returns the full free text of the posting.
func (j JobPosting) Text() string {
	text := j.Title
	if j.Description != "" {
		text += " " + j.Description
	}
	for _, s := range j.RequiredSkills {
		text += " " + s
	}
	return text
}

// MatchText returns the text the match-score embedding is computed from.
// Scoring happens in the required-skill token space: a description that
// repeats a skill the candidate already holds would otherwise outweigh a
// newly acquired required skill and let the match score drop when it must
// not. Skills are lowercased, deduplicated and sorted so equal skill sets
// embed identically. Postings without listed skills fall back to the full
// text.
func (j JobPosting) MatchText() string {
	if len(j.RequiredSkills) == 0 {
		return j.Text()
	}
	seen := make(map[string]bool, len(j.RequiredSkills))
	out := make([]string, 0, len(j.RequiredSkills))
	for _, s := range j.RequiredSkills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}
