package profile

import "strings"

// Tier is a skill proficiency tier.
type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
)

// ParseTier normalizes a raw tier string, defaulting to Beginner.
func ParseTier(raw string) Tier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "advanced", "expert":
		return TierAdvanced
	case "intermediate":
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// ExperienceType distinguishes jobs from internships.
type ExperienceType string

const (
	ExperienceJob        ExperienceType = "Job"
	ExperienceInternship ExperienceType = "Internship"
)

// Complexity is a project complexity tier.
type Complexity string

const (
	ComplexityLow    Complexity = "Low"
	ComplexityMedium Complexity = "Medium"
	ComplexityHigh   Complexity = "High"
)

// Skill is a named skill at a proficiency tier. Names are matched
// case-insensitively everywhere.
type Skill struct {
	Name        string `json:"name"`
	Proficiency Tier   `json:"proficiencyTier"`
}

// Experience is a single work history entry.
type Experience struct {
	Type           ExperienceType `json:"type"`
	DurationMonths int            `json:"durationMonths"`
}

// Education is a single education entry; Level is an ordinal 0-5.
type Education struct {
	Level int `json:"level"`
}

// Project is a single project entry.
type Project struct {
	TechStack  []string   `json:"techStack"`
	Complexity Complexity `json:"complexityTier"`
}

// CandidateProfile is an immutable snapshot of a candidate. It is passed by
// value into every computation; callers that need a mutated variant clone it.
type CandidateProfile struct {
	UserID     string       `json:"userId"`
	Skills     []Skill      `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
}

// Clone returns a deep copy safe to mutate independently of the original.
func (p CandidateProfile) Clone() CandidateProfile {
	out := CandidateProfile{UserID: p.UserID}
	if p.Skills != nil {
		out.Skills = make([]Skill, len(p.Skills))
		copy(out.Skills, p.Skills)
	}
	if p.Experience != nil {
		out.Experience = make([]Experience, len(p.Experience))
		copy(out.Experience, p.Experience)
	}
	if p.Education != nil {
		out.Education = make([]Education, len(p.Education))
		copy(out.Education, p.Education)
	}
	if p.Projects != nil {
		out.Projects = make([]Project, len(p.Projects))
		for i, proj := range p.Projects {
			out.Projects[i] = Project{
				TechStack:  append([]string(nil), proj.TechStack...),
				Complexity: proj.Complexity,
			}
		}
	}
	return out
}

// SkillNames returns the skill names in profile order.
func (p CandidateProfile) SkillNames() []string {
	names := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		names = append(names, s.Name)
	}
	return names
}

// FindSkill looks up a skill by name, case-insensitively.
func (p CandidateProfile) FindSkill(name string) (Skill, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, s := range p.Skills {
		if strings.ToLower(strings.TrimSpace(s.Name)) == key {
			return s, true
		}
	}
	return Skill{}, false
}
