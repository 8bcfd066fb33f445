package features

import (
	"strings"

	"hirepulse-backend/internal/profile"
)

// Dim is the fixed length of every feature vector. The classifier artifact
// contract depends on this exact length and ordering; changing either is a
// breaking change that requires retraining.
const Dim = 14

// Vector is a fixed-length ordered feature vector. Every dimension is a
// deterministic transform of CandidateProfile fields bounded to [0,1].
type Vector [Dim]float64

// Feature indices, in artifact order.
const (
	SkillCount        = iota // skill count, min(n/10, 1)
	ProficiencyMean          // mean tier weight: Advanced 1.0, Intermediate 0.75, Beginner 0.5
	AdvancedRatio            // advanced skills / total skills
	IntermediateRatio        // intermediate skills / total skills
	BeginnerRatio            // beginner skills / total skills
	ExperienceMonths         // saturation curve months/(months+24)
	JobMonthsShare           // job (non-internship) months / total months
	InternshipFlag           // 1 if any internship entry exists
	ExperienceCount          // experience entries, min(n/5, 1)
	EducationLevel           // best ordinal level / 5
	EducationCount           // education entries, min(n/3, 1)
	ProjectCount             // project entries, min(n/5, 1)
	ProjectComplexity        // mean complexity: Low 0.3, Medium 0.6, High 1.0
	TechBreadth              // distinct project techs, min(n/15, 1)
)

// Names lists the feature names in vector order, matching the artifact
// contract used at training time.
var Names = [Dim]string{
	"skill_count",
	"proficiency_mean",
	"advanced_ratio",
	"intermediate_ratio",
	"beginner_ratio",
	"experience_months",
	"job_months_share",
	"internship_flag",
	"experience_count",
	"education_level",
	"education_count",
	"project_count",
	"project_complexity",
	"tech_breadth",
}

func tierWeight(t profile.Tier) float64 {
	switch t {
	case profile.TierAdvanced:
		return 1.0
	case profile.TierIntermediate:
		return 0.75
	default:
		return 0.5
	}
}

func complexityWeight(c profile.Complexity) float64 {
	switch c {
	case profile.ComplexityHigh:
		return 1.0
	case profile.ComplexityMedium:
		return 0.6
	default:
		return 0.3
	}
}

// Extract derives the feature vector from a candidate profile. It is a pure
// function: identical profiles yield bit-identical vectors. Absent sub-lists
// contribute zeros rather than errors.
func Extract(p profile.CandidateProfile) Vector {
	var v Vector

	if n := len(p.Skills); n > 0 {
		v[SkillCount] = capRatio(float64(n), 10)
		var sum float64
		var advanced, intermediate, beginner int
		for _, s := range p.Skills {
			w := tierWeight(s.Proficiency)
			sum += w
			switch s.Proficiency {
			case profile.TierAdvanced:
				advanced++
			case profile.TierIntermediate:
				intermediate++
			default:
				beginner++
			}
		}
		v[ProficiencyMean] = sum / float64(n)
		v[AdvancedRatio] = float64(advanced) / float64(n)
		v[IntermediateRatio] = float64(intermediate) / float64(n)
		v[BeginnerRatio] = float64(beginner) / float64(n)
	}

	if n := len(p.Experience); n > 0 {
		var totalMonths, jobMonths int
		hasInternship := false
		for _, e := range p.Experience {
			months := e.DurationMonths
			if months < 0 {
				months = 0
			}
			totalMonths += months
			if e.Type == profile.ExperienceInternship {
				hasInternship = true
			} else {
				jobMonths += months
			}
		}
		// Asymptotic saturation: 0.5 at two years, approaching 1 slowly after.
		v[ExperienceMonths] = float64(totalMonths) / (float64(totalMonths) + 24)
		if totalMonths > 0 {
			v[JobMonthsShare] = float64(jobMonths) / float64(totalMonths)
		}
		if hasInternship {
			v[InternshipFlag] = 1
		}
		v[ExperienceCount] = capRatio(float64(n), 5)
	}

	if n := len(p.Education); n > 0 {
		best := 0
		for _, e := range p.Education {
			level := e.Level
			if level < 0 {
				level = 0
			}
			if level > 5 {
				level = 5
			}
			if level > best {
				best = level
			}
		}
		v[EducationLevel] = float64(best) / 5
		v[EducationCount] = capRatio(float64(n), 3)
	}

	if n := len(p.Projects); n > 0 {
		v[ProjectCount] = capRatio(float64(n), 5)
		var sum float64
		techs := make(map[string]bool)
		for _, proj := range p.Projects {
			sum += complexityWeight(proj.Complexity)
			for _, tech := range proj.TechStack {
				key := strings.ToLower(strings.TrimSpace(tech))
				if key != "" {
					techs[key] = true
				}
			}
		}
		v[ProjectComplexity] = sum / float64(n)
		v[TechBreadth] = capRatio(float64(len(techs)), 15)
	}

	return v
}

func capRatio(n, limit float64) float64 {
	r := n / limit
	if r > 1 {
		return 1
	}
	return r
}
