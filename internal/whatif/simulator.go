package whatif

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"hirepulse-backend/internal/jobs"
	"hirepulse-backend/internal/prediction"
	"hirepulse-backend/internal/profile"
	"hirepulse-backend/internal/shared/metrics"
	"hirepulse-backend/internal/shared/telemetry"
)

const (
	// maxScenarios bounds a multi-scenario comparison request.
	maxScenarios = 10
	// maxSearchCandidates bounds the change pool of an optimal search.
	maxSearchCandidates = 20
	// monthsPerLearned and monthsPerUpgraded feed the time estimate of an
	// optimal plan.
	monthsPerLearned  = 2
	monthsPerUpgraded = 1
)

// ErrTooManyScenarios indicates a comparison request over the limit.
var ErrTooManyScenarios = errors.New("too many scenarios")

// Simulator runs what-if scenarios. Every projection is a full recompute of
// the prediction pipeline on a hypothetical profile; stored predictions and
// caches of derived scores are never consulted.
type Simulator struct {
	Profiles    profile.Store
	Jobs        jobs.Store
	Predictions *prediction.Service
	Repo        Repo
}

// Simulate applies one scenario and returns baseline, projected and delta
// scores. The result is appended to the user's simulation history.
func (s *Simulator) Simulate(ctx context.Context, userID, jobID string, scenario Scenario) (Result, error) {
	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return Result{}, err
	}

	baseline, err := s.Predictions.Compute(ctx, p, job)
	if err != nil {
		return Result{}, err
	}
	projected, err := s.Predictions.Compute(ctx, scenario.Apply(p), job)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     jobID,
		Scenario:  scenario,
		Baseline:  toScoreSet(baseline),
		Projected: toScoreSet(projected),
		CreatedAt: time.Now().UTC(),
	}
	result.Deltas = result.Projected.Sub(result.Baseline)

	if err := s.Repo.Append(ctx, result); err != nil {
		return Result{}, err
	}
	metrics.IncSimulation()

	telemetry.Info("whatif.simulated", map[string]any{
		"user_id":     userID,
		"job_id":      jobID,
		"baseline":    result.Baseline.ShortlistProbability,
		"projected":   result.Projected.ShortlistProbability,
		"delta":       result.Deltas.ShortlistProbability,
	})
	return result, nil
}

// SimulateMany runs up to maxScenarios scenarios independently against the
// same baseline profile. Scenarios never compound.
func (s *Simulator) SimulateMany(ctx context.Context, userID, jobID string, scenarios []Scenario) ([]Result, error) {
	if len(scenarios) > maxScenarios {
		return nil, ErrTooManyScenarios
	}
	out := make([]Result, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := s.Simulate(ctx, userID, jobID, scenario)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

// History returns a user's past simulations for a job, newest first.
func (s *Simulator) History(ctx context.Context, userID, jobID string, limit int) ([]Result, error) {
	return s.Repo.ListByUserJob(ctx, userID, jobID, limit)
}

type searchChange struct {
	skill   string
	upgrade bool
}

// FindOptimal searches greedily for the smallest skill change set that
// lifts the shortlist probability to the target. Candidate changes are the
// job's missing skills (learned at Intermediate) and the candidate's weak
// skills (raised to Advanced). Each round applies the single change with
// the best probability gain; the search stops when the target is reached,
// the change budget is spent, or no change still improves the score.
func (s *Simulator) FindOptimal(ctx context.Context, userID, jobID string, target, maxSkills int) (OptimalPlan, error) {
	if target > 95 {
		target = 95
	}
	if target < 5 {
		target = 5
	}
	if maxSkills <= 0 {
		maxSkills = 5
	}
	if maxSkills > maxSearchCandidates {
		maxSkills = maxSearchCandidates
	}

	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return OptimalPlan{}, err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return OptimalPlan{}, err
	}

	baseline, err := s.Predictions.Compute(ctx, p, job)
	if err != nil {
		return OptimalPlan{}, err
	}

	plan := OptimalPlan{
		TargetProbability:   target,
		AchievedProbability: prediction.ToScale(baseline.Probability),
		BaselineProbability: prediction.ToScale(baseline.Probability),
		SkillsToLearn:       []string{},
		SkillsToUpgrade:     []string{},
	}

	pool := make([]searchChange, 0, len(baseline.Partition.Missing)+len(baseline.Partition.Weak))
	for _, m := range baseline.Partition.Missing {
		pool = append(pool, searchChange{skill: m})
	}
	for _, w := range baseline.Partition.Weak {
		pool = append(pool, searchChange{skill: w, upgrade: true})
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i].skill < pool[j].skill })
	if len(pool) > maxSearchCandidates {
		pool = pool[:maxSearchCandidates]
	}

	current := p.Clone()
	best := plan.AchievedProbability

	for len(pool) > 0 && best < target && len(plan.SkillsToLearn)+len(plan.SkillsToUpgrade) < maxSkills {
		bestIdx := -1
		bestScore := best
		for i, change := range pool {
			trial := applyChange(current, change)
			comp, err := s.Predictions.Compute(ctx, trial, job)
			if err != nil {
				return OptimalPlan{}, err
			}
			if score := prediction.ToScale(comp.Probability); score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}

		picked := pool[bestIdx]
		current = applyChange(current, picked)
		best = bestScore
		if picked.upgrade {
			plan.SkillsToUpgrade = append(plan.SkillsToUpgrade, picked.skill)
		} else {
			plan.SkillsToLearn = append(plan.SkillsToLearn, picked.skill)
		}
		pool = append(pool[:bestIdx], pool[bestIdx+1:]...)
	}

	chosen := make([]searchChange, 0, len(plan.SkillsToLearn)+len(plan.SkillsToUpgrade))
	for _, name := range plan.SkillsToLearn {
		chosen = append(chosen, searchChange{skill: name})
	}
	for _, name := range plan.SkillsToUpgrade {
		chosen = append(chosen, searchChange{skill: name, upgrade: true})
	}

	if best >= target {
		chosen, best, err = s.prune(ctx, p, job, chosen, target)
		if err != nil {
			return OptimalPlan{}, err
		}
		plan.SkillsToLearn = plan.SkillsToLearn[:0]
		plan.SkillsToUpgrade = plan.SkillsToUpgrade[:0]
		for _, change := range chosen {
			if change.upgrade {
				plan.SkillsToUpgrade = append(plan.SkillsToUpgrade, change.skill)
			} else {
				plan.SkillsToLearn = append(plan.SkillsToLearn, change.skill)
			}
		}
	}

	plan.AchievedProbability = best
	plan.Reachable = best >= target
	plan.EstimatedTimeMonths = monthsPerLearned*len(plan.SkillsToLearn) + monthsPerUpgraded*len(plan.SkillsToUpgrade)
	return plan, nil
}

// prune drops greedily chosen changes that turned out redundant: each one is
// removed in turn, and stays out if the remaining set still reaches the
// target. Returns the trimmed set and its achieved probability.
func (s *Simulator) prune(ctx context.Context, p profile.CandidateProfile, job jobs.JobPosting, chosen []searchChange, target int) ([]searchChange, int, error) {
	score := func(changes []searchChange) (int, error) {
		trial := p.Clone()
		for _, change := range changes {
			trial = applyChange(trial, change)
		}
		comp, err := s.Predictions.Compute(ctx, trial, job)
		if err != nil {
			return 0, err
		}
		return prediction.ToScale(comp.Probability), nil
	}

	current, err := score(chosen)
	if err != nil {
		return nil, 0, err
	}
	for i := 0; i < len(chosen); {
		without := append(append([]searchChange{}, chosen[:i]...), chosen[i+1:]...)
		reduced, err := score(without)
		if err != nil {
			return nil, 0, err
		}
		if reduced >= target {
			chosen = without
			current = reduced
			continue
		}
		i++
	}
	return chosen, current, nil
}

func applyChange(p profile.CandidateProfile, change searchChange) profile.CandidateProfile {
	tier := profile.TierIntermediate
	if change.upgrade {
		tier = profile.TierAdvanced
	}
	return Scenario{AddSkills: []SkillChange{{Name: change.skill, Proficiency: tier}}}.Apply(p)
}

func toScoreSet(comp prediction.Computation) ScoreSet {
	return ScoreSet{
		ShortlistProbability: prediction.ToScale(comp.Probability),
		CandidateStrength:    prediction.ToScale(comp.Strength),
		JobMatchScore:        prediction.ToScale(comp.MatchScore),
	}
}
