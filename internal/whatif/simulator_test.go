package whatif

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hirepulse-backend/internal/embedding"
	"hirepulse-backend/internal/features"
	"hirepulse-backend/internal/inference"
	"hirepulse-backend/internal/jobs"
	"hirepulse-backend/internal/prediction"
	"hirepulse-backend/internal/profile"
)

type stubClassifier struct {
	strength float64
	err      error
}

func (s stubClassifier) PredictStrength(_ context.Context, _ features.Vector) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.strength, nil
}

func (s stubClassifier) Fallback() bool { return false }

func newTestSimulator(t *testing.T, clf inference.Classifier) (*Simulator, profile.Store, jobs.Store) {
	t.Helper()
	profiles := profile.NewMemoryStore()
	jobStore := jobs.NewMemoryStore()
	predSvc := &prediction.Service{
		Profiles:   profiles,
		Jobs:       jobStore,
		Classifier: clf,
		Embeddings: embedding.NewEngine(nil),
		Repo:       prediction.NewMemoryRepo(),
	}
	sim := &Simulator{
		Profiles:    profiles,
		Jobs:        jobStore,
		Predictions: predSvc,
		Repo:        NewMemoryRepo(),
	}
	return sim, profiles, jobStore
}

func seedPair(t *testing.T, profiles profile.Store, jobStore jobs.Store) {
	t.Helper()
	ctx := context.Background()
	if err := profiles.Put(ctx, profile.CandidateProfile{
		UserID: "user-1",
		Skills: []profile.Skill{
			{Name: "python", Proficiency: profile.TierAdvanced},
			{Name: "sql", Proficiency: profile.TierBeginner},
		},
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := jobStore.Put(ctx, jobs.JobPosting{
		ID:             "job-1",
		Title:          "Data Engineer",
		Description:    "python sql docker pipelines",
		RequiredSkills: []string{"python", "sql", "docker"},
	}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
}

func TestSimulateDeltasMatchFullRecompute(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)
	ctx := context.Background()

	scenario := Scenario{
		AddSkills: []SkillChange{{Name: "docker", Proficiency: profile.TierIntermediate}},
	}
	result, err := sim.Simulate(ctx, "user-1", "job-1", scenario)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	// The projected scores must equal an independent computation on the
	// modified profile: no shortcut path exists.
	p, err := profiles.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	job, err := jobStore.Get(ctx, "job-1")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	fresh, err := sim.Predictions.Compute(ctx, scenario.Apply(p), job)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if result.Projected.ShortlistProbability != prediction.ToScale(fresh.Probability) {
		t.Fatalf("projected %d != fresh recompute %d",
			result.Projected.ShortlistProbability, prediction.ToScale(fresh.Probability))
	}

	if got := result.Projected.Sub(result.Baseline); got != result.Deltas {
		t.Fatalf("deltas %+v inconsistent with baseline/projected", result.Deltas)
	}
}

func TestSimulateAddingRequiredSkillDoesNotLowerMatch(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	result, err := sim.Simulate(context.Background(), "user-1", "job-1", Scenario{
		AddSkills: []SkillChange{{Name: "docker", Proficiency: profile.TierIntermediate}},
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if result.Deltas.JobMatchScore < 0 {
		t.Fatalf("adding a required missing skill lowered the match score by %d", result.Deltas.JobMatchScore)
	}
}

func TestSimulateMatchHoldsWithSkillHeavyDescription(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	ctx := context.Background()

	// A posting whose description repeats a skill the candidate already
	// holds must not drag the match score down when the other required
	// skill is acquired.
	if err := profiles.Put(ctx, profile.CandidateProfile{
		UserID: "user-1",
		Skills: []profile.Skill{{Name: "python", Proficiency: profile.TierAdvanced}},
	}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if err := jobStore.Put(ctx, jobs.JobPosting{
		ID:             "job-heavy",
		Title:          "Python Developer",
		Description:    strings.Repeat("python ", 10),
		RequiredSkills: []string{"python", "docker"},
	}); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	result, err := sim.Simulate(ctx, "user-1", "job-heavy", Scenario{
		AddSkills: []SkillChange{{Name: "docker", Proficiency: profile.TierIntermediate}},
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if result.Deltas.JobMatchScore < 0 {
		t.Fatalf("match score fell by %d after acquiring required skill (baseline %d, projected %d)",
			-result.Deltas.JobMatchScore, result.Baseline.JobMatchScore, result.Projected.JobMatchScore)
	}
	if result.Deltas.ShortlistProbability < 0 {
		t.Fatalf("probability fell by %d after acquiring required skill",
			-result.Deltas.ShortlistProbability)
	}
}

func TestSimulateLeavesStoredProfileUntouched(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)
	ctx := context.Background()

	if _, err := sim.Simulate(ctx, "user-1", "job-1", Scenario{
		RemoveSkills: []string{"python"},
	}); err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	p, err := profiles.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if _, ok := p.FindSkill("python"); !ok {
		t.Fatal("simulation must not mutate the stored profile")
	}
}

func TestSimulateAppendsHistory(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)
	ctx := context.Background()

	scenario := Scenario{AddSkills: []SkillChange{{Name: "docker", Proficiency: profile.TierIntermediate}}}
	for i := 0; i < 3; i++ {
		if _, err := sim.Simulate(ctx, "user-1", "job-1", scenario); err != nil {
			t.Fatalf("Simulate: %v", err)
		}
	}

	history, err := sim.History(ctx, "user-1", "job-1", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(history))
	}
	seen := make(map[string]bool)
	for _, h := range history {
		if h.ID == "" || seen[h.ID] {
			t.Fatalf("expected unique non-empty ids, got %q", h.ID)
		}
		seen[h.ID] = true
	}
}

func TestSimulateManyIsIndependent(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)
	ctx := context.Background()

	scenarios := []Scenario{
		{AddSkills: []SkillChange{{Name: "docker", Proficiency: profile.TierIntermediate}}},
		{AddSkills: []SkillChange{{Name: "docker", Proficiency: profile.TierIntermediate}}},
	}
	results, err := sim.SimulateMany(ctx, "user-1", "job-1", scenarios)
	if err != nil {
		t.Fatalf("SimulateMany: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// Identical scenarios against the same baseline must agree: earlier
	// scenarios never compound into later ones.
	if results[0].Projected != results[1].Projected || results[0].Baseline != results[1].Baseline {
		t.Fatalf("scenarios compounded: %+v vs %+v", results[0], results[1])
	}
}

func TestSimulateManyRejectsOversizedBatch(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	scenarios := make([]Scenario, maxScenarios+1)
	for i := range scenarios {
		scenarios[i] = Scenario{RemoveSkills: []string{"sql"}}
	}
	if _, err := sim.SimulateMany(context.Background(), "user-1", "job-1", scenarios); !errors.Is(err, ErrTooManyScenarios) {
		t.Fatalf("expected ErrTooManyScenarios, got %v", err)
	}
}

func TestSimulateUnknownJob(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	_, err := sim.Simulate(context.Background(), "user-1", "job-missing", Scenario{RemoveSkills: []string{"sql"}})
	if !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound, got %v", err)
	}
}

func TestFindOptimalReachesTargetOrReportsNot(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	plan, err := sim.FindOptimal(context.Background(), "user-1", "job-1", 40, 5)
	if err != nil {
		t.Fatalf("FindOptimal: %v", err)
	}
	if plan.Reachable && plan.AchievedProbability < plan.TargetProbability {
		t.Fatalf("reachable plan below target: %+v", plan)
	}
	if !plan.Reachable && plan.AchievedProbability >= plan.TargetProbability {
		t.Fatalf("unreachable plan at or above target: %+v", plan)
	}
	if plan.AchievedProbability < plan.BaselineProbability {
		t.Fatalf("plan must never score below baseline: %+v", plan)
	}
	wantMonths := 2*len(plan.SkillsToLearn) + len(plan.SkillsToUpgrade)
	if plan.EstimatedTimeMonths != wantMonths {
		t.Fatalf("expected %d months, got %d", wantMonths, plan.EstimatedTimeMonths)
	}
}

func TestFindOptimalUnreachableTarget(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.1})
	seedPair(t, profiles, jobStore)

	plan, err := sim.FindOptimal(context.Background(), "user-1", "job-1", 95, 2)
	if err != nil {
		t.Fatalf("FindOptimal: %v", err)
	}
	if plan.Reachable {
		t.Fatalf("expected unreachable plan, got %+v", plan)
	}
	if len(plan.SkillsToLearn)+len(plan.SkillsToUpgrade) > 2 {
		t.Fatalf("plan exceeds change budget: %+v", plan)
	}
}

func TestFindOptimalLowTargetNeedsNoChanges(t *testing.T) {
	sim, profiles, jobStore := newTestSimulator(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	plan, err := sim.FindOptimal(context.Background(), "user-1", "job-1", 5, 5)
	if err != nil {
		t.Fatalf("FindOptimal: %v", err)
	}
	if !plan.Reachable {
		t.Fatalf("floor target must always be reachable: %+v", plan)
	}
	if len(plan.SkillsToLearn)+len(plan.SkillsToUpgrade) != 0 {
		t.Fatalf("expected empty change set for floor target, got %+v", plan)
	}
}
