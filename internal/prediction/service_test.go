package prediction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hirepulse-backend/internal/embedding"
	"hirepulse-backend/internal/features"
	"hirepulse-backend/internal/inference"
	"hirepulse-backend/internal/jobs"
	"hirepulse-backend/internal/profile"
)

type stubClassifier struct {
	strength float64
	err      error
	fallback bool
}

func (s stubClassifier) PredictStrength(_ context.Context, _ features.Vector) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.strength, nil
}

func (s stubClassifier) Fallback() bool { return s.fallback }

func newTestService(t *testing.T, clf inference.Classifier) (*Service, profile.Store, jobs.Store) {
	t.Helper()
	profiles := profile.NewMemoryStore()
	jobStore := jobs.NewMemoryStore()
	svc := &Service{
		Profiles:   profiles,
		Jobs:       jobStore,
		Classifier: clf,
		Embeddings: embedding.NewEngine(nil),
		Repo:       NewMemoryRepo(),
	}
	return svc, profiles, jobStore
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
		Experience: []profile.Experience{{Type: profile.ExperienceJob, DurationMonths: 24}},
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

func TestPredictStoresAndReturnsPrediction(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.62})
	seedPair(t, profiles, jobStore)

	pred, err := svc.Predict(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if pred.ShortlistProbability < 5 || pred.ShortlistProbability > 95 {
		t.Fatalf("probability out of [5,95]: %d", pred.ShortlistProbability)
	}
	if pred.CandidateStrength != 62 {
		t.Fatalf("expected strength 62, got %d", pred.CandidateStrength)
	}
	if pred.UsingFallback {
		t.Fatal("expected usingFallback false")
	}
	if len(pred.MissingSkills) != 1 || pred.MissingSkills[0] != "docker" {
		t.Fatalf("expected missing [docker], got %v", pred.MissingSkills)
	}
	if len(pred.WeakSkills) != 1 || pred.WeakSkills[0] != "sql" {
		t.Fatalf("expected weak [sql], got %v", pred.WeakSkills)
	}

	stored, err := svc.Latest(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if stored.ShortlistProbability != pred.ShortlistProbability {
		t.Fatalf("stored probability %d != returned %d", stored.ShortlistProbability, pred.ShortlistProbability)
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.62})
	seedPair(t, profiles, jobStore)

	first, err := svc.Predict(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	second, err := svc.Predict(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if first.ShortlistProbability != second.ShortlistProbability ||
		first.JobMatchScore != second.JobMatchScore {
		t.Fatalf("expected identical scores, got %+v and %+v", first, second)
	}
}

func TestPredictEmptyProfileStillScores(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.0})
	seedPair(t, profiles, jobStore)
	if err := profiles.Put(context.Background(), profile.CandidateProfile{UserID: "user-2"}); err != nil {
		t.Fatalf("seed empty profile: %v", err)
	}

	pred, err := svc.Predict(context.Background(), "user-2", "job-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if pred.ShortlistProbability < 5 {
		t.Fatalf("empty profile must still score at least 5, got %d", pred.ShortlistProbability)
	}
	if pred.JobMatchScore != 0 {
		t.Fatalf("expected zero match score for empty skill set, got %d", pred.JobMatchScore)
	}
	if len(pred.MissingSkills) != 3 {
		t.Fatalf("expected all 3 required skills missing, got %v", pred.MissingSkills)
	}
}

func TestPredictUnknownJob(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	if _, err := svc.Predict(context.Background(), "user-1", "job-missing"); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound, got %v", err)
	}
}

func TestPredictUnknownUser(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	if _, err := svc.Predict(context.Background(), "user-missing", "job-1"); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected profile.ErrNotFound, got %v", err)
	}
}

func TestPredictClassifierUnavailable(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{err: inference.ErrUnavailable})
	seedPair(t, profiles, jobStore)

	if _, err := svc.Predict(context.Background(), "user-1", "job-1"); !errors.Is(err, inference.ErrUnavailable) {
		t.Fatalf("expected inference.ErrUnavailable, got %v", err)
	}
	if _, err := svc.Latest(context.Background(), "user-1", "job-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("failed prediction must not be stored, got %v", err)
	}
}

func TestPredictFallbackIsFlagged(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, inference.LinearFallback{})
	seedPair(t, profiles, jobStore)

	pred, err := svc.Predict(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !pred.UsingFallback {
		t.Fatal("fallback prediction must be flagged")
	}
}

func TestImprovementsNameGaps(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	pred, err := svc.Predict(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	var learnDocker, advanceSQL bool
	for _, imp := range pred.Improvements {
		if imp == "Learn docker" {
			learnDocker = true
		}
		if imp == "Advance sql from Beginner" {
			advanceSQL = true
		}
	}
	if !learnDocker || !advanceSQL {
		t.Fatalf("expected docker and sql guidance, got %v", pred.Improvements)
	}
	if len(pred.Improvements) > 7 {
		t.Fatalf("improvements must be capped at 7, got %d", len(pred.Improvements))
	}
}

func TestImprovementsCappedAtSeven(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)
	if err := jobStore.Put(context.Background(), jobs.JobPosting{
		ID:             "job-big",
		Title:          "Platform Engineer",
		RequiredSkills: []string{"go", "rust", "kafka", "terraform", "aws", "gcp", "kubernetes", "helm", "prometheus", "grafana"},
	}); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	pred, err := svc.Predict(context.Background(), "user-1", "job-big")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(pred.Improvements) != 7 {
		t.Fatalf("expected 7 improvements, got %d", len(pred.Improvements))
	}
	for _, imp := range pred.Improvements {
		if !strings.HasPrefix(imp, "Learn ") {
			t.Fatalf("missing-skill guidance should fill the cap first, got %q", imp)
		}
	}
}

func TestMatchScoreRisesWhenRequiredSkillAcquired(t *testing.T) {
	svc, _, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	ctx := context.Background()

	// The description hammers on a skill the candidate already holds; the
	// match score must still go up when the other required skill is
	// acquired, because matching happens against the required-skill set,
	// not the free text.
	if err := jobStore.Put(ctx, jobs.JobPosting{
		ID:             "job-heavy",
		Title:          "Python Developer",
		Description:    strings.Repeat("python ", 10),
		RequiredSkills: []string{"python", "docker"},
	}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	job, err := jobStore.Get(ctx, "job-heavy")
	if err != nil {
		t.Fatalf("get job: %v", err)
	}

	before := profile.CandidateProfile{
		UserID: "user-3",
		Skills: []profile.Skill{{Name: "python", Proficiency: profile.TierAdvanced}},
	}
	after := before.Clone()
	after.Skills = append(after.Skills, profile.Skill{Name: "docker", Proficiency: profile.TierIntermediate})

	baseline, err := svc.Compute(ctx, before, job)
	if err != nil {
		t.Fatalf("Compute baseline: %v", err)
	}
	projected, err := svc.Compute(ctx, after, job)
	if err != nil {
		t.Fatalf("Compute projected: %v", err)
	}

	if projected.MatchScore < baseline.MatchScore {
		t.Fatalf("match score dropped after acquiring required skill: %f -> %f", baseline.MatchScore, projected.MatchScore)
	}
	if projected.Probability < baseline.Probability {
		t.Fatalf("probability dropped after acquiring required skill: %f -> %f", baseline.Probability, projected.Probability)
	}
}

func TestPredictBatchKeepsInputOrder(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	ctx := context.Background()
	ids := []string{"job-a", "job-b", "job-c"}
	for _, id := range ids {
		if err := jobStore.Put(ctx, jobs.JobPosting{
			ID:             id,
			Title:          "Role " + id,
			RequiredSkills: []string{"python"},
		}); err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}

	preds, err := svc.PredictBatch(ctx, "user-1", ids)
	if err != nil {
		t.Fatalf("PredictBatch: %v", err)
	}
	if len(preds) != len(ids) {
		t.Fatalf("expected %d predictions, got %d", len(ids), len(preds))
	}
	for i, pred := range preds {
		if pred.JobID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], pred.JobID)
		}
	}
}

func TestPredictBatchRejectsOversizedRequest(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	ids := make([]string, maxBatchSize+1)
	for i := range ids {
		ids[i] = "job-1"
	}
	if _, err := svc.PredictBatch(context.Background(), "user-1", ids); !errors.Is(err, ErrTooManyJobs) {
		t.Fatalf("expected ErrTooManyJobs, got %v", err)
	}
}

func TestPredictBatchFailsFast(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	if _, err := svc.PredictBatch(context.Background(), "user-1", []string{"job-1", "job-missing"}); !errors.Is(err, jobs.ErrNotFound) {
		t.Fatalf("expected jobs.ErrNotFound, got %v", err)
	}
}

func TestRecommendListsMissingAndWeakSkills(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	recs, err := svc.Recommend(context.Background(), "user-1", "job-1")
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs.TopSkillsToLearn) != 1 || recs.TopSkillsToLearn[0] != "docker" {
		t.Fatalf("expected [docker], got %v", recs.TopSkillsToLearn)
	}
	if len(recs.SkillsToImprove) != 1 || recs.SkillsToImprove[0] != "sql" {
		t.Fatalf("expected [sql], got %v", recs.SkillsToImprove)
	}
	if recs.EstimatedImpact <= 0 {
		t.Fatalf("learning a required skill must carry a positive estimated impact, got %d", recs.EstimatedImpact)
	}
}

func TestAnalyticsAggregates(t *testing.T) {
	svc, profiles, jobStore := newTestService(t, stubClassifier{strength: 0.5})
	seedPair(t, profiles, jobStore)

	ctx := context.Background()
	if err := jobStore.Put(ctx, jobs.JobPosting{
		ID:             "job-2",
		Title:          "Analyst",
		RequiredSkills: []string{"python", "sql"},
	}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	for _, id := range []string{"job-1", "job-2"} {
		if _, err := svc.Predict(ctx, "user-1", id); err != nil {
			t.Fatalf("Predict %s: %v", id, err)
		}
	}

	stats, err := svc.Stats(ctx, "user-1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Count != 2 {
		t.Fatalf("expected count 2, got %d", stats.Count)
	}
	if stats.MinProbability > stats.MaxProbability {
		t.Fatalf("min %d greater than max %d", stats.MinProbability, stats.MaxProbability)
	}
	if stats.AvgProbability < float64(stats.MinProbability) || stats.AvgProbability > float64(stats.MaxProbability) {
		t.Fatalf("avg %f outside [min,max]", stats.AvgProbability)
	}
}
