package prediction

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hirepulse-backend/internal/embedding"
	"hirepulse-backend/internal/features"
	"hirepulse-backend/internal/inference"
	"hirepulse-backend/internal/jobs"
	"hirepulse-backend/internal/profile"
	"hirepulse-backend/internal/shared/metrics"
	"hirepulse-backend/internal/shared/telemetry"
)

const maxBatchSize = 100

// Service runs the prediction pipeline: feature extraction, candidate
// strength, embedding similarity, score combination and gap explanation.
type Service struct {
	Profiles         profile.Store
	Jobs             jobs.Store
	Classifier       inference.Classifier
	Embeddings       *embedding.Engine
	Repo             Repo
	BatchConcurrency int
}

// Computation holds every intermediate and final score for one profile/job
// pair, on the internal [0,1] scale.
type Computation struct {
	Vector        features.Vector
	Strength      float64
	MatchScore    float64
	Probability   float64
	Partition     embedding.SkillPartition
	Improvements  []string
	UsingFallback bool
}

// Compute runs the full pipeline against an explicit profile snapshot. It
// never reads or writes stored predictions, so what-if simulation can reuse
// it for guaranteed full recomputation.
func (s *Service) Compute(ctx context.Context, p profile.CandidateProfile, job jobs.JobPosting) (Computation, error) {
	start := time.Now()

	vec := features.Extract(p)

	var strength float64
	var jobVec []float64

	// Strength prediction and job embedding are independent branches.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		strength, err = s.Classifier.PredictStrength(gctx, vec)
		return err
	})
	g.Go(func() error {
		// The match side embeds the required-skill token space (see
		// JobPosting.MatchText) so acquiring a required skill never
		// lowers the match score.
		var err error
		jobVec, err = s.Embeddings.JobEmbedding(gctx, job.ID, job.MatchText())
		return err
	})
	if err := g.Wait(); err != nil {
		return Computation{}, err
	}

	candVec := s.Embeddings.SkillEmbedding(p.SkillNames())
	matchScore := embedding.CosineSimilarity(candVec, jobVec)
	partition := embedding.PartitionSkills(p.Skills, job.RequiredSkills)

	comp := Computation{
		Vector:        vec,
		Strength:      strength,
		MatchScore:    matchScore,
		Probability:   Combine(strength, matchScore),
		Partition:     partition,
		UsingFallback: s.Classifier.Fallback(),
	}
	comp.Improvements = s.improvements(p, partition, jobVec, matchScore)

	metrics.ObservePredictionDuration(time.Since(start).Seconds())
	return comp, nil
}

// Predict computes and persists the shortlist prediction for a user/job
// pair. The stored row is upserted: last write wins per (user, job).
func (s *Service) Predict(ctx context.Context, userID, jobID string) (ShortlistPrediction, error) {
	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return ShortlistPrediction{}, err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return ShortlistPrediction{}, err
	}

	comp, err := s.Compute(ctx, p, job)
	if err != nil {
		return ShortlistPrediction{}, err
	}

	now := time.Now().UTC()
	pred := ShortlistPrediction{
		UserID:               userID,
		JobID:                jobID,
		ShortlistProbability: ToScale(comp.Probability),
		CandidateStrength:    ToScale(comp.Strength),
		JobMatchScore:        ToScale(comp.MatchScore),
		MatchedSkills:        comp.Partition.Matched,
		MissingSkills:        comp.Partition.Missing,
		WeakSkills:           comp.Partition.Weak,
		Improvements:         comp.Improvements,
		UsingFallback:        comp.UsingFallback,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.Repo.Upsert(ctx, pred); err != nil {
		return ShortlistPrediction{}, err
	}

	mode := inference.ModeStrict
	if comp.UsingFallback {
		mode = inference.ModeDegraded
		metrics.IncFallbackPrediction()
	}
	metrics.IncPrediction(mode)

	telemetry.Info("prediction.computed", map[string]any{
		"user_id":        userID,
		"job_id":         jobID,
		"probability":    pred.ShortlistProbability,
		"strength":       pred.CandidateStrength,
		"match_score":    pred.JobMatchScore,
		"using_fallback": pred.UsingFallback,
	})
	return pred, nil
}

// PredictBatch predicts against up to maxBatchSize jobs with bounded
// parallelism so a burst cannot saturate the external classifier. Requests
// over the limit are rejected outright rather than quietly trimmed. Results
// are returned in input order.
func (s *Service) PredictBatch(ctx context.Context, userID string, jobIDs []string) ([]ShortlistPrediction, error) {
	if len(jobIDs) > maxBatchSize {
		return nil, ErrTooManyJobs
	}

	out := make([]ShortlistPrediction, len(jobIDs))
	g, gctx := errgroup.WithContext(ctx)
	limit := s.BatchConcurrency
	if limit <= 0 {
		limit = 4
	}
	g.SetLimit(limit)

	for i, jobID := range jobIDs {
		i, jobID := i, jobID
		g.Go(func() error {
			pred, err := s.Predict(gctx, userID, jobID)
			if err != nil {
				return err
			}
			out[i] = pred
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Recommend derives the skill-gap guidance for a user/job pair from a
// fresh computation.
func (s *Service) Recommend(ctx context.Context, userID, jobID string) (Recommendations, error) {
	p, err := s.Profiles.Get(ctx, userID)
	if err != nil {
		return Recommendations{}, err
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return Recommendations{}, err
	}
	comp, err := s.Compute(ctx, p, job)
	if err != nil {
		return Recommendations{}, err
	}

	jobVec, err := s.Embeddings.JobEmbedding(ctx, job.ID, job.MatchText())
	if err != nil {
		return Recommendations{}, err
	}
	ranked := s.rankByImpact(p, comp.Partition.Missing, jobVec, comp.MatchScore)

	var totalGain float64
	topSkills := make([]string, 0, len(ranked))
	for _, r := range ranked {
		topSkills = append(topSkills, r.skill)
		if r.gain > 0 {
			totalGain += r.gain
		}
	}

	return Recommendations{
		TopSkillsToLearn: topSkills,
		SkillsToImprove:  comp.Partition.Weak,
		EstimatedImpact:  ToScale(totalGain),
	}, nil
}

// Latest returns the stored prediction for a user/job pair.
func (s *Service) Latest(ctx context.Context, userID, jobID string) (ShortlistPrediction, error) {
	return s.Repo.GetLatest(ctx, userID, jobID)
}

// History returns a user's stored predictions, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]ShortlistPrediction, error) {
	return s.Repo.ListByUser(ctx, userID, limit)
}

// Stats aggregates a user's stored predictions.
func (s *Service) Stats(ctx context.Context, userID string) (Analytics, error) {
	return s.Repo.Analytics(ctx, userID)
}

// InvalidateJobEmbedding drops the cached embedding for a job so the next
// prediction recomputes it, e.g. after the posting text or the embedding
// artifact changed.
func (s *Service) InvalidateJobEmbedding(ctx context.Context, jobID string) {
	s.Embeddings.Invalidate(ctx, jobID)
}
