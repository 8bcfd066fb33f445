package prediction

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or replaces the prediction row for a user/job pair.
func (r *PGRepo) Upsert(ctx context.Context, pred ShortlistPrediction) error {
	const query = `
INSERT INTO shortlist_predictions (
	user_id, job_id, shortlist_probability, candidate_strength, job_match_score,
	matched_skills, missing_skills, weak_skills, improvements, using_fallback,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (user_id, job_id) DO UPDATE SET
	shortlist_probability = EXCLUDED.shortlist_probability,
	candidate_strength = EXCLUDED.candidate_strength,
	job_match_score = EXCLUDED.job_match_score,
	matched_skills = EXCLUDED.matched_skills,
	missing_skills = EXCLUDED.missing_skills,
	weak_skills = EXCLUDED.weak_skills,
	improvements = EXCLUDED.improvements,
	using_fallback = EXCLUDED.using_fallback,
	updated_at = EXCLUDED.updated_at`

	matched, err := marshalStrings(pred.MatchedSkills)
	if err != nil {
		return err
	}
	missing, err := marshalStrings(pred.MissingSkills)
	if err != nil {
		return err
	}
	weak, err := marshalStrings(pred.WeakSkills)
	if err != nil {
		return err
	}
	improvements, err := marshalStrings(pred.Improvements)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		pred.UserID,
		pred.JobID,
		pred.ShortlistProbability,
		pred.CandidateStrength,
		pred.JobMatchScore,
		matched,
		missing,
		weak,
		improvements,
		pred.UsingFallback,
		pred.CreatedAt,
		pred.UpdatedAt,
	)
	return err
}

// GetLatest returns the stored prediction for a user/job pair.
func (r *PGRepo) GetLatest(ctx context.Context, userID, jobID string) (ShortlistPrediction, error) {
	const query = `
SELECT user_id, job_id, shortlist_probability, candidate_strength, job_match_score,
       matched_skills, missing_skills, weak_skills, improvements, using_fallback,
       created_at, updated_at
FROM shortlist_predictions
WHERE user_id = $1 AND job_id = $2
LIMIT 1`

	pred, err := scanPrediction(r.DB.QueryRowContext(ctx, query, userID, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ShortlistPrediction{}, ErrNotFound
		}
		return ShortlistPrediction{}, err
	}
	return pred, nil
}

// ListByUser returns a user's predictions ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]ShortlistPrediction, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	const query = `
SELECT user_id, job_id, shortlist_probability, candidate_strength, job_match_score,
       matched_skills, missing_skills, weak_skills, improvements, using_fallback,
       created_at, updated_at
FROM shortlist_predictions
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ShortlistPrediction
	for rows.Next() {
		pred, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
	}
	return out, rows.Err()
}

// Analytics aggregates a user's predictions in one query.
func (r *PGRepo) Analytics(ctx context.Context, userID string) (Analytics, error) {
	const query = `
SELECT COUNT(*),
       COALESCE(AVG(shortlist_probability), 0),
       COALESCE(MIN(shortlist_probability), 0),
       COALESCE(MAX(shortlist_probability), 0),
       COALESCE(AVG(candidate_strength), 0),
       COALESCE(AVG(job_match_score), 0)
FROM shortlist_predictions
WHERE user_id = $1`

	var stats Analytics
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&stats.Count,
		&stats.AvgProbability,
		&stats.MinProbability,
		&stats.MaxProbability,
		&stats.AvgStrength,
		&stats.AvgMatchScore,
	)
	if err != nil {
		return Analytics{}, err
	}
	return stats, nil
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (ShortlistPrediction, error) {
	var pred ShortlistPrediction
	var matched, missing, weak, improvements []byte
	if err := row.Scan(
		&pred.UserID,
		&pred.JobID,
		&pred.ShortlistProbability,
		&pred.CandidateStrength,
		&pred.JobMatchScore,
		&matched,
		&missing,
		&weak,
		&improvements,
		&pred.UsingFallback,
		&pred.CreatedAt,
		&pred.UpdatedAt,
	); err != nil {
		return ShortlistPrediction{}, err
	}
	pred.MatchedSkills = unmarshalStrings(matched)
	pred.MissingSkills = unmarshalStrings(missing)
	pred.WeakSkills = unmarshalStrings(weak)
	pred.Improvements = unmarshalStrings(improvements)
	return pred, nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func unmarshalStrings(payload []byte) []string {
	out := []string{}
	if len(payload) == 0 {
		return out
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return []string{}
	}
	return out
}
