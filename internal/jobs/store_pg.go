package jobs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGStore implements Store using Postgres.
type PGStore struct {
	DB *sql.DB
}

// Get returns a job posting by ID.
func (s *PGStore) Get(ctx context.Context, jobID string) (JobPosting, error) {
	const query = `
SELECT id, title, description, required_skills, experience_level
FROM job_postings
WHERE id = $1`
	var job JobPosting
	var requiredSkills []byte
	err := s.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&requiredSkills,
		&job.ExperienceLevel,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return JobPosting{}, ErrNotFound
		}
		return JobPosting{}, err
	}
	if len(requiredSkills) > 0 {
		if err := json.Unmarshal(requiredSkills, &job.RequiredSkills); err != nil {
			return JobPosting{}, err
		}
	}
	return job, nil
}

// Put upserts a job posting.
func (s *PGStore) Put(ctx context.Context, job JobPosting) error {
	const query = `
INSERT INTO job_postings (id, title, description, required_skills, experience_level)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET title = EXCLUDED.title,
    description = EXCLUDED.description,
    required_skills = EXCLUDED.required_skills,
    experience_level = EXCLUDED.experience_level`
	payload, err := json.Marshal(job.RequiredSkills)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, query, job.ID, job.Title, job.Description, payload, job.ExperienceLevel)
	return err
}

var _ Store = (*PGStore)(nil)
