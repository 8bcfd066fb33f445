package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGStore implements Store using Postgres. The profile snapshot is stored as
// a single JSONB document per user, written by the resume-parsing pipeline.
type PGStore struct {
	DB *sql.DB
}

// Get returns the stored profile for a user.
func (s *PGStore) Get(ctx context.Context, userID string) (CandidateProfile, error) {
	const query = `SELECT profile FROM candidate_profiles WHERE user_id = $1`
	var payload []byte
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CandidateProfile{}, ErrNotFound
		}
		return CandidateProfile{}, err
	}
	var p CandidateProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return CandidateProfile{}, err
	}
	p.UserID = userID
	return p, nil
}

// Put upserts the profile snapshot for a user.
func (s *PGStore) Put(ctx context.Context, p CandidateProfile) error {
	const query = `
INSERT INTO candidate_profiles (user_id, profile, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at`
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx, query, p.UserID, payload, time.Now().UTC())
	return err
}

var _ Store = (*PGStore)(nil)
