package whatif

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a result row.
func (r *PGRepo) Append(ctx context.Context, result Result) error {
	const query = `
INSERT INTO whatif_results (id, user_id, job_id, scenario, baseline, projected, deltas, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	scenario, err := json.Marshal(result.Scenario)
	if err != nil {
		return err
	}
	baseline, err := json.Marshal(result.Baseline)
	if err != nil {
		return err
	}
	projected, err := json.Marshal(result.Projected)
	if err != nil {
		return err
	}
	deltas, err := json.Marshal(result.Deltas)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		result.ID,
		result.UserID,
		result.JobID,
		scenario,
		baseline,
		projected,
		deltas,
		result.CreatedAt,
	)
	return err
}

// ListByUserJob returns a user's simulations for a job, newest first.
func (r *PGRepo) ListByUserJob(ctx context.Context, userID, jobID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	const query = `
SELECT id, user_id, job_id, scenario, baseline, projected, deltas, created_at
FROM whatif_results
WHERE user_id = $1 AND job_id = $2
ORDER BY created_at DESC
LIMIT $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var result Result
		var scenario, baseline, projected, deltas []byte
		if err := rows.Scan(
			&result.ID,
			&result.UserID,
			&result.JobID,
			&scenario,
			&baseline,
			&projected,
			&deltas,
			&result.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scenario, &result.Scenario); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(baseline, &result.Baseline); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(projected, &result.Projected); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(deltas, &result.Deltas); err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
