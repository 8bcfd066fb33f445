package whatif

import "context"

// Repo stores simulation results as append-only history.
type Repo interface {
	Append(ctx context.Context, result Result) error
	ListByUserJob(ctx context.Context, userID, jobID string, limit int) ([]Result, error)
}
