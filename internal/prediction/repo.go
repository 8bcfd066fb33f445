package prediction

import "context"

// Repo persists shortlist predictions, keyed by (user, job) with last
// write wins.
type Repo interface {
	Upsert(ctx context.Context, pred ShortlistPrediction) error
	GetLatest(ctx context.Context, userID, jobID string) (ShortlistPrediction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]ShortlistPrediction, error)
	Analytics(ctx context.Context, userID string) (Analytics, error)
}
