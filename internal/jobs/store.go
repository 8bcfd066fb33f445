package jobs

import (
	"context"
	"errors"
)

// ErrNotFound indicates an unknown job posting ID.
var ErrNotFound = errors.New("job not found")

// Store provides read access to job postings, which are managed by the
// external job-ingestion subsystem.
type Store interface {
	Get(ctx context.Context, jobID string) (JobPosting, error)
	Put(ctx context.Context, job JobPosting) error
}
