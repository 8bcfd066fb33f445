package profile

import (
	"context"
	"errors"
)

// ErrNotFound indicates the user has no stored profile.
var ErrNotFound = errors.New("profile not found")

// Store provides read access to candidate profiles. Profiles are populated
// by the external resume-parsing subsystem; this service only consumes them.
type Store interface {
	Get(ctx context.Context, userID string) (CandidateProfile, error)
	Put(ctx context.Context, p CandidateProfile) error
}
