package prediction

import "errors"

// ErrNotFound indicates no stored prediction for the requested key.
var ErrNotFound = errors.New("prediction not found")

// ErrTooManyJobs indicates a batch request over the job limit.
var ErrTooManyJobs = errors.New("too many jobs")
