package service

import "errors"

var (
	// ErrNotStarted indicates a submission before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrNoCatalog indicates Start was called without an occupation
	// catalog configured.
	ErrNoCatalog = errors.New("no occupation catalog configured")

	// ErrMissingUserID indicates a job without a user id.
	ErrMissingUserID = errors.New("job has no user id")

	// ErrMissingOccupationCode indicates a job without an occupation code.
	ErrMissingOccupationCode = errors.New("job has no occupation code")

	// ErrQueueFull indicates the job queue rejected the submission.
	ErrQueueFull = errors.New("job queue is full")
)
