package repository

import "errors"

// Sentinel kinds for profile store errors.
var (
	ErrNotFound = errors.New("user profile not found")
)
