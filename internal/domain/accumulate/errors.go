package accumulate

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNegativeDuration = errors.New("negative job duration")
	ErrInvalidScore     = errors.New("invalid experience score")
)
