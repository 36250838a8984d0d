package engine

import (
	"errors"

	"github.com/careerhq/attribute-engine/internal/domain/accumulate"
)

// Sentinel error kinds for invalid engine input. All scale-resolution gaps
// (unclassifiable elements, missing required scales) are absorbed by the
// fallback ladder and never surface as errors.
var (
	// ErrNegativeDuration aliases the accumulator's sentinel so errors.Is
	// matches whichever layer rejected the duration.
	ErrNegativeDuration = accumulate.ErrNegativeDuration

	ErrScaleOutOfRange = errors.New("scale value out of documented range")
)
