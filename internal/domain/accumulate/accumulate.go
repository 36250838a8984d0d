// Package accumulate applies time-weighted experience deltas to user
// attributes with clamping.
package accumulate

import (
	"fmt"

	"github.com/careerhq/attribute-engine/internal/domain/model"
)

// Accumulation constants.
const (
	// maxAttributeValue caps capability and preference.
	maxAttributeValue = 100.0
	// preferenceRate is the preference gained per year of work, a pure
	// time-spent self-selection proxy independent of the element score.
	preferenceRate = 2.0
)

// Apply folds one job experience into an attribute's accumulated state and
// returns the new state. The prior value may be the zero UserAttribute.
//
//	capability += years * experienceScore, capped at 100
//	preference += years * 2,               capped at 100
//
// Binary is passed through untouched; it is reserved for future
// certification logic and never computed here. Provenance fields are
// overwritten with the supplied values (last-write-wins). Full floating
// precision is retained; rounding is a display concern.
//
// Negative years violates the monotonicity contract and is rejected rather
// than clamped.
func Apply(prior model.UserAttribute, elementID string, years, experienceScore float64, prov model.Provenance) (model.UserAttribute, error) {
	if years < 0 {
		return model.UserAttribute{}, fmt.Errorf("%w: negative duration %v years", ErrNegativeDuration, years)
	}
	if experienceScore < 0 || experienceScore > 1 {
		return model.UserAttribute{}, fmt.Errorf("%w: experience score %v outside [0,1]", ErrInvalidScore, experienceScore)
	}

	next := prior
	next.MappingElementID = elementID
	next.Capability = capped(prior.Capability + years*experienceScore)
	next.Preference = capped(prior.Preference + years*preferenceRate)
	next.Binary = prior.Binary // reserved: explicit pass-through
	next.Source = prov.Source
	next.ExtractedAt = prov.ExtractedAt
	next.Confidence = prov.Confidence
	return next, nil
}

func capped(v float64) float64 {
	if v > maxAttributeValue {
		return maxAttributeValue
	}
	return v
}
