// Package engine orchestrates a single job experience against an
// occupation's full element table, producing the attribute deltas to merge
// into a user's profile.
package engine

import (
	"fmt"

	"github.com/careerhq/attribute-engine/internal/domain/accumulate"
	"github.com/careerhq/attribute-engine/internal/domain/classify"
	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/internal/domain/scales"
	"github.com/careerhq/attribute-engine/internal/domain/scoring"
)

// ComputeAttributeDeltas computes updated attribute state for every element
// of the occupation associated with a job experience.
//
// For each element the classifier resolves a formula family, the score
// calculator produces an experience score, and the accumulator folds it
// into the caller-supplied prior state for that element id (the zero
// UserAttribute when the element has never been touched). The returned map
// is keyed by element id and is the unit handed back to the profile store;
// no persistence happens here.
//
// The function is pure and all-or-nothing: invalid input (negative
// duration, scale values outside their documented ranges) returns an error
// and no partial result. Missing or unrecognized scales are not errors;
// they resolve through the fallback ladder. Processing order across
// elements does not affect the result, so callers may evaluate elements in
// parallel as long as each element id is written by a single goroutine.
func ComputeAttributeDeltas(
	job model.JobExperience,
	elements []model.OccupationElement,
	prior map[string]model.UserAttribute,
) (map[string]model.UserAttribute, error) {
	years := job.Years()
	if years < 0 {
		return nil, fmt.Errorf("%w: duration %v years for occupation %s",
			ErrNegativeDuration, years, job.OccupationCode)
	}
	if err := validateScales(elements); err != nil {
		return nil, err
	}

	prov := model.Provenance{}
	return computeAll(job, elements, prior, years, prov)
}

// ComputeAttributeDeltasWithProvenance is ComputeAttributeDeltas with
// caller-supplied provenance stamped onto every updated attribute.
func ComputeAttributeDeltasWithProvenance(
	job model.JobExperience,
	elements []model.OccupationElement,
	prior map[string]model.UserAttribute,
	prov model.Provenance,
) (map[string]model.UserAttribute, error) {
	years := job.Years()
	if years < 0 {
		return nil, fmt.Errorf("%w: duration %v years for occupation %s",
			ErrNegativeDuration, years, job.OccupationCode)
	}
	if err := validateScales(elements); err != nil {
		return nil, err
	}
	return computeAll(job, elements, prior, years, prov)
}

func computeAll(
	job model.JobExperience,
	elements []model.OccupationElement,
	prior map[string]model.UserAttribute,
	years float64,
	prov model.Provenance,
) (map[string]model.UserAttribute, error) {
	updated := make(map[string]model.UserAttribute, len(elements))
	for _, e := range elements {
		family := classify.Element(e)
		score := scoring.ForFamily(family, e)

		next, err := accumulate.Apply(prior[e.ElementID], e.ElementID, years, score, prov)
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", e.ElementID, err)
		}
		updated[e.ElementID] = next
	}
	return updated, nil
}

// validateScales rejects recognized scale values outside their documented
// ranges before any clamping happens. Out-of-range reference data is a
// contract violation surfaced to the caller, not silently repaired; the
// clamp inside the score calculator only guards the computed result.
func validateScales(elements []model.OccupationElement) error {
	for _, e := range elements {
		for _, s := range e.Scales {
			if !scales.InRange(s.ScaleID, s.Value) {
				return fmt.Errorf("%w: element %s scale %s value %v",
					ErrScaleOutOfRange, e.ElementID, s.ScaleID, s.Value)
			}
		}
	}
	return nil
}
