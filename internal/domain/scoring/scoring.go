// Package scoring computes normalized experience scores from element
// scale values.
package scoring

import (
	"github.com/careerhq/attribute-engine/internal/domain/classify"
	"github.com/careerhq/attribute-engine/internal/domain/model"
	"github.com/careerhq/attribute-engine/internal/domain/scales"
)

// Normalization constants per formula family. Each divisor maps the raw
// scale product/value onto [0, 1].
const (
	// maxLevelImportance is LV max (7) times IM max (5).
	maxLevelImportance = 35.0
	// maxSevenPoint covers the OI and EX 1-7 scales.
	maxSevenPoint = 7.0
	// workStyleOffset and workStyleSpan map WI's -3..+3 onto 0..6.
	workStyleOffset = 3.0
	workStyleSpan   = 6.0
	// maxCategoryPct is the ceiling of a category percentage value.
	maxCategoryPct = 100.0
	// fallbackScore is used whenever a family's required scales are absent.
	fallbackScore = 0.5
)

// ExperienceScore computes the normalized score in [0, 1] estimating how
// much one year of work on this element contributes to a user's standing.
//
// The family resolved by the classifier picks the formula; if the family's
// required scales are missing the element falls through to the default
// fallback rather than failing. The result is clamped to [0, 1] so that
// out-of-range reference data never propagates past this boundary.
func ExperienceScore(e model.OccupationElement) float64 {
	return clamp01(rawScore(classify.Element(e), e))
}

// ForFamily computes the score for an already classified element. Exposed
// so callers that classify once can avoid re-resolving the family.
func ForFamily(family classify.FormulaFamily, e model.OccupationElement) float64 {
	return clamp01(rawScore(family, e))
}

func rawScore(family classify.FormulaFamily, e model.OccupationElement) float64 {
	switch family {
	case classify.AbilitySkillKnowledge:
		lv, okLV := e.Scale(scales.ScaleLevel)
		im, okIM := e.Scale(scales.ScaleImportance)
		if !okLV || !okIM {
			return fallbackScore
		}
		return (lv * im) / maxLevelImportance

	case classify.OccupationalInterest:
		oi, ok := e.Scale(scales.ScaleInterest)
		if !ok {
			return fallbackScore
		}
		return oi / maxSevenPoint

	case classify.WorkValue:
		ex, ok := e.Scale(scales.ScaleWorkValue)
		if !ok {
			return fallbackScore
		}
		return ex / maxSevenPoint

	case classify.WorkStyle:
		wi, ok := e.Scale(scales.ScaleWorkStyle)
		if !ok {
			return fallbackScore
		}
		return (wi + workStyleOffset) / workStyleSpan

	case classify.CategoryDistribution:
		max, found := maxCategoryValue(e)
		if !found {
			return fallbackScore
		}
		return max / maxCategoryPct

	default:
		return fallbackScore
	}
}

// maxCategoryValue returns the highest value among the element's category
// distribution scales. Categories with no value present simply do not
// participate; they are absent, not zero.
func maxCategoryValue(e model.OccupationElement) (float64, bool) {
	var max float64
	found := false
	for _, s := range e.Scales {
		if scales.Lookup(s.ScaleID) != scales.Category {
			continue
		}
		if !found || s.Value > max {
			max = s.Value
			found = true
		}
	}
	return max, found
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
