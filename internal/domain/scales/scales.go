// Package scales holds the static reference table of recognized O*NET
// scale identifiers, their families, and their documented value ranges.
package scales

import "strings"

// Family tags a scale with the formula family it belongs to.
type Family int

const (
	// Unrecognized marks a scale id outside the reference table. Not an
	// error: unrecognized scales are excluded from family matching.
	Unrecognized Family = iota
	// Level is the LV scale (0-7).
	Level
	// Importance is the IM scale (1-5).
	Importance
	// Interest is the OI scale (1-7).
	Interest
	// WorkValue is the EX scale (1-7).
	WorkValue
	// WorkStyle is the WI scale (-3..+3).
	WorkStyle
	// Category covers the RL-*, RW-*, PT-* and OJ-* distribution scales
	// (0-100 percentage mass per discrete category).
	Category
)

// String returns a human-readable family name.
func (f Family) String() string {
	switch f {
	case Level:
		return "level"
	case Importance:
		return "importance"
	case Interest:
		return "interest"
	case WorkValue:
		return "work_value"
	case WorkStyle:
		return "work_style"
	case Category:
		return "category"
	default:
		return "unrecognized"
	}
}

// Range is the documented closed value range of a scale.
type Range struct {
	Min float64
	Max float64
}

// Exact-match scale ids.
const (
	ScaleLevel      = "LV"
	ScaleImportance = "IM"
	ScaleInterest   = "OI"
	ScaleWorkValue  = "EX"
	ScaleWorkStyle  = "WI"
)

// Prefix families for category-distribution scales, e.g. "RL-5".
var categoryPrefixes = []string{"RL-", "RW-", "PT-", "OJ-"}

// exact maps the five exact-match scale ids to family and range.
var exact = map[string]struct {
	family Family
	rng    Range
}{
	ScaleLevel:      {Level, Range{0, 7}},
	ScaleImportance: {Importance, Range{1, 5}},
	ScaleInterest:   {Interest, Range{1, 7}},
	ScaleWorkValue:  {WorkValue, Range{1, 7}},
	ScaleWorkStyle:  {WorkStyle, Range{-3, 3}},
}

var categoryRange = Range{0, 100}

// Lookup resolves a scale identifier to its family. Unknown identifiers
// resolve to Unrecognized; matching is case-sensitive on the literal id.
func Lookup(scaleID string) Family {
	if e, ok := exact[scaleID]; ok {
		return e.family
	}
	for _, p := range categoryPrefixes {
		if strings.HasPrefix(scaleID, p) {
			return Category
		}
	}
	return Unrecognized
}

// RangeOf returns the documented range for a recognized scale id. The
// second return is false for unrecognized ids, which carry no range.
func RangeOf(scaleID string) (Range, bool) {
	if e, ok := exact[scaleID]; ok {
		return e.rng, true
	}
	if Lookup(scaleID) == Category {
		return categoryRange, true
	}
	return Range{}, false
}

// InRange reports whether value lies within the documented range of the
// scale. Unrecognized scales are always in range: they do not participate
// in any formula, so their values are never validated.
func InRange(scaleID string, value float64) bool {
	r, ok := RangeOf(scaleID)
	if !ok {
		return true
	}
	return value >= r.Min && value <= r.Max
}
