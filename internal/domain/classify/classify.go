// Package classify maps occupational elements to their formula family.
package classify

import (
	"strings"

	"github.com/careerhq/attribute-engine/internal/domain/model"
)

// FormulaFamily identifies which experience-score formula applies to an
// element. Every element resolves to exactly one family.
type FormulaFamily int

const (
	// DefaultFallback applies when no pattern matches or when a family's
	// required scales turn out to be absent.
	DefaultFallback FormulaFamily = iota
	// AbilitySkillKnowledge covers abilities (1.A), skills (2.A, 2.B) and
	// knowledge (2.C): LV x IM.
	AbilitySkillKnowledge
	// OccupationalInterest covers 1.B.1: OI.
	OccupationalInterest
	// WorkValue covers 1.B.2: EX.
	WorkValue
	// WorkStyle covers 1.D: WI.
	WorkStyle
	// CategoryDistribution covers education (2.D.1) and training (3.A):
	// RL/RW/PT/OJ percentage distributions.
	CategoryDistribution
)

// String returns a human-readable family name.
func (f FormulaFamily) String() string {
	switch f {
	case AbilitySkillKnowledge:
		return "ability_skill_knowledge"
	case OccupationalInterest:
		return "occupational_interest"
	case WorkValue:
		return "work_value"
	case WorkStyle:
		return "work_style"
	case CategoryDistribution:
		return "category_distribution"
	default:
		return "default_fallback"
	}
}

// rule is one (element-id prefix, family) dispatch pair.
type rule struct {
	prefix string
	family FormulaFamily
}

// Dispatch table evaluated in order; most specific prefixes first so that
// 1.B.1 and 1.B.2 are tried before any broader 1.B pattern could be added.
// Matching is case-sensitive on the literal element id.
var rules = []rule{
	{"1.B.1", OccupationalInterest},
	{"1.B.2", WorkValue},
	{"1.A", AbilitySkillKnowledge},
	{"1.D", WorkStyle},
	{"2.A", AbilitySkillKnowledge},
	{"2.B", AbilitySkillKnowledge},
	{"2.C", AbilitySkillKnowledge},
	{"2.D.1", CategoryDistribution},
	{"3.A", CategoryDistribution},
}

// Element resolves the formula family for an occupational element from its
// identifier prefix. The id prefix is the primary signal: it is more
// specific than scale presence, since elements may carry scales from more
// than one family. Unmatched ids fall through to DefaultFallback.
func Element(e model.OccupationElement) FormulaFamily {
	return ElementID(e.ElementID)
}

// ElementID resolves the formula family for a raw element identifier.
func ElementID(id string) FormulaFamily {
	for _, r := range rules {
		if strings.HasPrefix(id, r.prefix) {
			return r.family
		}
	}
	return DefaultFallback
}
