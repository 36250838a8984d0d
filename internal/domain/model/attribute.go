package model

import "time"

// Provenance records where an attribute update came from.
type Provenance struct {
	Source      string    // e.g. "resume", "conversation"
	ExtractedAt time.Time // timestamp of the triggering event
	Confidence  *float64  // optional caller-supplied confidence
}

// UserAttribute is the accumulated state for one occupational element on a
// user's profile. The zero value is the implicit initial state: capability
// and preference at 0, binary false.
//
// Capability and Preference stay within [0, 100] and only ever grow; Binary
// is reserved and never computed by the engine. Internal state keeps full
// floating precision; rounding is a display concern.
type UserAttribute struct {
	MappingElementID string     `json:"mapping_element_id"`
	Capability       float64    `json:"capability"`
	Preference       float64    `json:"preference"`
	Binary           bool       `json:"binary"`
	Source           string     `json:"source,omitempty"`
	ExtractedAt      time.Time  `json:"extracted_at,omitzero"`
	Confidence       *float64   `json:"confidence,omitempty"`
}
