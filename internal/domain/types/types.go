// Package types contains common types used across the application
package types

// AttributeSnapshot is a read-facing view of one accumulated attribute.
type AttributeSnapshot struct {
	ElementID  string  `json:"element_id"`
	Capability float64 `json:"capability"`
	Preference float64 `json:"preference"`
	Binary     bool    `json:"binary"`
	Source     string  `json:"source,omitempty"`
}

// Profile is the full attribute set for one user.
type Profile struct {
	UserID     string              `json:"user_id"`
	Attributes []AttributeSnapshot `json:"attributes"`
}
