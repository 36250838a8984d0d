// Package model contains domain models passed between layers.
package model

// ScaleValue is a single named scale reading attached to an occupational
// element, e.g. {ScaleID: "LV", Value: 4.88}. Reference data; never mutated
// by the engine.
type ScaleValue struct {
	ScaleID string  `json:"scale_id"`
	Value   float64 `json:"value"`
}

// OccupationElement is one scored facet of an occupation, identified by a
// hierarchical code such as "1.A.1.a.1". Read-only input to the engine.
type OccupationElement struct {
	ElementID   string       `json:"element_id"`
	ElementName string       `json:"element_name,omitempty"`
	Scales      []ScaleValue `json:"scales"`
}

// Scale returns the value for the given scale id and whether it is present.
func (e OccupationElement) Scale(scaleID string) (float64, bool) {
	for _, s := range e.Scales {
		if s.ScaleID == scaleID {
			return s.Value, true
		}
	}
	return 0, false
}
