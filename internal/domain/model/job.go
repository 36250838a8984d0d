package model

import "time"

const daysPerYear = 365.25

// JobExperience is a user-reported period of work tied to an occupation.
// Only OccupationCode and a duration are required by the engine; the other
// fields carry employment details for provenance and display.
type JobExperience struct {
	JobID          string    `json:"job_id,omitempty"` // unique id for idempotency
	UserID         string    `json:"user_id,omitempty"`
	OccupationCode string    `json:"occupation_code"`
	Source         string    `json:"source,omitempty"` // where the experience was extracted from
	JobTitle       string    `json:"job_title,omitempty"`
	CompanyName    string    `json:"company_name,omitempty"`
	DurationYears  float64   `json:"duration_years,omitempty"`
	DurationMonths int       `json:"duration_months,omitempty"`
	StartDate      time.Time `json:"start_date,omitzero"`
	EndDate        time.Time `json:"end_date,omitzero"`
}

// Years resolves the experience duration in (possibly fractional) years.
// Resolution order: explicit DurationYears, then DurationMonths, then the
// StartDate..EndDate span (EndDate zero means the job is current), then a
// default of one year. A negative DurationYears is returned as-is so the
// engine can reject it rather than silently repair it.
func (j JobExperience) Years() float64 {
	if j.DurationYears != 0 {
		return j.DurationYears
	}
	if j.DurationMonths != 0 {
		return float64(j.DurationMonths) / 12.0
	}
	if !j.StartDate.IsZero() {
		end := j.EndDate
		if end.IsZero() {
			end = time.Now()
		}
		return end.Sub(j.StartDate).Hours() / 24 / daysPerYear
	}
	return 1.0
}
