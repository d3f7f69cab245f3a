package models

import "time"

// SchoolSettings holds the tunable grading policy from the settings page.
type SchoolSettings struct {
	PassPercentage  float64   `db:"pass_percentage" json:"pass_percentage"`
	MaxFailSubjects int       `db:"max_fail_subjects" json:"max_fail_subjects"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
