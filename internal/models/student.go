package models

// Student is the subset of the students table needed to label report cards.
type Student struct {
	ID         string `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	RollNumber string `db:"roll_number" json:"roll_number"`
	ClassID    string `db:"class_id" json:"class_id"`
	ClassName  string `db:"class_name" json:"class_name"`
	Active     bool   `db:"active" json:"active"`
}
