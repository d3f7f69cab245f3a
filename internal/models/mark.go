package models

import (
	"time"

	"github.com/noah-isme/sma-results-api/internal/result"
)

// Terms within an academic year.
const (
	TermFirst  = 1
	TermSecond = 2
	TermThird  = 3
)

// ExamMark is a stored subject mark for one student in one term.
type ExamMark struct {
	ID            string    `db:"id" json:"id"`
	StudentID     string    `db:"student_id" json:"student_id"`
	SubjectID     string    `db:"subject_id" json:"subject_id"`
	SubjectName   string    `db:"subject_name" json:"subject_name"`
	Term          int       `db:"term" json:"term"`
	AcademicYear  string    `db:"academic_year" json:"academic_year"`
	TotalMarks    float64   `db:"total_marks" json:"total_marks"`
	ObtainedMarks float64   `db:"obtained_marks" json:"obtained_marks"`
	PassingMarks  float64   `db:"passing_marks" json:"passing_marks"`
	IsAbsent      bool      `db:"is_absent" json:"is_absent"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectMark maps the stored row onto the calculator input.
func (m ExamMark) SubjectMark() result.SubjectMark {
	obtained := m.ObtainedMarks
	if m.IsAbsent {
		obtained = 0
	}
	return result.SubjectMark{
		SubjectName:   m.SubjectName,
		TotalMarks:    m.TotalMarks,
		ObtainedMarks: obtained,
		PassingMarks:  m.PassingMarks,
		IsAbsent:      m.IsAbsent,
	}
}

// MarkFilter scopes mark listing queries.
type MarkFilter struct {
	StudentID    string
	ClassID      string
	AcademicYear string
	Term         int
}

// MarksByTerm splits marks into the three term lists, in input order.
// Marks outside terms 1..3 are dropped.
func MarksByTerm(marks []ExamMark) (term1, term2, term3 []result.SubjectMark) {
	for _, mark := range marks {
		switch mark.Term {
		case TermFirst:
			term1 = append(term1, mark.SubjectMark())
		case TermSecond:
			term2 = append(term2, mark.SubjectMark())
		case TermThird:
			term3 = append(term3, mark.SubjectMark())
		}
	}
	return term1, term2, term3
}
