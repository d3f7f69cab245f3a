package dto

import "github.com/noah-isme/sma-results-api/internal/result"

// SubjectMarkInput is a posted subject mark.
type SubjectMarkInput struct {
	SubjectName   string  `json:"subject_name" validate:"required"`
	TotalMarks    float64 `json:"total_marks" validate:"gt=0"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"gte=0"`
	PassingMarks  float64 `json:"passing_marks" validate:"gte=0"`
	IsAbsent      bool    `json:"is_absent"`
}

// SubjectMark converts the payload to calculator input.
func (in SubjectMarkInput) SubjectMark() result.SubjectMark {
	return result.SubjectMark{
		SubjectName:   in.SubjectName,
		TotalMarks:    in.TotalMarks,
		ObtainedMarks: in.ObtainedMarks,
		PassingMarks:  in.PassingMarks,
		IsAbsent:      in.IsAbsent,
	}
}

// SubjectMarks converts a payload list; nil stays nil.
func SubjectMarks(in []SubjectMarkInput) []result.SubjectMark {
	if in == nil {
		return nil
	}
	marks := make([]result.SubjectMark, len(in))
	for i, m := range in {
		marks[i] = m.SubjectMark()
	}
	return marks
}

// SubjectResultRequest scores one subject.
type SubjectResultRequest struct {
	ObtainedMarks float64 `json:"obtained_marks" validate:"gte=0"`
	TotalMarks    float64 `json:"total_marks" validate:"gt=0"`
	PassingMarks  float64 `json:"passing_marks" validate:"gte=0"`
	IsAbsent      bool    `json:"is_absent"`
}

// SubjectResultResponse is a scored subject with its badge style.
type SubjectResultResponse struct {
	result.SubjectOutcome
	GradeColor string `json:"grade_color"`
}

// TermResultRequest evaluates one term.
type TermResultRequest struct {
	TermName string             `json:"term_name"`
	Marks    []SubjectMarkInput `json:"marks" validate:"dive"`
}

// TermResultResponse is an evaluated term.
type TermResultResponse struct {
	result.TermResult
	StatusColor string `json:"status_color"`
}

// FinalResultRequest evaluates the year. An omitted term is treated as
// missing; an empty list is a term with no subjects.
type FinalResultRequest struct {
	Term1 []SubjectMarkInput `json:"term1" validate:"omitempty,dive"`
	Term2 []SubjectMarkInput `json:"term2" validate:"omitempty,dive"`
	Term3 []SubjectMarkInput `json:"term3" validate:"omitempty,dive"`
}

// FinalResultResponse is the promotion decision for the posted terms.
type FinalResultResponse struct {
	result.FinalResult
	PromotionStatus bool   `json:"promotion_status"`
	GradeColor      string `json:"grade_color"`
	StatusColor     string `json:"status_color"`
}

// ReportCardRequest builds a report card from posted marks.
type ReportCardRequest struct {
	StudentName string             `json:"student_name" validate:"required"`
	RollNumber  string             `json:"roll_number"`
	ClassName   string             `json:"class_name"`
	Term1       []SubjectMarkInput `json:"term1" validate:"dive"`
	Term2       []SubjectMarkInput `json:"term2" validate:"dive"`
	Term3       []SubjectMarkInput `json:"term3" validate:"dive"`
}

// ScoredSubject is a subject mark scored under the rules that built the card.
type ScoredSubject struct {
	Term int `json:"term"`
	result.SubjectMark
	result.SubjectOutcome
}

// ReportCardResponse is a report card with presentation hints.
type ReportCardResponse struct {
	result.ReportCardData
	StudentID      string          `json:"student_id,omitempty"`
	AcademicYear   string          `json:"academic_year,omitempty"`
	Subjects       []string        `json:"subjects"`
	SubjectResults []ScoredSubject `json:"subject_results"`
	GradeColor     string          `json:"grade_color"`
	StatusColor    string          `json:"status_color"`
}

// ClassResultRow is one student's line on the class result sheet.
type ClassResultRow struct {
	StudentID       string  `json:"student_id"`
	StudentName     string  `json:"student_name"`
	RollNumber      string  `json:"roll_number"`
	TotalMarks      float64 `json:"total_marks"`
	ObtainedMarks   float64 `json:"obtained_marks"`
	FinalPercentage float64 `json:"final_percentage"`
	FinalGrade      string  `json:"final_grade"`
	Status          string  `json:"status"`
	Remarks         string  `json:"remarks"`
	Promoted        bool    `json:"promoted"`
}

// ClassResultSummary counts outcomes across a class.
type ClassResultSummary struct {
	Students          int     `json:"students"`
	Promoted          int     `json:"promoted"`
	Failed            int     `json:"failed"`
	Absent            int     `json:"absent"`
	AveragePercentage float64 `json:"average_percentage"`
}

// ClassResultsResponse is the class result sheet.
type ClassResultsResponse struct {
	ClassID      string             `json:"class_id"`
	ClassName    string             `json:"class_name"`
	AcademicYear string             `json:"academic_year"`
	Rows         []ClassResultRow   `json:"rows"`
	Summary      ClassResultSummary `json:"summary"`
}
