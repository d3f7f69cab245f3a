package result

// Status tokens produced by term and final evaluation.
const (
	StatusPass     = "pass"
	StatusFail     = "fail"
	StatusPromoted = "promoted"
	StatusAbsent   = "absent"
)

// Grade tokens that sit outside the percentage bands.
const (
	GradeAbsent       = "ABS"
	GradeNotAvailable = "N/A"
)

// Final result remarks. Threshold-bearing remarks are built from Rules;
// RemarkFailAndAbsent is their text under DefaultRules.
const (
	RemarkNoTerms       = "No term results available"
	RemarkFailAndAbsent = "Failed (1 fail and 1 absent)"
	RemarkPromoted      = "Promoted to next class"
)

// SubjectMark is one subject's performance record for one student in one term.
type SubjectMark struct {
	SubjectName   string  `json:"subject_name"`
	TotalMarks    float64 `json:"total_marks"`
	ObtainedMarks float64 `json:"obtained_marks"`
	PassingMarks  float64 `json:"passing_marks"`
	IsAbsent      bool    `json:"is_absent"`
}

// failed reports whether the mark counts toward the failed-or-absent tally.
func (m SubjectMark) failed() bool {
	return m.IsAbsent || m.ObtainedMarks < m.PassingMarks
}

// SubjectOutcome is the scored outcome of a single subject.
type SubjectOutcome struct {
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
	IsPassed   bool    `json:"is_passed"`
}

// TermResult aggregates a term's subject marks.
type TermResult struct {
	TermName       string        `json:"term_name"`
	Marks          []SubjectMark `json:"marks"`
	TotalMarks     float64       `json:"total_marks"`
	ObtainedMarks  float64       `json:"obtained_marks"`
	Percentage     float64       `json:"percentage"`
	SubjectsFailed int           `json:"subjects_failed"`
	Status         string        `json:"status"`
}

// FinalResult is the multi-term promotion decision.
type FinalResult struct {
	TotalMarks      float64 `json:"total_marks"`
	ObtainedMarks   float64 `json:"obtained_marks"`
	FinalPercentage float64 `json:"final_percentage"`
	FinalGrade      string  `json:"final_grade"`
	Status          string  `json:"status"`
	Remarks         string  `json:"remarks"`
}

// StudentInfo identifies the student on a report card.
type StudentInfo struct {
	Name       string `json:"name"`
	RollNumber string `json:"roll_number"`
	ClassName  string `json:"class_name"`
}

// TermSummary is the per-term line of a report card.
type TermSummary struct {
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
	Average    float64 `json:"average"`
}

// TermSummaries groups the three term summaries.
type TermSummaries struct {
	Term1 TermSummary `json:"term1"`
	Term2 TermSummary `json:"term2"`
	Term3 TermSummary `json:"term3"`
}

// ReportCardFinal is the final result plus the promotion decision.
type ReportCardFinal struct {
	FinalResult
	PromotionStatus bool `json:"promotion_status"`
}

// TermMarks carries the raw marks of each term for subject-wise tables.
type TermMarks struct {
	Term1 []SubjectMark `json:"term1"`
	Term2 []SubjectMark `json:"term2"`
	Term3 []SubjectMark `json:"term3"`
}

// ReportCardData bundles everything a report card renderer needs.
type ReportCardData struct {
	StudentInfo  StudentInfo     `json:"student_info"`
	TermResults  TermSummaries   `json:"term_results"`
	FinalResult  ReportCardFinal `json:"final_result"`
	SubjectMarks TermMarks       `json:"subject_marks"`
}
