package dto

// BulkMarkItem is one student's mark for a subject.
type BulkMarkItem struct {
	StudentID     string  `json:"student_id" validate:"required"`
	SubjectID     string  `json:"subject_id" validate:"required"`
	TotalMarks    float64 `json:"total_marks" validate:"gt=0"`
	ObtainedMarks float64 `json:"obtained_marks" validate:"gte=0"`
	PassingMarks  float64 `json:"passing_marks" validate:"gte=0"`
	IsAbsent      bool    `json:"is_absent"`
}

// BulkMarksRequest records marks for one term of an academic year.
type BulkMarksRequest struct {
	AcademicYear string         `json:"academic_year" validate:"required"`
	Term         int            `json:"term" validate:"required,min=1,max=3"`
	Items        []BulkMarkItem `json:"items" validate:"required,min=1,dive"`
}

// BulkMarksResult summarises a bulk upsert.
type BulkMarksResult struct {
	Saved    int      `json:"saved"`
	Students []string `json:"students"`
}
