package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-results-api/internal/result"
)

func TestSubjectMarksKeepsNil(t *testing.T) {
	assert.Nil(t, SubjectMarks(nil))

	marks := SubjectMarks([]SubjectMarkInput{{SubjectName: "Math", TotalMarks: 100, ObtainedMarks: 40, PassingMarks: 33, IsAbsent: true}})
	require.Len(t, marks, 1)
	assert.Equal(t, result.SubjectMark{SubjectName: "Math", TotalMarks: 100, ObtainedMarks: 40, PassingMarks: 33, IsAbsent: true}, marks[0])
	assert.NotNil(t, SubjectMarks([]SubjectMarkInput{}))
}

func TestRequestValidation(t *testing.T) {
	validate := validator.New()

	assert.NoError(t, validate.Struct(FinalResultRequest{}))
	assert.NoError(t, validate.Struct(ReportCardRequest{StudentName: "Ayu"}))
	assert.Error(t, validate.Struct(ReportCardRequest{StudentName: "Ayu", Term2: []SubjectMarkInput{{SubjectName: "Math"}}}))
	assert.Error(t, validate.Struct(SubjectResultRequest{TotalMarks: 100, ObtainedMarks: -1}))
	assert.Error(t, validate.Struct(BulkMarksRequest{AcademicYear: "2024/2025", Term: 4, Items: []BulkMarkItem{{StudentID: "s", SubjectID: "m", TotalMarks: 100}}}))
	assert.NoError(t, validate.Struct(BulkMarksRequest{AcademicYear: "2024/2025", Term: 3, Items: []BulkMarkItem{{StudentID: "s", SubjectID: "m", TotalMarks: 100}}}))
}
