package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/result"
	appErrors "github.com/noah-isme/sma-results-api/pkg/errors"
)

type resultSourceStub struct {
	card  *dto.ReportCardResponse
	sheet *dto.ClassResultsResponse
	err   error
}

func (s resultSourceStub) StudentReportCard(ctx context.Context, studentID, academicYear string) (*dto.ReportCardResponse, error) {
	return s.card, s.err
}

func (s resultSourceStub) ClassResults(ctx context.Context, classID, academicYear string) (*dto.ClassResultsResponse, error) {
	return s.sheet, s.err
}

func newExportServiceForTest() *ExportService {
	term1 := []result.SubjectMark{
		{SubjectName: "Math", TotalMarks: 100, ObtainedMarks: 80, PassingMarks: 33},
		{SubjectName: "English", TotalMarks: 100, PassingMarks: 33, IsAbsent: true},
	}
	calc := result.NewCalculator(result.DefaultRules())
	card := calc.ReportCard("Ayu Lestari", "12", "X-IPA-1", term1, nil, nil)
	stub := resultSourceStub{
		card: reportCardResponse(calc, card, "stu-1", "2024/2025"),
		sheet: &dto.ClassResultsResponse{
			ClassID:      "cls-1",
			ClassName:    "X IPA 1",
			AcademicYear: "2024/2025",
			Rows:         []dto.ClassResultRow{{StudentID: "stu-1", StudentName: "Ayu Lestari", RollNumber: "12", FinalPercentage: 40, FinalGrade: "E", Status: result.StatusFail}},
			Summary:      dto.ClassResultSummary{Students: 1, Failed: 1, AveragePercentage: 40},
		},
	}
	return NewExportService(stub, nil, nil, nil)
}

func TestExportServiceReportCardCSV(t *testing.T) {
	svc := newExportServiceForTest()

	file, err := svc.ReportCard(context.Background(), "stu-1", "2024/2025", "CSV")
	require.NoError(t, err)
	assert.Equal(t, "report_card_12_2024-2025.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	body := string(file.Body)
	assert.Contains(t, body, "Term,Total,Percentage,Status,Average\n")
	assert.Contains(t, body, "Term 1,Math,80,100,80,A,Pass\n")
	assert.Contains(t, body, "Term 1,English,ABS,100,0,ABS,Absent\n")
}

func TestExportServiceReportCardPDF(t *testing.T) {
	svc := newExportServiceForTest()

	file, err := svc.ReportCard(context.Background(), "stu-1", "2024/2025", "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestExportServiceClassResults(t *testing.T) {
	svc := newExportServiceForTest()

	file, err := svc.ClassResults(context.Background(), "cls-1", "2024/2025", "csv")
	require.NoError(t, err)
	assert.Equal(t, "class_results_X_IPA_1_2024-2025.csv", file.Filename)
	assert.Contains(t, string(file.Body), "12,Ayu Lestari,0,0,40,E,fail,,No\n")
	assert.Contains(t, string(file.Body), "Students,Promoted,Failed,Absent,Average Percentage\n1,0,1,0,40\n")

	file, err = svc.ClassResults(context.Background(), "cls-1", "2024/2025", "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestExportServiceReportCardUsesCardScoring(t *testing.T) {
	rules := result.DefaultRules()
	rules.GradeBands = []result.GradeBand{{Min: 90, Grade: "A"}}
	rules.FallbackGrade = "B"
	calc := result.NewCalculator(rules)
	term1 := []result.SubjectMark{{SubjectName: "Math", TotalMarks: 100, ObtainedMarks: 80, PassingMarks: 33}}
	card := calc.ReportCard("Ayu Lestari", "12", "X-IPA-1", term1, nil, nil)
	svc := NewExportService(resultSourceStub{card: reportCardResponse(calc, card, "stu-1", "2024/2025")}, nil, nil, nil)

	file, err := svc.ReportCard(context.Background(), "stu-1", "2024/2025", "csv")
	require.NoError(t, err)
	assert.Contains(t, string(file.Body), "Term 1,Math,80,100,80,B,Pass\n")
}

func TestSanitizeFilenameKeepsRunesWhole(t *testing.T) {
	name := strings.Repeat("é", 60)

	out := sanitizeFilename(name)
	assert.True(t, utf8.ValidString(out))
	assert.LessOrEqual(t, len(out), maxFilenameBytes)
	assert.Equal(t, strings.Repeat("é", 50), out)

	assert.Equal(t, "na", sanitizeFilename(""))
	assert.Equal(t, "X_IPA_1", sanitizeFilename("X IPA 1"))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest()

	_, err := svc.ReportCard(context.Background(), "stu-1", "2024/2025", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnsupportedFormat.Code, appErrors.FromError(err).Code)
}

func TestExportServicePropagatesLookupErrors(t *testing.T) {
	svc := NewExportService(resultSourceStub{err: appErrors.Clone(appErrors.ErrNotFound, "student not found")}, nil, nil, nil)

	_, err := svc.ReportCard(context.Background(), "missing", "2024/2025", "pdf")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
