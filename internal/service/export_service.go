package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/result"
	appErrors "github.com/noah-isme/sma-results-api/pkg/errors"
	"github.com/noah-isme/sma-results-api/pkg/export"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type resultSource interface {
	StudentReportCard(ctx context.Context, studentID, academicYear string) (*dto.ReportCardResponse, error)
	ClassResults(ctx context.Context, classID, academicYear string) (*dto.ClassResultsResponse, error)
}

type csvRenderer interface {
	Render(sets ...export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders report cards and class sheets as downloads.
type ExportService struct {
	results  resultSource
	csv      csvRenderer
	pdf      pdfRenderer
	sheetPDF pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// stock exporters.
func NewExportService(results resultSource, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	sheetPDF := pdf
	if pdf == nil {
		pdf = export.NewPDFExporter()
		sheetPDF = export.NewLandscapePDFExporter()
	}
	return &ExportService{results: results, csv: csv, pdf: pdf, sheetPDF: sheetPDF, logger: logger}
}

// ReportCard renders a student's report card.
func (s *ExportService) ReportCard(ctx context.Context, studentID, academicYear, format string) (*ExportFile, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	card, err := s.results.StudentReportCard(ctx, studentID, academicYear)
	if err != nil {
		return nil, err
	}
	terms := reportTermDataset(card.TermResults)
	subjects := reportSubjectDataset(card.SubjectResults)
	final := reportFinalDataset(card.FinalResult)

	var body []byte
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(terms, subjects, final)
	default:
		body, err = s.pdf.Render(export.Document{
			Title: "Report Card",
			Fields: []export.Field{
				{Label: "Name", Value: card.StudentInfo.Name},
				{Label: "Roll Number", Value: card.StudentInfo.RollNumber},
				{Label: "Class", Value: card.StudentInfo.ClassName},
				{Label: "Academic Year", Value: academicYear},
			},
			Tables: []export.Table{
				{Caption: "Term Results", Data: terms},
				{Caption: "Subject Marks", Data: subjects},
				{Caption: "Final Result", Data: final},
			},
			Footer: card.FinalResult.Remarks,
		})
	}
	if err != nil {
		s.logger.Error("render report card", zap.String("student_id", studentID), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report card")
	}

	label := card.StudentInfo.RollNumber
	if label == "" {
		label = studentID
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("report_card_%s_%s.%s", sanitizeFilename(label), sanitizeFilename(academicYear), format),
		ContentType: contentType(format),
		Body:        body,
	}, nil
}

// ClassResults renders the class result sheet.
func (s *ExportService) ClassResults(ctx context.Context, classID, academicYear, format string) (*ExportFile, error) {
	format, err := normalizeFormat(format)
	if err != nil {
		return nil, err
	}
	sheet, err := s.results.ClassResults(ctx, classID, academicYear)
	if err != nil {
		return nil, err
	}

	rows := classSheetDataset(sheet.Rows)
	summary := classSummaryDataset(sheet.Summary)

	var body []byte
	switch format {
	case ExportFormatCSV:
		body, err = s.csv.Render(rows, summary)
	default:
		body, err = s.sheetPDF.Render(export.Document{
			Title: "Class Result Sheet",
			Fields: []export.Field{
				{Label: "Class", Value: sheet.ClassName},
				{Label: "Academic Year", Value: sheet.AcademicYear},
			},
			Tables: []export.Table{
				{Caption: "Students", Data: rows},
				{Caption: "Summary", Data: summary},
			},
		})
	}
	if err != nil {
		s.logger.Error("render class results", zap.String("class_id", classID), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render class results")
	}

	label := sheet.ClassName
	if label == "" {
		label = classID
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("class_results_%s_%s.%s", sanitizeFilename(label), sanitizeFilename(academicYear), format),
		ContentType: contentType(format),
		Body:        body,
	}, nil
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "":
		return ExportFormatPDF, nil
	case ExportFormatCSV, ExportFormatPDF:
		return format, nil
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
}

func contentType(format string) string {
	if format == ExportFormatCSV {
		return "text/csv"
	}
	return "application/pdf"
}

const maxFilenameBytes = 100

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	out := replacer.Replace(raw)
	if len(out) <= maxFilenameBytes {
		return out
	}
	// Cut on a rune boundary so multi-byte names stay valid UTF-8.
	n := maxFilenameBytes
	for n > 0 && !utf8.RuneStart(out[n]) {
		n--
	}
	return out[:n]
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func reportTermDataset(terms result.TermSummaries) export.Dataset {
	headers := []string{"Term", "Total", "Percentage", "Status", "Average"}
	rows := make([]map[string]string, 0, 3)
	for i, term := range []result.TermSummary{terms.Term1, terms.Term2, terms.Term3} {
		rows = append(rows, map[string]string{
			"Term":       fmt.Sprintf("Term %d", i+1),
			"Total":      formatNumber(term.Total),
			"Percentage": formatNumber(term.Percentage),
			"Status":     term.Status,
			"Average":    formatNumber(term.Average),
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

// reportSubjectDataset lists the card's own scored rows so subject verdicts
// always agree with the final result they were graded alongside.
func reportSubjectDataset(subjects []dto.ScoredSubject) export.Dataset {
	headers := []string{"Term", "Subject", "Obtained", "Total", "Percentage", "Grade", "Result"}
	rows := make([]map[string]string, 0, len(subjects))
	for _, subject := range subjects {
		verdict := "Fail"
		switch {
		case subject.IsAbsent:
			verdict = "Absent"
		case subject.IsPassed:
			verdict = "Pass"
		}
		obtained := formatNumber(subject.ObtainedMarks)
		if subject.IsAbsent {
			obtained = result.GradeAbsent
		}
		rows = append(rows, map[string]string{
			"Term":       fmt.Sprintf("Term %d", subject.Term),
			"Subject":    subject.SubjectName,
			"Obtained":   obtained,
			"Total":      formatNumber(subject.TotalMarks),
			"Percentage": formatNumber(subject.Percentage),
			"Grade":      subject.Grade,
			"Result":     verdict,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}

func reportFinalDataset(final result.ReportCardFinal) export.Dataset {
	promotion := "No"
	if final.PromotionStatus {
		promotion = "Yes"
	}
	return export.Dataset{
		Headers: []string{"Total Marks", "Obtained Marks", "Percentage", "Grade", "Status", "Remarks", "Promoted"},
		Rows: []map[string]string{{
			"Total Marks":    formatNumber(final.TotalMarks),
			"Obtained Marks": formatNumber(final.ObtainedMarks),
			"Percentage":     formatNumber(final.FinalPercentage),
			"Grade":          final.FinalGrade,
			"Status":         final.Status,
			"Remarks":        final.Remarks,
			"Promoted":       promotion,
		}},
	}
}

func classSheetDataset(rows []dto.ClassResultRow) export.Dataset {
	headers := []string{"Roll", "Name", "Obtained", "Total", "Percentage", "Grade", "Status", "Remarks", "Promoted"}
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		promoted := "No"
		if row.Promoted {
			promoted = "Yes"
		}
		out = append(out, map[string]string{
			"Roll":       row.RollNumber,
			"Name":       row.StudentName,
			"Obtained":   formatNumber(row.ObtainedMarks),
			"Total":      formatNumber(row.TotalMarks),
			"Percentage": formatNumber(row.FinalPercentage),
			"Grade":      row.FinalGrade,
			"Status":     row.Status,
			"Remarks":    row.Remarks,
			"Promoted":   promoted,
		})
	}
	return export.Dataset{Headers: headers, Rows: out}
}

func classSummaryDataset(summary dto.ClassResultSummary) export.Dataset {
	return export.Dataset{
		Headers: []string{"Students", "Promoted", "Failed", "Absent", "Average Percentage"},
		Rows: []map[string]string{{
			"Students":           strconv.Itoa(summary.Students),
			"Promoted":           strconv.Itoa(summary.Promoted),
			"Failed":             strconv.Itoa(summary.Failed),
			"Absent":             strconv.Itoa(summary.Absent),
			"Average Percentage": formatNumber(summary.AveragePercentage),
		}},
	}
}
