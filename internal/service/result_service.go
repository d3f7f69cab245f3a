package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/models"
	"github.com/noah-isme/sma-results-api/internal/result"
	appErrors "github.com/noah-isme/sma-results-api/pkg/errors"
)

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	ListByClass(ctx context.Context, classID string) ([]models.Student, error)
}

type markReader interface {
	ListByStudent(ctx context.Context, studentID, academicYear string) ([]models.ExamMark, error)
	ListByClass(ctx context.Context, classID, academicYear string) (map[string][]models.ExamMark, error)
}

type settingsReader interface {
	Get(ctx context.Context) (*models.SchoolSettings, error)
}

// Result kinds recorded in metrics.
const (
	resultKindSubject    = "subject"
	resultKindTerm       = "term"
	resultKindFinal      = "final"
	resultKindReportCard = "report_card"
)

// ResultServiceConfig carries the configured grading fallbacks.
type ResultServiceConfig struct {
	PassPercentage  float64
	MaxFailSubjects int
	CacheTTL        time.Duration
}

// ResultServiceParams groups constructor dependencies.
type ResultServiceParams struct {
	Students  studentReader
	Marks     markReader
	Settings  settingsReader
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    ResultServiceConfig
}

// ResultService evaluates marks into results and report cards.
type ResultService struct {
	students  studentReader
	marks     markReader
	settings  settingsReader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ResultServiceConfig
	fallback  result.Rules
}

// NewResultService constructs a ResultService.
func NewResultService(params ResultServiceParams) *ResultService {
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &ResultService{
		students:  params.Students,
		marks:     params.Marks,
		settings:  params.Settings,
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: params.Validator,
		logger:    params.Logger,
		cfg:       params.Config,
		fallback:  result.RulesFromSettings(params.Config.PassPercentage, params.Config.MaxFailSubjects),
	}
}

// Calculator returns a calculator for the current school settings. Without
// stored settings the configured fallback applies.
func (s *ResultService) Calculator(ctx context.Context) (*result.Calculator, error) {
	rules := s.fallback
	if s.settings != nil {
		start := time.Now()
		settings, err := s.settings.Get(ctx)
		s.metrics.ObserveDBQuery("settings_get", time.Since(start))
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load school settings")
		default:
			rules = s.fallback.WithSettings(settings.PassPercentage, settings.MaxFailSubjects)
		}
	}
	if err := rules.Validate(); err != nil {
		s.logger.Error("invalid grading rules", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidRules.Code, appErrors.ErrInvalidRules.Status, appErrors.ErrInvalidRules.Message)
	}
	return result.NewCalculator(rules), nil
}

// SubjectOutcome scores a single posted subject.
func (s *ResultService) SubjectOutcome(ctx context.Context, req dto.SubjectResultRequest) (*dto.SubjectResultResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	calc, err := s.Calculator(ctx)
	if err != nil {
		return nil, err
	}
	outcome := calc.SubjectResult(req.ObtainedMarks, req.TotalMarks, req.PassingMarks, req.IsAbsent)
	s.metrics.RecordResult(resultKindSubject, subjectStatus(outcome))
	return &dto.SubjectResultResponse{SubjectOutcome: outcome, GradeColor: result.GradeColor(outcome.Grade)}, nil
}

// TermResult evaluates a posted term.
func (s *ResultService) TermResult(ctx context.Context, req dto.TermResultRequest) (*dto.TermResultResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	calc, err := s.Calculator(ctx)
	if err != nil {
		return nil, err
	}
	term := calc.TermResult(dto.SubjectMarks(req.Marks))
	term.TermName = strings.TrimSpace(req.TermName)
	s.metrics.RecordResult(resultKindTerm, term.Status)
	return &dto.TermResultResponse{TermResult: term, StatusColor: result.StatusColor(term.Status)}, nil
}

// FinalResult evaluates the posted terms into a promotion decision.
func (s *ResultService) FinalResult(ctx context.Context, req dto.FinalResultRequest) (*dto.FinalResultResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	calc, err := s.Calculator(ctx)
	if err != nil {
		return nil, err
	}
	final := calc.FinalResult(termOrNil(calc, req.Term1), termOrNil(calc, req.Term2), termOrNil(calc, req.Term3))
	s.metrics.RecordResult(resultKindFinal, final.Status)
	return &dto.FinalResultResponse{
		FinalResult:     final,
		PromotionStatus: calc.ShouldPromote(final),
		GradeColor:      result.GradeColor(final.FinalGrade),
		StatusColor:     result.StatusColor(final.Status),
	}, nil
}

// ReportCard builds a report card from posted marks.
func (s *ResultService) ReportCard(ctx context.Context, req dto.ReportCardRequest) (*dto.ReportCardResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}
	calc, err := s.Calculator(ctx)
	if err != nil {
		return nil, err
	}
	card := calc.ReportCard(req.StudentName, req.RollNumber, req.ClassName,
		dto.SubjectMarks(req.Term1), dto.SubjectMarks(req.Term2), dto.SubjectMarks(req.Term3))
	s.metrics.RecordResult(resultKindReportCard, card.FinalResult.Status)
	return reportCardResponse(calc, card, "", ""), nil
}

// StudentReportCard builds the report card of a stored student for an academic year.
func (s *ResultService) StudentReportCard(ctx context.Context, studentID, academicYear string) (*dto.ReportCardResponse, error) {
	studentID = strings.TrimSpace(studentID)
	academicYear = strings.TrimSpace(academicYear)
	if studentID == "" || academicYear == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and academic_year are required")
	}

	calc, err := s.Calculator(ctx)
	if err != nil {
		return nil, err
	}

	key := reportCardKey(studentID, academicYear, calc.Rules().Fingerprint())
	var cached dto.ReportCardResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	student, err := s.students.FindByID(ctx, studentID)
	s.metrics.ObserveDBQuery("student_find", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	start = time.Now()
	marks, err := s.marks.ListByStudent(ctx, studentID, academicYear)
	s.metrics.ObserveDBQuery("marks_by_student", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}

	term1, term2, term3 := models.MarksByTerm(marks)
	card := calc.ReportCard(student.Name, student.RollNumber, student.ClassName, term1, term2, term3)
	s.metrics.RecordResult(resultKindReportCard, card.FinalResult.Status)

	resp := reportCardResponse(calc, card, student.ID, academicYear)
	if err := s.cache.Set(ctx, key, resp, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("report card not cached", zap.String("student_id", studentID), zap.Error(err))
	}
	return resp, nil
}

// ClassResults evaluates every active student of a class for an academic year.
func (s *ResultService) ClassResults(ctx context.Context, classID, academicYear string) (*dto.ClassResultsResponse, error) {
	classID = strings.TrimSpace(classID)
	academicYear = strings.TrimSpace(academicYear)
	if classID == "" || academicYear == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class id and academic_year are required")
	}

	calc, err := s.Calculator(ctx)
	if err != nil {
		return nil, err
	}

	key := classResultsKey(classID, academicYear, calc.Rules().Fingerprint())
	var cached dto.ClassResultsResponse
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	students, err := s.students.ListByClass(ctx, classID)
	s.metrics.ObserveDBQuery("students_by_class", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class has no active students")
	}

	start = time.Now()
	marksByStudent, err := s.marks.ListByClass(ctx, classID, academicYear)
	s.metrics.ObserveDBQuery("marks_by_class", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load marks")
	}

	resp := &dto.ClassResultsResponse{
		ClassID:      classID,
		ClassName:    students[0].ClassName,
		AcademicYear: academicYear,
		Rows:         make([]dto.ClassResultRow, 0, len(students)),
	}
	var percentageSum float64
	for _, student := range students {
		term1, term2, term3 := models.MarksByTerm(marksByStudent[student.ID])
		card := calc.ReportCard(student.Name, student.RollNumber, student.ClassName, term1, term2, term3)
		final := card.FinalResult
		s.metrics.RecordResult(resultKindReportCard, final.Status)

		resp.Rows = append(resp.Rows, dto.ClassResultRow{
			StudentID:       student.ID,
			StudentName:     student.Name,
			RollNumber:      student.RollNumber,
			TotalMarks:      final.TotalMarks,
			ObtainedMarks:   final.ObtainedMarks,
			FinalPercentage: final.FinalPercentage,
			FinalGrade:      final.FinalGrade,
			Status:          final.Status,
			Remarks:         final.Remarks,
			Promoted:        final.PromotionStatus,
		})

		percentageSum += final.FinalPercentage
		switch {
		case final.PromotionStatus:
			resp.Summary.Promoted++
		case final.Status == result.StatusAbsent:
			resp.Summary.Absent++
		default:
			resp.Summary.Failed++
		}
	}
	resp.Summary.Students = len(students)
	resp.Summary.AveragePercentage = math.Round(percentageSum/float64(len(students))*100) / 100

	if err := s.cache.Set(ctx, key, resp, s.cfg.CacheTTL); err != nil {
		s.logger.Debug("class results not cached", zap.String("class_id", classID), zap.Error(err))
	}
	return resp, nil
}

func (s *ResultService) validate(req interface{}) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	return nil
}

func termOrNil(calc *result.Calculator, marks []dto.SubjectMarkInput) *result.TermResult {
	if marks == nil {
		return nil
	}
	term := calc.TermResult(dto.SubjectMarks(marks))
	return &term
}

func subjectStatus(outcome result.SubjectOutcome) string {
	switch {
	case outcome.Grade == result.GradeAbsent:
		return result.StatusAbsent
	case outcome.IsPassed:
		return result.StatusPass
	default:
		return result.StatusFail
	}
}

func reportCardResponse(calc *result.Calculator, card result.ReportCardData, studentID, academicYear string) *dto.ReportCardResponse {
	terms := [][]result.SubjectMark{card.SubjectMarks.Term1, card.SubjectMarks.Term2, card.SubjectMarks.Term3}
	subjects := make([]result.SubjectMark, 0, len(terms[0])+len(terms[1])+len(terms[2]))
	scored := make([]dto.ScoredSubject, 0, cap(subjects))
	for i, marks := range terms {
		for _, mark := range marks {
			subjects = append(subjects, mark)
			scored = append(scored, dto.ScoredSubject{
				Term:           i + 1,
				SubjectMark:    mark,
				SubjectOutcome: calc.SubjectResult(mark.ObtainedMarks, mark.TotalMarks, mark.PassingMarks, mark.IsAbsent),
			})
		}
	}
	return &dto.ReportCardResponse{
		ReportCardData: card,
		StudentID:      studentID,
		AcademicYear:   academicYear,
		Subjects:       result.GetClassSubjects(subjects),
		SubjectResults: scored,
		GradeColor:     result.GradeColor(card.FinalResult.FinalGrade),
		StatusColor:    result.StatusColor(card.FinalResult.Status),
	}
}
