package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-results-api/internal/dto"
	"github.com/noah-isme/sma-results-api/internal/models"
	appErrors "github.com/noah-isme/sma-results-api/pkg/errors"
)

type markStore interface {
	List(ctx context.Context, filter models.MarkFilter) ([]models.ExamMark, error)
	BulkUpsert(ctx context.Context, marks []models.ExamMark) error
}

// MarkService manages stored exam marks.
type MarkService struct {
	repo      markStore
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarkService constructs a MarkService.
func NewMarkService(repo markStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *MarkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns marks for a student or a class.
func (s *MarkService) List(ctx context.Context, filter models.MarkFilter) ([]models.ExamMark, error) {
	filter.StudentID = strings.TrimSpace(filter.StudentID)
	filter.ClassID = strings.TrimSpace(filter.ClassID)
	filter.AcademicYear = strings.TrimSpace(filter.AcademicYear)
	if filter.StudentID == "" && filter.ClassID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student_id or class_id is required")
	}
	if filter.Term < 0 || filter.Term > models.TermThird {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term must be between 1 and 3")
	}

	start := time.Now()
	marks, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("marks_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list marks")
	}
	return marks, nil
}

// BulkUpsert records a term's marks and drops cached results they affect.
func (s *MarkService) BulkUpsert(ctx context.Context, req dto.BulkMarksRequest) (*dto.BulkMarksResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	academicYear := strings.TrimSpace(req.AcademicYear)

	marks := make([]models.ExamMark, 0, len(req.Items))
	seen := make(map[string]struct{}, len(req.Items))
	students := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		obtained := item.ObtainedMarks
		if item.IsAbsent {
			obtained = 0
		}
		marks = append(marks, models.ExamMark{
			StudentID:     item.StudentID,
			SubjectID:     item.SubjectID,
			Term:          req.Term,
			AcademicYear:  academicYear,
			TotalMarks:    item.TotalMarks,
			ObtainedMarks: obtained,
			PassingMarks:  item.PassingMarks,
			IsAbsent:      item.IsAbsent,
		})
		if _, ok := seen[item.StudentID]; !ok {
			seen[item.StudentID] = struct{}{}
			students = append(students, item.StudentID)
		}
	}

	start := time.Now()
	err := s.repo.BulkUpsert(ctx, marks)
	s.metrics.ObserveDBQuery("marks_bulk_upsert", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save marks")
	}

	patterns := make([]string, 0, len(students)+1)
	for _, studentID := range students {
		patterns = append(patterns, studentReportPattern(studentID))
	}
	patterns = append(patterns, yearClassPattern(academicYear))
	if err := s.cache.Invalidate(ctx, patterns...); err != nil {
		s.logger.Warn("stale results may be served", zap.String("academic_year", academicYear), zap.Error(err))
	}

	s.logger.Info("marks saved", zap.Int("count", len(marks)), zap.Int("term", req.Term), zap.String("academic_year", academicYear))
	return &dto.BulkMarksResult{Saved: len(marks), Students: students}, nil
}
