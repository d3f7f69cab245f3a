package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-results-api/internal/models"
)

// MarkRepository manages subject marks per student, term and academic year.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs repository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// List returns marks matching the filter ordered by student, term and subject.
func (r *MarkRepository) List(ctx context.Context, filter models.MarkFilter) ([]models.ExamMark, error) {
	var (
		conditions []string
		args       []interface{}
	)
	add := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}
	if filter.StudentID != "" {
		add("m.student_id = $%d", filter.StudentID)
	}
	if filter.ClassID != "" {
		add("st.class_id = $%d", filter.ClassID)
	}
	if filter.AcademicYear != "" {
		add("m.academic_year = $%d", filter.AcademicYear)
	}
	if filter.Term > 0 {
		add("m.term = $%d", filter.Term)
	}

	query := `SELECT m.id, m.student_id, m.subject_id, sub.name AS subject_name, m.term, m.academic_year,
        m.total_marks, m.obtained_marks, m.passing_marks, m.is_absent, m.updated_at
        FROM exam_marks m
        JOIN subjects sub ON sub.id = m.subject_id
        JOIN students st ON st.id = m.student_id
        WHERE 1=1`
	for _, cond := range conditions {
		query += " AND " + cond
	}
	query += " ORDER BY m.student_id, m.term, sub.name"

	var marks []models.ExamMark
	if err := r.db.SelectContext(ctx, &marks, query, args...); err != nil {
		return nil, fmt.Errorf("list exam marks: %w", err)
	}
	return marks, nil
}

// ListByStudent returns every mark of a student for an academic year.
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID, academicYear string) ([]models.ExamMark, error) {
	return r.List(ctx, models.MarkFilter{StudentID: studentID, AcademicYear: academicYear})
}

// ListByClass returns the marks of a class for an academic year keyed by student.
func (r *MarkRepository) ListByClass(ctx context.Context, classID, academicYear string) (map[string][]models.ExamMark, error) {
	marks, err := r.List(ctx, models.MarkFilter{ClassID: classID, AcademicYear: academicYear})
	if err != nil {
		return nil, err
	}
	result := make(map[string][]models.ExamMark)
	for _, mark := range marks {
		result[mark.StudentID] = append(result[mark.StudentID], mark)
	}
	return result, nil
}

// BulkUpsert inserts or updates marks atomically.
func (r *MarkRepository) BulkUpsert(ctx context.Context, marks []models.ExamMark) error {
	if len(marks) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mark upsert: %w", err)
	}
	const query = `INSERT INTO exam_marks (id, student_id, subject_id, term, academic_year, total_marks, obtained_marks, passing_marks, is_absent, updated_at)
        VALUES (:id, :student_id, :subject_id, :term, :academic_year, :total_marks, :obtained_marks, :passing_marks, :is_absent, :updated_at)
        ON CONFLICT (student_id, subject_id, term, academic_year)
        DO UPDATE SET total_marks = EXCLUDED.total_marks, obtained_marks = EXCLUDED.obtained_marks,
                      passing_marks = EXCLUDED.passing_marks, is_absent = EXCLUDED.is_absent, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for i := range marks {
		if marks[i].ID == "" {
			marks[i].ID = uuid.NewString()
		}
		marks[i].AcademicYear = strings.TrimSpace(marks[i].AcademicYear)
		marks[i].UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, marks[i]); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("upsert exam mark: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit exam marks: %w", err)
	}
	return nil
}
