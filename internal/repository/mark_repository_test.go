package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-results-api/internal/models"
)

var markRowColumns = []string{"id", "student_id", "subject_id", "subject_name", "term", "academic_year", "total_marks", "obtained_marks", "passing_marks", "is_absent", "updated_at"}

func TestMarkRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(markRowColumns).
		AddRow("m1", "stu-1", "sub-1", "Matematika", 1, "2024/2025", 100.0, 80.0, 33.0, false, now).
		AddRow("m2", "stu-1", "sub-2", "Biologi", 1, "2024/2025", 100.0, 0.0, 33.0, true, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND m.student_id = $1 AND m.academic_year = $2 ORDER BY m.student_id, m.term, sub.name")).
		WithArgs("stu-1", "2024/2025").
		WillReturnRows(rows)

	marks, err := repo.ListByStudent(context.Background(), "stu-1", "2024/2025")
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, "Matematika", marks[0].SubjectName)
	assert.True(t, marks[1].IsAbsent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryListByClassGroupsByStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(markRowColumns).
		AddRow("m1", "stu-1", "sub-1", "Matematika", 1, "2024/2025", 100.0, 80.0, 33.0, false, now).
		AddRow("m2", "stu-2", "sub-1", "Matematika", 1, "2024/2025", 100.0, 60.0, 33.0, false, now).
		AddRow("m3", "stu-2", "sub-1", "Matematika", 2, "2024/2025", 100.0, 65.0, 33.0, false, now)
	mock.ExpectQuery(regexp.QuoteMeta("AND st.class_id = $1 AND m.academic_year = $2")).
		WithArgs("cls-1", "2024/2025").
		WillReturnRows(rows)

	grouped, err := repo.ListByClass(context.Background(), "cls-1", "2024/2025")
	require.NoError(t, err)
	assert.Len(t, grouped["stu-1"], 1)
	assert.Len(t, grouped["stu-2"], 2)
}

func TestMarkRepositoryListWithTerm(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AND m.term = $1 ORDER BY")).
		WithArgs(2).
		WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), models.MarkFilter{Term: 2})
	assert.ErrorContains(t, err, "list exam marks")
}

func TestMarkRepositoryBulkUpsert(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	args := make([]driver.Value, 10)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO exam_marks").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO exam_marks").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	marks := []models.ExamMark{
		{StudentID: "stu-1", SubjectID: "sub-1", Term: 1, AcademicYear: " 2024/2025 ", TotalMarks: 100, ObtainedMarks: 80, PassingMarks: 33},
		{ID: "existing", StudentID: "stu-1", SubjectID: "sub-2", Term: 1, AcademicYear: "2024/2025", TotalMarks: 100, PassingMarks: 33, IsAbsent: true},
	}
	require.NoError(t, repo.BulkUpsert(context.Background(), marks))
	assert.NotEmpty(t, marks[0].ID)
	assert.Equal(t, "existing", marks[1].ID)
	assert.Equal(t, "2024/2025", marks[0].AcademicYear)
	assert.False(t, marks[0].UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryBulkUpsertRollsBack(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewMarkRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO exam_marks").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.BulkUpsert(context.Background(), []models.ExamMark{{StudentID: "stu-1", SubjectID: "sub-1", Term: 1, AcademicYear: "2024/2025"}})
	assert.ErrorContains(t, err, "upsert exam mark")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRepositoryBulkUpsertEmpty(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	require.NoError(t, NewMarkRepository(db).BulkUpsert(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
