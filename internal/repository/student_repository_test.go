package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var studentRowColumns = []string{"id", "name", "roll_number", "class_id", "class_name", "active"}

func TestStudentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM students s LEFT JOIN classes c ON c.id = s.class_id WHERE s.id = $1")).
		WithArgs("stu-1").
		WillReturnRows(sqlmock.NewRows(studentRowColumns).AddRow("stu-1", "Ayu Lestari", "12", "cls-1", "X-IPA-1", true))

	student, err := repo.FindByID(context.Background(), "stu-1")
	require.NoError(t, err)
	assert.Equal(t, "Ayu Lestari", student.Name)
	assert.Equal(t, "X-IPA-1", student.ClassName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM students s").WithArgs("missing").WillReturnRows(sqlmock.NewRows(studentRowColumns))

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows(studentRowColumns).
		AddRow("stu-1", "Ayu", "1", "cls-1", "X-IPA-1", true).
		AddRow("stu-2", "Budi", "2", "cls-1", "X-IPA-1", true)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.class_id = $1 AND s.active = TRUE ORDER BY s.roll_number ASC")).
		WithArgs("cls-1").
		WillReturnRows(rows)

	students, err := repo.ListByClass(context.Background(), "cls-1")
	require.NoError(t, err)
	assert.Len(t, students, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
