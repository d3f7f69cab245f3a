package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepositoryGet(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery("FROM school_settings").
		WillReturnRows(sqlmock.NewRows([]string{"pass_percentage", "max_fail_subjects", "updated_at"}).AddRow(40.0, 2, time.Now()))

	settings, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40.0, settings.PassPercentage)
	assert.Equal(t, 2, settings.MaxFailSubjects)
}

func TestSettingsRepositoryGetMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery("FROM school_settings").
		WillReturnRows(sqlmock.NewRows([]string{"pass_percentage", "max_fail_subjects", "updated_at"}))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
