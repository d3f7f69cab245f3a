package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sma-results-api/internal/models"
)

// SettingsRepository reads the school-wide grading settings.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the latest settings row. sql.ErrNoRows is returned unwrapped
// when the settings page was never saved.
func (r *SettingsRepository) Get(ctx context.Context) (*models.SchoolSettings, error) {
	const query = `SELECT pass_percentage, max_fail_subjects, updated_at FROM school_settings ORDER BY updated_at DESC LIMIT 1`
	var settings models.SchoolSettings
	if err := r.db.GetContext(ctx, &settings, query); err != nil {
		return nil, err
	}
	return &settings, nil
}
