package postgres

import (
	"context"
	"database/sql"
	"errors"

	"travelplan/internal/domain"
	"travelplan/internal/repository"
)

// PreferencesRepository is a PostgreSQL implementation of repository.PreferencesRepository.
type PreferencesRepository struct {
	q Querier
}

// NewPreferencesRepository creates a new PostgreSQL preferences repository.
func NewPreferencesRepository(db *sql.DB) *PreferencesRepository {
	return &PreferencesRepository{q: db}
}

// GetByUserID retrieves a user's stored preferences.
func (r *PreferencesRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Preferences, error) {
	query := `
		SELECT user_id, home_city_id, preferred_categories
		FROM user_preferences WHERE user_id = $1
	`

	var prefs domain.Preferences
	var categories sql.NullString

	err := r.q.QueryRowContext(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.HomeCityID,
		&categories,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	prefs.PreferredCategories = categories.String

	return &prefs, nil
}

// Ensure PreferencesRepository implements repository.PreferencesRepository.
var _ repository.PreferencesRepository = (*PreferencesRepository)(nil)
