package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// PreferenceRepository defines the interface for notification preference rows
type PreferenceRepository interface {
	GetOrCreate(ctx context.Context, userID uint) (*models.NotificationPreference, error)
	Save(ctx context.Context, pref *models.NotificationPreference) error
}

// PostgresPreferenceRepository implements PreferenceRepository for PostgreSQL
type PostgresPreferenceRepository struct {
	db *gorm.DB
}

// NewPostgresPreferenceRepository creates a new PostgresPreferenceRepository
func NewPostgresPreferenceRepository(db *gorm.DB) *PostgresPreferenceRepository {
	return &PostgresPreferenceRepository{db: db}
}

// GetOrCreate loads a user's preference row, inserting the default-enabled row
// on first touch. The unique index on user_id makes concurrent first touches
// converge on a single row.
func (r *PostgresPreferenceRepository) GetOrCreate(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	defaults := models.DefaultPreferences(userID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(defaults).Error; err != nil {
		return nil, err
	}

	var pref models.NotificationPreference
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error; err != nil {
		return nil, err
	}
	return &pref, nil
}

// Save persists a modified preference row
func (r *PostgresPreferenceRepository) Save(ctx context.Context, pref *models.NotificationPreference) error {
	return r.db.WithContext(ctx).Save(pref).Error
}
