package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// DeviceRepository defines the interface for push device endpoints
type DeviceRepository interface {
	Upsert(ctx context.Context, device *models.Device) error
	TokensFor(ctx context.Context, userID uint) ([]string, error)
	DeleteToken(ctx context.Context, token string) error
}

// PostgresDeviceRepository implements DeviceRepository for PostgreSQL
type PostgresDeviceRepository struct {
	db *gorm.DB
}

// NewPostgresDeviceRepository creates a new PostgresDeviceRepository
func NewPostgresDeviceRepository(db *gorm.DB) *PostgresDeviceRepository {
	return &PostgresDeviceRepository{db: db}
}

// Upsert registers a device token, reassigning it when another user logs in
// on the same device
func (r *PostgresDeviceRepository) Upsert(ctx context.Context, device *models.Device) error {
	device.LastSeenAt = time.Now()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "last_seen_at"}),
		}).
		Create(device).Error
}

// TokensFor returns every registered push token for a user
func (r *PostgresDeviceRepository) TokensFor(ctx context.Context, userID uint) ([]string, error) {
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&models.Device{}).
		Where("user_id = ?", userID).
		Pluck("token", &tokens).Error
	return tokens, err
}

// DeleteToken removes a stale or invalidated token
func (r *PostgresDeviceRepository) DeleteToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Device{}).Error
}
