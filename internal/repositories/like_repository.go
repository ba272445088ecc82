package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository
	Create(ctx context.Context, like *models.Like) error
	Delete(ctx context.Context, ref models.EntityRef, userID uint) (bool, error)
	Get(ctx context.Context, ref models.EntityRef, userID uint) (*models.Like, error)
	CountFor(ctx context.Context, ref models.EntityRef) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle
func (r *PostgresLikeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &PostgresLikeRepository{db: tx}
}

// Create inserts a like. A concurrent insert for the same (user, target) pair
// surfaces as gorm.ErrDuplicatedKey; the engagement engine treats that as a
// benign lost race.
func (r *PostgresLikeRepository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// Delete removes a like and reports whether a row actually existed
func (r *PostgresLikeRepository) Delete(ctx context.Context, ref models.EntityRef, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("likeable_type = ? AND likeable_id = ? AND user_id = ?", ref.Type, ref.ID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Get retrieves a user's like on the given entity, or nil when absent
func (r *PostgresLikeRepository) Get(ctx context.Context, ref models.EntityRef, userID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("likeable_type = ? AND likeable_id = ? AND user_id = ?", ref.Type, ref.ID, userID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// CountFor counts the like rows referencing an entity
func (r *PostgresLikeRepository) CountFor(ctx context.Context, ref models.EntityRef) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("likeable_type = ? AND likeable_id = ?", ref.Type, ref.ID).
		Count(&count).Error
	return count, err
}
