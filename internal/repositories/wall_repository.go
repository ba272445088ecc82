package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// WallRepository defines the interface for wall data operations
type WallRepository interface {
	WithTx(tx *gorm.DB) WallRepository
	Create(ctx context.Context, wall *models.Wall) error
	GetByID(ctx context.Context, id uint) (*models.Wall, error)
	ListRecent(ctx context.Context, limit int) ([]models.Wall, error)
}

// PostgresWallRepository implements WallRepository for PostgreSQL
type PostgresWallRepository struct {
	db *gorm.DB
}

// NewPostgresWallRepository creates a new PostgresWallRepository
func NewPostgresWallRepository(db *gorm.DB) *PostgresWallRepository {
	return &PostgresWallRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle
func (r *PostgresWallRepository) WithTx(tx *gorm.DB) WallRepository {
	return &PostgresWallRepository{db: tx}
}

func (r *PostgresWallRepository) Create(ctx context.Context, wall *models.Wall) error {
	return r.db.WithContext(ctx).Create(wall).Error
}

func (r *PostgresWallRepository) GetByID(ctx context.Context, id uint) (*models.Wall, error) {
	var wall models.Wall
	if err := r.db.WithContext(ctx).First(&wall, id).Error; err != nil {
		return nil, err
	}
	return &wall, nil
}

func (r *PostgresWallRepository) ListRecent(ctx context.Context, limit int) ([]models.Wall, error) {
	var walls []models.Wall
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&walls).Error
	return walls, err
}
