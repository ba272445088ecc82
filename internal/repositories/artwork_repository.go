package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// ArtworkRepository defines the interface for artwork data operations
type ArtworkRepository interface {
	WithTx(tx *gorm.DB) ArtworkRepository
	Create(ctx context.Context, artwork *models.Artwork) error
	GetByID(ctx context.Context, id uint) (*models.Artwork, error)
	ListByArtist(ctx context.Context, artistID uint, limit int) ([]models.Artwork, error)
}

// PostgresArtworkRepository implements ArtworkRepository for PostgreSQL
type PostgresArtworkRepository struct {
	db *gorm.DB
}

// NewPostgresArtworkRepository creates a new PostgresArtworkRepository
func NewPostgresArtworkRepository(db *gorm.DB) *PostgresArtworkRepository {
	return &PostgresArtworkRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle
func (r *PostgresArtworkRepository) WithTx(tx *gorm.DB) ArtworkRepository {
	return &PostgresArtworkRepository{db: tx}
}

func (r *PostgresArtworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	return r.db.WithContext(ctx).Create(artwork).Error
}

func (r *PostgresArtworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).First(&artwork, id).Error; err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (r *PostgresArtworkRepository) ListByArtist(ctx context.Context, artistID uint, limit int) ([]models.Artwork, error) {
	var artworks []models.Artwork
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Order("created_at DESC").
		Limit(limit).
		Find(&artworks).Error
	return artworks, err
}
