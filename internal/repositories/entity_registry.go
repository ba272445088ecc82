package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// entityInfo describes how a tagged entity type maps onto storage: its model,
// the column holding the owning user, and the counter columns that may be
// mutated through the counter store.
type entityInfo struct {
	model       interface{}
	ownerColumn string
	counters    map[string]bool
	likeable    bool
	commentable bool
}

var entityTable = map[models.EntityType]entityInfo{
	models.EntityArtwork: {
		model:       &models.Artwork{},
		ownerColumn: "artist_id",
		counters:    counterSet("likes_count", "comments_count"),
		likeable:    true,
		commentable: true,
	},
	models.EntityPost: {
		model:       &models.Post{},
		ownerColumn: "user_id",
		counters:    counterSet("likes_count", "comments_count"),
		likeable:    true,
		commentable: true,
	},
	models.EntityWall: {
		model:       &models.Wall{},
		ownerColumn: "submitted_by_id",
		counters:    counterSet("likes_count", "comments_count", "artworks_count"),
		likeable:    true,
		commentable: true,
	},
	models.EntityComment: {
		model:       &models.Comment{},
		ownerColumn: "user_id",
		counters:    counterSet("likes_count", "replies_count"),
		likeable:    true,
	},
	models.EntityUser: {
		model:       &models.User{},
		ownerColumn: "id",
		counters:    counterSet("followers_count", "following_count", "artworks_count", "posts_count"),
	},
}

func counterSet(fields ...string) map[string]bool {
	s := make(map[string]bool, len(fields))
	for _, f := range fields {
		s[f] = true
	}
	return s
}

// EntityRegistry resolves tagged entity refs against their backing tables
type EntityRegistry struct {
	db *gorm.DB
}

// NewEntityRegistry creates a new EntityRegistry
func NewEntityRegistry(db *gorm.DB) *EntityRegistry {
	return &EntityRegistry{db: db}
}

// IsLikeable reports whether the entity type accepts likes
func (r *EntityRegistry) IsLikeable(t models.EntityType) bool {
	return entityTable[t].likeable
}

// IsCommentable reports whether the entity type accepts comments
func (r *EntityRegistry) IsCommentable(t models.EntityType) bool {
	return entityTable[t].commentable
}

// OwnerOf returns the ID of the user owning the referenced entity
func (r *EntityRegistry) OwnerOf(ctx context.Context, ref models.EntityRef) (uint, error) {
	info, ok := entityTable[ref.Type]
	if !ok {
		return 0, fmt.Errorf("unknown entity type %q", ref.Type)
	}

	var owners []uint
	err := r.db.WithContext(ctx).
		Model(info.model).
		Where("id = ?", ref.ID).
		Limit(1).
		Pluck(info.ownerColumn, &owners).Error
	if err != nil {
		return 0, err
	}
	if len(owners) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return owners[0], nil
}

// CounterValue reads the current value of a denormalized counter column
func (r *EntityRegistry) CounterValue(ctx context.Context, ref models.EntityRef, field string) (int64, error) {
	info, ok := entityTable[ref.Type]
	if !ok {
		return 0, fmt.Errorf("unknown entity type %q", ref.Type)
	}
	if !info.counters[field] {
		return 0, fmt.Errorf("entity type %q has no counter %q", ref.Type, field)
	}

	var values []int64
	err := r.db.WithContext(ctx).
		Model(info.model).
		Where("id = ?", ref.ID).
		Limit(1).
		Pluck(field, &values).Error
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return values[0], nil
}
