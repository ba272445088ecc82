package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

func TestEntityRegistryOwnerOf(t *testing.T) {
	db := newTestDB(t)
	registry := NewEntityRegistry(db)
	ctx := context.Background()

	artist := createTestUser(t, db, "artist")
	artwork := &models.Artwork{ArtistID: artist.ID, Title: "Tag on 5th"}
	require.NoError(t, db.Create(artwork).Error)

	owner, err := registry.OwnerOf(ctx, models.EntityRef{Type: models.EntityArtwork, ID: artwork.ID})
	require.NoError(t, err)
	assert.Equal(t, artist.ID, owner)

	_, err = registry.OwnerOf(ctx, models.EntityRef{Type: models.EntityArtwork, ID: 999})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEntityRegistryCapabilities(t *testing.T) {
	registry := NewEntityRegistry(nil)

	assert.True(t, registry.IsLikeable(models.EntityComment))
	assert.False(t, registry.IsCommentable(models.EntityComment))
	assert.False(t, registry.IsLikeable(models.EntityUser))
	assert.False(t, registry.IsLikeable("sticker"))
}

func TestEntityRegistryCounterValue(t *testing.T) {
	db := newTestDB(t)
	registry := NewEntityRegistry(db)
	store := NewCounterStore(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	wall := &models.Wall{SubmittedByID: owner.ID, Title: "Brick Lane"}
	require.NoError(t, db.Create(wall).Error)

	ref := models.EntityRef{Type: models.EntityWall, ID: wall.ID}
	require.NoError(t, store.Increment(ctx, ref, "likes_count"))

	v, err := registry.CounterValue(ctx, ref, "likes_count")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = registry.CounterValue(ctx, ref, "posts_count")
	assert.Error(t, err)
}
