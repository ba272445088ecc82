package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

func TestCreateArtworkBumpsCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	owner := env.createUser(t, "owner")

	wall, err := env.content.CreateWall(ctx, owner.ID, &models.CreateWallRequest{Title: "Leake Street"})
	require.NoError(t, err)

	artwork, err := env.content.CreateArtwork(ctx, artist.ID, &models.CreateArtworkRequest{
		Title:  "Rat stencil",
		WallID: &wall.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, artwork.ID)

	assert.Equal(t, int64(1), env.user(t, artist.ID).ArtworksCount)

	var reloadedWall models.Wall
	require.NoError(t, env.db.First(&reloadedWall, wall.ID).Error)
	assert.Equal(t, int64(1), reloadedWall.ArtworksCount)
}

func TestCreateArtworkUnknownWall(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	missing := uint(999)

	_, err := env.content.CreateArtwork(ctx, artist.ID, &models.CreateArtworkRequest{
		Title:  "Orphan",
		WallID: &missing,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), env.user(t, artist.ID).ArtworksCount)
}

func TestCreatePostBumpsCounter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	author := env.createUser(t, "author")

	_, err := env.content.CreatePost(ctx, author.ID, &models.CreatePostRequest{Content: "new piece up"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), env.user(t, author.ID).PostsCount)

	_, err = env.content.CreatePost(ctx, author.ID, &models.CreatePostRequest{Content: ""})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(1), env.user(t, author.ID).PostsCount)
}

func TestCreateWallAnnouncesToFollowers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	scout := env.createUser(t, "scout")
	fan := env.createUser(t, "fan")
	require.NoError(t, env.relationships.Follow(ctx, fan.ID, scout.ID))
	env.pendingJobs() // clear the follow fanout

	wall, err := env.content.CreateWall(ctx, scout.ID, &models.CreateWallRequest{Title: "Hosier Lane"})
	require.NoError(t, err)

	ns := env.notificationsFor(t, fan.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.EventNearbyWall, ns[0].Type)
	assert.Nil(t, ns[0].ActorID)
	assert.Equal(t, wall.ID, ns[0].SubjectID)

	// The submitter never hears about their own wall.
	for _, n := range env.notificationsFor(t, scout.ID) {
		assert.NotEqual(t, models.EventNearbyWall, n.Type)
	}
}
