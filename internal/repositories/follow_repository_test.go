package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

func TestFollowRepositoryDuplicateEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alpha")
	b := createTestUser(t, db, "beta")

	require.NoError(t, repo.Create(ctx, &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID}))

	err := repo.Create(ctx, &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFollowRepositoryDeleteReportsExistence(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alpha")
	b := createTestUser(t, db, "beta")

	require.NoError(t, repo.Create(ctx, &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID}))

	removed, err := repo.Delete(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowRepositorySetMutual(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alpha")
	b := createTestUser(t, db, "beta")

	require.NoError(t, repo.Create(ctx, &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID}))
	require.NoError(t, repo.SetMutual(ctx, a.ID, b.ID, true))

	edge, err := repo.Get(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, edge.IsMutual)
}

func TestFollowRepositoryFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alpha")
	b := createTestUser(t, db, "beta")
	c := createTestUser(t, db, "gamma")

	require.NoError(t, repo.Create(ctx, &models.FollowEdge{FollowerID: a.ID, FollowingID: c.ID}))
	require.NoError(t, repo.Create(ctx, &models.FollowEdge{FollowerID: b.ID, FollowingID: c.ID}))

	followers, err := repo.GetFollowers(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := repo.GetFollowing(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, c.ID, following[0].ID)

	ids, err := repo.GetFollowingIDs(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{c.ID}, ids)
}
