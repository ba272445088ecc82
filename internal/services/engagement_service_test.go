package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
)

func createArtwork(t *testing.T, env *testEnv, artistID uint) models.EntityRef {
	t.Helper()
	artwork := &models.Artwork{ArtistID: artistID, Title: "Paste-up"}
	require.NoError(t, env.db.Create(artwork).Error)
	return models.EntityRef{Type: models.EntityArtwork, ID: artwork.ID}
}

func TestToggleLikeIsItsOwnInverse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	fan := env.createUser(t, "fan")
	ref := createArtwork(t, env, artist.ID)

	liked, count, err := env.engagement.ToggleLike(ctx, fan.ID, ref, "")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = env.engagement.ToggleLike(ctx, fan.ID, ref, "")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count)

	// Only the first toggle notified the owner.
	assert.Len(t, env.notificationsFor(t, artist.ID), 1)
}

func TestToggleLikeOwnContentSkipsNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	ref := createArtwork(t, env, artist.ID)

	liked, count, err := env.engagement.ToggleLike(ctx, artist.ID, ref, models.ReactionFire)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, env.notificationsFor(t, artist.ID))
}

func TestToggleLikeUnknownTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fan := env.createUser(t, "fan")

	_, _, err := env.engagement.ToggleLike(ctx, fan.ID, models.EntityRef{Type: models.EntityArtwork, ID: 999}, "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = env.engagement.ToggleLike(ctx, fan.ID, models.EntityRef{Type: models.EntityUser, ID: fan.ID}, "")
	assert.ErrorIs(t, err, ErrValidation)
}

// staleReadLikeRepo simulates the toggle race: the pre-transaction read misses
// the row another request just inserted, so Create hits the unique index.
type staleReadLikeRepo struct {
	repositories.LikeRepository
}

func (r *staleReadLikeRepo) Get(context.Context, models.EntityRef, uint) (*models.Like, error) {
	return nil, nil
}

func (r *staleReadLikeRepo) WithTx(tx *gorm.DB) repositories.LikeRepository {
	return &staleReadLikeRepo{LikeRepository: r.LikeRepository.WithTx(tx)}
}

func TestToggleLikeAbsorbsLostInsertRace(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	fan := env.createUser(t, "fan")
	ref := createArtwork(t, env, artist.ID)

	// The winning request's like already exists.
	_, _, err := env.engagement.ToggleLike(ctx, fan.ID, ref, "")
	require.NoError(t, err)

	env.engagement.likeRepo = &staleReadLikeRepo{LikeRepository: env.likeRepo}

	liked, count, err := env.engagement.ToggleLike(ctx, fan.ID, ref, "")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	// The absorbed loser must not double-count or re-notify.
	assert.Len(t, env.notificationsFor(t, artist.ID), 1)
}

func TestAddCommentNotifiesOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	fan := env.createUser(t, "fan")
	ref := createArtwork(t, env, artist.ID)

	comment, err := env.engagement.AddComment(ctx, fan.ID, ref, &models.CreateCommentRequest{Content: "great piece"})
	require.NoError(t, err)
	require.NotZero(t, comment.ID)

	var artwork models.Artwork
	require.NoError(t, env.db.First(&artwork, ref.ID).Error)
	assert.Equal(t, int64(1), artwork.CommentsCount)

	ns := env.notificationsFor(t, artist.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, models.EventArtworkCommented, ns[0].Type)
}

func TestAddCommentReplyFlattensOneLevel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	ref := createArtwork(t, env, artist.ID)

	root, err := env.engagement.AddComment(ctx, alice.ID, ref, &models.CreateCommentRequest{Content: "root"})
	require.NoError(t, err)

	reply, err := env.engagement.AddComment(ctx, bob.ID, ref, &models.CreateCommentRequest{Content: "reply", ParentID: &root.ID})
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	// Replying to a reply lands under the root, but notifies the reply's author.
	deep, err := env.engagement.AddComment(ctx, alice.ID, ref, &models.CreateCommentRequest{Content: "deep", ParentID: &reply.ID})
	require.NoError(t, err)
	require.NotNil(t, deep.ParentID)
	assert.Equal(t, root.ID, *deep.ParentID)

	var rootReloaded models.Comment
	require.NoError(t, env.db.First(&rootReloaded, root.ID).Error)
	assert.Equal(t, int64(2), rootReloaded.RepliesCount)

	bobNs := env.notificationsFor(t, bob.ID)
	require.Len(t, bobNs, 1)
	assert.Equal(t, models.EventCommentReplied, bobNs[0].Type)
}

func TestAddCommentRejectsForeignParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	fan := env.createUser(t, "fan")
	refA := createArtwork(t, env, artist.ID)
	refB := createArtwork(t, env, artist.ID)

	parent, err := env.engagement.AddComment(ctx, fan.ID, refA, &models.CreateCommentRequest{Content: "on A"})
	require.NoError(t, err)

	_, err = env.engagement.AddComment(ctx, fan.ID, refB, &models.CreateCommentRequest{Content: "on B", ParentID: &parent.ID})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAddCommentMentionsDeduplicateAgainstOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	fan := env.createUser(t, "fan")
	friend := env.createUser(t, "friend")
	ref := createArtwork(t, env, artist.ID)

	_, err := env.engagement.AddComment(ctx, fan.ID, ref, &models.CreateCommentRequest{
		Content: "hey @artist and @friend and @artist again, also @nobody",
	})
	require.NoError(t, err)

	// The mentioned owner gets the mention only, not a second commented event.
	artistNs := env.notificationsFor(t, artist.ID)
	require.Len(t, artistNs, 1)
	assert.Equal(t, models.EventMentioned, artistNs[0].Type)

	friendNs := env.notificationsFor(t, friend.ID)
	require.Len(t, friendNs, 1)
	assert.Equal(t, models.EventMentioned, friendNs[0].Type)
}

func TestAddCommentSelfMentionIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	ref := createArtwork(t, env, artist.ID)

	_, err := env.engagement.AddComment(ctx, artist.ID, ref, &models.CreateCommentRequest{Content: "note to @artist"})
	require.NoError(t, err)

	assert.Empty(t, env.notificationsFor(t, artist.ID))
}

func TestListCommentsReturnsThreads(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	artist := env.createUser(t, "artist")
	fan := env.createUser(t, "fan")
	ref := createArtwork(t, env, artist.ID)

	root, err := env.engagement.AddComment(ctx, fan.ID, ref, &models.CreateCommentRequest{Content: "root"})
	require.NoError(t, err)
	_, err = env.engagement.AddComment(ctx, artist.ID, ref, &models.CreateCommentRequest{Content: "reply", ParentID: &root.ID})
	require.NoError(t, err)

	threads, total, err := env.engagement.ListComments(ctx, ref, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total) // roots only
	require.Len(t, threads, 1)
	assert.Len(t, threads[0].Replies, 1)
}
