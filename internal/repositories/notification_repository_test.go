package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

func testNotification(recipientID uint, key string) *models.Notification {
	return &models.Notification{
		EventKey:    key,
		Type:        models.EventNewFollower,
		RecipientID: recipientID,
		SubjectType: models.EntityUser,
		SubjectID:   1,
		Title:       "New follower",
		Message:     "someone started following you",
		Priority:    models.PriorityNormal,
	}
}

func TestNotificationRepositoryEventKeyIdempotency(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()

	u := createTestUser(t, db, "recipient")

	created, err := repo.Create(ctx, testNotification(u.ID, "evt-1"))
	require.NoError(t, err)
	assert.True(t, created)

	// Replaying the same logical event must not write a second row.
	created, err = repo.Create(ctx, testNotification(u.ID, "evt-1"))
	require.NoError(t, err)
	assert.False(t, created)

	_, total, err := repo.GetByRecipientID(ctx, u.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestNotificationRepositoryMarkAsReadOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	n := testNotification(owner.ID, "evt-2")
	_, err := repo.Create(ctx, n)
	require.NoError(t, err)

	// A different user cannot mark it read.
	ok, err := repo.MarkAsRead(ctx, n.ID, other.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.MarkAsRead(ctx, n.ID, owner.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	count, err := repo.GetUnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationRepositoryDismiss(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")

	n := testNotification(owner.ID, "evt-3")
	_, err := repo.Create(ctx, n)
	require.NoError(t, err)

	ok, err := repo.Dismiss(ctx, n.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, total, err := repo.GetByRecipientID(ctx, owner.ID, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)

	// Dismissing again reports not found.
	ok, err = repo.Dismiss(ctx, n.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNotificationRepositoryMarkChannelSent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")

	n := testNotification(owner.ID, "evt-4")
	_, err := repo.Create(ctx, n)
	require.NoError(t, err)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.MarkChannelSent(ctx, n.ID, models.ChannelEmail, at))

	reloaded, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsSentEmail)
	require.NotNil(t, reloaded.EmailSentAt)
	assert.False(t, reloaded.IsSentPush)
}
