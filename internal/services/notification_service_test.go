package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

func TestDispatchPersistsAndFansOut(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(ctx, ev))

	ns := env.notificationsFor(t, recipient.ID)
	require.Len(t, ns, 1)
	assert.Equal(t, "New follower", ns[0].Title)
	assert.Contains(t, ns[0].Message, "actor")
	assert.False(t, ns[0].IsRead)

	jobs := env.pendingJobs()
	require.Len(t, jobs, 2)
	channels := map[models.Channel]bool{}
	for _, j := range jobs {
		channels[j.Channel] = true
		assert.Equal(t, ns[0].ID, j.NotificationID)
		assert.Zero(t, j.Attempt)
	}
	assert.True(t, channels[models.ChannelEmail])
	assert.True(t, channels[models.ChannelPush])
}

func TestPersistTxReadsActorThroughTransaction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")

	// Write inside the transaction first so it holds locks, the way the
	// engagement transactions do before persisting their notifications. The
	// actor lookup must ride the same transaction or it blocks.
	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	err := env.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", recipient.ID).
			Update("followers_count", 1).Error; err != nil {
			return err
		}
		n, err := env.notifier.PersistTx(ctx, tx, ev)
		require.NoError(t, err)
		require.NotNil(t, n)
		return nil
	})
	require.NoError(t, err)

	ns := env.notificationsFor(t, recipient.ID)
	require.Len(t, ns, 1)
	assert.Contains(t, ns[0].Message, "actor")
}

func TestDispatchSameEventKeyOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(ctx, ev))
	require.NoError(t, env.notifier.Dispatch(ctx, ev)) // replay

	assert.Len(t, env.notificationsFor(t, recipient.ID), 1)

	// Only the first dispatch fanned out.
	assert.Len(t, env.pendingJobs(), 2)
}

func TestFanoutDefersDuringQuietHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")

	start, end := "22:00", "08:00"
	_, err := env.prefs.Update(ctx, recipient.ID, &models.UpdatePreferencesRequest{
		QuietHoursStart: &start,
		QuietHoursEnd:   &end,
	})
	require.NoError(t, err)

	env.clk.Set(time.Date(2026, 6, 15, 23, 30, 0, 0, time.UTC))

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(ctx, ev))

	// The in-app row exists immediately; external sends are parked, not dropped.
	assert.Len(t, env.notificationsFor(t, recipient.ID), 1)
	assert.Empty(t, env.pendingJobs())

	parked, err := env.queue.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), parked)

	// Nothing is due before the window ends.
	jobs, err := env.queue.PopDue(ctx, time.Date(2026, 6, 16, 7, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, jobs)

	jobs, err = env.queue.PopDue(ctx, time.Date(2026, 6, 16, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
}

func TestMarkReadRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")
	other := env.createUser(t, "other")

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(ctx, ev))

	ns := env.notificationsFor(t, recipient.ID)
	require.Len(t, ns, 1)

	assert.ErrorIs(t, env.notifier.MarkRead(ctx, other.ID, ns[0].ID), ErrNotFound)
	require.NoError(t, env.notifier.MarkRead(ctx, recipient.ID, ns[0].ID))

	count, err := env.notifier.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDismissRemovesFromFeed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(ctx, ev))

	ns := env.notificationsFor(t, recipient.ID)
	require.Len(t, ns, 1)

	require.NoError(t, env.notifier.Dismiss(ctx, recipient.ID, ns[0].ID))
	assert.ErrorIs(t, env.notifier.Dismiss(ctx, recipient.ID, ns[0].ID), ErrNotFound)

	listed, total, err := env.notifier.List(ctx, recipient.ID, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, total)
}

func TestMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")

	for i := 0; i < 3; i++ {
		ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
		require.NoError(t, env.notifier.Dispatch(ctx, ev))
	}

	count, err := env.notifier.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, env.notifier.MarkAllRead(ctx, recipient.ID))

	count, err = env.notifier.UnreadCount(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
