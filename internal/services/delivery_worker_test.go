package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

func dispatchOne(t *testing.T, env *testEnv) *models.Notification {
	t.Helper()
	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient")
	require.NoError(t, env.db.Create(&models.Device{UserID: recipient.ID, Token: "tok-1", Platform: "ios"}).Error)

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(context.Background(), ev))

	ns := env.notificationsFor(t, recipient.ID)
	require.Len(t, ns, 1)
	return &ns[0]
}

func TestWorkerDeliversAndStamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n := dispatchOne(t, env)
	env.runPending(ctx)

	assert.Equal(t, 1, env.mailer.sentCount())
	assert.Equal(t, 1, env.push.sentCount())

	reloaded, err := env.notifRepo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsSentEmail)
	assert.True(t, reloaded.IsSentPush)
	require.NotNil(t, reloaded.EmailSentAt)
	require.NotNil(t, reloaded.PushSentAt)
}

func TestWorkerSkipsAlreadyStampedChannel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n := dispatchOne(t, env)
	env.runPending(ctx)
	require.Equal(t, 1, env.mailer.sentCount())

	// Reprocessing the same job must not send twice.
	env.worker.process(ctx, DeliveryJob{NotificationID: n.ID, Channel: models.ChannelEmail})
	assert.Equal(t, 1, env.mailer.sentCount())
}

func TestWorkerRetriesWithBackoff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n := dispatchOne(t, env)
	env.mailer.failures = 1

	env.worker.process(ctx, DeliveryJob{NotificationID: n.ID, Channel: models.ChannelEmail})
	assert.Equal(t, 0, env.mailer.sentCount())

	// The retry is parked for one second, not dropped.
	jobs, err := env.queue.PopDue(ctx, env.clk.Now())
	require.NoError(t, err)
	assert.Empty(t, jobs)

	jobs, err = env.queue.PopDue(ctx, env.clk.Now().Add(time.Second))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 1, jobs[0].Attempt)
	assert.Equal(t, models.ChannelEmail, jobs[0].Channel)

	env.worker.process(ctx, jobs[0])
	assert.Equal(t, 1, env.mailer.sentCount())

	reloaded, err := env.notifRepo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.IsSentEmail)
}

func TestWorkerSecondRetryUsesLongerBackoff(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n := dispatchOne(t, env)
	env.mailer.failures = 2

	env.worker.process(ctx, DeliveryJob{NotificationID: n.ID, Channel: models.ChannelEmail})
	jobs, err := env.queue.PopDue(ctx, env.clk.Now().Add(time.Second))
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	env.worker.process(ctx, jobs[0])

	// Second retry waits five seconds.
	jobs, err = env.queue.PopDue(ctx, env.clk.Now().Add(4*time.Second))
	require.NoError(t, err)
	assert.Empty(t, jobs)

	jobs, err = env.queue.PopDue(ctx, env.clk.Now().Add(5*time.Second))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, 2, jobs[0].Attempt)
}

func TestWorkerGivesUpAfterFinalAttempt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n := dispatchOne(t, env)
	env.mailer.failures = 10

	// The fourth attempt (index 3) has exhausted the backoff schedule.
	env.worker.process(ctx, DeliveryJob{NotificationID: n.ID, Channel: models.ChannelEmail, Attempt: 3})

	parked, err := env.queue.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, parked)

	// The in-app row survives unstamped.
	reloaded, err := env.notifRepo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsSentEmail)
}

func TestWorkerSkipsPushWithoutTokens(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	actor := env.createUser(t, "actor")
	recipient := env.createUser(t, "recipient") // no device registered

	ev := newEvent(models.EventNewFollower, actor.ID, recipient.ID, models.UserRef(actor.ID), env.clk.Now())
	require.NoError(t, env.notifier.Dispatch(ctx, ev))
	env.runPending(ctx)

	assert.Equal(t, 0, env.push.sentCount())
	assert.Equal(t, 1, env.mailer.sentCount())

	ns := env.notificationsFor(t, recipient.ID)
	require.Len(t, ns, 1)
	assert.False(t, ns[0].IsSentPush)
	assert.True(t, ns[0].IsSentEmail)
}

func TestWorkerDropsJobsForDismissedNotifications(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	n := dispatchOne(t, env)
	require.NoError(t, env.notifier.Dismiss(ctx, n.RecipientID, n.ID))

	env.runPending(ctx)
	assert.Equal(t, 0, env.mailer.sentCount())
	assert.Equal(t, 0, env.push.sentCount())
}
