package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
)

// Mailer is the outbound email capability consumed by the delivery worker
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// PushSender is the outbound push capability consumed by the delivery worker
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]string) error
}

// retryBackoff is the delay before each retry attempt; after the last one the
// job is permanently marked undelivered.
var retryBackoff = []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}

// DeliveryWorker drains external-channel sends off the request path. Jobs
// arrive on an in-process channel (immediate sends) or from the Redis delayed
// queue (quiet-hours deferrals and retries). Sends run with a hard timeout and
// never inside a database transaction. A failed send is retried with backoff;
// a permanently failed one is logged and left unstamped — the in-app
// notification row already exists, so the user still sees it.
type DeliveryWorker struct {
	notifRepo  repositories.NotificationRepository
	userRepo   repositories.UserRepository
	deviceRepo repositories.DeviceRepository
	journal    repositories.DeliveryJournal
	queue      *DeliveryQueue
	mailer     Mailer
	push       PushSender
	clk        clock.Clock

	ch           chan DeliveryJob
	workers      int
	sendTimeout  time.Duration
	pollInterval time.Duration
}

// NewDeliveryWorker creates a DeliveryWorker. The mailer, push sender and
// journal may be nil when the corresponding backend is not configured; jobs
// for missing backends are journaled as skipped.
func NewDeliveryWorker(
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	deviceRepo repositories.DeviceRepository,
	journal repositories.DeliveryJournal,
	queue *DeliveryQueue,
	mailer Mailer,
	push PushSender,
	clk clock.Clock,
	workers, queueSize int,
) *DeliveryWorker {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 4096
	}
	return &DeliveryWorker{
		notifRepo:    notifRepo,
		userRepo:     userRepo,
		deviceRepo:   deviceRepo,
		journal:      journal,
		queue:        queue,
		mailer:       mailer,
		push:         push,
		clk:          clk,
		ch:           make(chan DeliveryJob, queueSize),
		workers:      workers,
		sendTimeout:  5 * time.Second,
		pollInterval: time.Second,
	}
}

// Enqueue hands a job to the worker pool without blocking the caller. When the
// channel is full the job is parked in the delayed queue instead of dropped.
func (w *DeliveryWorker) Enqueue(job DeliveryJob) {
	select {
	case w.ch <- job:
	default:
		logger.Warn("delivery channel full, parking job in delayed queue",
			zap.Uint("notification_id", job.NotificationID),
			zap.String("channel", string(job.Channel)))
		if err := w.queue.Schedule(context.Background(), job, w.clk.Now()); err != nil {
			logger.Error("failed to park delivery job", zap.Error(err))
		}
	}
}

// Start launches the worker pool and the delayed-queue poller; the returned
// function stops them and waits briefly for the channel to drain.
func (w *DeliveryWorker) Start() func(context.Context) error {
	stop := make(chan struct{})

	for i := 0; i < w.workers; i++ {
		go func() {
			for {
				select {
				case job := <-w.ch:
					w.process(context.Background(), job)
				case <-stop:
					return
				}
			}
		}()
	}

	go func() {
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.pollScheduled(context.Background())
			case <-stop:
				return
			}
		}
	}()

	return func(ctx context.Context) error {
		close(stop)
		deadline := time.After(2 * time.Second)
		for {
			select {
			case <-deadline:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			default:
				if len(w.ch) == 0 {
					return nil
				}
				time.Sleep(50 * time.Millisecond)
			}
		}
	}
}

func (w *DeliveryWorker) pollScheduled(ctx context.Context) {
	jobs, err := w.queue.PopDue(ctx, w.clk.Now())
	if err != nil {
		logger.Error("failed to poll delayed delivery queue", zap.Error(err))
		return
	}
	for _, job := range jobs {
		w.Enqueue(job)
	}
}

// process runs a single delivery attempt end to end
func (w *DeliveryWorker) process(ctx context.Context, job DeliveryJob) {
	n, err := w.notifRepo.GetByID(ctx, job.NotificationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return // dismissed before delivery, nothing to do
	}
	if err != nil {
		logger.Error("failed to load notification for delivery", zap.Uint("notification_id", job.NotificationID), zap.Error(err))
		return
	}
	if alreadySent(n, job.Channel) {
		return
	}

	start := w.clk.Now()
	sendCtx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	skipped, sendErr := w.send(sendCtx, n, job.Channel)
	cancel()

	status := "sent"
	switch {
	case skipped:
		status = "skipped"
	case sendErr != nil && job.Attempt >= len(retryBackoff):
		status = "failed_permanent"
	case sendErr != nil:
		status = "failed"
	}
	w.record(ctx, n, job, status, sendErr, w.clk.Now().Sub(start))

	if skipped {
		return
	}

	if sendErr == nil {
		if err := w.notifRepo.MarkChannelSent(ctx, n.ID, job.Channel, w.clk.Now()); err != nil {
			logger.Error("failed to stamp delivery", zap.Uint("notification_id", n.ID), zap.Error(err))
		}
		return
	}

	if job.Attempt >= len(retryBackoff) {
		logger.Error("delivery permanently failed",
			zap.Uint("notification_id", n.ID),
			zap.String("channel", string(job.Channel)),
			zap.Int("attempts", job.Attempt+1),
			zap.Error(sendErr))
		return
	}

	retry := DeliveryJob{NotificationID: job.NotificationID, Channel: job.Channel, Attempt: job.Attempt + 1}
	readyAt := w.clk.Now().Add(retryBackoff[job.Attempt])
	if err := w.queue.Schedule(ctx, retry, readyAt); err != nil {
		logger.Error("failed to schedule delivery retry", zap.Uint("notification_id", n.ID), zap.Error(err))
	}
}

// send attempts one channel delivery; skipped reports that there was nothing
// to deliver (no address, no tokens, backend not configured).
func (w *DeliveryWorker) send(ctx context.Context, n *models.Notification, channel models.Channel) (skipped bool, err error) {
	switch channel {
	case models.ChannelEmail:
		if w.mailer == nil {
			return true, nil
		}
		user, err := w.userRepo.GetUserByID(ctx, n.RecipientID)
		if err != nil || user.Email == "" {
			return true, nil
		}
		if err := w.mailer.Send(ctx, user.Email, n.Title, emailBody(n)); err != nil {
			return false, fmt.Errorf("%w: %v", ErrDelivery, err)
		}
		return false, nil

	case models.ChannelPush:
		if w.push == nil {
			return true, nil
		}
		tokens, err := w.deviceRepo.TokensFor(ctx, n.RecipientID)
		if err != nil || len(tokens) == 0 {
			return true, nil
		}
		data := map[string]string{
			"notification_id": strconv.FormatUint(uint64(n.ID), 10),
			"type":            string(n.Type),
		}
		if err := w.push.Send(ctx, tokens, n.Title, n.Message, data); err != nil {
			return false, fmt.Errorf("%w: %v", ErrDelivery, err)
		}
		return false, nil
	}
	return true, nil
}

func (w *DeliveryWorker) record(ctx context.Context, n *models.Notification, job DeliveryJob, status string, sendErr error, latency time.Duration) {
	if w.journal == nil {
		return
	}
	attempt := &models.DeliveryAttempt{
		NotificationID: n.ID,
		RecipientID:    n.RecipientID,
		Channel:        job.Channel,
		Attempt:        job.Attempt + 1,
		Status:         status,
		LatencyMS:      latency.Milliseconds(),
		AttemptedAt:    w.clk.Now(),
	}
	if sendErr != nil {
		attempt.Error = sendErr.Error()
	}
	if err := w.journal.Record(ctx, attempt); err != nil {
		logger.Warn("failed to journal delivery attempt", zap.Uint("notification_id", n.ID), zap.Error(err))
	}
}

func alreadySent(n *models.Notification, channel models.Channel) bool {
	switch channel {
	case models.ChannelEmail:
		return n.IsSentEmail
	case models.ChannelPush:
		return n.IsSentPush
	}
	return false
}

func emailBody(n *models.Notification) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2 style="color: #111827;">%s</h2>
	<p>%s</p>
	<p style="font-size: 14px; color: #6b7280;">
		You can change which emails you receive in your notification settings.
	</p>
</body>
</html>`, n.Title, n.Message)
}
