package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
)

// NotificationService turns domain events into notification rows and hands
// their external deliveries to the worker. Persisting runs inside the caller's
// transaction; fanout runs only after that transaction commits, so an external
// send can never reference a row that was rolled back.
type NotificationService struct {
	db        *gorm.DB
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
	prefs     *PreferenceService
	queue     *DeliveryQueue
	worker    *DeliveryWorker
	clk       clock.Clock
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	db *gorm.DB,
	notifRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	prefs *PreferenceService,
	queue *DeliveryQueue,
	worker *DeliveryWorker,
	clk clock.Clock,
) *NotificationService {
	return &NotificationService{
		db:        db,
		notifRepo: notifRepo,
		userRepo:  userRepo,
		prefs:     prefs,
		queue:     queue,
		worker:    worker,
		clk:       clk,
	}
}

// PersistTx writes the notification row for an event inside the given
// transaction. It returns nil without error when the event key was already
// persisted (a replay) — callers skip fanout for nil rows.
func (s *NotificationService) PersistTx(ctx context.Context, tx *gorm.DB, ev DomainEvent) (*models.Notification, error) {
	spec, ok := eventCatalog[ev.Type]
	if !ok {
		return nil, errors.New("unknown event type " + string(ev.Type))
	}

	actorName := ""
	var actorID *uint
	if ev.ActorID != 0 {
		// The lookup rides the caller's transaction: a read on a second
		// connection would block while the transaction holds write locks.
		actor, err := s.userRepo.WithTx(tx).GetUserByID(ctx, ev.ActorID)
		if err != nil {
			return nil, err
		}
		actorName = actor.Name()
		actorID = &ev.ActorID
	}

	n := &models.Notification{
		EventKey:    ev.Key,
		Type:        ev.Type,
		ActorID:     actorID,
		RecipientID: ev.RecipientID,
		SubjectType: ev.Subject.Type,
		SubjectID:   ev.Subject.ID,
		Title:       spec.title,
		Message:     spec.message(actorName),
		Priority:    spec.priority,
		CreatedAt:   ev.OccurredAt,
	}

	created, err := s.notifRepo.WithTx(tx).Create(ctx, n)
	if err != nil {
		return nil, err
	}
	if !created {
		logger.Info("duplicate event key, notification already persisted",
			zap.String("event_key", ev.Key), zap.String("type", string(ev.Type)))
		return nil, nil
	}
	return n, nil
}

// Fanout resolves the recipient's preferences for a persisted notification and
// enqueues the enabled external channels. Quiet-hours channels are scheduled
// for the window's end instead of sent now. Must be called after the writing
// transaction has committed. Nil notifications (replays) are ignored.
func (s *NotificationService) Fanout(ctx context.Context, n *models.Notification) {
	if n == nil {
		return
	}

	res, err := s.prefs.Resolve(ctx, n.RecipientID, n.Type)
	if err != nil {
		logger.Error("failed to resolve notification preferences",
			zap.Uint("notification_id", n.ID), zap.Uint("recipient_id", n.RecipientID), zap.Error(err))
		return
	}

	if res.Email {
		s.worker.Enqueue(DeliveryJob{NotificationID: n.ID, Channel: models.ChannelEmail})
	}
	if res.Push {
		s.worker.Enqueue(DeliveryJob{NotificationID: n.ID, Channel: models.ChannelPush})
	}

	if res.DeferredEmail {
		if err := s.queue.Schedule(ctx, DeliveryJob{NotificationID: n.ID, Channel: models.ChannelEmail}, res.ResumeAt); err != nil {
			logger.Error("failed to defer email past quiet hours", zap.Uint("notification_id", n.ID), zap.Error(err))
		}
	}
	if res.DeferredPush {
		if err := s.queue.Schedule(ctx, DeliveryJob{NotificationID: n.ID, Channel: models.ChannelPush}, res.ResumeAt); err != nil {
			logger.Error("failed to defer push past quiet hours", zap.Uint("notification_id", n.ID), zap.Error(err))
		}
	}
}

// Dispatch persists an event in its own transaction and fans it out. Used for
// events with no surrounding mutation, such as nearby-wall announcements.
func (s *NotificationService) Dispatch(ctx context.Context, ev DomainEvent) error {
	var n *models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = s.PersistTx(ctx, tx, ev)
		return err
	})
	if err != nil {
		return err
	}
	s.Fanout(ctx, n)
	return nil
}

// List returns a page of the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uint, page, limit int) ([]models.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.notifRepo.GetByRecipientID(ctx, userID, page, limit)
}

// UnreadCount returns the user's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.GetUnreadCount(ctx, userID)
}

// MarkRead marks one of the user's notifications read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	ok, err := s.notifRepo.MarkAsRead(ctx, notificationID, userID, s.clk.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllAsRead(ctx, userID, s.clk.Now())
}

// Dismiss removes a notification from the user's feed
func (s *NotificationService) Dismiss(ctx context.Context, userID, notificationID uint) error {
	ok, err := s.notifRepo.Dismiss(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
