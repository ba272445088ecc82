package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
)

// EngagementService is the transactional engine behind likes and comments.
// Each mutation writes the engagement row, every affected denormalized counter
// and the notification rows it produces in a single transaction; external
// fanout happens only after commit.
type EngagementService struct {
	db          *gorm.DB
	registry    *repositories.EntityRegistry
	likeRepo    repositories.LikeRepository
	commentRepo repositories.CommentRepository
	userRepo    repositories.UserRepository
	counters    *repositories.CounterStore
	notifier    *NotificationService
	clk         clock.Clock
}

// NewEngagementService creates a new EngagementService
func NewEngagementService(
	db *gorm.DB,
	registry *repositories.EntityRegistry,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
	userRepo repositories.UserRepository,
	counters *repositories.CounterStore,
	notifier *NotificationService,
	clk clock.Clock,
) *EngagementService {
	return &EngagementService{
		db:          db,
		registry:    registry,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		counters:    counters,
		notifier:    notifier,
		clk:         clk,
	}
}

// ToggleLike flips the actor's like on the referenced entity and returns the
// new state plus the entity's likes count. When two requests race to like the
// same target, the unique index arbitrates: the loser's insert is absorbed as
// an already-liked outcome rather than an error.
func (s *EngagementService) ToggleLike(ctx context.Context, actorID uint, ref models.EntityRef, reaction models.ReactionType) (bool, int64, error) {
	if !s.registry.IsLikeable(ref.Type) {
		return false, 0, fmt.Errorf("%w: %s is not likeable", ErrValidation, ref.Type)
	}
	if reaction == "" {
		reaction = models.ReactionLike
	}

	ownerID, err := s.registry.OwnerOf(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Type, ref.ID)
		}
		return false, 0, err
	}

	existing, err := s.likeRepo.Get(ctx, ref, actorID)
	if err != nil {
		return false, 0, err
	}

	var liked bool
	var n *models.Notification

	if existing != nil {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			removed, err := s.likeRepo.WithTx(tx).Delete(ctx, ref, actorID)
			if err != nil {
				return err
			}
			if !removed {
				// A concurrent toggle already removed it; nothing to undo.
				return nil
			}
			return s.counters.WithTx(tx).Decrement(ctx, ref, "likes_count")
		})
		if err != nil {
			return false, 0, err
		}
		liked = false
	} else {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			like := &models.Like{
				UserID:       actorID,
				LikeableType: ref.Type,
				LikeableID:   ref.ID,
				ReactionType: reaction,
			}
			if err := s.likeRepo.WithTx(tx).Create(ctx, like); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrDuplicateLike
				}
				return err
			}
			if err := s.counters.WithTx(tx).Increment(ctx, ref, "likes_count"); err != nil {
				return err
			}
			if ownerID == actorID {
				return nil // no self-notification
			}
			ev := newEvent(likedEventType[ref.Type], actorID, ownerID, ref, s.clk.Now())
			n, err = s.notifier.PersistTx(ctx, tx, ev)
			return err
		})
		if errors.Is(err, ErrDuplicateLike) {
			// Lost the insert race: the like exists, which is the state the
			// caller asked for.
			err = nil
			n = nil
		}
		if err != nil {
			return false, 0, err
		}
		liked = true
	}

	s.notifier.Fanout(ctx, n)

	count, err := s.registry.CounterValue(ctx, ref, "likes_count")
	if err != nil {
		return liked, 0, err
	}
	return liked, count, nil
}

// AddComment creates a comment (or single-level reply) on the referenced
// entity and produces the owner, reply and mention notifications it implies.
func (s *EngagementService) AddComment(ctx context.Context, actorID uint, ref models.EntityRef, req *models.CreateCommentRequest) (*models.Comment, error) {
	if !s.registry.IsCommentable(ref.Type) {
		return nil, fmt.Errorf("%w: %s is not commentable", ErrValidation, ref.Type)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" || len(content) > 1000 {
		return nil, fmt.Errorf("%w: content must be 1-1000 characters", ErrValidation)
	}

	ownerID, err := s.registry.OwnerOf(ctx, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Type, ref.ID)
		}
		return nil, err
	}

	// Resolve the reply target. Replies nest a single level: replying to a
	// reply attaches under the original reply's root, but the notification
	// still goes to the author actually replied to.
	var rootParentID *uint
	var repliedToAuthor uint
	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent comment %d not found", ErrValidation, *req.ParentID)
			}
			return nil, err
		}
		if parent.CommentableType != ref.Type || parent.CommentableID != ref.ID {
			return nil, fmt.Errorf("%w: parent comment belongs to a different target", ErrValidation)
		}
		repliedToAuthor = parent.UserID
		if parent.ParentID != nil {
			rootParentID = parent.ParentID
		} else {
			rootParentID = &parent.ID
		}
	}

	mentioned, err := s.resolveMentions(ctx, content)
	if err != nil {
		return nil, err
	}
	mentionedIDs := make(map[uint]bool, len(mentioned))
	for _, u := range mentioned {
		mentionedIDs[u.ID] = true
	}

	comment := &models.Comment{
		CommentableType: ref.Type,
		CommentableID:   ref.ID,
		UserID:          actorID,
		ParentID:        rootParentID,
		Content:         content,
	}

	var fanout []*models.Notification
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Create(ctx, comment); err != nil {
			return err
		}

		counters := s.counters.WithTx(tx)
		if err := counters.Increment(ctx, ref, "comments_count"); err != nil {
			return err
		}
		if rootParentID != nil {
			root := models.EntityRef{Type: models.EntityComment, ID: *rootParentID}
			if err := counters.Increment(ctx, root, "replies_count"); err != nil {
				return err
			}
		}

		subject := models.EntityRef{Type: models.EntityComment, ID: comment.ID}
		now := s.clk.Now()
		notified := map[uint]bool{actorID: true}

		// Mentions outrank the generic events: a mentioned owner or parent
		// author gets the mention, not a second notification.
		for _, u := range mentioned {
			if notified[u.ID] {
				continue
			}
			n, err := s.notifier.PersistTx(ctx, tx, newEvent(models.EventMentioned, actorID, u.ID, subject, now))
			if err != nil {
				return err
			}
			fanout = append(fanout, n)
			notified[u.ID] = true
		}

		if repliedToAuthor != 0 && !notified[repliedToAuthor] {
			n, err := s.notifier.PersistTx(ctx, tx, newEvent(models.EventCommentReplied, actorID, repliedToAuthor, subject, now))
			if err != nil {
				return err
			}
			fanout = append(fanout, n)
			notified[repliedToAuthor] = true
		}

		if !notified[ownerID] {
			n, err := s.notifier.PersistTx(ctx, tx, newEvent(commentedEventType[ref.Type], actorID, ownerID, subject, now))
			if err != nil {
				return err
			}
			fanout = append(fanout, n)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range fanout {
		s.notifier.Fanout(ctx, n)
	}
	return comment, nil
}

// CommentThread is a root comment with its flattened replies
type CommentThread struct {
	models.Comment
	Replies []models.Comment `json:"replies"`
}

// ListComments returns a page of root comments for an entity, each with its replies
func (s *EngagementService) ListComments(ctx context.Context, ref models.EntityRef, page, limit int) ([]CommentThread, int64, error) {
	if !s.registry.IsCommentable(ref.Type) {
		return nil, 0, fmt.Errorf("%w: %s is not commentable", ErrValidation, ref.Type)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	roots, total, err := s.commentRepo.ListFor(ctx, ref, page, limit)
	if err != nil {
		return nil, 0, err
	}

	threads := make([]CommentThread, 0, len(roots))
	for i := range roots {
		replies, err := s.commentRepo.ListReplies(ctx, roots[i].ID)
		if err != nil {
			return nil, 0, err
		}
		threads = append(threads, CommentThread{Comment: roots[i], Replies: replies})
	}
	return threads, total, nil
}

// LikeState reports whether the user has liked the entity and its likes count
func (s *EngagementService) LikeState(ctx context.Context, userID uint, ref models.EntityRef) (bool, int64, error) {
	if !s.registry.IsLikeable(ref.Type) {
		return false, 0, fmt.Errorf("%w: %s is not likeable", ErrValidation, ref.Type)
	}
	like, err := s.likeRepo.Get(ctx, ref, userID)
	if err != nil {
		return false, 0, err
	}
	count, err := s.registry.CounterValue(ctx, ref, "likes_count")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, fmt.Errorf("%w: %s %d", ErrNotFound, ref.Type, ref.ID)
		}
		return false, 0, err
	}
	return like != nil, count, nil
}

func (s *EngagementService) resolveMentions(ctx context.Context, content string) ([]models.User, error) {
	handles := extractMentionHandles(content)
	if len(handles) == 0 {
		return nil, nil
	}
	return s.userRepo.GetUsersByUsernames(ctx, handles)
}
