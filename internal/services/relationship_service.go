package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
)

// RelationshipService manages follow edges between users. Every mutation runs
// in one transaction covering the edge, both users' denormalized counters, the
// symmetric mutual flags and the follower notification row, so no reader ever
// observes a half-applied follow.
type RelationshipService struct {
	db         *gorm.DB
	followRepo repositories.FollowRepository
	userRepo   repositories.UserRepository
	counters   *repositories.CounterStore
	notifier   *NotificationService
	clk        clock.Clock
}

// NewRelationshipService creates a new RelationshipService
func NewRelationshipService(
	db *gorm.DB,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	counters *repositories.CounterStore,
	notifier *NotificationService,
	clk clock.Clock,
) *RelationshipService {
	return &RelationshipService{
		db:         db,
		followRepo: followRepo,
		userRepo:   userRepo,
		counters:   counters,
		notifier:   notifier,
		clk:        clk,
	}
}

// FollowStatus is the relationship of one user towards another
type FollowStatus struct {
	Following bool `json:"following"`
	Mutual    bool `json:"mutual"`
}

// Follow creates the edge follower -> following. If the reverse edge already
// exists both edges are flagged mutual in the same transaction.
func (s *RelationshipService) Follow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}
	if _, err := s.userRepo.GetUserByID(ctx, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, followingID)
		}
		return err
	}

	var (
		n             *models.Notification
		reverseExists bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follows := s.followRepo.WithTx(tx)

		var err error
		reverseExists, err = follows.Exists(ctx, followingID, followerID)
		if err != nil {
			return err
		}

		edge := &models.FollowEdge{
			FollowerID:  followerID,
			FollowingID: followingID,
			IsMutual:    reverseExists,
			FollowedAt:  s.clk.Now(),
		}
		if err := follows.Create(ctx, edge); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyFollowing
			}
			return err
		}
		if reverseExists {
			if err := follows.SetMutual(ctx, followingID, followerID, true); err != nil {
				return err
			}
		}

		counters := s.counters.WithTx(tx)
		if err := counters.Increment(ctx, models.UserRef(followerID), "following_count"); err != nil {
			return err
		}
		if err := counters.Increment(ctx, models.UserRef(followingID), "followers_count"); err != nil {
			return err
		}

		ev := newEvent(models.EventNewFollower, followerID, followingID, models.UserRef(followerID), s.clk.Now())
		n, err = s.notifier.PersistTx(ctx, tx, ev)
		return err
	})
	if err != nil {
		return err
	}

	if !reverseExists {
		s.repairMutual(ctx, followerID, followingID)
	}

	s.notifier.Fanout(ctx, n)
	return nil
}

// repairMutual closes the reciprocal-follow race: two concurrent follows can
// each miss the other's uncommitted reverse edge and commit both rows with
// is_mutual false. Whichever commits last sees the other edge here and flags
// both directions.
func (s *RelationshipService) repairMutual(ctx context.Context, followerID, followingID uint) {
	reverseExists, err := s.followRepo.Exists(ctx, followingID, followerID)
	if err != nil || !reverseExists {
		return
	}
	if err := s.followRepo.SetMutual(ctx, followerID, followingID, true); err != nil {
		logger.Error("failed to repair mutual flag",
			zap.Uint("follower_id", followerID), zap.Uint("following_id", followingID), zap.Error(err))
	}
	if err := s.followRepo.SetMutual(ctx, followingID, followerID, true); err != nil {
		logger.Error("failed to repair mutual flag",
			zap.Uint("follower_id", followingID), zap.Uint("following_id", followerID), zap.Error(err))
	}
}

// Unfollow removes the edge follower -> following and clears the mutual flag
// on the surviving reverse edge, if any.
func (s *RelationshipService) Unfollow(ctx context.Context, followerID, followingID uint) error {
	if followerID == followingID {
		return ErrSelfFollow
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follows := s.followRepo.WithTx(tx)

		removed, err := follows.Delete(ctx, followerID, followingID)
		if err != nil {
			return err
		}
		if !removed {
			return ErrNotFollowing
		}

		// The reverse edge, if present, is no longer mutual.
		reverseExists, err := follows.Exists(ctx, followingID, followerID)
		if err != nil {
			return err
		}
		if reverseExists {
			if err := follows.SetMutual(ctx, followingID, followerID, false); err != nil {
				return err
			}
		}

		counters := s.counters.WithTx(tx)
		if err := counters.Decrement(ctx, models.UserRef(followerID), "following_count"); err != nil {
			return err
		}
		return counters.Decrement(ctx, models.UserRef(followingID), "followers_count")
	})
}

// Status reports whether follower follows following and whether the edge is mutual
func (s *RelationshipService) Status(ctx context.Context, followerID, followingID uint) (FollowStatus, error) {
	edge, err := s.followRepo.Get(ctx, followerID, followingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return FollowStatus{}, nil
	}
	if err != nil {
		return FollowStatus{}, err
	}
	return FollowStatus{Following: true, Mutual: edge.IsMutual}, nil
}

// Followers returns the users following the given user
func (s *RelationshipService) Followers(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := s.followRepo.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return compactAll(users), nil
}

// Following returns the users the given user follows
func (s *RelationshipService) Following(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := s.followRepo.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return compactAll(users), nil
}

func compactAll(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToCompact())
	}
	return out
}
