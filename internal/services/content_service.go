package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
)

// ContentService creates walls, artworks and posts, keeping the owner's
// denormalized content counters in the same transaction as the insert.
type ContentService struct {
	db          *gorm.DB
	wallRepo    repositories.WallRepository
	artworkRepo repositories.ArtworkRepository
	postRepo    repositories.PostRepository
	followRepo  repositories.FollowRepository
	counters    *repositories.CounterStore
	notifier    *NotificationService
	validate    *validator.Validate
	clk         clock.Clock
}

// NewContentService creates a new ContentService
func NewContentService(
	db *gorm.DB,
	wallRepo repositories.WallRepository,
	artworkRepo repositories.ArtworkRepository,
	postRepo repositories.PostRepository,
	followRepo repositories.FollowRepository,
	counters *repositories.CounterStore,
	notifier *NotificationService,
	clk clock.Clock,
) *ContentService {
	return &ContentService{
		db:          db,
		wallRepo:    wallRepo,
		artworkRepo: artworkRepo,
		postRepo:    postRepo,
		followRepo:  followRepo,
		counters:    counters,
		notifier:    notifier,
		validate:    validator.New(),
		clk:         clk,
	}
}

// CreateWall submits a new wall and announces it to the submitter's followers
// as a nearby-wall event.
func (s *ContentService) CreateWall(ctx context.Context, userID uint, req *models.CreateWallRequest) (*models.Wall, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	wall := &models.Wall{
		SubmittedByID: userID,
		Title:         req.Title,
		Address:       req.Address,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
	}
	if err := s.wallRepo.Create(ctx, wall); err != nil {
		return nil, err
	}

	followerIDs, err := s.followerIDs(ctx, userID)
	if err == nil && len(followerIDs) > 0 {
		s.NotifyNearbyWall(ctx, wall.ID, userID, followerIDs)
	}
	return wall, nil
}

// CreateArtwork publishes an artwork, bumping the artist's artwork counter and
// the wall's artwork counter when pinned to one.
func (s *ContentService) CreateArtwork(ctx context.Context, artistID uint, req *models.CreateArtworkRequest) (*models.Artwork, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if req.WallID != nil {
		if _, err := s.wallRepo.GetByID(ctx, *req.WallID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: wall %d", ErrNotFound, *req.WallID)
			}
			return nil, err
		}
	}

	artwork := &models.Artwork{
		ArtistID: artistID,
		WallID:   req.WallID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.artworkRepo.WithTx(tx).Create(ctx, artwork); err != nil {
			return err
		}
		counters := s.counters.WithTx(tx)
		if err := counters.Increment(ctx, models.UserRef(artistID), "artworks_count"); err != nil {
			return err
		}
		if req.WallID != nil {
			wallRef := models.EntityRef{Type: models.EntityWall, ID: *req.WallID}
			return counters.Increment(ctx, wallRef, "artworks_count")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return artwork, nil
}

// CreatePost creates a community post, bumping the author's post counter
func (s *ContentService) CreatePost(ctx context.Context, userID uint, req *models.CreatePostRequest) (*models.Post, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	post := &models.Post{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.postRepo.WithTx(tx).Create(ctx, post); err != nil {
			return err
		}
		return s.counters.WithTx(tx).Increment(ctx, models.UserRef(userID), "posts_count")
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// NotifyNearbyWall dispatches an actorless nearby-wall event to each recipient
// except the wall's submitter. Delivery failures are logged per recipient and
// do not abort the rest.
func (s *ContentService) NotifyNearbyWall(ctx context.Context, wallID, submitterID uint, recipientIDs []uint) {
	subject := models.EntityRef{Type: models.EntityWall, ID: wallID}
	now := s.clk.Now()
	for _, rid := range recipientIDs {
		if rid == submitterID {
			continue
		}
		ev := newEvent(models.EventNearbyWall, 0, rid, subject, now)
		if err := s.notifier.Dispatch(ctx, ev); err != nil {
			logger.Error("failed to announce nearby wall",
				zap.Uint("wall_id", wallID), zap.Uint("recipient_id", rid), zap.Error(err))
		}
	}
}

func (s *ContentService) followerIDs(ctx context.Context, userID uint) ([]uint, error) {
	followers, err := s.followRepo.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(followers))
	for i := range followers {
		ids = append(ids, followers[i].ID)
	}
	return ids, nil
}
