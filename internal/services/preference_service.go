package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
	"github.com/Anabolique89/MuralFinderApp-sub000/internal/repositories"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/clock"
	"github.com/Anabolique89/MuralFinderApp-sub000/pkg/logger"
)

// Resolution is the outcome of resolving a recipient's preferences for one
// event: which channels deliver now, and which are deferred past quiet hours.
// In-app is never deferred — it is the always-on baseline record.
type Resolution struct {
	App   bool
	Email bool
	Push  bool

	// Channels that were enabled but fall inside the recipient's quiet hours;
	// they are requeued for ResumeAt instead of dropped.
	DeferredEmail bool
	DeferredPush  bool
	ResumeAt      time.Time
}

// PreferenceService resolves per-user notification preferences and serves the
// preferences read/update API.
type PreferenceService struct {
	prefRepo repositories.PreferenceRepository
	validate *validator.Validate
	clk      clock.Clock
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(prefRepo repositories.PreferenceRepository, clk clock.Clock) *PreferenceService {
	return &PreferenceService{
		prefRepo: prefRepo,
		validate: validator.New(),
		clk:      clk,
	}
}

// Resolve decides the delivery channels for an event to a recipient. A missing
// preference row is created default-enabled on first touch.
func (s *PreferenceService) Resolve(ctx context.Context, recipientID uint, eventType models.EventType) (Resolution, error) {
	spec, ok := eventCatalog[eventType]
	if !ok {
		return Resolution{}, fmt.Errorf("unknown event type %q", eventType)
	}

	pref, err := s.prefRepo.GetOrCreate(ctx, recipientID)
	if err != nil {
		return Resolution{}, err
	}

	app, email, push := spec.flags(pref)
	email = email && pref.EmailFrequency == models.FrequencyImmediate
	push = push && pref.PushFrequency == models.FrequencyImmediate

	res := Resolution{App: app, Email: email, Push: push}

	if !email && !push {
		return res, nil
	}

	inQuiet, resumeAt := quietWindow(pref, s.clk.Now())
	if inQuiet {
		res.ResumeAt = resumeAt
		if email {
			res.Email = false
			res.DeferredEmail = true
		}
		if push {
			res.Push = false
			res.DeferredPush = true
		}
	}
	return res, nil
}

// Get returns a user's preference row, creating the default row if absent
func (s *PreferenceService) Get(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	return s.prefRepo.GetOrCreate(ctx, userID)
}

// Update applies a partial patch to a user's preferences
func (s *PreferenceService) Update(ctx context.Context, userID uint, patch *models.UpdatePreferencesRequest) (*models.NotificationPreference, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := validateQuietHoursPatch(patch); err != nil {
		return nil, err
	}

	pref, err := s.prefRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyPatch(pref, patch)

	if err := s.prefRepo.Save(ctx, pref); err != nil {
		return nil, err
	}
	return pref, nil
}

func validateQuietHoursPatch(patch *models.UpdatePreferencesRequest) error {
	for _, v := range []*string{patch.QuietHoursStart, patch.QuietHoursEnd} {
		if v != nil && *v != "" {
			if _, err := parseClockTime(*v); err != nil {
				return fmt.Errorf("%w: quiet hours must be HH:MM", ErrValidation)
			}
		}
	}
	if patch.Timezone != nil && *patch.Timezone != "" {
		if _, err := time.LoadLocation(*patch.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrValidation, *patch.Timezone)
		}
	}
	return nil
}

// quietWindow reports whether now falls inside the user's quiet hours and, if
// so, when the window ends (in UTC). The window is [start, end) in the user's
// timezone and may wrap midnight: start > end means it spans across 00:00.
func quietWindow(pref *models.NotificationPreference, now time.Time) (bool, time.Time) {
	if pref.QuietHoursStart == "" || pref.QuietHoursEnd == "" {
		return false, time.Time{}
	}

	start, err := parseClockTime(pref.QuietHoursStart)
	if err != nil {
		logger.Warn("invalid quiet_hours_start", zap.Uint("user_id", pref.UserID), zap.String("value", pref.QuietHoursStart))
		return false, time.Time{}
	}
	end, err := parseClockTime(pref.QuietHoursEnd)
	if err != nil {
		logger.Warn("invalid quiet_hours_end", zap.Uint("user_id", pref.UserID), zap.String("value", pref.QuietHoursEnd))
		return false, time.Time{}
	}
	if start == end {
		// zero-length window, treated as unset
		return false, time.Time{}
	}

	loc, err := time.LoadLocation(pref.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.Uint("user_id", pref.UserID), zap.String("timezone", pref.Timezone))
		loc = time.UTC
	}

	local := now.In(loc)
	minute := local.Hour()*60 + local.Minute()

	var inWindow bool
	if start < end {
		inWindow = minute >= start && minute < end
	} else {
		inWindow = minute >= start || minute < end
	}
	if !inWindow {
		return false, time.Time{}
	}

	resume := time.Date(local.Year(), local.Month(), local.Day(), end/60, end%60, 0, 0, loc)
	if !resume.After(local) {
		resume = resume.AddDate(0, 0, 1)
	}
	return true, resume.UTC()
}

// parseClockTime parses "HH:MM" into minutes since midnight
func parseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func applyPatch(pref *models.NotificationPreference, patch *models.UpdatePreferencesRequest) {
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setBool(&pref.AppNewFollower, patch.AppNewFollower)
	setBool(&pref.AppArtworkLiked, patch.AppArtworkLiked)
	setBool(&pref.AppPostLiked, patch.AppPostLiked)
	setBool(&pref.AppWallLiked, patch.AppWallLiked)
	setBool(&pref.AppCommentLiked, patch.AppCommentLiked)
	setBool(&pref.AppArtworkCommented, patch.AppArtworkCommented)
	setBool(&pref.AppPostCommented, patch.AppPostCommented)
	setBool(&pref.AppWallCommented, patch.AppWallCommented)
	setBool(&pref.AppCommentReplied, patch.AppCommentReplied)
	setBool(&pref.AppMentioned, patch.AppMentioned)
	setBool(&pref.AppNearbyWall, patch.AppNearbyWall)

	setBool(&pref.EmailNewFollower, patch.EmailNewFollower)
	setBool(&pref.EmailArtworkLiked, patch.EmailArtworkLiked)
	setBool(&pref.EmailPostLiked, patch.EmailPostLiked)
	setBool(&pref.EmailWallLiked, patch.EmailWallLiked)
	setBool(&pref.EmailCommentLiked, patch.EmailCommentLiked)
	setBool(&pref.EmailArtworkCommented, patch.EmailArtworkCommented)
	setBool(&pref.EmailPostCommented, patch.EmailPostCommented)
	setBool(&pref.EmailWallCommented, patch.EmailWallCommented)
	setBool(&pref.EmailCommentReplied, patch.EmailCommentReplied)
	setBool(&pref.EmailMentioned, patch.EmailMentioned)
	setBool(&pref.EmailNearbyWall, patch.EmailNearbyWall)

	setBool(&pref.PushNewFollower, patch.PushNewFollower)
	setBool(&pref.PushArtworkLiked, patch.PushArtworkLiked)
	setBool(&pref.PushPostLiked, patch.PushPostLiked)
	setBool(&pref.PushWallLiked, patch.PushWallLiked)
	setBool(&pref.PushCommentLiked, patch.PushCommentLiked)
	setBool(&pref.PushArtworkCommented, patch.PushArtworkCommented)
	setBool(&pref.PushPostCommented, patch.PushPostCommented)
	setBool(&pref.PushWallCommented, patch.PushWallCommented)
	setBool(&pref.PushCommentReplied, patch.PushCommentReplied)
	setBool(&pref.PushMentioned, patch.PushMentioned)
	setBool(&pref.PushNearbyWall, patch.PushNearbyWall)

	setString(&pref.EmailFrequency, patch.EmailFrequency)
	setString(&pref.PushFrequency, patch.PushFrequency)
	setString(&pref.QuietHoursStart, patch.QuietHoursStart)
	setString(&pref.QuietHoursEnd, patch.QuietHoursEnd)
	setString(&pref.Timezone, patch.Timezone)
}
