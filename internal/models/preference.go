package models

import "time"

// Delivery frequencies for the email and push channels
const (
	FrequencyImmediate = "immediate"
	FrequencyDaily     = "daily"
	FrequencyOff       = "off"
)

// NotificationPreference is the per-user channel × event-type boolean matrix,
// plus delivery frequency and quiet hours. One row per user; a default-enabled
// row is created on first resolution.
type NotificationPreference struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex;not null"`

	AppNewFollower      bool `json:"app_new_follower" gorm:"not null;default:true"`
	AppArtworkLiked     bool `json:"app_artwork_liked" gorm:"not null;default:true"`
	AppPostLiked        bool `json:"app_post_liked" gorm:"not null;default:true"`
	AppWallLiked        bool `json:"app_wall_liked" gorm:"not null;default:true"`
	AppCommentLiked     bool `json:"app_comment_liked" gorm:"not null;default:true"`
	AppArtworkCommented bool `json:"app_artwork_commented" gorm:"not null;default:true"`
	AppPostCommented    bool `json:"app_post_commented" gorm:"not null;default:true"`
	AppWallCommented    bool `json:"app_wall_commented" gorm:"not null;default:true"`
	AppCommentReplied   bool `json:"app_comment_replied" gorm:"not null;default:true"`
	AppMentioned        bool `json:"app_mentioned" gorm:"not null;default:true"`
	AppNearbyWall       bool `json:"app_nearby_wall" gorm:"not null;default:true"`

	EmailNewFollower      bool `json:"email_new_follower" gorm:"not null;default:true"`
	EmailArtworkLiked     bool `json:"email_artwork_liked" gorm:"not null;default:true"`
	EmailPostLiked        bool `json:"email_post_liked" gorm:"not null;default:true"`
	EmailWallLiked        bool `json:"email_wall_liked" gorm:"not null;default:true"`
	EmailCommentLiked     bool `json:"email_comment_liked" gorm:"not null;default:true"`
	EmailArtworkCommented bool `json:"email_artwork_commented" gorm:"not null;default:true"`
	EmailPostCommented    bool `json:"email_post_commented" gorm:"not null;default:true"`
	EmailWallCommented    bool `json:"email_wall_commented" gorm:"not null;default:true"`
	EmailCommentReplied   bool `json:"email_comment_replied" gorm:"not null;default:true"`
	EmailMentioned        bool `json:"email_mentioned" gorm:"not null;default:true"`
	EmailNearbyWall       bool `json:"email_nearby_wall" gorm:"not null;default:true"`

	PushNewFollower      bool `json:"push_new_follower" gorm:"not null;default:true"`
	PushArtworkLiked     bool `json:"push_artwork_liked" gorm:"not null;default:true"`
	PushPostLiked        bool `json:"push_post_liked" gorm:"not null;default:true"`
	PushWallLiked        bool `json:"push_wall_liked" gorm:"not null;default:true"`
	PushCommentLiked     bool `json:"push_comment_liked" gorm:"not null;default:true"`
	PushArtworkCommented bool `json:"push_artwork_commented" gorm:"not null;default:true"`
	PushPostCommented    bool `json:"push_post_commented" gorm:"not null;default:true"`
	PushWallCommented    bool `json:"push_wall_commented" gorm:"not null;default:true"`
	PushCommentReplied   bool `json:"push_comment_replied" gorm:"not null;default:true"`
	PushMentioned        bool `json:"push_mentioned" gorm:"not null;default:true"`
	PushNearbyWall       bool `json:"push_nearby_wall" gorm:"not null;default:true"`

	EmailFrequency string `json:"email_frequency" gorm:"size:10;not null;default:'immediate'"`
	PushFrequency  string `json:"push_frequency" gorm:"size:10;not null;default:'immediate'"`

	// Quiet hours as "HH:MM" local-time strings; empty means unset. The window
	// may wrap midnight (start > end spans 00:00). Applies to email and push
	// only, never to in-app rows.
	QuietHoursStart string `json:"quiet_hours_start" gorm:"size:5"`
	QuietHoursEnd   string `json:"quiet_hours_end" gorm:"size:5"`
	Timezone        string `json:"timezone" gorm:"size:40;not null;default:'UTC'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultPreferences returns the default-enabled preference row for a user:
// every channel on, immediate delivery, no quiet hours.
func DefaultPreferences(userID uint) *NotificationPreference {
	return &NotificationPreference{
		UserID: userID,

		AppNewFollower: true, AppArtworkLiked: true, AppPostLiked: true,
		AppWallLiked: true, AppCommentLiked: true, AppArtworkCommented: true,
		AppPostCommented: true, AppWallCommented: true, AppCommentReplied: true,
		AppMentioned: true, AppNearbyWall: true,

		EmailNewFollower: true, EmailArtworkLiked: true, EmailPostLiked: true,
		EmailWallLiked: true, EmailCommentLiked: true, EmailArtworkCommented: true,
		EmailPostCommented: true, EmailWallCommented: true, EmailCommentReplied: true,
		EmailMentioned: true, EmailNearbyWall: true,

		PushNewFollower: true, PushArtworkLiked: true, PushPostLiked: true,
		PushWallLiked: true, PushCommentLiked: true, PushArtworkCommented: true,
		PushPostCommented: true, PushWallCommented: true, PushCommentReplied: true,
		PushMentioned: true, PushNearbyWall: true,

		EmailFrequency: FrequencyImmediate,
		PushFrequency:  FrequencyImmediate,
		Timezone:       "UTC",
	}
}

// UpdatePreferencesRequest is a partial patch; nil fields are left unchanged
type UpdatePreferencesRequest struct {
	AppNewFollower      *bool `json:"app_new_follower,omitempty"`
	AppArtworkLiked     *bool `json:"app_artwork_liked,omitempty"`
	AppPostLiked        *bool `json:"app_post_liked,omitempty"`
	AppWallLiked        *bool `json:"app_wall_liked,omitempty"`
	AppCommentLiked     *bool `json:"app_comment_liked,omitempty"`
	AppArtworkCommented *bool `json:"app_artwork_commented,omitempty"`
	AppPostCommented    *bool `json:"app_post_commented,omitempty"`
	AppWallCommented    *bool `json:"app_wall_commented,omitempty"`
	AppCommentReplied   *bool `json:"app_comment_replied,omitempty"`
	AppMentioned        *bool `json:"app_mentioned,omitempty"`
	AppNearbyWall       *bool `json:"app_nearby_wall,omitempty"`

	EmailNewFollower      *bool `json:"email_new_follower,omitempty"`
	EmailArtworkLiked     *bool `json:"email_artwork_liked,omitempty"`
	EmailPostLiked        *bool `json:"email_post_liked,omitempty"`
	EmailWallLiked        *bool `json:"email_wall_liked,omitempty"`
	EmailCommentLiked     *bool `json:"email_comment_liked,omitempty"`
	EmailArtworkCommented *bool `json:"email_artwork_commented,omitempty"`
	EmailPostCommented    *bool `json:"email_post_commented,omitempty"`
	EmailWallCommented    *bool `json:"email_wall_commented,omitempty"`
	EmailCommentReplied   *bool `json:"email_comment_replied,omitempty"`
	EmailMentioned        *bool `json:"email_mentioned,omitempty"`
	EmailNearbyWall       *bool `json:"email_nearby_wall,omitempty"`

	PushNewFollower      *bool `json:"push_new_follower,omitempty"`
	PushArtworkLiked     *bool `json:"push_artwork_liked,omitempty"`
	PushPostLiked        *bool `json:"push_post_liked,omitempty"`
	PushWallLiked        *bool `json:"push_wall_liked,omitempty"`
	PushCommentLiked     *bool `json:"push_comment_liked,omitempty"`
	PushArtworkCommented *bool `json:"push_artwork_commented,omitempty"`
	PushPostCommented    *bool `json:"push_post_commented,omitempty"`
	PushWallCommented    *bool `json:"push_wall_commented,omitempty"`
	PushCommentReplied   *bool `json:"push_comment_replied,omitempty"`
	PushMentioned        *bool `json:"push_mentioned,omitempty"`
	PushNearbyWall       *bool `json:"push_nearby_wall,omitempty"`

	EmailFrequency  *string `json:"email_frequency,omitempty" validate:"omitempty,oneof=immediate daily off"`
	PushFrequency   *string `json:"push_frequency,omitempty" validate:"omitempty,oneof=immediate daily off"`
	QuietHoursStart *string `json:"quiet_hours_start,omitempty"`
	QuietHoursEnd   *string `json:"quiet_hours_end,omitempty"`
	Timezone        *string `json:"timezone,omitempty"`
}
