package services

import (
	"fmt"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// eventSpec is one row of the static event catalog: how a domain event renders
// into a notification and which preference flags gate each channel. The table
// replaces dynamic per-channel method dispatch — the dispatcher and resolver
// consult it once per event, with no runtime type inspection.
type eventSpec struct {
	title    string
	priority string
	message  func(actorName string) string
	flags    func(p *models.NotificationPreference) (app, email, push bool)
}

var eventCatalog = map[models.EventType]eventSpec{
	models.EventNewFollower: {
		title:    "New follower",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s started following you", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppNewFollower, p.EmailNewFollower, p.PushNewFollower
		},
	},
	models.EventArtworkLiked: {
		title:    "Artwork liked",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s liked your artwork", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppArtworkLiked, p.EmailArtworkLiked, p.PushArtworkLiked
		},
	},
	models.EventPostLiked: {
		title:    "Post liked",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s liked your post", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppPostLiked, p.EmailPostLiked, p.PushPostLiked
		},
	},
	models.EventWallLiked: {
		title:    "Wall liked",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s liked a wall you submitted", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppWallLiked, p.EmailWallLiked, p.PushWallLiked
		},
	},
	models.EventCommentLiked: {
		title:    "Comment liked",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s liked your comment", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppCommentLiked, p.EmailCommentLiked, p.PushCommentLiked
		},
	},
	models.EventArtworkCommented: {
		title:    "New comment",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s commented on your artwork", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppArtworkCommented, p.EmailArtworkCommented, p.PushArtworkCommented
		},
	},
	models.EventPostCommented: {
		title:    "New comment",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s commented on your post", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppPostCommented, p.EmailPostCommented, p.PushPostCommented
		},
	},
	models.EventWallCommented: {
		title:    "New comment",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s commented on a wall you submitted", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppWallCommented, p.EmailWallCommented, p.PushWallCommented
		},
	},
	models.EventCommentReplied: {
		title:    "New reply",
		priority: models.PriorityNormal,
		message:  func(a string) string { return fmt.Sprintf("%s replied to your comment", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppCommentReplied, p.EmailCommentReplied, p.PushCommentReplied
		},
	},
	models.EventMentioned: {
		title:    "You were mentioned",
		priority: models.PriorityHigh,
		message:  func(a string) string { return fmt.Sprintf("%s mentioned you in a comment", a) },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppMentioned, p.EmailMentioned, p.PushMentioned
		},
	},
	models.EventNearbyWall: {
		title:    "New wall nearby",
		priority: models.PriorityNormal,
		message:  func(string) string { return "A new wall was spotted near you" },
		flags: func(p *models.NotificationPreference) (bool, bool, bool) {
			return p.AppNearbyWall, p.EmailNearbyWall, p.PushNearbyWall
		},
	},
}
