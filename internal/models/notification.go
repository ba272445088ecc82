package models

import (
	"time"

	"gorm.io/gorm"
)

// EventType identifies the kind of domain event behind a notification
type EventType string

const (
	EventNewFollower      EventType = "new_follower"
	EventArtworkLiked     EventType = "artwork_liked"
	EventPostLiked        EventType = "post_liked"
	EventWallLiked        EventType = "wall_liked"
	EventCommentLiked     EventType = "comment_liked"
	EventArtworkCommented EventType = "artwork_commented"
	EventPostCommented    EventType = "post_commented"
	EventWallCommented    EventType = "wall_commented"
	EventCommentReplied   EventType = "comment_replied"
	EventMentioned        EventType = "mentioned"
	EventNearbyWall       EventType = "nearby_wall"
)

// Channel is a notification delivery channel
type Channel string

const (
	ChannelApp   Channel = "app"
	ChannelEmail Channel = "email"
	ChannelPush  Channel = "push"
)

// Notification priorities
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification represents a persisted user notification (PostgreSQL). The row
// is the always-on in-app baseline: it is written in the same transaction as
// the mutation that produced the event, before any external delivery runs.
// After creation only the read-state and delivery-stamp fields ever change.
type Notification struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	EventKey    string     `json:"-" gorm:"size:64;uniqueIndex"` // idempotency key: one row per logical event
	Type        EventType  `json:"type" gorm:"size:30;index"`
	ActorID     *uint      `json:"actor_id,omitempty" gorm:"index"`
	RecipientID uint       `json:"recipient_id" gorm:"index"`
	SubjectType EntityType `json:"subject_type" gorm:"size:20"`
	SubjectID   uint       `json:"subject_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Priority    string     `json:"priority" gorm:"size:10;not null;default:'normal'"`

	IsRead bool       `json:"is_read" gorm:"not null;default:false;index"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	IsSentEmail bool       `json:"is_sent_email" gorm:"not null;default:false"`
	EmailSentAt *time.Time `json:"email_sent_at,omitempty"`
	IsSentPush  bool       `json:"is_sent_push" gorm:"not null;default:false"`
	PushSentAt  *time.Time `json:"push_sent_at,omitempty"`

	CreatedAt time.Time      `json:"created_at" gorm:"index"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"` // soft delete on user dismissal
}

// DeliveryAttempt is a single external-channel send attempt, journaled to
// MongoDB. It is an append-only audit record and never participates in the
// engagement transactions.
type DeliveryAttempt struct {
	NotificationID uint      `json:"notification_id" bson:"notification_id"`
	RecipientID    uint      `json:"recipient_id" bson:"recipient_id"`
	Channel        Channel   `json:"channel" bson:"channel"`
	Attempt        int       `json:"attempt" bson:"attempt"`
	Status         string    `json:"status" bson:"status"` // sent, failed, failed_permanent, skipped
	Error          string    `json:"error,omitempty" bson:"error,omitempty"`
	LatencyMS      int64     `json:"latency_ms" bson:"latency_ms"`
	AttemptedAt    time.Time `json:"attempted_at" bson:"attempted_at"`
}
