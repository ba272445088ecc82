package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/Anabolique89/MuralFinderApp-sub000/internal/models"
)

// DomainEvent is the ephemeral record of something that happened: a follow, a
// like, a comment, a mention, a nearby wall. Events are produced by the
// engagement engine, persisted as exactly one Notification row each, and
// fanned out to external channels by the dispatcher. The Key is the
// idempotency identity of the logical occurrence.
type DomainEvent struct {
	Key         string
	Type        models.EventType
	ActorID     uint // zero for actorless events
	RecipientID uint
	Subject     models.EntityRef
	OccurredAt  time.Time
}

func newEvent(t models.EventType, actorID, recipientID uint, subject models.EntityRef, at time.Time) DomainEvent {
	return DomainEvent{
		Key:         uuid.NewString(),
		Type:        t,
		ActorID:     actorID,
		RecipientID: recipientID,
		Subject:     subject,
		OccurredAt:  at,
	}
}

// likedEventType maps a likeable entity type to its like event
var likedEventType = map[models.EntityType]models.EventType{
	models.EntityArtwork: models.EventArtworkLiked,
	models.EntityPost:    models.EventPostLiked,
	models.EntityWall:    models.EventWallLiked,
	models.EntityComment: models.EventCommentLiked,
}

// commentedEventType maps a commentable entity type to its comment event
var commentedEventType = map[models.EntityType]models.EventType{
	models.EntityArtwork: models.EventArtworkCommented,
	models.EntityPost:    models.EventPostCommented,
	models.EntityWall:    models.EventWallCommented,
}
