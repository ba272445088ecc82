package models

import "time"

// ReactionType is the flavor of a like
type ReactionType string

const (
	ReactionLike ReactionType = "like"
	ReactionLove ReactionType = "love"
	ReactionFire ReactionType = "fire"
	ReactionWow  ReactionType = "wow"
)

// Like represents a reaction on a likeable entity (artwork, post, wall, comment).
// The composite unique index is the sole arbiter under concurrent toggles: at
// most one like per (user, target) pair ever exists.
type Like struct {
	ID           uint         `json:"id" gorm:"primaryKey"`
	UserID       uint         `json:"user_id" gorm:"index;uniqueIndex:idx_user_likeable;not null"`
	LikeableType EntityType   `json:"likeable_type" gorm:"size:20;uniqueIndex:idx_user_likeable;not null"`
	LikeableID   uint         `json:"likeable_id" gorm:"index;uniqueIndex:idx_user_likeable;not null"`
	ReactionType ReactionType `json:"reaction_type" gorm:"size:10;not null;default:'like'"`
	CreatedAt    time.Time    `json:"created_at"`
}

// ToggleLikeRequest defines the request body for toggling a like
type ToggleLikeRequest struct {
	ReactionType string `json:"reaction_type" validate:"omitempty,oneof=like love fire wow"`
}
