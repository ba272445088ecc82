package models

import "time"

// FollowEdge represents a directed follow relationship (A follows B).
// IsMutual on edge A->B must always equal the existence of edge B->A; both
// directions are corrected inside the same transaction on every follow and
// unfollow.
type FollowEdge struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;not null"`
	IsMutual    bool      `json:"is_mutual" gorm:"not null;default:false"`
	FollowedAt  time.Time `json:"followed_at"`
}

// TableName sets the table name for FollowEdge
func (FollowEdge) TableName() string { return "follows" }
