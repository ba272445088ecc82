package models

import "time"

// Comment represents a comment on a commentable entity (artwork, post, wall).
// Threading is a single level deep: a reply to a reply is flattened under the
// original reply's parent, so ParentID always points at a root comment.
type Comment struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	CommentableType EntityType `json:"commentable_type" gorm:"size:20;index:idx_commentable;not null"`
	CommentableID   uint       `json:"commentable_id" gorm:"index:idx_commentable;not null"`
	UserID          uint       `json:"user_id" gorm:"index;not null"`
	ParentID        *uint      `json:"parent_id,omitempty" gorm:"index"`
	Content         string     `json:"content" gorm:"size:1000;not null"`
	RepliesCount    int64      `json:"replies_count" gorm:"not null;default:0"`
	LikesCount      int64      `json:"likes_count" gorm:"not null;default:0"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=1000"`
	ParentID *uint  `json:"parent_id,omitempty"`
}
