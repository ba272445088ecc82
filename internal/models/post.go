package models

import "time"

// Post represents a community post (PostgreSQL)
type Post struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	Content  string `json:"content" gorm:"size:2000;not null"`
	ImageURL string `json:"image_url"`

	LikesCount    int64 `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int64 `json:"comments_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}
