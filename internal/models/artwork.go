package models

import "time"

// Artwork represents a piece of street art, optionally pinned to a wall
type Artwork struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	ArtistID uint   `json:"artist_id" gorm:"index;not null"`
	WallID   *uint  `json:"wall_id,omitempty" gorm:"index"`
	Title    string `json:"title" gorm:"size:120;not null"`
	ImageURL string `json:"image_url"`

	LikesCount    int64 `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int64 `json:"comments_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateArtworkRequest defines the request body for publishing an artwork
type CreateArtworkRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=120"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	WallID   *uint  `json:"wall_id,omitempty"`
}
