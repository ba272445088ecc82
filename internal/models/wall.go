package models

import "time"

// Wall represents a physical wall where street art can be found
type Wall struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	SubmittedByID uint    `json:"submitted_by_id" gorm:"index;not null"`
	Title         string  `json:"title" gorm:"size:120;not null"`
	Address       string  `json:"address"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	IsVerified    bool    `json:"is_verified" gorm:"not null;default:false"`

	LikesCount    int64 `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int64 `json:"comments_count" gorm:"not null;default:0"`
	ArtworksCount int64 `json:"artworks_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateWallRequest defines the request body for submitting a new wall
type CreateWallRequest struct {
	Title     string  `json:"title" validate:"required,min=1,max=120"`
	Address   string  `json:"address" validate:"omitempty,max=255"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}
