package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a platform member (PostgreSQL)
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"size:30;uniqueIndex"` // mention target, case-sensitive
	DisplayName string `json:"display_name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	FirebaseUID *string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID; NULL before linking

	// Denormalized aggregates, mutated only through the counter store
	FollowersCount int64 `json:"followers_count" gorm:"not null;default:0"`
	FollowingCount int64 `json:"following_count" gorm:"not null;default:0"`
	ArtworksCount  int64 `json:"artworks_count" gorm:"not null;default:0"`
	PostsCount     int64 `json:"posts_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserCompact is the embedded actor/author representation in API responses
type UserCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

// ToCompact converts a User to its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

// Name returns the best displayable name for notification messages
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// CreateUserRequest defines the request body for creating a new user
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,min=2,max=30,alphanum"`
	DisplayName string `json:"display_name" validate:"omitempty,max=50"`
	Email       string `json:"email" validate:"required,email"`
	FirebaseUID string `json:"firebase_uid" validate:"required"` // Firebase UID provided by the client after Firebase Auth
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
