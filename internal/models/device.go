package models

import "time"

// Device represents a push notification endpoint owned by a user
type Device struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	Token      string    `json:"token" gorm:"size:255;uniqueIndex;not null"` // FCM registration token
	Platform   string    `json:"platform" gorm:"size:10"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterDeviceRequest defines the request body for registering a push device
type RegisterDeviceRequest struct {
	Token    string `json:"token" validate:"required,max=255"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}
