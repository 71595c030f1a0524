package models

import "time"

// User represents a registered member. Identity and session management live
// in an external provider; every core operation receives the acting user id
// explicitly.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`

	// LastViewedChannelID remembers the channel the user opened most
	// recently, so the UI can land them back there. Zero means none yet.
	LastViewedChannelID uint `json:"last_viewed_channel_id,omitempty"`
}

// CreateUserRequest defines the request body for registering a user record.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
}
