package models

import "time"

// Channel is a named group-chat space. Users are shared across channels
// through the channel_users join table; posts belong to exactly one channel.
type Channel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	Users     []User    `json:"users,omitempty" gorm:"many2many:channel_users"`
	Posts     []Post    `json:"posts,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ChannelLastViewed marks the last time a user visited a channel, one row per
// (user, channel) pair. Created lazily on first visit and upserted on every
// subsequent one; the presentation layer derives unread indicators from it.
type ChannelLastViewed struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_user_channel_viewed"`
	ChannelID uint      `json:"channel_id" gorm:"uniqueIndex:idx_user_channel_viewed"`
	LastVisit time.Time `json:"last_visit"`
}

// CreateChannelRequest defines the request body for creating a channel.
type CreateChannelRequest struct {
	Name string `json:"name" validate:"required,min=2,max=80"`
}
