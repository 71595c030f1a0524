package models

import (
	"strings"
	"time"
)

// Post is a message in a channel. The channel association is fixed at
// creation. Attached images are referenced by value as a comma-joined list
// of URLs, not by foreign key, so deleting an image record never breaks a
// post.
type Post struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	ChannelID   uint       `json:"channel_id" gorm:"index;not null"`
	CreatedByID uint       `json:"created_by_id" gorm:"index"`
	Body        string     `json:"body" gorm:"not null"`
	Images      string     `json:"images"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Comments    []Comment  `json:"comments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Reactions   []Reaction `json:"reactions,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// ImageURLs splits the stored image value back into its ordered URL list.
func (p Post) ImageURLs() []string {
	if p.Images == "" {
		return nil
	}
	return strings.Split(p.Images, ",")
}

// JoinImageURLs collapses an ordered URL list into the stored representation.
// An empty list yields the empty string.
func JoinImageURLs(urls []string) string {
	return strings.Join(urls, ",")
}

// CreatePostRequest defines the request body for posting to a channel.
type CreatePostRequest struct {
	Body      string   `json:"body" validate:"required,min=1"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,uri"`
}

// UpdatePostRequest defines the request body for editing an existing post.
type UpdatePostRequest struct {
	Body      string   `json:"body" validate:"required,min=1"`
	ImageURLs []string `json:"image_urls,omitempty" validate:"omitempty,dive,uri"`
}
