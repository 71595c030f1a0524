package models

import "time"

// Comment is a reply on a post. The post association is fixed at creation.
// Comment emoji use the creator-scoped Emoji records rather than the counted
// per-post Reaction model; see reaction.go.
type Comment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PostID      uint      `json:"post_id" gorm:"index;not null"`
	CreatedByID uint      `json:"created_by_id" gorm:"index"`
	Body        string    `json:"body" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	Emojis      []Emoji   `json:"emojis,omitempty" gorm:"many2many:comment_emojis"`
}

// CreateCommentRequest defines the request body for commenting on a post.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}
