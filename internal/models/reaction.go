package models

import "time"

// Toggle results reported by the reaction engine. A toggle either creates
// the (post, emoji) record, grows or shrinks its user set, or deletes the
// record when the last user leaves.
const (
	ToggleAdded       = "added"
	ToggleIncremented = "incremented"
	ToggleDecremented = "decremented"
	ToggleRemoved     = "removed"
)

// Reaction is an emoji on a post, tracked as the set of users who currently
// have it active. Invariant: a row exists only while Users is non-empty; the
// engine deletes the row when the last user toggles off.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"uniqueIndex:idx_post_emoji;not null"`
	Emoji     string    `json:"emoji" gorm:"uniqueIndex:idx_post_emoji;size:64;not null"`
	CreatedAt time.Time `json:"created_at"`
	Users     []User    `json:"users,omitempty" gorm:"many2many:reaction_users"`
}

// Emoji is a creator-scoped emoji record, unique per (creator, colon name).
// Comments attach these directly and idempotently; there is no per-user
// toggle or removal path for comment reactions. Post and comment reactions
// are intentionally asymmetric and must stay separate operations.
type Emoji struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CreatedByID uint      `json:"created_by_id" gorm:"uniqueIndex:idx_creator_emoji;not null"`
	ColonName   string    `json:"colon_name" gorm:"uniqueIndex:idx_creator_emoji;size:64;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToggleReactionRequest defines the request body for toggling or attaching
// an emoji reaction.
type ToggleReactionRequest struct {
	Emoji string `json:"emoji" validate:"required,min=1,max=64"`
}
