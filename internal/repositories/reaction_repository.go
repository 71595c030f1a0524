package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crestline/huddle/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxTxAttempts bounds the transparent retries of a transaction that lost a
// serialization race.
const maxTxAttempts = 3

// ReactionRepository is the reaction engine. Post reactions are counted and
// per-user toggleable; comment reactions are creator-scoped emoji records
// attached idempotently with no removal path. The two operations stay
// separate on purpose.
type ReactionRepository interface {
	TogglePostReaction(ctx context.Context, postID uint, emoji string, userID uint) (string, error)
	AttachCommentEmoji(ctx context.Context, commentID uint, emoji string, userID uint) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL.
type PostgresReactionRepository struct {
	db *gorm.DB

	// lock guards the reaction row while its user set is mutated. Nil on
	// dialects without FOR UPDATE.
	lock clause.Expression
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository.
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db, lock: clause.Locking{Strength: "UPDATE"}}
}

// toggleOutcome decides the transition for a toggle hitting an existing
// reaction row. userActive reports whether the toggling user is in the
// active set, activeCount the current size of that set.
func toggleOutcome(userActive bool, activeCount int64) string {
	switch {
	case !userActive:
		return models.ToggleIncremented
	case activeCount-1 > 0:
		return models.ToggleDecremented
	default:
		return models.ToggleRemoved
	}
}

// TogglePostReaction flips the user's membership in the (post, emoji)
// reaction set and returns the transition taken: "added" when the row is
// created, "incremented"/"decremented" while other users remain, "removed"
// when the last user leaves and the row is deleted.
//
// Each attempt runs as one transaction: the reaction row is locked FOR
// UPDATE, membership inspected, the set mutated and the row deleted when it
// empties. A concurrent create trips the (post_id, emoji) unique index and
// the attempt is retried, so exactly one row per (post, emoji) is ever
// observable and no zero-user row escapes the transaction.
func (r *PostgresReactionRepository) TogglePostReaction(ctx context.Context, postID uint, emoji string, userID uint) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		result, err := r.toggleOnce(ctx, postID, emoji, userID)
		if err == nil {
			return result, nil
		}
		if !isSerializationFailure(err) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("toggle reaction: %w (%v)", ErrConflict, lastErr)
}

func (r *PostgresReactionRepository) toggleOnce(ctx context.Context, postID uint, emoji string, userID uint) (string, error) {
	var result string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("post %d: %w", postID, ErrNotFound)
			}
			return fmt.Errorf("get post: %w", err)
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("get user: %w", err)
		}

		locked := tx
		if r.lock != nil {
			locked = tx.Clauses(r.lock)
		}
		var reaction models.Reaction
		err := locked.Where("post_id = ? AND emoji = ?", postID, emoji).
			First(&reaction).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			reaction = models.Reaction{PostID: postID, Emoji: emoji}
			if err := tx.Create(&reaction).Error; err != nil {
				return fmt.Errorf("create reaction: %w", err)
			}
			if err := tx.Model(&reaction).Association("Users").Append(&user); err != nil {
				return fmt.Errorf("add first user: %w", err)
			}
			result = models.ToggleAdded
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock reaction: %w", err)
		}

		var active int64
		err = tx.Table("reaction_users").
			Where("reaction_id = ? AND user_id = ?", reaction.ID, userID).
			Count(&active).Error
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		var total int64
		err = tx.Table("reaction_users").
			Where("reaction_id = ?", reaction.ID).
			Count(&total).Error
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		result = toggleOutcome(active > 0, total)
		switch result {
		case models.ToggleIncremented:
			if err := tx.Model(&reaction).Association("Users").Append(&user); err != nil {
				return fmt.Errorf("add user: %w", err)
			}
		case models.ToggleDecremented:
			if err := tx.Model(&reaction).Association("Users").Delete(&user); err != nil {
				return fmt.Errorf("remove user: %w", err)
			}
		case models.ToggleRemoved:
			if err := tx.Model(&reaction).Association("Users").Delete(&user); err != nil {
				return fmt.Errorf("remove last user: %w", err)
			}
			if err := tx.Delete(&reaction).Error; err != nil {
				return fmt.Errorf("delete empty reaction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// AttachCommentEmoji gets-or-creates the creator-scoped Emoji(user, name)
// and attaches it to the comment. Repeating the call changes nothing. A
// concurrent first attach by the same creator can trip the (creator, name)
// unique index inside the get-or-create; those attempts are retried like
// toggles.
func (r *PostgresReactionRepository) AttachCommentEmoji(ctx context.Context, commentID uint, emoji string, userID uint) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := r.attachOnce(ctx, commentID, emoji, userID)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("attach emoji: %w (%v)", ErrConflict, lastErr)
}

func (r *PostgresReactionRepository) attachOnce(ctx context.Context, commentID uint, emoji string, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("comment %d: %w", commentID, ErrNotFound)
			}
			return fmt.Errorf("get comment: %w", err)
		}

		record := models.Emoji{CreatedByID: userID, ColonName: emoji}
		err := tx.Where("created_by_id = ? AND colon_name = ?", userID, emoji).
			FirstOrCreate(&record).Error
		if err != nil {
			return fmt.Errorf("get or create emoji: %w", err)
		}

		if err := tx.Model(&comment).Association("Emojis").Append(&record); err != nil {
			return fmt.Errorf("attach emoji: %w", err)
		}
		return nil
	})
}

// isSerializationFailure reports whether the error came from two toggles
// racing: a serialization abort, a deadlock, or the (post_id, emoji) unique
// index tripping under a concurrent create. Postgres SQLSTATEs 40001, 40P01
// and 23505.
func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key")
}
