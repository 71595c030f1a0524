package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline/huddle/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	ListComments(ctx context.Context, postID uint) ([]models.Comment, error)
	DistinctCommenters(ctx context.Context, postIDs []uint) (map[uint][]uint, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL.
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository.
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment persists a new comment. The post must resolve; the post
// association is immutable afterwards.
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, comment.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("post %d: %w", comment.PostID, ErrNotFound)
		}
		return fmt.Errorf("get post: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// ListComments returns the post's comments in ascending creation order.
func (r *PostgresCommentRepository) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at").
		Preload("Emojis").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// DistinctCommenters returns, per post, the ids of users who commented on
// it. Used for the commenter summary on post listings.
func (r *PostgresCommentRepository) DistinctCommenters(ctx context.Context, postIDs []uint) (map[uint][]uint, error) {
	if len(postIDs) == 0 {
		return map[uint][]uint{}, nil
	}
	var rows []struct {
		PostID      uint
		CreatedByID uint
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Distinct("post_id", "created_by_id").
		Where("post_id IN ?", postIDs).
		Order("post_id, created_by_id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("distinct commenters: %w", err)
	}
	out := make(map[uint][]uint, len(postIDs))
	for _, row := range rows {
		out[row.PostID] = append(out[row.PostID], row.CreatedByID)
	}
	return out, nil
}
