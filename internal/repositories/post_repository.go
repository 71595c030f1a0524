package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline/huddle/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, channelID uint, page, perPage int) ([]models.Post, error)
	CountPosts(ctx context.Context, channelID uint) (int64, error)
	UpdatePost(ctx context.Context, id uint, body, images string) (*models.Post, error)
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL.
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository.
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost persists a new post. The channel must resolve; the channel
// association is immutable afterwards.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, post.ChannelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("channel %d: %w", post.ChannelID, ErrNotFound)
		}
		return fmt.Errorf("get channel: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at") }).
		Preload("Reactions.Users").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &post, nil
}

// ListPosts returns one page of the channel's posts in ascending creation
// order, with comments and reactions preloaded. Page numbers start at 1.
func (r *PostgresPostRepository) ListPosts(ctx context.Context, channelID uint, page, perPage int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at").
		Limit(perPage).
		Offset(perPage * (page - 1)).
		Preload("Comments", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at") }).
		Preload("Reactions.Users").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostgresPostRepository) CountPosts(ctx context.Context, channelID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// UpdatePost replaces the body and image list of an existing post and
// returns the updated record.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, id uint, body, images string) (*models.Post, error) {
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{"body": body, "images": images})
	if res.Error != nil {
		return nil, fmt.Errorf("update post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return r.GetPostByID(ctx, id)
}

// DeletePost removes the post; comments, reactions and their join rows go
// with it via the declared cascades.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}
	return nil
}
