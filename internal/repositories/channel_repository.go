package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/crestline/huddle/backend/internal/models"
	"gorm.io/gorm"
)

// ChannelRepository defines the interface for channel and membership
// operations.
type ChannelRepository interface {
	CreateChannel(ctx context.Context, channel *models.Channel) error
	GetChannelByID(ctx context.Context, id uint) (*models.Channel, error)
	GetChannels(ctx context.Context) ([]models.Channel, error)
	AddUserToChannel(ctx context.Context, channelID, userID uint) error
	IsMember(ctx context.Context, channelID, userID uint) (bool, error)
	DeleteChannel(ctx context.Context, id uint) error
}

// PostgresChannelRepository implements ChannelRepository for PostgreSQL.
type PostgresChannelRepository struct {
	db *gorm.DB
}

// NewPostgresChannelRepository creates a new PostgresChannelRepository.
func NewPostgresChannelRepository(db *gorm.DB) *PostgresChannelRepository {
	return &PostgresChannelRepository{db: db}
}

func (r *PostgresChannelRepository) CreateChannel(ctx context.Context, channel *models.Channel) error {
	if err := r.db.WithContext(ctx).Create(channel).Error; err != nil {
		return fmt.Errorf("create channel: %w", err)
	}
	return nil
}

func (r *PostgresChannelRepository) GetChannelByID(ctx context.Context, id uint) (*models.Channel, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).Preload("Users").First(&channel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("channel %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get channel: %w", err)
	}
	return &channel, nil
}

func (r *PostgresChannelRepository) GetChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).Preload("Users").Order("id").Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	return channels, nil
}

// AddUserToChannel adds the user to the channel's member set. Adding an
// existing member is a no-op success; the many2many append upserts the join
// row and ignores duplicates.
func (r *PostgresChannelRepository) AddUserToChannel(ctx context.Context, channelID, userID uint) error {
	var channel models.Channel
	if err := r.db.WithContext(ctx).First(&channel, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("channel %d: %w", channelID, ErrNotFound)
		}
		return fmt.Errorf("get channel: %w", err)
	}

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&channel).Association("Users").Append(&user); err != nil {
		return fmt.Errorf("add user to channel: %w", err)
	}
	return nil
}

// IsMember reports whether the user belongs to the channel. Pure query.
func (r *PostgresChannelRepository) IsMember(ctx context.Context, channelID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("channel_users").
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return count > 0, nil
}

// DeleteChannel removes the channel and its membership rows. Posts cascade
// with the channel; removing a single membership never touches posts.
func (r *PostgresChannelRepository) DeleteChannel(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("Users").Delete(&models.Channel{ID: id})
	if res.Error != nil {
		return fmt.Errorf("delete channel: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("channel %d: %w", id, ErrNotFound)
	}
	return nil
}
