package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crestline/huddle/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewingRepository tracks per-user per-channel last-visit markers. It does
// not validate membership; callers only invoke it for channel members.
type ViewingRepository interface {
	RecordVisit(ctx context.Context, userID, channelID uint) (time.Time, error)
	LastVisit(ctx context.Context, userID, channelID uint) (time.Time, bool, error)
	MarkersForUser(ctx context.Context, userID uint, channelIDs []uint) (map[uint]time.Time, error)
}

// PostgresViewingRepository implements ViewingRepository for PostgreSQL.
type PostgresViewingRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresViewingRepository creates a new PostgresViewingRepository.
func NewPostgresViewingRepository(db *gorm.DB) *PostgresViewingRepository {
	return &PostgresViewingRepository{db: db, now: time.Now}
}

// RecordVisit upserts the (user, channel) marker with the current time and
// returns the stored timestamp.
func (r *PostgresViewingRepository) RecordVisit(ctx context.Context, userID, channelID uint) (time.Time, error) {
	visit := r.now().UTC()
	marker := models.ChannelLastViewed{
		UserID:    userID,
		ChannelID: channelID,
		LastVisit: visit,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "channel_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_visit"}),
	}).Create(&marker).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("record visit: %w", err)
	}
	return visit, nil
}

// LastVisit returns the marker timestamp, or false when the user has never
// visited the channel. Absence is not an error.
func (r *PostgresViewingRepository) LastVisit(ctx context.Context, userID, channelID uint) (time.Time, bool, error) {
	var marker models.ChannelLastViewed
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id = ?", userID, channelID).
		First(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("last visit: %w", err)
	}
	return marker.LastVisit, true, nil
}

// MarkersForUser returns the last-visit timestamp per channel, lazily
// creating a marker for any channel the user has not visited yet. The
// channel index uses this to show an indicator per member channel.
func (r *PostgresViewingRepository) MarkersForUser(ctx context.Context, userID uint, channelIDs []uint) (map[uint]time.Time, error) {
	out := make(map[uint]time.Time, len(channelIDs))
	for _, channelID := range channelIDs {
		marker := models.ChannelLastViewed{
			UserID:    userID,
			ChannelID: channelID,
			LastVisit: r.now().UTC(),
		}
		err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&marker).Error
		if err != nil {
			return nil, fmt.Errorf("ensure marker: %w", err)
		}
		visit, _, err := r.LastVisit(ctx, userID, channelID)
		if err != nil {
			return nil, err
		}
		out[channelID] = visit
	}
	return out, nil
}
