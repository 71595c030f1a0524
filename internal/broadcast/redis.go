package broadcast

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/crestline/huddle/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// Redis publishes content events on Redis pub/sub channels, one channel per
// post feed ("channel.<id>.posts") and per comment thread
// ("post.<id>.comments"). Errors are logged and swallowed.
type Redis struct {
	cli    *redis.Client
	logger *slog.Logger
}

// NewRedis creates a Redis notifier.
func NewRedis(cli *redis.Client, logger *slog.Logger) *Redis {
	return &Redis{cli: cli, logger: logger}
}

type event struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	Content     string `json:"content"`
	CreatedByID uint   `json:"created_by_id"`
}

func (r *Redis) PostCreated(ctx context.Context, post *models.Post) {
	r.publish(ctx, fmt.Sprintf("channel.%d.posts", post.ChannelID), event{
		Type:        "post_notification",
		Message:     "New post added!",
		Content:     post.Body,
		CreatedByID: post.CreatedByID,
	})
}

func (r *Redis) CommentCreated(ctx context.Context, comment *models.Comment) {
	r.publish(ctx, fmt.Sprintf("post.%d.comments", comment.PostID), event{
		Type:        "comment_notification",
		Message:     "New comment added!",
		Content:     comment.Body,
		CreatedByID: comment.CreatedByID,
	})
}

func (r *Redis) publish(ctx context.Context, channel string, ev event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		r.logger.Error("Could not encode broadcast event", "error", err.Error())
		return
	}
	if err := r.cli.Publish(ctx, channel, payload).Err(); err != nil {
		r.logger.Error("Could not publish broadcast event", "channel", channel, "error", err.Error())
	}
}
