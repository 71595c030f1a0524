package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline/huddle/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	postPrefix = "channel_posts"
	maxSize    = 10
)

// Redis caches the most recent posts per channel. Each post is a hash keyed
// channel_posts:<channel>:<post>, indexed by a per-channel sorted set scored
// on creation time. Best effort only; callers fall back to the database.
type Redis struct {
	cli *redis.Client
}

// NewRedis wraps an existing Redis client.
func NewRedis(cli *redis.Client) *Redis {
	return &Redis{cli: cli}
}

type post struct {
	ID          uint   `redis:"id"`
	ChannelID   uint   `redis:"channel_id"`
	CreatedByID uint   `redis:"created_by_id"`
	Body        string `redis:"body"`
	Images      string `redis:"images"`
	CreatedAt   int64  `redis:"created_at"`
}

// ListPosts returns the cached posts of a channel in ascending creation
// order.
func (r *Redis) ListPosts(ctx context.Context, channelID uint) ([]models.Post, error) {
	setKey := fmt.Sprintf("%s:%d", postPrefix, channelID)
	keys, err := r.cli.ZRangeByScore(ctx, setKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", time.Now().UnixNano()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("zrange: %w", err)
	}

	out := make([]models.Post, len(keys))
	for i, key := range keys {
		var p post
		if err := r.cli.HGetAll(ctx, key).Scan(&p); err != nil {
			return nil, fmt.Errorf("hgetall: %w", err)
		}
		out[i] = models.Post{
			ID:          p.ID,
			ChannelID:   p.ChannelID,
			CreatedByID: p.CreatedByID,
			Body:        p.Body,
			Images:      p.Images,
			CreatedAt:   time.Unix(0, p.CreatedAt).UTC(),
		}
	}
	return out, nil
}

// InsertPost adds the post to its channel's cache and evicts the oldest
// entries beyond the cache size.
func (r *Redis) InsertPost(ctx context.Context, msg models.Post) error {
	p := &post{
		ID:          msg.ID,
		ChannelID:   msg.ChannelID,
		CreatedByID: msg.CreatedByID,
		Body:        msg.Body,
		Images:      msg.Images,
		CreatedAt:   msg.CreatedAt.UnixNano(),
	}
	setKey := fmt.Sprintf("%s:%d", postPrefix, msg.ChannelID)
	key := fmt.Sprintf("%s:%d", setKey, msg.ID)

	err := r.cli.Watch(ctx, func(tx *redis.Tx) error {
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, p)
			pipe.ZAdd(ctx, setKey, redis.Z{
				Score:  float64(p.CreatedAt),
				Member: key,
			})
			return nil
		})
		return err
	}, key)
	if err != nil {
		return fmt.Errorf("cache post: %w", err)
	}

	if err := r.evictOldest(ctx, setKey); err != nil {
		return fmt.Errorf("evict oldest: %w", err)
	}
	return nil
}

func (r *Redis) evictOldest(ctx context.Context, setKey string) error {
	keys, err := r.cli.ZRange(ctx, setKey, 0, int64(-maxSize-1)).Result()
	if err != nil {
		return fmt.Errorf("zrange: %w", err)
	}
	for _, key := range keys {
		_ = r.cli.ZRem(ctx, setKey, key).Err()
		_ = r.cli.Del(ctx, key).Err()
	}
	return nil
}
