package export

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys written by RedisWriter.
const (
	RedisIndexKey    = "players:index"
	RedisManifestKey = "players:manifest"
)

// PlayerKey returns the key holding the full record of slug.
func PlayerKey(slug string) string {
	return fmt.Sprintf("player:%s", slug)
}

// RedisWriter publishes the bundle as JSON values so a site backend can
// serve players without reading files.
type RedisWriter struct {
	client *redis.Client
	ttl    time.Duration // 0 keeps keys until the next export
}

// NewRedisWriter creates a writer. A zero ttl never expires the keys.
func NewRedisWriter(client *redis.Client, ttl time.Duration) *RedisWriter {
	return &RedisWriter{
		client: client,
		ttl:    ttl,
	}
}

func (w *RedisWriter) Name() string { return "redis:" + w.client.Options().Addr }

// Write stores every player, the index and the manifest in one pipeline.
func (w *RedisWriter) Write(ctx context.Context, b *Bundle) error {
	pipe := w.client.Pipeline()

	for _, p := range b.Players {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("marshaling player %s: %w", p.Slug, err)
		}
		pipe.Set(ctx, PlayerKey(p.Slug), data, w.ttl)
	}

	index, err := json.Marshal(b.Index)
	if err != nil {
		return fmt.Errorf("marshaling index: %w", err)
	}
	pipe.Set(ctx, RedisIndexKey, index, w.ttl)

	manifest, err := json.Marshal(b.Manifest)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	pipe.Set(ctx, RedisManifestKey, manifest, w.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("writing to redis: %w", err)
	}
	return nil
}
