package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultSnapshotTTL = 24 * time.Hour

// RedisSnapshotStore keeps pipeline stage snapshots in redis under a TTL.
// Snapshots are short-lived debug artifacts, so letting them expire beats
// growing a table forever.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (s *RedisSnapshotStore) Capture(ctx context.Context, requestID, stage string, payload any) error {
	if s.client == nil {
		return errors.New("snapshot store: redis client is nil")
	}
	if stage == "" {
		return errors.New("capture snapshot: stage must not be empty")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("capture snapshot: marshal payload: %w", err)
	}

	key := snapshotKey(requestID, stage)
	if err := s.client.Set(ctx, key, body, s.ttl).Err(); err != nil {
		return fmt.Errorf("capture snapshot: set %q: %w", key, err)
	}

	return nil
}

func snapshotKey(requestID, stage string) string {
	return fmt.Sprintf("snapshot:%s:%s", requestID, stage)
}
