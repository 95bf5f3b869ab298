package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"lifeplan/internal/form"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "lifeplan:session:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
	}
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (form.Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.Snapshot{}, false, nil
	}
	if err != nil {
		return form.Snapshot{}, false, err
	}

	var snap form.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return form.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (r *RedisStore) Set(ctx context.Context, id string, snap form.Snapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+id, raw, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
