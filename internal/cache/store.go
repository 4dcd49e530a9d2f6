package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ListStore caches serialized entity collections keyed per table. Every
// mutation on a table deletes that table's entry, so the next list read goes
// back to Postgres. A Redis failure degrades to a plain store read; it never
// fails the request.
type ListStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListStore(client *redis.Client, ttl time.Duration) *ListStore {
	return &ListStore{client: client, ttl: ttl}
}

func listKey(table string) string {
	return "cache:list:" + table
}

// Invalidate drops the cached collection for a table.
func (s *ListStore) Invalidate(ctx context.Context, table string) {
	if s == nil || s.client == nil {
		return
	}
	_ = s.client.Del(ctx, listKey(table)).Err()
}

// Through returns the cached collection for table, or calls load, caches the
// result and returns it.
func Through[T any](ctx context.Context, s *ListStore, table string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s != nil && s.client != nil {
		raw, err := s.client.Get(ctx, listKey(table)).Bytes()
		if err == nil {
			var cached []T
			if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
				return cached, nil
			}
			// Unreadable payload, treat as a miss and overwrite below.
		} else if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
			// Redis being down is not a reason to fail the read.
		}
	}

	items, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if s != nil && s.client != nil {
		if raw, jsonErr := json.Marshal(items); jsonErr == nil {
			_ = s.client.Set(ctx, listKey(table), raw, s.ttl).Err()
		}
	}

	return items, nil
}
