package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrLockNotAcquired = errors.New("room lock not acquired")
)

// Locker guards the critical section around bed assignment so two concurrent
// admissions cannot both take the last bed in a room.
type Locker interface {
	WithRoomLock(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisRoomLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRoomLocker creates a locker that uses a per room Redis key.
func NewRedisRoomLocker(client *redis.Client, ttl time.Duration) Locker {
	return &redisRoomLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisRoomLocker) WithRoomLock(ctx context.Context, roomID uuid.UUID, fn func(ctx context.Context) error) error {
	key := fmt.Sprintf("lock:room:%s", roomID.String())
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire room lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(ctx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisRoomLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release room lock: %w", err)
	}
	return nil
}
