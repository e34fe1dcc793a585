package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
	"github.com/localhy/credit-ledger/internal/domain/port/persistence"
)

// DefaultLockPrefix namespaces action lock keys
const DefaultLockPrefix = "ledger:lock:"

// releaseScript deletes the lock only while it still carries the caller's owner token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type lockClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// RedisActionLocks stores paid-action locks as expiring Redis keys
type RedisActionLocks struct {
	client lockClient
	prefix string
}

var _ persistence.ActionLockRepository = (*RedisActionLocks)(nil)

// NewRedisActionLocks creates a lock repository on client
func NewRedisActionLocks(client *redis.Client, prefix string) *RedisActionLocks {
	if prefix == "" {
		prefix = DefaultLockPrefix
	}
	return &RedisActionLocks{client: client, prefix: prefix}
}

// AcquireLock sets the key to a fresh owner token only if it does not exist
func (l *RedisActionLocks) AcquireLock(ctx context.Context, key string, duration time.Duration) (string, error) {
	owner := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.prefix+key, owner, duration).Result()
	if err != nil {
		return "", errs.NewStoreError("acquire action lock", err)
	}
	if !ok {
		return "", errs.ErrLockHeld
	}
	return owner, nil
}

// ReleaseLock deletes the key when it still belongs to owner
func (l *RedisActionLocks) ReleaseLock(ctx context.Context, key, owner string) error {
	if err := l.client.Eval(ctx, releaseScript, []string{l.prefix + key}, owner).Err(); err != nil {
		return errs.NewStoreError("release action lock", err)
	}
	return nil
}
