package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/localhy/credit-ledger/internal/domain/error"
)

// fakeLockClient mimics SETNX and the compare-and-delete release script
type fakeLockClient struct {
	keys   map[string]string
	err    error
	lastTT time.Duration
}

func (c *fakeLockClient) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx)
	if c.err != nil {
		cmd.SetErr(c.err)
		return cmd
	}
	c.lastTT = expiration
	if _, ok := c.keys[key]; ok {
		cmd.SetVal(false)
		return cmd
	}
	c.keys[key] = value.(string)
	cmd.SetVal(true)
	return cmd
}

func (c *fakeLockClient) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	cmd := redis.NewCmd(ctx)
	if c.err != nil {
		cmd.SetErr(c.err)
		return cmd
	}
	if script != releaseScript {
		cmd.SetErr(errors.New("unexpected script"))
		return cmd
	}
	if c.keys[keys[0]] == args[0].(string) {
		delete(c.keys, keys[0])
		cmd.SetVal(int64(1))
		return cmd
	}
	cmd.SetVal(int64(0))
	return cmd
}

func TestRedisActionLocks(t *testing.T) {
	ctx := context.Background()
	client := &fakeLockClient{keys: map[string]string{}}
	locks := &RedisActionLocks{client: client, prefix: DefaultLockPrefix}
	const key = "gate:create_referral_job:u1:t1"

	owner, err := locks.AcquireLock(ctx, key, 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, owner, client.keys[DefaultLockPrefix+key])
	assert.Equal(t, 30*time.Second, client.lastTT)

	_, err = locks.AcquireLock(ctx, key, time.Second)
	assert.ErrorIs(t, err, errs.ErrLockHeld)

	assert.NoError(t, locks.ReleaseLock(ctx, key, owner))
	_, err = locks.AcquireLock(ctx, key, time.Second)
	assert.NoError(t, err)
}

func TestRedisActionLocks_StaleOwnerCannotRelease(t *testing.T) {
	ctx := context.Background()
	client := &fakeLockClient{keys: map[string]string{}}
	locks := &RedisActionLocks{client: client, prefix: DefaultLockPrefix}
	const key = "gate:create_referral_job:u1:t1"

	stale, err := locks.AcquireLock(ctx, key, time.Second)
	require.NoError(t, err)

	// The key expires and a second confirm takes it
	delete(client.keys, DefaultLockPrefix+key)
	current, err := locks.AcquireLock(ctx, key, time.Second)
	require.NoError(t, err)
	require.NotEqual(t, stale, current)

	require.NoError(t, locks.ReleaseLock(ctx, key, stale))
	assert.Equal(t, current, client.keys[DefaultLockPrefix+key])

	require.NoError(t, locks.ReleaseLock(ctx, key, current))
	assert.NotContains(t, client.keys, DefaultLockPrefix+key)
}

func TestRedisActionLocks_BackendFailure(t *testing.T) {
	locks := &RedisActionLocks{client: &fakeLockClient{err: errors.New("connection refused")}, prefix: DefaultLockPrefix}

	_, err := locks.AcquireLock(context.Background(), "k", time.Second)
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.ErrorIs(t, locks.ReleaseLock(context.Background(), "k", "owner"), errs.ErrStoreUnavailable)
}
