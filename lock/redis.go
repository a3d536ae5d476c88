package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix            = "lfusys:lock:"
	defaultTTL           = 30 * time.Second
	defaultRetryInterval = 100 * time.Millisecond
)

// Both scripts act only while the key still holds our token.
var (
	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	refreshScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

// RedisLocker implements Locker with SET NX PX and a random token per lease.
// Held leases are refreshed in the background until released.
type RedisLocker struct {
	client        *redis.Client
	ttl           time.Duration
	retryInterval time.Duration

	logger logging.Logger
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, l logging.Logger) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		logger:        l.With("component", "lock.redis"),
	}
}

func (r *RedisLocker) Name() string {
	return "Locker[redis]"
}

func (r *RedisLocker) IsReady(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisLocker) Acquire(ctx context.Context, name string) (Lease, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", name, err)
		}
		if ok {
			r.logger.Debug("lock acquired", "lock", name)
			return r.newLease(name, key, token), nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, name, ctx.Err())
		}
	}
}

func (r *RedisLocker) newLease(name, key, token string) *redisLease {
	ctx, cancel := context.WithCancel(context.Background())
	l := &redisLease{
		locker: r,
		name:   name,
		key:    key,
		token:  token,
		cancel: cancel,
	}

	l.wg.Add(1)
	go l.keepAlive(ctx)

	return l
}

type redisLease struct {
	locker *RedisLocker
	name   string
	key    string
	token  string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (l *redisLease) Name() string {
	return l.name
}

func (l *redisLease) keepAlive(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(l.locker.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := refreshScript.Run(ctx, l.locker.client, []string{l.key}, l.token, l.locker.ttl.Milliseconds()).Int()
			if err != nil {
				l.locker.logger.Warn("failed to refresh lock", "lock", l.name, "error", err)
				continue
			}
			if n == 0 {
				l.locker.logger.Error("lock lost while held", "lock", l.name)
				return
			}
		}
	}
}

func (l *redisLease) Release(ctx context.Context) error {
	l.cancel()
	l.wg.Wait()

	n, err := releaseScript.Run(ctx, l.locker.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release %s: %w", l.name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrLockLost, l.name)
	}

	l.locker.logger.Debug("lock released", "lock", l.name)
	return nil
}
