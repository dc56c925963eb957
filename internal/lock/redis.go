package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisLockTTL   = 30 * time.Second
	redisLockRetry = 50 * time.Millisecond
)

// releaseScript deletes the key only when held by this owner, so an expired
// lock re-acquired by another instance is never deleted by the first.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`

// RedisManager is a Manager backed by SET NX with a TTL, for multi-instance
// deployments where appends for one account may land on different processes.
type RedisManager struct {
	client *redis.Client
	prefix string
}

func NewRedisManager(client *redis.Client) *RedisManager {
	return &RedisManager{client: client, prefix: "treasury:lock:"}
}

func (m *RedisManager) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := m.prefix + key
	owner := uuid.NewString()

	for {
		ok, err := m.client.SetNX(ctx, fullKey, owner, redisLockTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisLockRetry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = m.client.Eval(releaseCtx, releaseScript, []string{fullKey}, owner).Err()
		})
	}, nil
}
