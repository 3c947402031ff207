package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 10 * time.Second
	lockRetryWait = 25 * time.Millisecond
	lockMaxWait   = 5 * time.Second
)

// releaseScript deletes the lock key only when it still holds our token, so
// a lock that expired and was re-acquired by another process is never
// released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// SubjectLocker serializes review mutations per subject across processes.
// Key format: lock:<subject key>. Acquisition is SET NX PX with bounded
// retry; the TTL bounds the damage of a crashed holder.
type SubjectLocker struct {
	client *redis.Client
}

// NewSubjectLocker creates a SubjectLocker wrapping the given Redis client.
func NewSubjectLocker(client *redis.Client) *SubjectLocker {
	return &SubjectLocker{client: client}
}

// Acquire blocks until the lock for key is held, the context is cancelled,
// or lockMaxWait elapses. The returned function releases the lock.
func (l *SubjectLocker) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := "lock:" + key
	token := uuid.NewString()

	deadline := time.Now().Add(lockMaxWait)
	for {
		ok, err := l.client.SetNX(ctx, lockKey, token, lockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("acquire lock %s: timed out", lockKey)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryWait):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{lockKey}, token).Err()
	}
	return release, nil
}
