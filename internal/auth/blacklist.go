package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist tracks revoked tokens until their natural expiry.
type Blacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

const blacklistKeyPrefix = "blacklist:"

// RedisBlacklist stores revoked tokens as keys with a TTL; Redis handles the
// expiry sweep.
type RedisBlacklist struct {
	client *redis.Client
}

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{client: client}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to track
	}
	return b.client.Set(ctx, blacklistKeyPrefix+token, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryBlacklist is the fallback for deployments without Redis. A
// background sweep drops entries whose tokens have expired on their own.
type MemoryBlacklist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	done    chan struct{}
	once    sync.Once
}

func NewMemoryBlacklist() *MemoryBlacklist {
	b := &MemoryBlacklist{
		revoked: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go b.sweep(time.Minute)
	return b
}

func (b *MemoryBlacklist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	b.revoked[token] = time.Now().Add(ttl)
	b.mu.Unlock()
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	expiry, ok := b.revoked[token]
	b.mu.RUnlock()
	return ok && time.Now().Before(expiry), nil
}

func (b *MemoryBlacklist) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-b.done:
			return
		case <-ticker.C:
			now := time.Now()
			b.mu.Lock()
			for token, expiry := range b.revoked {
				if now.After(expiry) {
					delete(b.revoked, token)
				}
			}
			b.mu.Unlock()
		}
	}
}

// Close stops the sweep goroutine.
func (b *MemoryBlacklist) Close() {
	b.once.Do(func() { close(b.done) })
}
