package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sairam-Chetpelly/visafrontend/internal/infrastructure/store"
)

// SessionBackend stores the session entries as two plain keys.
// Key format: <prefix>:<profile>:auth_token and <prefix>:<profile>:user
type SessionBackend struct {
	client  *redis.Client
	prefix  string
	profile string
}

// NewSessionBackend wraps the given Redis client.
func NewSessionBackend(client *redis.Client, prefix, profile string) *SessionBackend {
	return &SessionBackend{client: client, prefix: prefix, profile: profile}
}

func (b *SessionBackend) Name() string { return "redis" }

// Load reads both keys in one MGET.
func (b *SessionBackend) Load(ctx context.Context) (map[string]string, error) {
	vals, err := b.client.MGet(ctx, b.key(store.KeyToken), b.key(store.KeyUser)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load session: %w", err)
	}

	entries := make(map[string]string, 2)
	for i, name := range []string{store.KeyToken, store.KeyUser} {
		if s, ok := vals[i].(string); ok {
			entries[name] = s
		}
	}
	return entries, nil
}

// Save sets both keys inside MULTI/EXEC.
func (b *SessionBackend) Save(ctx context.Context, entries map[string]string) error {
	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, b.key(store.KeyToken), entries[store.KeyToken], 0)
		pipe.Set(ctx, b.key(store.KeyUser), entries[store.KeyUser], 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

// Remove deletes both keys with one DEL.
func (b *SessionBackend) Remove(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key(store.KeyToken), b.key(store.KeyUser)).Err(); err != nil {
		return fmt.Errorf("redis remove session: %w", err)
	}
	return nil
}

func (b *SessionBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *SessionBackend) key(name string) string {
	return fmt.Sprintf("%s:%s:%s", b.prefix, b.profile, name)
}
