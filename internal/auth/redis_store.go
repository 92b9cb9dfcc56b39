package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

const defaultRedisPrefix = "wallet"

// RedisStore keeps sessions in Redis so several processes share one login.
// Keys expire together with the token.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store using client. prefix namespaces the keys.
func NewRedisStore(client redis.UniversalClient, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("auth: redis client is required")
	}
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}, nil
}

func (r *RedisStore) key(domain api.Domain) string {
	return fmt.Sprintf("%s:session:%s", r.prefix, domain)
}

// Get returns the stored session.
func (r *RedisStore) Get(ctx context.Context, domain api.Domain) (api.Session, error) {
	raw, err := r.client.Get(ctx, r.key(domain)).Bytes()
	if errors.Is(err, redis.Nil) {
		return api.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return api.Session{}, fmt.Errorf("auth: redis get: %w", err)
	}
	var s api.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return api.Session{}, fmt.Errorf("auth: decode session: %w", err)
	}
	return s, nil
}

// Put stores session with a TTL matching its expiry. Already expired
// sessions are deleted instead.
func (r *RedisStore) Put(ctx context.Context, domain api.Domain, session api.Session) error {
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(r.now())
		if ttl <= 0 {
			return r.Delete(ctx, domain)
		}
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(domain), raw, ttl).Err(); err != nil {
		return fmt.Errorf("auth: redis set: %w", err)
	}
	return nil
}

// Delete removes the session for domain.
func (r *RedisStore) Delete(ctx context.Context, domain api.Domain) error {
	if err := r.client.Del(ctx, r.key(domain)).Err(); err != nil {
		return fmt.Errorf("auth: redis del: %w", err)
	}
	return nil
}

// DeleteAll removes the sessions of every domain.
func (r *RedisStore) DeleteAll(ctx context.Context) error {
	keys := make([]string, 0, len(api.Domains()))
	for _, d := range api.Domains() {
		keys = append(keys, r.key(d))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("auth: redis del: %w", err)
	}
	return nil
}
