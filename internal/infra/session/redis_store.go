package session

import (
	"context"
	"encoding/json"
	"time"

	"membership/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// redisStore is a redis-backed implementation of service.SessionStore.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed session store.
func NewRedisStore(client *redis.Client) service.SessionStore {
	return &redisStore{client: client}
}

func (r *redisStore) key(sessionID string) string {
	return keyPrefix + sessionID
}

// Create stores a new session with a TTL derived from its expiry.
func (r *redisStore) Create(ctx context.Context, session *service.Session) error {
	if session.ID == "" || session.UserID <= 0 {
		return errors.New("session: missing id or user id")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session: expiry must be in the future")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "session: failed to marshal")
	}

	return r.client.Set(ctx, r.key(session.ID), data, ttl).Err()
}

// Get retrieves a session by id.
func (r *redisStore) Get(ctx context.Context, sessionID string) (*service.Session, error) {
	val, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "session: failed to get")
	}

	var session service.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, errors.Wrap(err, "session: failed to unmarshal")
	}

	return &session, nil
}

// Delete removes a session, ending it.
func (r *redisStore) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}
