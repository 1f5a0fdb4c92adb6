package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// RedisStore persists sessions as JSON blobs in Redis with a sliding TTL, so
// a student can resume a conversation after a process restart and abandoned
// sessions expire on their own.
//
// Writes are read-modify-write on the whole session blob; the engine serializes
// writes per session, so no optimistic locking is applied.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisStoreOptions configures a RedisStore.
type RedisStoreOptions struct {
	// KeyPrefix namespaces session keys. Defaults to "lokaah:session:".
	KeyPrefix string
	// TTL is the session expiry, refreshed on every write. Zero disables
	// expiry. Defaults to 24h.
	TTL time.Duration
}

// NewRedisStore creates a session store over an existing Redis client.
func NewRedisStore(client redis.UniversalClient, optFns ...func(o *RedisStoreOptions)) *RedisStore {
	opts := RedisStoreOptions{
		KeyPrefix: "lokaah:session:",
		TTL:       24 * time.Hour,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: opts.KeyPrefix,
		ttl:       opts.TTL,
	}
}

func (s *RedisStore) key(sessionID string) string { return s.keyPrefix + sessionID }

// Get loads the session, creating an empty one if the key does not exist.
func (s *RedisStore) Get(sessionID string) (*core.Session, error) {
	ctx := context.Background()

	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return s.Create(sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session %s: %w", sessionID, err)
	}

	sess, err := unmarshalSession(raw)
	if err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return sess, nil
}

// Create writes a fresh empty session, overwriting any existing one.
func (s *RedisStore) Create(sessionID string) (*core.Session, error) {
	sess := core.NewSession(sessionID)
	if err := s.save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// AppendEvent loads the session, appends the event and writes it back.
func (s *RedisStore) AppendEvent(sessionID string, ev core.Event) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	sess.AddEvent(ev)
	return s.save(sess)
}

// ApplyDelta loads the session, merges the state delta and writes it back.
func (s *RedisStore) ApplyDelta(sessionID string, delta map[string]any) error {
	sess, err := s.Get(sessionID)
	if err != nil {
		return err
	}
	sess.MergeState(delta)
	return s.save(sess)
}

func (s *RedisStore) save(sess *core.Session) error {
	raw, err := marshalSession(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}

	ctx := context.Background()
	if err := s.client.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session %s: %w", sess.ID, err)
	}
	return nil
}
