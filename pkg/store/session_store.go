// Package store persists per-user conversation sessions between webhook
// turns. Only the durable fields survive a round trip: outbound replies and
// the auto-advance flag are per-turn artifacts and are never written.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"rumorcheck-be/internal/bot"
)

// sessionTTL bounds how long an idle conversation keeps its place. After it
// lapses the next message starts from the beginning, which is what a user
// coming back days later expects anyway.
const sessionTTL = 1 * time.Hour

// SessionRecord is the persisted snapshot of one user's conversation.
type SessionRecord struct {
	UserID    string    `json:"userId"`
	State     bot.State `json:"state"`
	Data      bot.Data  `json:"data"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionStore loads and saves conversation snapshots keyed by user ID.
type SessionStore interface {
	Load(ctx context.Context, userID string) (*SessionRecord, bool, error)
	Save(ctx context.Context, record *SessionRecord) error
	Delete(ctx context.Context, userID string) error
}

// RedisSessionStore keeps sessions in Redis so restarts and multiple
// replicas share conversation state.
type RedisSessionStore struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, keyPrefix: "session:"}
}

func (s *RedisSessionStore) key(userID string) string {
	return s.keyPrefix + userID
}

func (s *RedisSessionStore) Load(ctx context.Context, userID string) (*SessionRecord, bool, error) {
	raw, err := s.rdb.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session %s: %w", userID, err)
	}

	var record SessionRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, false, fmt.Errorf("decode session %s: %w", userID, err)
	}
	return &record, true, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, record *SessionRecord) error {
	record.UpdatedAt = time.Now()
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", record.UserID, err)
	}
	if err := s.rdb.Set(ctx, s.key(record.UserID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", record.UserID, err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", userID, err)
	}
	return nil
}

// MemorySessionStore keeps sessions in process memory. It backs local
// development and tests, where losing state on restart is fine.
type MemorySessionStore struct {
	cache *cache.Cache
}

func NewMemorySessionStore() *MemorySessionStore {
	// Expired conversations are purged every 10 minutes.
	return &MemorySessionStore{cache: cache.New(sessionTTL, 10*time.Minute)}
}

func (s *MemorySessionStore) Load(ctx context.Context, userID string) (*SessionRecord, bool, error) {
	if x, found := s.cache.Get(userID); found {
		return x.(*SessionRecord), true, nil
	}
	return nil, false, nil
}

func (s *MemorySessionStore) Save(ctx context.Context, record *SessionRecord) error {
	record.UpdatedAt = time.Now()
	s.cache.Set(record.UserID, record, cache.DefaultExpiration)
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, userID string) error {
	s.cache.Delete(userID)
	return nil
}
