package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTTL bounds how long an admin cookie stays valid.
const SessionTTL = 24 * time.Hour

// Session represents an authenticated admin browser session.
type Session struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Get(ctx context.Context, token string) (Session, bool)
	Delete(ctx context.Context, token string) error
}

// MemorySessionStore keeps sessions in process memory.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create stores a new session and returns its token.
// PRE: username is non-empty
// POST: Session is stored, token is returned
func (ss *MemorySessionStore) Create(_ context.Context, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = Session{Username: username, CreatedAt: ss.now()}
	return token, nil
}

// Get retrieves a live session by token. Expired sessions are dropped.
func (ss *MemorySessionStore) Get(_ context.Context, token string) (Session, bool) {
	ss.mu.RLock()
	session, ok := ss.sessions[token]
	ss.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if ss.now().Sub(session.CreatedAt) > SessionTTL {
		ss.mu.Lock()
		delete(ss.sessions, token)
		ss.mu.Unlock()
		return Session{}, false
	}
	return session, true
}

// Delete removes a session by token.
func (ss *MemorySessionStore) Delete(_ context.Context, token string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
	return nil
}

const redisSessionPrefix = "kbs:session:"

// RedisSessionStore keeps sessions in Redis so they survive restarts and
// are shared between replicas. Expiry is delegated to the key TTL.
type RedisSessionStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisSessionStore wraps an existing client.
func NewRedisSessionStore(client redis.Cmdable) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: SessionTTL}
}

// Create stores a new session under a fresh token.
func (rs *RedisSessionStore) Create(ctx context.Context, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(Session{Username: username, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", err
	}
	if err := rs.client.Set(ctx, redisSessionPrefix+token, payload, rs.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token. Missing keys, expired keys and unreadable
// payloads all count as no session.
func (rs *RedisSessionStore) Get(ctx context.Context, token string) (Session, bool) {
	raw, err := rs.client.Get(ctx, redisSessionPrefix+token).Bytes()
	if err != nil {
		return Session{}, false
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, false
	}
	return session, true
}

// Delete removes a session. Deleting an unknown token is not an error.
func (rs *RedisSessionStore) Delete(ctx context.Context, token string) error {
	err := rs.client.Del(ctx, redisSessionPrefix+token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
