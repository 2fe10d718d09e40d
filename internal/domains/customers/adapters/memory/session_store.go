package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

type session struct {
	username  string
	expiresAt time.Time
}

// SessionStore is an in-memory bearer-token session adapter.
type SessionStore struct {
	mu       sync.RWMutex
	byToken  map[string]session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{byToken: map[string]session{}, ttl: ttl, now: time.Now}
}

func (s *SessionStore) Save(_ context.Context, username, token string) error {
	username = strings.TrimSpace(username)
	token = strings.TrimSpace(token)
	if username == "" || token == "" {
		return errors.New("username and token are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byToken[token] = session{username: username, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *SessionStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	sess, ok := s.byToken[strings.TrimSpace(token)]
	s.mu.RUnlock()
	if !ok {
		return "", ports.ErrSessionNotFound
	}
	if s.now().After(sess.expiresAt) {
		s.mu.Lock()
		delete(s.byToken, strings.TrimSpace(token))
		s.mu.Unlock()
		return "", ports.ErrSessionNotFound
	}
	return sess.username, nil
}

func (s *SessionStore) Delete(_ context.Context, username string) error {
	username = strings.TrimSpace(username)
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.byToken {
		if sess.username == username {
			delete(s.byToken, token)
		}
	}
	return nil
}
