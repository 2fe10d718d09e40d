package ports

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found or expired")

// SessionStore abstracts bearer-token session persistence.
type SessionStore interface {
	Save(ctx context.Context, username, token string) error
	// Resolve maps a token back to its username, failing for unknown or expired tokens.
	Resolve(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, username string) error
}

// NoopSessionStore is a safe default when callers do not need session persistence.
var NoopSessionStore SessionStore = noopSessionStore{}

type noopSessionStore struct{}

func (noopSessionStore) Save(_ context.Context, _ string, _ string) error { return nil }
func (noopSessionStore) Resolve(_ context.Context, _ string) (string, error) {
	return "", ErrSessionNotFound
}
func (noopSessionStore) Delete(_ context.Context, _ string) error { return nil }
