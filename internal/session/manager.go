package session

import (
	"context"
	"errors"
	"time"

	id "pingmap/pkg/domain"
	dErrors "pingmap/pkg/domain-errors"
	"pingmap/pkg/platform/sentinel"
	"pingmap/pkg/requestcontext"
)

// SessionStore persists sessions for their lifetime.
type SessionStore interface {
	// Save stores the session under its token, replacing any previous
	// session with the same token.
	Save(ctx context.Context, sess *Session) error
	// Find returns the session for a token. Absent and expired sessions
	// both return sentinel.ErrNotFound; expiry is not a distinct outcome
	// for callers.
	Find(ctx context.Context, token string) (*Session, error)
	// Delete removes the session. Deleting an absent token is a no-op.
	Delete(ctx context.Context, token string) error
}

// Manager is the session gate: it establishes identities after login,
// resolves tokens back to identities, and terminates them on logout.
type Manager struct {
	store SessionStore
	ttl   time.Duration
}

// NewManager constructs a Manager with the given session lifetime.
func NewManager(store SessionStore, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Establish creates a session bound to the user and returns its opaque
// token. The device display name is derived from the request's User-Agent
// when the middleware has recorded one.
func (m *Manager) Establish(ctx context.Context, userID id.UserID, displayName string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to establish session")
	}

	now := requestcontext.Now(ctx)
	sess := &Session{
		Token:       token,
		UserID:      userID,
		DisplayName: displayName,
		Device:      DeviceName(requestcontext.UserAgent(ctx)),
		CreatedAt:   now,
		ExpiresAt:   now.Add(m.ttl),
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to save session")
	}
	return token, nil
}

// Current resolves a token to its live session. Absent and expired tokens
// return sentinel.ErrNotFound; anything else is an infrastructure failure.
func (m *Manager) Current(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, sentinel.ErrNotFound
	}

	sess, err := m.store.Find(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, sentinel.ErrNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	return sess, nil
}

// Terminate clears the session. Terminating an unknown token is a no-op so
// logout is idempotent.
func (m *Manager) Terminate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to terminate session")
	}
	return nil
}
