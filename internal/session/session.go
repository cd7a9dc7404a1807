// Package session implements server-side session identity: opaque tokens,
// transient session state, and the access gate for protected routes.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	id "pingmap/pkg/domain"
)

// Session is the transient proof that a connection authenticated as a user.
// It lives only in the session store, never in the record stores.
type Session struct {
	Token       string    `json:"-"`
	UserID      id.UserID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Device      string    `json:"device"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NewToken generates an unpredictable opaque session token.
// 32 bytes of crypto/rand entropy, hex encoded.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
