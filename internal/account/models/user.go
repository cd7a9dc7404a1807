// Package models holds the account module's domain types.
package models

import (
	"time"

	id "pingmap/pkg/domain"
)

// User is a registered account.
//
// Invariants:
//   - Email is unique across all users, compared exactly as stored
//   - PasswordHash is a bcrypt hash; the plaintext is never persisted
//   - Records are created by registration and never mutated afterwards
type User struct {
	ID           id.UserID
	GivenName    string
	Surname      string
	NationalID   string
	Phone        string
	Region       string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// DisplayName is what session state and the map view show for the user.
func (u *User) DisplayName() string {
	return u.GivenName
}
