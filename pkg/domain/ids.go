// Package domain defines typed identifiers shared across modules.
//
// IDs are distinct named types over uuid.UUID so a PingID can never be
// passed where a UserID is expected. Parse functions enforce validity at
// the boundary; everything past them can trust the value.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID identifies a registered user.
type UserID uuid.UUID

// PingID identifies a ping record.
type PingID uuid.UUID

// ParseUserID validates and returns a UserID.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParseUserID(s string) (UserID, error) {
	u, err := parse(s, "user id")
	return UserID(u), err
}

// ParsePingID validates and returns a PingID.
// Rejects empty strings, malformed UUIDs, and the nil UUID.
func ParsePingID(s string) (PingID, error) {
	u, err := parse(s, "ping id")
	return PingID(u), err
}

func parse(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("%s cannot be empty", kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", kind, err)
	}
	if u == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%s cannot be the nil UUID", kind)
	}
	return u, nil
}

func (id UserID) String() string { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets UserID serialize as its canonical string form.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a UserID from its canonical string form.
func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id PingID) String() string { return uuid.UUID(id).String() }
func (id PingID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets PingID serialize as its canonical string form.
func (id PingID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses a PingID from its canonical string form.
func (id *PingID) UnmarshalText(text []byte) error {
	parsed, err := ParsePingID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
