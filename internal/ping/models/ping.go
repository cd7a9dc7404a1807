// Package models holds the ping module's domain types.
package models

import (
	"time"

	id "pingmap/pkg/domain"
)

// Ping is a user-owned point annotation on the shared map.
//
// Invariants:
//   - OwnerID is set at creation and never changes
//   - Every read/update/delete filters by both ID and OwnerID; a ping is
//     invisible and unmodifiable to any identity other than its creator
type Ping struct {
	ID        id.PingID
	OwnerID   id.UserID
	Lat       float64
	Lng       float64
	Info      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
