// Package store defines the ping record store and its implementations.
package store

import (
	"context"

	"pingmap/internal/ping/models"
	id "pingmap/pkg/domain"
)

// PingStore persists ping records. Every mutation is compound-filtered by
// record ID and owner: a miss on either condition reports
// sentinel.ErrNotFound, and implementations never reveal which condition
// failed. Each UpdateOwned/DeleteOwned targets exactly one record and the
// backing store performs it atomically.
type PingStore interface {
	Create(ctx context.Context, ping *models.Ping) error
	// ListByOwner returns all pings owned by the user, in store-native
	// order. An owner with no pings gets an empty slice, not an error.
	ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Ping, error)
	// UpdateOwned replaces lat/lng/info on the ping matching both IDs.
	UpdateOwned(ctx context.Context, pingID id.PingID, owner id.UserID, lat, lng float64, info string) error
	// DeleteOwned removes the ping matching both IDs.
	DeleteOwned(ctx context.Context, pingID id.PingID, owner id.UserID) error
}
