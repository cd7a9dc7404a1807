// Package store defines the user record store and its implementations.
package store

import (
	"context"

	"pingmap/internal/account/models"
	id "pingmap/pkg/domain"
)

// UserStore persists user records.
//
// CreateIfEmailAvailable must be atomic with respect to the uniqueness
// check: under concurrent registration of the same email, exactly one call
// succeeds and the rest return sentinel.ErrConflict.
type UserStore interface {
	CreateIfEmailAvailable(ctx context.Context, user *models.User) error
	// FindByEmail looks up a user by exact email match (case-sensitive,
	// as stored). Returns sentinel.ErrNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByID returns sentinel.ErrNotFound when absent.
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
}
