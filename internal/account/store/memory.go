package store

import (
	"context"
	"sync"

	"pingmap/internal/account/models"
	id "pingmap/pkg/domain"
	"pingmap/pkg/platform/sentinel"
)

// InMemory is the development and unit-test UserStore. It mirrors the
// PostgreSQL semantics: exact-match email uniqueness enforced under lock.
type InMemory struct {
	mu      sync.RWMutex
	byID    map[id.UserID]*models.User
	byEmail map[string]id.UserID
}

// NewInMemory creates an empty in-memory user store.
func NewInMemory() *InMemory {
	return &InMemory{
		byID:    make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
	}
}

func (s *InMemory) CreateIfEmailAvailable(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return sentinel.ErrConflict
	}

	copied := *user
	s.byID[user.ID] = &copied
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *InMemory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.byEmail[email]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *s.byID[userID]
	return &copied, nil
}

func (s *InMemory) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := *user
	return &copied, nil
}
