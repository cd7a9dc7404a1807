package store

import (
	"context"
	"sync"
	"time"

	"pingmap/internal/ping/models"
	id "pingmap/pkg/domain"
	"pingmap/pkg/platform/sentinel"
)

// InMemory is the development and unit-test PingStore. Insertion order is
// the store-native order for ListByOwner.
type InMemory struct {
	mu    sync.RWMutex
	pings []*models.Ping
	now   func() time.Time
}

// NewInMemory creates an empty in-memory ping store.
func NewInMemory() *InMemory {
	return &InMemory{now: time.Now}
}

func (s *InMemory) Create(ctx context.Context, ping *models.Ping) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *ping
	s.pings = append(s.pings, &copied)
	return nil
}

func (s *InMemory) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Ping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Ping, 0)
	for _, p := range s.pings {
		if p.OwnerID == owner {
			copied := *p
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *InMemory) UpdateOwned(ctx context.Context, pingID id.PingID, owner id.UserID, lat, lng float64, info string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pings {
		if p.ID == pingID && p.OwnerID == owner {
			p.Lat = lat
			p.Lng = lng
			p.Info = info
			p.UpdatedAt = s.now()
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemory) DeleteOwned(ctx context.Context, pingID id.PingID, owner id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.pings {
		if p.ID == pingID && p.OwnerID == owner {
			s.pings = append(s.pings[:i], s.pings[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}
