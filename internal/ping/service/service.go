// Package service implements owner-scoped ping operations.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	pingmetrics "pingmap/internal/ping/metrics"
	"pingmap/internal/ping/models"
	"pingmap/internal/ping/store"
	id "pingmap/pkg/domain"
	dErrors "pingmap/pkg/domain-errors"
	"pingmap/pkg/platform/sentinel"
	"pingmap/pkg/requestcontext"
)

// PingFields carries the mutable part of a ping. Lat and Lng are pointers
// so that an absent coordinate is distinguishable from a coordinate of
// exactly 0, which is valid.
type PingFields struct {
	Lat  *float64
	Lng  *float64
	Info string
}

// PingService validates ping mutations and scopes every operation to the
// calling identity.
type PingService struct {
	pings   store.PingStore
	metrics *pingmetrics.Metrics
}

// New constructs a PingService. metrics may be nil.
func New(pings store.PingStore, metrics *pingmetrics.Metrics) *PingService {
	return &PingService{pings: pings, metrics: metrics}
}

// List returns every ping owned by the given user, in store order.
func (s *PingService) List(ctx context.Context, owner id.UserID) ([]*models.Ping, error) {
	pings, err := s.pings.ListByOwner(ctx, owner)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pings")
	}
	return pings, nil
}

// Create validates the fields and persists a new ping owned by owner.
func (s *PingService) Create(ctx context.Context, owner id.UserID, fields PingFields) (*models.Ping, error) {
	if err := validateFields(fields); err != nil {
		s.metrics.IncrementRejected()
		return nil, err
	}

	now := requestcontext.Now(ctx)
	ping := &models.Ping{
		ID:        id.PingID(uuid.New()),
		OwnerID:   owner,
		Lat:       *fields.Lat,
		Lng:       *fields.Lng,
		Info:      fields.Info,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.pings.Create(ctx, ping); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create ping")
	}

	s.metrics.IncrementCreated()
	return ping, nil
}

// Update replaces lat/lng/info on the ping matching both pingID and owner.
// It reports affected=false when no record matched, without distinguishing
// an unknown id from a ping owned by someone else.
func (s *PingService) Update(ctx context.Context, owner id.UserID, pingID id.PingID, fields PingFields) (bool, error) {
	if err := validateFields(fields); err != nil {
		s.metrics.IncrementRejected()
		return false, err
	}

	err := s.pings.UpdateOwned(ctx, pingID, owner, *fields.Lat, *fields.Lng, fields.Info)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update ping")
	}

	s.metrics.IncrementUpdated()
	return true, nil
}

// Delete removes the ping matching both pingID and owner. A miss reports
// affected=false, so repeated deletes are harmless.
func (s *PingService) Delete(ctx context.Context, owner id.UserID, pingID id.PingID) (bool, error) {
	err := s.pings.DeleteOwned(ctx, pingID, owner)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete ping")
	}

	s.metrics.IncrementDeleted()
	return true, nil
}

func validateFields(fields PingFields) error {
	if fields.Lat == nil || fields.Lng == nil || fields.Info == "" {
		return dErrors.New(dErrors.CodeValidation, "Datos incompletos")
	}
	if *fields.Lat < -90 || *fields.Lat > 90 {
		return dErrors.New(dErrors.CodeValidation, "Latitud fuera de rango")
	}
	if *fields.Lng < -180 || *fields.Lng > 180 {
		return dErrors.New(dErrors.CodeValidation, "Longitud fuera de rango")
	}
	return nil
}
