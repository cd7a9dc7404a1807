package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"pingmap/internal/ping/models"
	id "pingmap/pkg/domain"
	"pingmap/pkg/platform/sentinel"
)

// Postgres is the production PingStore. Compound id+owner filters run as
// single statements, so each mutation is atomic at the row level.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed ping store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Create(ctx context.Context, ping *models.Ping) error {
	query := `
		INSERT INTO pings (id, user_id, lat, lng, info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(ping.ID), uuid.UUID(ping.OwnerID),
		ping.Lat, ping.Lng, ping.Info, ping.CreatedAt, ping.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ping: %w", err)
	}
	return nil
}

func (s *Postgres) ListByOwner(ctx context.Context, owner id.UserID) ([]*models.Ping, error) {
	query := `
		SELECT id, user_id, lat, lng, info, created_at, updated_at
		FROM pings
		WHERE user_id = $1
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(owner))
	if err != nil {
		return nil, fmt.Errorf("list pings: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Ping, 0)
	for rows.Next() {
		var (
			ping    models.Ping
			rawID   uuid.UUID
			rawUser uuid.UUID
		)
		if err := rows.Scan(&rawID, &rawUser, &ping.Lat, &ping.Lng, &ping.Info,
			&ping.CreatedAt, &ping.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ping: %w", err)
		}
		ping.ID = id.PingID(rawID)
		ping.OwnerID = id.UserID(rawUser)
		result = append(result, &ping)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pings: %w", err)
	}
	return result, nil
}

func (s *Postgres) UpdateOwned(ctx context.Context, pingID id.PingID, owner id.UserID, lat, lng float64, info string) error {
	query := `
		UPDATE pings
		SET lat = $3, lng = $4, info = $5, updated_at = now()
		WHERE id = $1 AND user_id = $2
	`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(pingID), uuid.UUID(owner), lat, lng, info)
	if err != nil {
		return fmt.Errorf("update ping: %w", err)
	}
	return affectedOrNotFound(res)
}

func (s *Postgres) DeleteOwned(ctx context.Context, pingID id.PingID, owner id.UserID) error {
	query := `DELETE FROM pings WHERE id = $1 AND user_id = $2`
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(pingID), uuid.UUID(owner))
	if err != nil {
		return fmt.Errorf("delete ping: %w", err)
	}
	return affectedOrNotFound(res)
}

func affectedOrNotFound(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
