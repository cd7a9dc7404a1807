package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"pingmap/internal/account/models"
	id "pingmap/pkg/domain"
	"pingmap/pkg/platform/sentinel"
)

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// Postgres is the production UserStore. Email uniqueness is enforced by the
// UNIQUE constraint on users.correo, so concurrent registrations of the
// same address resolve to exactly one success.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfEmailAvailable(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, nombre, apellido, cedula, telefono, region, correo, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(user.ID), user.GivenName, user.Surname, user.NationalID,
		user.Phone, user.Region, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Postgres) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, nombre, apellido, cedula, telefono, region, correo, password_hash, created_at
		FROM users
		WHERE correo = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Postgres) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	query := `
		SELECT id, nombre, apellido, cedula, telefono, region, correo, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return s.scanUser(s.db.QueryRowContext(ctx, query, uuid.UUID(userID)))
}

func (s *Postgres) scanUser(row *sql.Row) (*models.User, error) {
	var (
		user  models.User
		rawID uuid.UUID
	)
	err := row.Scan(&rawID, &user.GivenName, &user.Surname, &user.NationalID,
		&user.Phone, &user.Region, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.ID = id.UserID(rawID)
	return &user, nil
}
